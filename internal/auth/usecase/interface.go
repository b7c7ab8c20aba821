package usecase

import (
	"context"

	authdomain "coffeemap-backend/internal/auth/domain"
	authdto "coffeemap-backend/internal/auth/dto"
)

// AuthUsecase defines the authentication business logic
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*authdomain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)

	// VerifyToken checks the token signature and expiry and returns the
	// user ID it was issued for. It never touches the data store.
	VerifyToken(token string) (string, error)
}
