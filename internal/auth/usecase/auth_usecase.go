package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	authdomain "coffeemap-backend/internal/auth/domain"
	authdto "coffeemap-backend/internal/auth/dto"
	"coffeemap-backend/internal/auth/repository"
	"coffeemap-backend/pkg/apperror"
	"coffeemap-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.Conflict, "Email already registered")
	}

	// The raw password is hashed here, at the point it is received.
	// The repository persists the hash untouched.
	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:    email,
		Name:     name,
		Password: hashedPassword,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// Two registrations racing past the pre-check are settled by the
		// unique index; the loser gets the same conflict.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Wrap(apperror.Conflict, "Email already registered", err)
		}
		return nil, err
	}

	token, err := u.issueToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{User: user, Token: token}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	// Same message for unknown email and wrong password, so login cannot
	// be used to probe which emails are registered.
	if user == nil {
		return nil, apperror.New(apperror.Unauthorized, "Invalid email or password")
	}
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperror.New(apperror.Unauthorized, "Invalid email or password")
	}

	token, err := u.issueToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &authdto.AuthResponse{User: user, Token: token}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*authdomain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.New(apperror.BadRequest, "Invalid user ID format")
	}

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.NotFound, "User not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.New(apperror.BadRequest, "Invalid user ID format")
	}

	update := authdomain.UserUpdate{}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := u.userRepo.FindByEmailExcluding(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperror.New(apperror.Conflict, "Email already taken")
		}
		update.Email = &email
	}

	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}

	if req.Password != nil {
		hashed, err := repository.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		update.Password = &hashed
	}

	user, err := u.userRepo.Update(ctx, id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Wrap(apperror.Conflict, "Email already taken", err)
		}
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.NotFound, "User not found")
	}
	return user, nil
}

func (u *authUsecase) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"jti":    uuid.New().String(),
		"iat":    now.Unix(),
		"exp":    now.Add(u.config.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.Wrap(apperror.Unauthorized, "Token expired", err)
		}
		return "", apperror.Wrap(apperror.Unauthorized, "Invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperror.New(apperror.Unauthorized, "Invalid token")
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", apperror.New(apperror.Unauthorized, "Invalid token")
	}

	return userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName trims the display name and applies the 2-30 length policy to
// the trimmed value. Request binding checks the raw string, so a padded name
// like "  A " would otherwise slip through as a one-character name.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 30 {
		return "", apperror.New(apperror.BadRequest, "Invalid input data")
	}
	return name, nil
}
