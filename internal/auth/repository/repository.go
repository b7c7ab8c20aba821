package repository

import (
	"context"

	authdomain "coffeemap-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the interface for user data access.
// Find methods return (nil, nil) when no document matches.
type UserRepository interface {
	// Create inserts a new user, assigning its ID and timestamps.
	Create(ctx context.Context, user *authdomain.User) error

	// FindByEmail finds a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)

	// FindByID finds a user by its ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*authdomain.User, error)

	// FindByEmailExcluding finds a user holding the given email other than
	// the given ID. Used for uniqueness checks on profile updates.
	FindByEmailExcluding(ctx context.Context, email string, id primitive.ObjectID) (*authdomain.User, error)

	// Update applies the non-nil fields and returns the updated user,
	// or (nil, nil) if the user no longer exists.
	Update(ctx context.Context, id primitive.ObjectID, update authdomain.UserUpdate) (*authdomain.User, error)
}

// HashPassword hashes a raw password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a raw password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
