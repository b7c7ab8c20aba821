package repository

import (
	"context"

	"coffeemap-backend/internal/coffeeshop/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoffeeShopRepository defines the interface for coffee shop data access
type CoffeeShopRepository interface {
	// Create inserts a new coffee shop, assigning its ID and timestamps.
	Create(ctx context.Context, shop *domain.CoffeeShop) error

	// FindByOwner returns all shops owned by the given user,
	// newest-created first.
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.CoffeeShop, error)

	// FindByID finds a shop by its ID, (nil, nil) when absent.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CoffeeShop, error)

	// DeleteOwned deletes the shop only if it is still owned by owner,
	// reporting whether a document was removed.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error)
}
