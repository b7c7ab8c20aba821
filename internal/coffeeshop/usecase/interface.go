package usecase

import (
	"context"

	"coffeemap-backend/internal/coffeeshop/domain"
	"coffeemap-backend/internal/coffeeshop/dto"
)

// CoffeeShopUsecase defines the coffee shop business logic
type CoffeeShopUsecase interface {
	List(ctx context.Context, ownerID string) ([]*domain.CoffeeShop, error)
	Create(ctx context.Context, ownerID string, req *dto.CreateCoffeeShopRequest) (*domain.CoffeeShop, error)
	Delete(ctx context.Context, ownerID, shopID string) error
}
