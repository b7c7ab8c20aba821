package usecase

import (
	"context"
	"strings"

	"coffeemap-backend/internal/coffeeshop/domain"
	"coffeemap-backend/internal/coffeeshop/dto"
	"coffeemap-backend/internal/coffeeshop/repository"
	"coffeemap-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// coffeeShopUsecase implements CoffeeShopUsecase interface
type coffeeShopUsecase struct {
	shopRepo repository.CoffeeShopRepository
}

// NewCoffeeShopUsecase creates a new instance of coffeeShopUsecase
func NewCoffeeShopUsecase(shopRepo repository.CoffeeShopRepository) CoffeeShopUsecase {
	return &coffeeShopUsecase{
		shopRepo: shopRepo,
	}
}

func (u *coffeeShopUsecase) List(ctx context.Context, ownerID string) ([]*domain.CoffeeShop, error) {
	owner, err := ownerObjectID(ownerID)
	if err != nil {
		return nil, err
	}
	return u.shopRepo.FindByOwner(ctx, owner)
}

func (u *coffeeShopUsecase) Create(ctx context.Context, ownerID string, req *dto.CreateCoffeeShopRequest) (*domain.CoffeeShop, error) {
	owner, err := ownerObjectID(ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Lat == nil || req.Lon == nil {
		return nil, apperror.New(apperror.BadRequest, "Name, latitude, and longitude are required")
	}

	shop := &domain.CoffeeShop{
		Owner:    owner,
		Name:     name,
		Address:  strings.TrimSpace(req.Address),
		Lat:      *req.Lat,
		Lon:      *req.Lon,
		Distance: req.Distance,
		Tags:     req.Tags,
		OSMID:    req.OSMID,
	}

	if err := u.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (u *coffeeShopUsecase) Delete(ctx context.Context, ownerID, shopID string) error {
	owner, err := ownerObjectID(ownerID)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return apperror.New(apperror.BadRequest, "Invalid coffee shop ID format")
	}

	// Existence is checked before ownership: probing an id that exists but
	// belongs to someone else answers 403, a dead id answers 404.
	shop, err := u.shopRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if shop == nil {
		return apperror.New(apperror.NotFound, "Coffee shop not found")
	}
	if shop.Owner != owner {
		return apperror.New(apperror.Forbidden, "You don't have permission to delete this coffee shop")
	}

	deleted, err := u.shopRepo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return err
	}
	if !deleted {
		// Raced with another delete of the same record.
		return apperror.New(apperror.NotFound, "Coffee shop not found")
	}
	return nil
}

// ownerObjectID parses the authenticated user ID carried by the token. A
// verified token with an id that does not parse is still an invalid token.
func ownerObjectID(ownerID string) (primitive.ObjectID, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return primitive.NilObjectID, apperror.New(apperror.Unauthorized, "Invalid token")
	}
	return owner, nil
}
