package repository

import (
	"context"
	"errors"
	"time"

	"coffeemap-backend/internal/coffeeshop/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCoffeeShopRepository implements CoffeeShopRepository on the
// coffee_shops collection
type mongoCoffeeShopRepository struct {
	collection *mongo.Collection
}

// NewCoffeeShopRepository creates a new mongo-backed CoffeeShopRepository
func NewCoffeeShopRepository(db *mongo.Database) CoffeeShopRepository {
	return &mongoCoffeeShopRepository{
		collection: db.Collection("coffee_shops"),
	}
}

func (r *mongoCoffeeShopRepository) Create(ctx context.Context, shop *domain.CoffeeShop) error {
	shop.ID = primitive.NewObjectID()
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, shop)
	return err
}

func (r *mongoCoffeeShopRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.CoffeeShop, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"owner": owner},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shops := make([]*domain.CoffeeShop, 0)
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *mongoCoffeeShopRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CoffeeShop, error) {
	var shop domain.CoffeeShop
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *mongoCoffeeShopRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	// Conditional on the owner so a concurrent owner change or delete
	// cannot turn this into removing someone else's record.
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
