package repository

import (
	"context"
	"errors"
	"time"

	authdomain "coffeemap-backend/internal/auth/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userRepository implements UserRepository on the users collection
type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*authdomain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByEmailExcluding(ctx context.Context, email string, id primitive.ObjectID) (*authdomain.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}})
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, update authdomain.UserUpdate) (*authdomain.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}

	var user authdomain.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*authdomain.User, error) {
	var user authdomain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
