package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoffeeShop represents a bookmarked coffee shop owned by a single user
type CoffeeShop struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner"`
	Name      string             `json:"name" bson:"name"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Lat       float64            `json:"lat" bson:"lat"`
	Lon       float64            `json:"lon" bson:"lon"`
	Distance  *float64           `json:"distance,omitempty" bson:"distance,omitempty"`
	Tags      map[string]string  `json:"tags,omitempty" bson:"tags,omitempty"`
	OSMID     string             `json:"osmId,omitempty" bson:"osmId,omitempty"` // OSM node ID when imported from the Overpass API
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
