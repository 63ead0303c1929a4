package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cloth is a catalog item. Identity is immutable once created; there is no
// update operation, only create and delete.
type Cloth struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Size        string             `bson:"size" json:"size"`
	Color       string             `bson:"color" json:"color"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
