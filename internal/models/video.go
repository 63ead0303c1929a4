package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductVideo is a promotional clip that may reference a catalog item.
type ProductVideo struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title       string              `bson:"title" json:"title"`
	Video       string              `bson:"video" json:"video"`
	ProductID   *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string              `bson:"productName,omitempty" json:"productName,omitempty"`
	Price       float64             `bson:"price" json:"price"`
	Category    string              `bson:"category" json:"category"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
