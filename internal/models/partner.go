package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothPartner is a seller account allowed to manage catalog entries.
type ClothPartner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Username  string             `bson:"username,omitempty" json:"username,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
