package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a single shipping profile embedded on a user document. The ID is
// a uuid local to the owning user, not a collection-level ObjectID.
type Address struct {
	ID             string `bson:"id" json:"id"`
	FullName       string `bson:"fullName" json:"fullName"`
	Phone          string `bson:"phone" json:"phone"`
	Street         string `bson:"street" json:"street"`
	Locality       string `bson:"locality,omitempty" json:"locality,omitempty"`
	City           string `bson:"city" json:"city"`
	State          string `bson:"state" json:"state"`
	ZipCode        string `bson:"zipCode" json:"zipCode"`
	Country        string `bson:"country" json:"country"`
	Landmark       string `bson:"landmark,omitempty" json:"landmark,omitempty"`
	AlternatePhone string `bson:"alternatePhone,omitempty" json:"alternatePhone,omitempty"`
	AddressType    string `bson:"addressType" json:"addressType"`
	IsDefault      bool   `bson:"isDefault" json:"isDefault"`
}

// User is a customer account. At most one embedded address carries
// isDefault=true; the wishlist holds cloth ids without duplicates.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	FullName  string               `bson:"fullName" json:"fullName"`
	Username  string               `bson:"username,omitempty" json:"username,omitempty"`
	Email     string               `bson:"email" json:"email"`
	Phone     string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string               `bson:"password" json:"-"`
	Role      string               `bson:"role" json:"role"`
	IsActive  bool                 `bson:"isActive" json:"isActive"`
	Addresses []Address            `bson:"addresses" json:"addresses"`
	Wishlist  []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
