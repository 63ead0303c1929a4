package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type addressRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Street         string `json:"address" binding:"required"`
	Locality       string `json:"locality"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	ZipCode        string `json:"zipCode" binding:"required"`
	Country        string `json:"country" binding:"required"`
	Landmark       string `json:"landmark"`
	AlternatePhone string `json:"alternatePhone"`
	AddressType    string `json:"addressType"`
	IsDefault      bool   `json:"isDefault"`
}

func (r addressRequest) toAddress(id string) models.Address {
	addressType := strings.TrimSpace(r.AddressType)
	if addressType == "" {
		addressType = "home"
	}
	return models.Address{
		ID:             id,
		FullName:       strings.TrimSpace(r.FullName),
		Phone:          strings.TrimSpace(r.Phone),
		Street:         strings.TrimSpace(r.Street),
		Locality:       strings.TrimSpace(r.Locality),
		City:           strings.TrimSpace(r.City),
		State:          strings.TrimSpace(r.State),
		ZipCode:        strings.TrimSpace(r.ZipCode),
		Country:        strings.TrimSpace(r.Country),
		Landmark:       strings.TrimSpace(r.Landmark),
		AlternatePhone: strings.TrimSpace(r.AlternatePhone),
		AddressType:    addressType,
		IsDefault:      r.IsDefault,
	}
}

func loadUser(c *gin.Context, db *mongo.Database, ctx context.Context) (*models.User, bool) {
	userIDValue, ok := c.Get("userId")
	if !ok {
		log.Println("[ADDRESS] [ERROR] userId missing in context")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
		return nil, false
	}
	userID := userIDValue.(primitive.ObjectID)

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		log.Println("[ADDRESS] [ERROR] user not found:", err)
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return nil, false
	}
	return &user, true
}

func saveAddresses(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, addresses []models.Address) error {
	_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"addresses": addresses,
			"updatedAt": time.Now(),
		},
	})
	return err
}

func GetAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(c, db, ctx)
		if !ok {
			return
		}

		addresses := user.Addresses
		if addresses == nil {
			addresses = []models.Address{}
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

func AddAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(c, db, ctx)
		if !ok {
			return
		}

		address := req.toAddress(uuid.NewString())
		updated := applyDefault(user.Addresses, address, -1)

		if err := saveAddresses(ctx, db, user.ID, updated); err != nil {
			log.Println("[ADDRESS] [ERROR] insert address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.ID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Address added successfully",
			"address": address,
		})
	}
}

func UpdateAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := strings.TrimSpace(c.Param("addressId"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address id"})
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(c, db, ctx)
		if !ok {
			return
		}

		index := findAddressIndex(user.Addresses, addressID)
		if index == -1 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		updated := applyDefault(user.Addresses, req.toAddress(addressID), index)

		if err := saveAddresses(ctx, db, user.ID, updated); err != nil {
			log.Println("[ADDRESS] [ERROR] update address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address updated:", addressID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Address updated successfully",
			"address": updated[index],
		})
	}
}

func DeleteAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := strings.TrimSpace(c.Param("addressId"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(c, db, ctx)
		if !ok {
			return
		}

		index := findAddressIndex(user.Addresses, addressID)
		if index == -1 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		updated := append(user.Addresses[:index:index], user.Addresses[index+1:]...)

		if err := saveAddresses(ctx, db, user.ID, updated); err != nil {
			log.Println("[ADDRESS] [ERROR] delete address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] address deleted:", addressID)
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
	}
}

// SetDefaultAddress moves the default flag to the addressed entry, clearing
// every sibling so exactly one default survives.
func SetDefaultAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := strings.TrimSpace(c.Param("addressId"))
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid address id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, ok := loadUser(c, db, ctx)
		if !ok {
			return
		}

		index := findAddressIndex(user.Addresses, addressID)
		if index == -1 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		target := user.Addresses[index]
		target.IsDefault = true
		updated := applyDefault(user.Addresses, target, index)

		if err := saveAddresses(ctx, db, user.ID, updated); err != nil {
			log.Println("[ADDRESS] [ERROR] set default failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		log.Println("[ADDRESS] [INFO] default address set:", addressID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Default address updated successfully",
			"address": updated[index],
		})
	}
}
