package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetWishlist returns the wishlisted cloths in the order they were added.
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[WISHLIST] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[WISHLIST] [ERROR] get wishlist failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if len(user.Wishlist) == 0 {
			c.JSON(http.StatusOK, gin.H{"items": []models.Cloth{}})
			return
		}

		cursor, err := db.Collection("cloths").Find(ctx, bson.M{"_id": bson.M{"$in": user.Wishlist}})
		if err != nil {
			log.Println("[WISHLIST] [ERROR] list wishlist cloths failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}
		defer cursor.Close(ctx)

		cloths := make([]models.Cloth, 0, len(user.Wishlist))
		if err := cursor.All(ctx, &cloths); err != nil {
			log.Println("[WISHLIST] [ERROR] decode wishlist cloths failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}

		clothByID := make(map[primitive.ObjectID]models.Cloth, len(cloths))
		for _, cloth := range cloths {
			clothByID[cloth.ID] = cloth
		}

		ordered := make([]models.Cloth, 0, len(cloths))
		for _, id := range user.Wishlist {
			if cloth, exists := clothByID[id]; exists {
				ordered = append(ordered, cloth)
			}
		}

		c.JSON(http.StatusOK, gin.H{"items": ordered})
	}
}

// AddToWishlist is idempotent: $addToSet keeps re-adds from duplicating the
// entry and both paths answer success.
func AddToWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[WISHLIST] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("cloths").FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			log.Println("[WISHLIST] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to wishlist"})
			return
		}

		// No updatedAt bump here: ModifiedCount must reflect only set
		// membership so a re-add can be told apart from a first add.
		res, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$addToSet": bson.M{"wishlist": productID},
		})
		if err != nil {
			log.Println("[WISHLIST] [ERROR] add to wishlist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to wishlist"})
			return
		}

		if res.ModifiedCount == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist"})
	}
}

func RemoveFromWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			log.Println("[WISHLIST] [ERROR] userId missing in context")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$pull": bson.M{"wishlist": productID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[WISHLIST] [ERROR] remove from wishlist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove from wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}
