package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/validation"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// AddSubscriber captures a newsletter signup. The unique index on email is
// the real duplicate guard; the pre-check just gives a friendlier message.
func AddSubscriber(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/subscription"
		defer handlePanic(c, route)

		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Email is required")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "Email is required")
			return
		}
		email = validation.CanonicalEmail(email)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		subscribers := db.Collection("subscribers")

		count, err := subscribers.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[SUBSCRIBER] [ERROR] duplicate check failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to subscribe"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already subscribed"})
			return
		}

		subscriber := models.Subscriber{
			Email:     email,
			CreatedAt: time.Now(),
		}
		if _, err := subscribers.InsertOne(ctx, subscriber); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "Email already subscribed"})
				return
			}
			log.Println("[SUBSCRIBER] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to subscribe"})
			return
		}

		log.Println("[SUBSCRIBER] [INFO] new subscriber:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Subscribed successfully",
			"subscriber": gin.H{
				"email": subscriber.Email,
			},
		})
	}
}
