package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/auth"
)

// Lookup names one principal collection and the context key its id is
// attached under when the lookup succeeds.
type Lookup struct {
	Collection string
	ContextKey string
}

// Principal is the single auth gate for every principal kind: cookie token →
// verify → find the principal (password hash projected out) → attach the id
// to the request context. With several lookups the first collection that
// holds the id wins, which is how a staff gate accepts both admins and
// partners. Pure gate, no side effects beyond context attachment.
func Principal(db *mongo.Database, secret string, lookups ...Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - No token provided"})
			return
		}

		principalID, err := auth.VerifyToken(token, secret)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired. Please login again"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		projection := options.FindOne().SetProjection(bson.M{"password": 0})
		for _, lookup := range lookups {
			err := db.Collection(lookup.Collection).
				FindOne(ctx, bson.M{"_id": principalID}, projection).
				Err()
			if err == nil {
				c.Set(lookup.ContextKey, principalID)
				c.Next()
				return
			}
			if err != mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] principal lookup failed:", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "db error"})
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - User not found"})
	}
}

func UserAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return Principal(db, secret, Lookup{Collection: "users", ContextKey: "userId"})
}

func PartnerAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return Principal(db, secret, Lookup{Collection: "clothpartners", ContextKey: "partnerId"})
}

func AdminAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return Principal(db, secret, Lookup{Collection: "admins", ContextKey: "adminId"})
}

// StaffAuth admits admins and cloth partners for catalog management.
func StaffAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return Principal(db, secret,
		Lookup{Collection: "admins", ContextKey: "adminId"},
		Lookup{Collection: "clothpartners", ContextKey: "partnerId"},
	)
}
