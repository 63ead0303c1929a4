package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/auth"
	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// principalDoc covers the identity block every principal collection shares.
type principalDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	FullName string             `bson:"fullName"`
	Username string             `bson:"username,omitempty"`
	Email    string             `bson:"email"`
	Phone    string             `bson:"phone,omitempty"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
}

func principalJSON(p principalDoc) gin.H {
	return gin.H{
		"_id":      p.ID.Hex(),
		"email":    p.Email,
		"fullName": p.FullName,
		"role":     p.Role,
	}
}

/* =========================
   REGISTER
========================= */

// register is the shared registration flow: rule chain → duplicate identity
// check (409) → bcrypt hash → insert → token cookie → 201.
func register(db *mongo.Database, cfg config.Config, collection, role, resourceKey, successMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := "POST register " + role
		defer handlePanic(c, route)

		fields, err := fieldsFromJSONBody(c)
		if err != nil {
			log.Println("[AUTH] [ERROR] register parse failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON payload"})
			return
		}

		if failures := validation.RegisterChain().Run(fields); len(failures) > 0 {
			respondValidationFailures(c, failures)
			return
		}

		email := validation.CanonicalEmail(fields["email"])
		fullName := strings.TrimSpace(fields["fullName"])
		username := strings.ToLower(strings.TrimSpace(fields["username"]))
		phone := strings.TrimSpace(fields["phone"])

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		duplicates := []bson.M{{"email": email}}
		if username != "" {
			duplicates = append(duplicates, bson.M{"username": username})
		}
		if phone != "" {
			duplicates = append(duplicates, bson.M{"phone": phone})
		}

		count, err := db.Collection(collection).CountDocuments(ctx, bson.M{"$or": duplicates})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register identity exists:", email)
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(fields["password"]), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "password hash failed"})
			return
		}

		now := time.Now()
		doc := bson.M{
			"fullName":  fullName,
			"email":     email,
			"password":  string(hash),
			"role":      role,
			"createdAt": now,
			"updatedAt": now,
		}
		if username != "" {
			doc["username"] = username
		}
		if phone != "" {
			doc["phone"] = phone
		}
		if collection == "users" {
			doc["isActive"] = true
			doc["addresses"] = []bson.M{}
			doc["wishlist"] = []primitive.ObjectID{}
		}

		res, err := db.Collection(collection).InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		token, err := auth.IssueToken(id, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "token generation failed"})
			return
		}

		auth.SetAuthCookie(c, token, cfg.TokenTTL, auth.PolicyFor(cfg.IsProduction()))

		log.Printf("[AUTH] [INFO] %s registered: %s", role, email)
		c.JSON(http.StatusCreated, gin.H{
			"message": successMessage,
			resourceKey: gin.H{
				"_id":      id.Hex(),
				"email":    email,
				"fullName": fullName,
				"role":     role,
			},
		})
	}
}

func RegisterUser(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return register(db, cfg, "users", "user", "user", "User registered successfully")
}

func RegisterAdmin(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return register(db, cfg, "admins", "admin", "admin", "Admin registered successfully")
}

func RegisterPartner(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return register(db, cfg, "clothpartners", "clothPartner", "partner", "Partner registered successfully")
}

/* =========================
   LOGIN
========================= */

// login authenticates against one principal collection with the login
// throttle wrapped around it: an active lockout rejects before the store is
// touched, a failed credential check records an attempt, success resets the
// counter.
func login(db *mongo.Database, cfg config.Config, throttle *auth.Throttle, collection, resourceKey, successMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := "POST login " + collection
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
			return
		}

		email := validation.CanonicalEmail(req.Email)
		addr := c.ClientIP()

		if err := throttle.Check(email, addr); err != nil {
			var lockout *auth.LockoutError
			if errors.As(err, &lockout) {
				c.Header("Retry-After", strconv.Itoa(lockout.RetryAfterMinutes*60))
				c.JSON(http.StatusTooManyRequests, gin.H{"message": lockout.Error()})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var principal principalDoc
		err := db.Collection(collection).FindOne(ctx, bson.M{"email": email}).Decode(&principal)
		if err == mongo.ErrNoDocuments {
			throttle.RecordFailure(email, addr)
			log.Println("[AUTH] [ERROR] login unknown principal:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(principal.Password), []byte(req.Password)); err != nil {
			throttle.RecordFailure(email, addr)
			log.Println("[AUTH] [ERROR] login invalid credentials:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}

		throttle.Reset(email, addr)

		token, err := auth.IssueToken(principal.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "token generation failed"})
			return
		}

		auth.SetAuthCookie(c, token, cfg.TokenTTL, auth.PolicyFor(cfg.IsProduction()))

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"message":   successMessage,
			resourceKey: principalJSON(principal),
		})
	}
}

func LoginUser(db *mongo.Database, cfg config.Config, throttle *auth.Throttle) gin.HandlerFunc {
	return login(db, cfg, throttle, "users", "user", "User logged in successfully")
}

func LoginAdmin(db *mongo.Database, cfg config.Config, throttle *auth.Throttle) gin.HandlerFunc {
	return login(db, cfg, throttle, "admins", "admin", "Admin logged in successfully")
}

func LoginPartner(db *mongo.Database, cfg config.Config, throttle *auth.Throttle) gin.HandlerFunc {
	return login(db, cfg, throttle, "clothpartners", "partner", "Partner logged in successfully")
}

/* =========================
   LOGOUT / PROFILE
========================= */

func Logout(cfg config.Config, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearAuthCookie(c, auth.PolicyFor(cfg.IsProduction()))
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// Profile resolves the cookie token against users first, then admins, and
// returns whichever identity matches, password hash excluded.
func Profile(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - No token provided"})
			return
		}

		principalID, err := auth.VerifyToken(token, cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Session expired. Please login again"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		projection := options.FindOne().SetProjection(bson.M{"password": 0})

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": principalID}, projection).Decode(&user)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"user": user})
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] profile lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		var admin models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": principalID}, projection).Decode(&admin)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"user": admin})
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] profile lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - User not found"})
	}
}

// AdminProfile returns the authenticated admin document; AdminAuth has
// already verified it exists.
func AdminProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := c.Get("adminId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		projection := options.FindOne().SetProjection(bson.M{"password": 0})
		if err := db.Collection("admins").FindOne(ctx, bson.M{"_id": adminID}, projection).Decode(&admin); err != nil {
			log.Println("[AUTH] [ERROR] admin profile lookup failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"admin": admin})
	}
}

// PartnerProfile mirrors AdminProfile for the seller side.
func PartnerProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		partnerID, ok := c.Get("partnerId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var partner models.ClothPartner
		projection := options.FindOne().SetProjection(bson.M{"password": 0})
		if err := db.Collection("clothpartners").FindOne(ctx, bson.M{"_id": partnerID}, projection).Decode(&partner); err != nil {
			log.Println("[AUTH] [ERROR] partner profile lookup failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"partner": partner})
	}
}
