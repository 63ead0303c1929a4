package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/storage"
	"backend/internal/validation"
)

// CreateCloth validates the multipart form, pushes the image to the media
// host and only then persists the catalog entry. A failed upload aborts with
// nothing written; a failed insert after a successful upload orphans the
// uploaded file on the host (known limitation, there is no compensating
// delete).
func CreateCloth(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cloth"
		defer handlePanic(c, route)

		fields := fieldsFromForm(c)
		failures := validation.ClothChain().Run(fields)

		file, err := c.FormFile("file")
		if err != nil {
			file = nil
		}
		failures = append(failures, validation.CheckUpload(file, "Cloth image")...)

		if len(failures) > 0 {
			respondValidationFailures(c, failures)
			return
		}

		src, err := file.Open()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read uploaded file")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read uploaded file")
			return
		}

		imageURL, err := uploader.Upload(c.Request.Context(), data, uuid.NewString())
		if err != nil {
			log.Println("[CLOTH] [ERROR] image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to create cloth item",
			})
			return
		}

		price, _ := strconv.ParseFloat(strings.TrimSpace(fields["price"]), 64)
		cloth := models.Cloth{
			Title:       strings.TrimSpace(fields["name"]),
			Description: strings.TrimSpace(fields["description"]),
			Price:       price,
			Size:        strings.TrimSpace(fields["size"]),
			Color:       strings.TrimSpace(fields["color"]),
			Category:    strings.TrimSpace(fields["category"]),
			Images:      []string{imageURL},
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("cloths").InsertOne(ctx, cloth)
		if err != nil {
			log.Println("[CLOTH] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to create cloth item",
			})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			cloth.ID = id
		}

		log.Println("[CLOTH] [INFO] cloth created:", cloth.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Cloth Created Successfully",
			"cloth":   cloth,
		})
	}
}

func GetAllCloths(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid pagination"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit).
			SetSkip((page - 1) * limit)

		cursor, err := db.Collection("cloths").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("[CLOTH] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cloths"})
			return
		}
		defer cursor.Close(ctx)

		cloths := make([]models.Cloth, 0)
		if err := cursor.All(ctx, &cloths); err != nil {
			log.Println("[CLOTH] [ERROR] decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cloths"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cloths fetched successfully",
			"cloths":  cloths,
		})
	}
}

// SearchCloths matches a case-insensitive substring against cloth titles.
func SearchCloths(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "q is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{"title": primitive.Regex{Pattern: regexEscape(query), Options: "i"}}

		cursor, err := db.Collection("cloths").Find(ctx, filter)
		if err != nil {
			log.Println("[CLOTH] [ERROR] search failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cloths"})
			return
		}
		defer cursor.Close(ctx)

		cloths := make([]models.Cloth, 0)
		if err := cursor.All(ctx, &cloths); err != nil {
			log.Println("[CLOTH] [ERROR] search decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cloths"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cloths fetched successfully",
			"cloths":  cloths,
		})
	}
}

func GetClothByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		clothID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cloth models.Cloth
		if err := db.Collection("cloths").FindOne(ctx, bson.M{"_id": clothID}).Decode(&cloth); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cloth not found"})
				return
			}
			log.Println("[CLOTH] [ERROR] get failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cloth"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cloth fetched successfully",
			"product": cloth,
		})
	}
}

func DeleteCloth(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		clothID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("cloths").DeleteOne(ctx, bson.M{"_id": clothID})
		if err != nil {
			log.Println("[CLOTH] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete cloth"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cloth not found"})
			return
		}

		log.Println("[CLOTH] [INFO] cloth deleted:", clothID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cloth deleted successfully",
		})
	}
}

// GetCategories lists the distinct category values present in the catalog.
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		values, err := db.Collection("cloths").Distinct(ctx, "category", bson.M{})
		if err != nil {
			log.Println("[CLOTH] [ERROR] categories failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories"})
			return
		}

		categories := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok && s != "" {
				categories = append(categories, s)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Categories fetched successfully",
			"categories": categories,
		})
	}
}
