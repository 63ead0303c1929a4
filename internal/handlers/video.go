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

// GetAllVideos lists promotional videos newest-first, optionally filtered by
// category.
func GetAllVideos(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := int64(100)
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid limit"})
				return
			}
			limit = parsed
		}

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)

		cursor, err := db.Collection("productvideos").Find(ctx, filter, opts)
		if err != nil {
			log.Println("[VIDEO] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch videos"})
			return
		}
		defer cursor.Close(ctx)

		videos := make([]models.ProductVideo, 0)
		if err := cursor.All(ctx, &videos); err != nil {
			log.Println("[VIDEO] [ERROR] decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch videos"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(videos),
			"videos":  videos,
		})
	}
}

func GetVideoByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var video models.ProductVideo
		if err := db.Collection("productvideos").FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Video not found"})
				return
			}
			log.Println("[VIDEO] [ERROR] get failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch video"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
	}
}

// CreateVideo uploads the clip to the media host and persists the record
// only after a successful upload.
func CreateVideo(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/videos"
		defer handlePanic(c, route)

		fields := fieldsFromForm(c)
		failures := validation.VideoChain().Run(fields)

		file, err := c.FormFile("file")
		if err != nil {
			file = nil
		}
		failures = append(failures, validation.CheckUpload(file, "Video")...)

		if len(failures) > 0 {
			respondValidationFailures(c, failures)
			return
		}

		var productID *primitive.ObjectID
		if raw := strings.TrimSpace(fields["productId"]); raw != "" {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				respondValidationFailures(c, []string{"Invalid Product ID format"})
				return
			}
			productID = &id
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

		videoURL, err := uploader.Upload(c.Request.Context(), data, "video_"+uuid.NewString())
		if err != nil {
			log.Println("[VIDEO] [ERROR] upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create video"})
			return
		}

		price, _ := strconv.ParseFloat(strings.TrimSpace(fields["price"]), 64)
		isActive := true
		if raw := strings.TrimSpace(fields["isActive"]); raw != "" {
			isActive, _ = strconv.ParseBool(raw)
		}
		category := strings.TrimSpace(fields["category"])
		if category == "" {
			category = "featured"
		}

		now := time.Now()
		video := models.ProductVideo{
			Title:       strings.TrimSpace(fields["title"]),
			Video:       videoURL,
			ProductID:   productID,
			ProductName: strings.TrimSpace(fields["productName"]),
			Price:       price,
			Category:    category,
			IsActive:    isActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("productvideos").InsertOne(ctx, video)
		if err != nil {
			log.Println("[VIDEO] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create video"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			video.ID = id
		}

		log.Println("[VIDEO] [INFO] video created:", video.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Video created successfully",
			"video":   video,
		})
	}
}

// UpdateVideo mutates only the submitted fields; a new file replaces the
// stored URL after a fresh upload.
func UpdateVideo(db *mongo.Database, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/videos/:id"
		defer handlePanic(c, route)

		videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		fields := fieldsFromForm(c)
		update := bson.M{"updatedAt": time.Now()}

		if title, ok := fields["title"]; ok {
			title = strings.TrimSpace(title)
			if len(title) < 2 || len(title) > 100 {
				respondValidationFailures(c, []string{"Video title must be between 2 and 100 characters"})
				return
			}
			update["title"] = title
		}
		if raw, ok := fields["price"]; ok {
			price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || price <= 0 {
				respondValidationFailures(c, []string{"Price must be greater than 0"})
				return
			}
			update["price"] = price
		}
		if raw, ok := fields["isActive"]; ok {
			isActive, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				respondValidationFailures(c, []string{"isActive must be a boolean"})
				return
			}
			update["isActive"] = isActive
		}
		if category, ok := fields["category"]; ok {
			update["category"] = strings.TrimSpace(category)
		}
		if productName, ok := fields["productName"]; ok {
			update["productName"] = strings.TrimSpace(productName)
		}
		if raw, ok := fields["productId"]; ok {
			raw = strings.TrimSpace(raw)
			if raw != "" {
				id, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					respondValidationFailures(c, []string{"Invalid Product ID format"})
					return
				}
				update["productId"] = id
			}
		}

		if file, err := c.FormFile("file"); err == nil && file != nil {
			if failures := validation.CheckUpload(file, "Video"); len(failures) > 0 {
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
			videoURL, err := uploader.Upload(c.Request.Context(), data, "video_"+uuid.NewString())
			if err != nil {
				log.Println("[VIDEO] [ERROR] upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update video"})
				return
			}
			update["video"] = videoURL
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var video models.ProductVideo
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = db.Collection("productvideos").
			FindOneAndUpdate(ctx, bson.M{"_id": videoID}, bson.M{"$set": update}, opts).
			Decode(&video)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Video not found"})
				return
			}
			log.Println("[VIDEO] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update video"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Video updated successfully",
			"video":   video,
		})
	}
}

func DeleteVideo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("productvideos").DeleteOne(ctx, bson.M{"_id": videoID})
		if err != nil {
			log.Println("[VIDEO] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete video"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Video not found"})
			return
		}

		log.Println("[VIDEO] [INFO] video deleted:", videoID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Video deleted successfully",
		})
	}
}
