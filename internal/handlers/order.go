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
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type orderItemRequest struct {
	Product  string  `json:"product" binding:"required"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity" binding:"required"`
	Price    float64 `json:"price"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

type shippingAddressRequest struct {
	FullName string `json:"fullName"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items" binding:"required"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Notes           string                 `json:"notes"`
	Subtotal        float64                `json:"subtotal"`
	Total           float64                `json:"total"`
}

// CreateOrder snapshots the purchased items and shipping address onto the
// order document so later catalog or address edits cannot rewrite it.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/order"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if len(req.Items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Order must contain at least one item")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}

		items, total, err := buildOrderItems(req.Items)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if req.Total > 0 {
			total = req.Total
		} else if req.Subtotal > 0 {
			total = req.Subtotal
		}

		customerName := strings.TrimSpace(req.ShippingAddress.FullName)
		if customerName == "" {
			customerName = user.FullName
		}
		phone := strings.TrimSpace(req.ShippingAddress.Phone)
		if phone == "" {
			phone = user.Phone
		}

		code, err := newOrderCode()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to create order")
			return
		}

		now := time.Now()
		order := models.Order{
			Code:         code,
			User:         userID,
			CustomerName: customerName,
			Items:        items,
			TotalAmount:  total,
			Status:       models.OrderStatusNew,
			ShippingAddress: models.ShippingAddress{
				Street:  strings.TrimSpace(req.ShippingAddress.Address),
				City:    strings.TrimSpace(req.ShippingAddress.City),
				State:   strings.TrimSpace(req.ShippingAddress.State),
				ZipCode: strings.TrimSpace(req.ShippingAddress.ZipCode),
				Country: strings.TrimSpace(req.ShippingAddress.Country),
				Phone:   phone,
			},
			PaymentMethod: normalizePaymentMethod(req.PaymentMethod),
			PaymentStatus: models.PaymentStatusPending,
			OrderDate:     now,
			Notes:         strings.TrimSpace(req.Notes),
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to create order")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order":   order,
		})
	}
}

func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"user": userID}, opts)
		if err != nil {
			log.Println("[ORDER] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ORDER] [ERROR] decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrderByID is owner-scoped: a valid session looking at someone else's
// order is forbidden, not merely not-found.
func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] get failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}

		if order.User != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to view this order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// CancelOrder lets the owner cancel from any non-terminal state.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] cancel lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
			return
		}

		if order.User != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to cancel this order"})
			return
		}
		if !canCancelOrder(order.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot cancel this order"})
			return
		}

		order.Status = models.OrderStatusCancelled
		order.UpdatedAt = time.Now()

		_, err = db.Collection("orders").UpdateByID(ctx, orderID, bson.M{
			"$set": bson.M{"status": order.Status, "updatedAt": order.UpdatedAt},
		})
		if err != nil {
			log.Println("[ORDER] [ERROR] cancel update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
			return
		}

		log.Println("[ORDER] [INFO] order cancelled:", orderID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message": "Order cancelled successfully",
			"order":   order,
		})
	}
}

// TrackOrder exposes only the delivery progress fields.
func TrackOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		projection := options.FindOne().SetProjection(bson.M{
			"status":               1,
			"orderDate":            1,
			"expectedDeliveryDate": 1,
		})
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}, projection).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] track failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to track order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":               order.Status,
			"orderDate":            order.OrderDate,
			"expectedDeliveryDate": order.ExpectedDeliveryDate,
		})
	}
}
