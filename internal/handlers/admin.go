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
	"backend/internal/validation"
)

// Dashboard reports live collection counts for the admin panel landing page.
func Dashboard(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userCount, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("[ADMIN] [ERROR] user count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
			return
		}
		clothCount, err := db.Collection("cloths").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("[ADMIN] [ERROR] cloth count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
			return
		}
		orderCount, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("[ADMIN] [ERROR] order count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
			return
		}
		pendingCount, err := db.Collection("orders").CountDocuments(ctx, bson.M{"status": models.OrderStatusNew})
		if err != nil {
			log.Println("[ADMIN] [ERROR] pending count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":         userCount,
			"cloths":        clothCount,
			"orders":        orderCount,
			"pendingOrders": pendingCount,
		})
	}
}

// ListOrders is the admin order browser: filter by customer name substring,
// status and order-date window, newest first, paginated.
func ListOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["customerName"] = primitive.Regex{Pattern: regexEscape(search), Options: "i"}
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		dateRange := bson.M{}
		if from := strings.TrimSpace(c.Query("dateFrom")); from != "" {
			parsed, err := time.Parse("2006-01-02", from)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "dateFrom must be YYYY-MM-DD"})
				return
			}
			dateRange["$gte"] = parsed
		}
		if to := strings.TrimSpace(c.Query("dateTo")); to != "" {
			parsed, err := time.Parse("2006-01-02", to)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "dateTo must be YYYY-MM-DD"})
				return
			}
			dateRange["$lt"] = parsed.AddDate(0, 0, 1)
		}
		if len(dateRange) > 0 {
			filter["orderDate"] = dateRange
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders := db.Collection("orders")

		total, err := orders.CountDocuments(ctx, filter)
		if err != nil {
			log.Println("[ADMIN] [ERROR] order count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "orderDate", Value: -1}}).
			SetLimit(limit).
			SetSkip((page - 1) * limit)

		cursor, err := orders.Find(ctx, filter, opts)
		if err != nil {
			log.Println("[ADMIN] [ERROR] order list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		results := make([]models.Order, 0)
		if err := cursor.All(ctx, &results); err != nil {
			log.Println("[ADMIN] [ERROR] order decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		totalPages := total / limit
		if total%limit != 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":     results,
			"total":      total,
			"page":       page,
			"totalPages": totalPages,
		})
	}
}

type adminCreateOrderRequest struct {
	Email           string                  `json:"email"`
	CustomerName    string                  `json:"customerName" binding:"required"`
	Items           []orderItemRequest      `json:"items" binding:"required"`
	TotalAmount     float64                 `json:"totalAmount"`
	Status          string                  `json:"status"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	Notes           string                  `json:"notes"`
}

// AdminCreateOrder records an order taken over the phone or counter. The
// order is attributed to the account matching the given email when one
// exists, otherwise to the admin placing it.
func AdminCreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/orders"
		defer handlePanic(c, route)

		adminIDValue, ok := c.Get("adminId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Access - Invalid token"})
			return
		}
		adminID := adminIDValue.(primitive.ObjectID)

		var req adminCreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if len(req.Items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "Order must contain at least one item")
			return
		}

		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = models.OrderStatusNew
		}
		if !isOrderStatus(status) {
			respondWithError(c, http.StatusBadRequest, route, "invalid order status")
			return
		}

		items, total, err := buildOrderItems(req.Items)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if req.TotalAmount > 0 {
			total = req.TotalAmount
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		owner := adminID
		if email := validation.CanonicalEmail(req.Email); strings.TrimSpace(req.Email) != "" {
			var user models.User
			err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
			if err == nil {
				owner = user.ID
			} else if err != mongo.ErrNoDocuments {
				log.Println("[ADMIN] [ERROR] order owner lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
				return
			}
		}

		paymentMethod := models.PaymentMethodCOD
		if method := strings.TrimSpace(req.PaymentMethod); method != "" {
			paymentMethod = normalizePaymentMethod(method)
		}

		var shipping models.ShippingAddress
		if req.ShippingAddress != nil {
			shipping = models.ShippingAddress{
				Street:  strings.TrimSpace(req.ShippingAddress.Address),
				City:    strings.TrimSpace(req.ShippingAddress.City),
				State:   strings.TrimSpace(req.ShippingAddress.State),
				ZipCode: strings.TrimSpace(req.ShippingAddress.ZipCode),
				Country: strings.TrimSpace(req.ShippingAddress.Country),
				Phone:   strings.TrimSpace(req.ShippingAddress.Phone),
			}
		}

		code, err := newOrderCode()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Failed to create order")
			return
		}

		now := time.Now()
		order := models.Order{
			Code:            code,
			User:            owner,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			Items:           items,
			TotalAmount:     total,
			Status:          status,
			ShippingAddress: shipping,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			OrderDate:       now,
			Notes:           strings.TrimSpace(req.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ADMIN] [ERROR] order insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ADMIN] [INFO] order created by admin for:", order.User.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order":   order,
		})
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus advances an order along the lifecycle; any move the
// transition table does not allow is rejected.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/orders/:orderId/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "status is required")
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
			log.Println("[ADMIN] [ERROR] order lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
			return
		}

		if !canTransitionOrder(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Cannot change status from " + order.Status + " to " + req.Status,
			})
			return
		}

		order.Status = req.Status
		order.UpdatedAt = time.Now()

		update := bson.M{"status": order.Status, "updatedAt": order.UpdatedAt}
		if req.Status == models.OrderStatusAccepted && order.ExpectedDeliveryDate == nil {
			expected := order.UpdatedAt.AddDate(0, 0, 5)
			order.ExpectedDeliveryDate = &expected
			update["expectedDeliveryDate"] = expected
		}

		if _, err := db.Collection("orders").UpdateByID(ctx, orderID, bson.M{"$set": update}); err != nil {
			log.Println("[ADMIN] [ERROR] status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
			return
		}

		log.Println("[ADMIN] [INFO] order", orderID.Hex(), "moved to", req.Status)
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated",
			"order":   order,
		})
	}
}

// ListUsers searches registered users by name or email substring.
func ListUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := primitive.Regex{Pattern: regexEscape(search), Options: "i"}
			filter["$or"] = bson.A{
				bson.M{"fullName": pattern},
				bson.M{"email": pattern},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users := db.Collection("users")

		total, err := users.CountDocuments(ctx, filter)
		if err != nil {
			log.Println("[ADMIN] [ERROR] user count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit).
			SetSkip((page - 1) * limit).
			SetProjection(bson.M{"password": 0})

		cursor, err := users.Find(ctx, filter, opts)
		if err != nil {
			log.Println("[ADMIN] [ERROR] user list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}
		defer cursor.Close(ctx)

		results := make([]models.User, 0)
		if err := cursor.All(ctx, &results); err != nil {
			log.Println("[ADMIN] [ERROR] user decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}

		totalPages := total / limit
		if total%limit != 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"users":      results,
			"total":      total,
			"page":       page,
			"totalPages": totalPages,
		})
	}
}

func GetUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		opts := options.FindOne().SetProjection(bson.M{"password": 0})
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			log.Println("[ADMIN] [ERROR] user get failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

type adminUpdateUserRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// UpdateUser lets an admin edit the mutable profile fields. Email and
// password are deliberately not editable here.
func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/users/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		var req adminUpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if name := strings.TrimSpace(req.FullName); name != "" {
			if len(name) < 4 || len(name) > 50 {
				respondValidationFailures(c, []string{"Full name must be between 4 and 50 characters"})
				return
			}
			update["fullName"] = name
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			update["phone"] = phone
		}
		if role := strings.TrimSpace(req.Role); role != "" {
			update["role"] = role
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0})
		err = db.Collection("users").
			FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": update}, opts).
			Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			log.Println("[ADMIN] [ERROR] user update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "User updated successfully",
			"user":    user,
		})
	}
}

type updateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateUserStatus flips the account on or off without touching anything
// else on the document.
func UpdateUserStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/users/:userId/status"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		var req updateUserStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
			respondWithError(c, http.StatusBadRequest, route, "isActive is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0})
		err = db.Collection("users").
			FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
				"isActive":  *req.IsActive,
				"updatedAt": time.Now(),
			}}, opts).
			Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			log.Println("[ADMIN] [ERROR] user status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user status"})
			return
		}

		log.Println("[ADMIN] [INFO] user", userID.Hex(), "active:", *req.IsActive)
		c.JSON(http.StatusOK, gin.H{
			"message": "User status updated",
			"user":    user,
		})
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			log.Println("[ADMIN] [ERROR] user delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		log.Println("[ADMIN] [INFO] user deleted:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
