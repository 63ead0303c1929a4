package handlers

import (
	"crypto/rand"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// orderTransitions is the full lifecycle: a new order is triaged to
// Accepted, Rejected or Cancelled; an accepted order is Prepared or
// Cancelled; a prepared order Completes. Completed and Cancelled are
// terminal.
var orderTransitions = map[string][]string{
	models.OrderStatusNew:      {models.OrderStatusAccepted, models.OrderStatusRejected, models.OrderStatusCancelled},
	models.OrderStatusAccepted: {models.OrderStatusPrepared, models.OrderStatusCancelled},
	models.OrderStatusPrepared: {models.OrderStatusCompleted},
}

func canTransitionOrder(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// canCancelOrder refuses cancellation only once the order is terminal.
func canCancelOrder(status string) bool {
	return status != models.OrderStatusCompleted && status != models.OrderStatusCancelled
}

// normalizePaymentMethod folds client aliases onto the stored enum; anything
// unrecognised is treated as an online payment.
func normalizePaymentMethod(method string) string {
	switch method {
	case "cod", "COD":
		return models.PaymentMethodCOD
	case "card", "Card":
		return models.PaymentMethodCard
	default:
		return models.PaymentMethodOnline
	}
}

func isOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusNew, models.OrderStatusAccepted, models.OrderStatusRejected,
		models.OrderStatusPrepared, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

// buildOrderItems turns the request items into stored snapshots and sums the
// line totals. Shared by the customer checkout and the admin order path.
func buildOrderItems(reqs []orderItemRequest) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	total := 0.0
	for _, item := range reqs {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.Product))
		if err != nil {
			return nil, 0, errors.New("invalid product id")
		}
		if item.Quantity <= 0 {
			return nil, 0, errors.New("quantity must be greater than zero")
		}
		items = append(items, models.OrderItem{
			Product:  productID,
			Title:    strings.TrimSpace(item.Title),
			Quantity: item.Quantity,
			Price:    item.Price,
			Size:     strings.TrimSpace(item.Size),
			Color:    strings.TrimSpace(item.Color),
		})
		total += item.Price * float64(item.Quantity)
	}
	return items, total, nil
}

const orderCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newOrderCode builds the short human-readable order reference.
func newOrderCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return string(buf), nil
}
