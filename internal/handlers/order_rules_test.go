package handlers

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusNew, models.OrderStatusAccepted, true},
		{models.OrderStatusNew, models.OrderStatusRejected, true},
		{models.OrderStatusNew, models.OrderStatusCancelled, true},
		{models.OrderStatusNew, models.OrderStatusPrepared, false},
		{models.OrderStatusNew, models.OrderStatusCompleted, false},
		{models.OrderStatusAccepted, models.OrderStatusPrepared, true},
		{models.OrderStatusAccepted, models.OrderStatusCancelled, true},
		{models.OrderStatusAccepted, models.OrderStatusRejected, false},
		{models.OrderStatusAccepted, models.OrderStatusCompleted, false},
		{models.OrderStatusPrepared, models.OrderStatusCompleted, true},
		{models.OrderStatusPrepared, models.OrderStatusCancelled, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusNew, false},
		{models.OrderStatusRejected, models.OrderStatusAccepted, false},
		{"bogus", models.OrderStatusAccepted, false},
	}

	for _, tc := range cases {
		if got := canTransitionOrder(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransitionOrder(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanCancelOrder(t *testing.T) {
	cancellable := []string{
		models.OrderStatusNew,
		models.OrderStatusAccepted,
		models.OrderStatusRejected,
		models.OrderStatusPrepared,
	}
	for _, status := range cancellable {
		if !canCancelOrder(status) {
			t.Errorf("canCancelOrder(%q) = false, want true", status)
		}
	}

	terminal := []string{models.OrderStatusCompleted, models.OrderStatusCancelled}
	for _, status := range terminal {
		if canCancelOrder(status) {
			t.Errorf("canCancelOrder(%q) = true, want false", status)
		}
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"cod", models.PaymentMethodCOD},
		{"COD", models.PaymentMethodCOD},
		{"card", models.PaymentMethodCard},
		{"Card", models.PaymentMethodCard},
		{"upi", models.PaymentMethodOnline},
		{"", models.PaymentMethodOnline},
	}

	for _, tc := range cases {
		if got := normalizePaymentMethod(tc.in); got != tc.want {
			t.Errorf("normalizePaymentMethod(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsOrderStatus(t *testing.T) {
	valid := []string{
		models.OrderStatusNew, models.OrderStatusAccepted, models.OrderStatusRejected,
		models.OrderStatusPrepared, models.OrderStatusCompleted, models.OrderStatusCancelled,
	}
	for _, status := range valid {
		if !isOrderStatus(status) {
			t.Errorf("isOrderStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "Shipped", "new order"} {
		if isOrderStatus(status) {
			t.Errorf("isOrderStatus(%q) = true, want false", status)
		}
	}
}

func TestBuildOrderItems(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	items, total, err := buildOrderItems([]orderItemRequest{
		{Product: first.Hex(), Title: "Denim Jacket", Quantity: 2, Price: 49.5, Size: "M"},
		{Product: second.Hex(), Title: "Scarf", Quantity: 1, Price: 12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Product != first || items[0].Quantity != 2 || items[0].Size != "M" {
		t.Errorf("first item snapshot wrong: %+v", items[0])
	}
	if total != 2*49.5+12 {
		t.Errorf("total = %v, want %v", total, 2*49.5+12)
	}
}

func TestBuildOrderItemsRejectsBadInput(t *testing.T) {
	if _, _, err := buildOrderItems([]orderItemRequest{{Product: "nope", Quantity: 1}}); err == nil {
		t.Error("expected error for malformed product id")
	}
	if _, _, err := buildOrderItems([]orderItemRequest{
		{Product: primitive.NewObjectID().Hex(), Quantity: 0, Price: 5},
	}); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestNewOrderCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := newOrderCode()
		if err != nil {
			t.Fatalf("newOrderCode() error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("newOrderCode() length = %d, want 6", len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(orderCodeAlphabet, r) {
				t.Fatalf("newOrderCode() produced %q outside alphabet", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("newOrderCode() produced the same code 100 times")
	}
}
