package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// wishlistAddRequest builds an authenticated add request with the given JSON
// body. The rejection paths under test fire before any store access, so a
// nil database is safe.
func wishlistAddRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/wishlist", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", primitive.NewObjectID())

	AddToWishlist(nil)(c)
	return w
}

// The add endpoint takes the product from the request body, not the URL, so
// an empty body must be rejected rather than silently accepted.
func TestAddToWishlistRequiresBodyProductID(t *testing.T) {
	w := wishlistAddRequest(t, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "productId is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestAddToWishlistRejectsMalformedProductID(t *testing.T) {
	w := wishlistAddRequest(t, `{"productId":"not-an-object-id"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "invalid productId") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
