package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func adminRequest(t *testing.T, method, path, body string, params gin.Params) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("adminId", primitive.NewObjectID())
	return w, c
}

func TestAdminCreateOrderRequiresItems(t *testing.T) {
	w, c := adminRequest(t, http.MethodPost, "/api/admin/orders",
		`{"customerName":"Walk-in Customer"}`, nil)
	AdminCreateOrder(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAdminCreateOrderRejectsUnknownStatus(t *testing.T) {
	body := `{"customerName":"Walk-in Customer","status":"Shipped","items":[{"product":"` +
		primitive.NewObjectID().Hex() + `","quantity":1,"price":10}]}`
	w, c := adminRequest(t, http.MethodPost, "/api/admin/orders", body, nil)
	AdminCreateOrder(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "invalid order status") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestUpdateUserStatusRejectsMalformedID(t *testing.T) {
	w, c := adminRequest(t, http.MethodPut, "/api/admin/users/xyz/status",
		`{"isActive":false}`, gin.Params{{Key: "userId", Value: "xyz"}})
	UpdateUserStatus(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateUserStatusRequiresFlag(t *testing.T) {
	w, c := adminRequest(t, http.MethodPut, "/api/admin/users/x/status",
		`{}`, gin.Params{{Key: "userId", Value: primitive.NewObjectID().Hex()}})
	UpdateUserStatus(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "isActive is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
