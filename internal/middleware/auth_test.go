package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/auth"
)

const testSecret = "test-secret"

// gateRequest runs the Principal gate against a request that should be
// rejected before any store lookup happens, so no database is needed.
func gateRequest(t *testing.T, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie})
	}

	Principal(nil, testSecret, Lookup{Collection: "users", ContextKey: "userId"})(c)
	return w
}

func TestPrincipalRejectsMissingCookie(t *testing.T) {
	w := gateRequest(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "No token provided") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestPrincipalRejectsGarbageToken(t *testing.T) {
	w := gateRequest(t, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Invalid token") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestPrincipalRejectsExpiredToken(t *testing.T) {
	token, err := auth.IssueToken(primitive.NewObjectID(), testSecret, -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := gateRequest(t, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Session expired") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestPrincipalRejectsTokenSignedWithOtherSecret(t *testing.T) {
	token, err := auth.IssueToken(primitive.NewObjectID(), "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	w := gateRequest(t, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Invalid token") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
