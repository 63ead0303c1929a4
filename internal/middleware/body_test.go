package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func runTextPlain(t *testing.T, contentType, body string) *http.Request {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)

	TextPlainJSON()(c)
	return c.Request
}

func TestTextPlainJSONRewritesValidJSON(t *testing.T) {
	req := runTextPlain(t, "text/plain", `{"email":"a@gmail.com"}`)
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"email":"a@gmail.com"}` {
		t.Errorf("body was not re-buffered: %q", body)
	}
}

func TestTextPlainJSONLeavesNonJSONAlone(t *testing.T) {
	req := runTextPlain(t, "text/plain", "hello world")
	if got := req.Header.Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != "hello world" {
		t.Errorf("body was not re-buffered: %q", body)
	}
}

func TestTextPlainJSONIgnoresOtherContentTypes(t *testing.T) {
	req := runTextPlain(t, "application/json", `{"a":1}`)
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}
