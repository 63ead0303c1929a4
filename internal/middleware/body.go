package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// TextPlainJSON reinterprets a text/plain body as JSON when it parses.
// Misconfigured clients (Postman with the wrong body type) keep working;
// bodies that are not JSON pass through untouched.
func TextPlainJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain") {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		if json.Valid(bytes.TrimSpace(body)) {
			c.Request.Header.Set("Content-Type", "application/json")
		}
		c.Next()
	}
}
