package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// respondValidationFailures sends the aggregated rule failures in the
// uniform rejection shape.
func respondValidationFailures(c *gin.Context, failures []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  failures,
	})
}

// fieldsFromJSONBody flattens a JSON object body into the string map the
// validation chains run against, re-buffering the body so a later bind still
// works. Scalars are stringified; nested values are ignored (no chain rule
// targets them).
func fieldsFromJSONBody(c *gin.Context) (map[string]string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return flattenFields(payload), nil
}

// fieldsFromForm collects the scalar multipart/urlencoded form values.
func fieldsFromForm(c *gin.Context) map[string]string {
	fields := make(map[string]string)
	if c.Request.MultipartForm == nil {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return fields
		}
	}
	for key, values := range c.Request.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}

func flattenFields(payload map[string]interface{}) map[string]string {
	fields := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case bool:
			fields[key] = strconv.FormatBool(v)
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
			// Explicit null counts as absent.
		}
	}
	return fields
}
