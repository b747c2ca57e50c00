package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/shared/telemetry"
)

const (
	documentIDKey  = "documentId"
	sectionNameKey = "sectionName"
)

// SetDocumentID records the document handled by this request so the
// completion log can carry it.
func SetDocumentID(c *gin.Context, id string) {
	c.Set(documentIDKey, id)
}

// SetSectionName records the resume section handled by this request.
func SetSectionName(c *gin.Context, name string) {
	c.Set(sectionNameKey, name)
}

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get(userIDKey)
		documentID, _ := c.Get(documentIDKey)
		section, _ := c.Get(sectionNameKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"document_id": documentID,
			"section":     section,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
