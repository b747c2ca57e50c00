package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Identity resolves the caller from the X-Guest-Id header. There is no login
// surface; every caller is an anonymous session identified by a client-chosen
// opaque ID. Requests without an identity are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
