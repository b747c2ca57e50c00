package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the payload as a JSON body with the given status. Success
// payloads go out as-is; failures go through Error so every error body
// shares the same envelope.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK is shorthand for a 200 JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
