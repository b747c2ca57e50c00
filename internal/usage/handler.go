package usage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/shared/server/middleware"
	"atscheck-backend/internal/shared/server/respond"
)

// Handler exposes the quota endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates the usage handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts usage routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/usage", h.status)
}

func (h *Handler) status(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	status, err := h.service.StatusFor(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load usage", nil)
		return
	}
	respond.OK(c, status)
}
