package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/session"
	"atscheck-backend/internal/shared/server/middleware"
	"atscheck-backend/internal/shared/server/respond"
)

// Handler serves the improved resume as a downloadable text file.
type Handler struct {
	sessions *session.Service
}

// NewHandler creates the export handler.
func NewHandler(sessions *session.Service) *Handler {
	return &Handler{sessions: sessions}
}

// Register mounts the export route on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/export", h.download)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sess, ok := h.sessions.Current(userID)
	if !ok {
		respond.Error(c, http.StatusConflict, "no_document", "Upload a resume before exporting", nil)
		return
	}

	content, err := Build(sess, time.Now())
	if err != nil {
		respond.Error(c, http.StatusConflict, "no_document", "Upload a resume before exporting", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "improved_"+sess.FileName+".txt"))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
