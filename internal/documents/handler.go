package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/extract"
	"atscheck-backend/internal/shared/server/middleware"
	"atscheck-backend/internal/shared/server/respond"
)

// Handler exposes the document endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the documents handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts document routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents/current", h.current)
	rg.GET("/documents/current/file", h.downloadFile)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Multipart field 'file' is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10 MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Could not read uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Could not read uploaded file", nil)
		return
	}
	if int64(len(data)) > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10 MB limit", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	doc, err := h.service.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	middleware.SetDocumentID(c, doc.ID)
	respond.JSON(c, http.StatusCreated, doc)
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	doc, err := h.service.Current(userID)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "no_document", "No document uploaded yet", nil)
		return
	}
	middleware.SetDocumentID(c, doc.ID)
	respond.OK(c, doc)
}

func (h *Handler) downloadFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	rc, doc, err := h.service.OpenFile(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "no_document", "No document uploaded yet", nil)
		return
	}
	defer rc.Close()

	middleware.SetDocumentID(c, doc.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, rc, nil)
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10 MB limit", nil)
	case errors.Is(err, ErrInvalidFileName):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid file name", nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "Only PDF and DOCX files are supported", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Could not read the document. It may be corrupt or empty.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
	}
}
