package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atscheck-backend/internal/analysis"
	"atscheck-backend/internal/llm"
	"atscheck-backend/internal/shared/server/middleware"
	"atscheck-backend/internal/shared/server/respond"
	"atscheck-backend/internal/usage"
)

// Handler exposes the analyze and fix endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the session handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts session routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.PUT("/job-description", h.setJobDescription)
	rg.POST("/analyses", h.analyze)
	rg.GET("/analyses/current", h.currentAnalysis)
	rg.POST("/sections/:name/fix", h.fixSection)
}

type jobDescriptionRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) setJobDescription(c *gin.Context) {
	var req jobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	sess := h.service.SetJobDescription(userID, req.JobDescription)
	respond.OK(c, gin.H{"jobDescription": sess.JobDescription})
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	result, err := h.service.Analyze(c.Request.Context(), userID)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) currentAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	result, err := h.service.CurrentAnalysis(userID)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "no_analysis", "No analysis yet. Run an analysis first.", nil)
		return
	}
	respond.OK(c, result)
}

type fixRequest struct {
	Text string `json:"text"`
}

func (h *Handler) fixSection(c *gin.Context) {
	var req fixRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
			return
		}
	}

	middleware.SetSectionName(c, c.Param("name"))
	userID := middleware.UserIDFromContext(c)
	fix, err := h.service.FixSection(c.Request.Context(), userID, c.Param("name"), req.Text)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}
	respond.OK(c, fix)
}

// writeAnalysisError maps pipeline failures onto stable HTTP codes. Raw
// model output is never echoed to the client.
func writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoDocument):
		respond.Error(c, http.StatusConflict, "no_document", "Upload a resume before analyzing", nil)
	case errors.Is(err, ErrNoAnalysis):
		respond.Error(c, http.StatusConflict, "no_analysis", "Run an analysis before fixing sections", nil)
	case errors.Is(err, ErrUnknownSection):
		respond.Error(c, http.StatusNotFound, "unknown_section", "Unknown resume section", nil)
	case errors.Is(err, ErrSectionNotAnalyzed):
		respond.Error(c, http.StatusNotFound, "section_not_analyzed", "Section is not part of the current analysis", nil)
	case errors.Is(err, analysis.ErrEmptyInput):
		respond.Error(c, http.StatusConflict, "empty_input", "The document contains no extractable text", nil)
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached", "Analysis limit reached for this period", nil)
	case errors.Is(err, llm.ErrAuth):
		respond.Error(c, http.StatusBadGateway, "llm_auth", "The analysis service rejected our credentials", nil)
	case errors.Is(err, llm.ErrQuota):
		respond.Error(c, http.StatusServiceUnavailable, "llm_quota", "The analysis service is over capacity. Try again later.", nil)
	case errors.Is(err, llm.ErrNetwork):
		respond.Error(c, http.StatusGatewayTimeout, "llm_network", "The analysis service did not respond. Try again.", nil)
	case errors.Is(err, llm.ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "llm_upstream", "The analysis service failed. Try again.", nil)
	case errors.Is(err, analysis.ErrMalformedResponse):
		respond.Error(c, http.StatusUnprocessableEntity, "analysis_unavailable", "Analysis could not be completed. Try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Internal server error", nil)
	}
}
