package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService) *Handler {
	return &Handler{searchService: searchService}
}

// CategorizeRequest is the body of POST /api/v1/categorize
type CategorizeRequest struct {
	Query   string             `json:"query" binding:"required"`
	Records []domain.RawRecord `json:"records"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": "1.0.0",
	})
}

// Search compares listings for ?q= across every configured platform
func (h *Handler) Search(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Categorize runs records supplied by the caller (e.g. scraped by the
// extension) through the categorizer
func (h *Handler) Categorize(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: query is required"})
		return
	}

	response, err := h.searchService.CategorizeRecords(req.Query, req.Records)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Platforms lists the platforms searched, in query order
func (h *Handler) Platforms(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"platforms": h.searchService.Platforms()})
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search service not configured"})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
	case errors.Is(err, domain.ErrNoSources):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no platforms configured"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "search timed out"})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send
		c.Status(499)
	default:
		zap.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
