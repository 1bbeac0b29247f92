package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nutriboard/backend/internal/domain"
	"github.com/nutriboard/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	filters         *usecase.FilterService
	recommendations *usecase.RecommendationService
	comparisons     *usecase.ComparisonService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	filters *usecase.FilterService,
	recommendations *usecase.RecommendationService,
	comparisons *usecase.ComparisonService,
) *Handler {
	return &Handler{
		filters:         filters,
		recommendations: recommendations,
		comparisons:     comparisons,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriboard-backend",
		"version": "1.0.0",
	})
}

// FilterTable resolves the table/scatter view for the current selection.
// Query params: category, brand, rows (a number or "All"; default 10).
func (h *Handler) FilterTable(c *gin.Context) {
	rowLimit, err := parseRowLimit(c.DefaultQuery("rows", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows must be a non-negative number or \"All\""})
		return
	}

	view, err := h.filters.Resolve(domain.FilterSelection{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		RowLimit: rowLimit,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CompareOptions resolves the dependent dropdown option sets of the
// comparison view.
func (h *Handler) CompareOptions(c *gin.Context) {
	brands, products1, products2 := h.filters.CompareOptions(domain.CompareSelection{
		Category: c.Query("category"),
		Brand1:   c.Query("brand1"),
		Brand2:   c.Query("brand2"),
	})
	c.JSON(http.StatusOK, gin.H{
		"brandOptions":    brands,
		"product1Options": products1,
		"product2Options": products2,
	})
}

// ProductScatter returns the sugar-vs-fat scatter points for the current
// category selection.
func (h *Handler) ProductScatter(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"points": h.filters.Scatter(c.Query("category")),
	})
}

// ProductDetail returns one product's record, reported profile fields and
// health score.
func (h *Handler) ProductDetail(c *gin.Context) {
	detail, err := h.filters.Detail(c.Query("name"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// QueryRequest is the free-text recommendation request body.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// ResolveQuery runs the query resolution pipeline.
func (h *Handler) ResolveQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	rec, err := h.recommendations.Resolve(c.Request.Context(), req.Query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCategoryRecognized), errors.Is(err, domain.ErrNoCandidates):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "recommendation service unavailable"})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CompareRequest is the two-product comparison request body.
type CompareRequest struct {
	Product1 string `json:"product1" binding:"required"`
	Product2 string `json:"product2" binding:"required"`
}

// CompareProducts runs the comparison engine.
func (h *Handler) CompareProducts(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product1 and product2 are required"})
		return
	}

	verdict, err := h.comparisons.Compare(c.Request.Context(), req.Product1, req.Product2)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// parseRowLimit maps "All" (case-insensitive) to 0 and otherwise requires a
// non-negative integer.
func parseRowLimit(raw string) (int, error) {
	if strings.EqualFold(raw, "All") {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidRequest
	}
	return n, nil
}
