package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modulargunworks/catalog/internal/domain"
)

// ServiceName is reported by the health endpoint
const ServiceName = "catalog-ingest"

// IngestRunner triggers ingestion runs and reports on the last one
type IngestRunner interface {
	TryRun(ctx context.Context) (*domain.RunReport, error)
	LastReport() (*domain.RunReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ingest  IngestRunner
	catalog domain.CatalogReader
	version string
}

// NewHandler creates a new HTTP handler. A nil runner or reader disables
// the endpoints that need it.
func NewHandler(ingest IngestRunner, catalog domain.CatalogReader, version string) *Handler {
	return &Handler{
		ingest:  ingest,
		catalog: catalog,
		version: version,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": h.version,
	})
}

// GetCatalog returns the whole catalog document
func (h *Handler) GetCatalog(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog reader")
		return
	}

	catalog, err := h.catalog.Read(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// GetBrand returns the products of a single brand
func (h *Handler) GetBrand(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog reader")
		return
	}

	catalog, err := h.catalog.Read(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	brand := c.Param("brand")
	products, ok := catalog[brand]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": domain.ErrBrandNotFound.Error(),
			"brand": brand,
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// TriggerIngest runs the pipeline once and returns its report
func (h *Handler) TriggerIngest(c *gin.Context) {
	if h.ingest == nil {
		notConfigured(c, "ingest service")
		return
	}

	report, err := h.ingest.TryRun(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// LatestReport returns the report of the most recent run
func (h *Handler) LatestReport(c *gin.Context) {
	if h.ingest == nil {
		notConfigured(c, "ingest service")
		return
	}

	report, err := h.ingest.LastReport()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": what + " not configured",
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var perr *domain.ParseError
	switch {
	case errors.As(err, &perr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCatalogNotFound),
		errors.Is(err, domain.ErrBrandNotFound),
		errors.Is(err, domain.ErrNoRunYet):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
