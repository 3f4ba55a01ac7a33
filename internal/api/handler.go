package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrconsole/internal/cache"
	"hrconsole/internal/logging"
	"hrconsole/internal/sheets"
	"hrconsole/internal/views"
)

// Cache is what the handlers need from the sheet cache.
type Cache interface {
	Status() cache.Status
	Refresh(ctx context.Context, force bool) error
}

// Handler serves the HR console API.
type Handler struct {
	cache Cache
	views *views.Service
	log   *logging.Logger
}

// NewHandler creates a Handler.
func NewHandler(c Cache, v *views.Service, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{cache: c, views: v, log: log}
}

// RegisterRoutes registers the API routes on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// cache
	router.GET("/status", h.GetStatus)
	router.POST("/refresh", h.Refresh)

	// sheets
	router.GET("/sheets", h.ListSheets)
	router.GET("/sheets/:name/raw", h.GetRaw)
	router.GET("/sheets/:name/records", h.ListRecords)
	router.GET("/sheets/:name/steps/:step", h.GetStep)
	router.GET("/sheets/:name/export", h.Export)

	// pages
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/joinings", h.ListJoinings)
}

// writeError maps lookup errors to 404 and everything else to 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sheets.ErrUnknownSheet), errors.Is(err, sheets.ErrUnknownStep):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
