package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrconsole/internal/cache"
)

// GetStatus returns the cache status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Status())
}

// Refresh fetches all sheets and returns the resulting status. Without
// force=true a warm cache is returned as is.
// POST /api/refresh?force=true
func (h *Handler) Refresh(c *gin.Context) {
	force, err := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid force value: " + c.Query("force")})
		return
	}

	err = h.cache.Refresh(c.Request.Context(), force)
	st := h.cache.Status()
	switch {
	case err == nil:
		c.JSON(http.StatusOK, st)
	case cache.IsRefreshError(err):
		h.log.Warn("[API] refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "status": st})
	case errors.Is(err, cache.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "status": st})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "status": st})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "status": st})
	}
}
