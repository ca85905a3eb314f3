package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-tools-api/internal/service"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   Pinger
}

// NewMetricsHandler constructs a metrics handler. store may be nil when no
// record store could be opened at boot.
func NewMetricsHandler(metrics *service.MetricsService, store Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: store}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the record store answers a ping.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.store == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnavailable, "record store is not connected"))
		return
	}
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "record store is unreachable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
