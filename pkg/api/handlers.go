package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/metrics"
	"github.com/tapright/waitlist-api/pkg/middleware"
	"github.com/tapright/waitlist-api/pkg/models"
	"github.com/tapright/waitlist-api/pkg/services"
)

// Request bodies above this size are rejected
const maxBodyBytes = 64 << 10

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	waitlist services.WaitlistService
	stats    services.StatsService
	log      *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(waitlist services.WaitlistService, stats services.StatsService, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		waitlist: waitlist,
		stats:    stats,
		log:      log,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleWaitlistSubmission validates, stores and acknowledges a waitlist signup
func (h *Handlers) HandleWaitlistSubmission(c *gin.Context) {
	var res models.SubmissionResult
	raw, err := decodeObject(c.Request)
	if err == nil {
		res, err = h.waitlist.Submit(c.Request.Context(), raw)
	}

	status, body, label := BuildSubmitResponse(res, err)
	if label == "error" {
		h.log.Error("unexpected waitlist error", zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
	}
	metrics.SubmissionsTotal.WithLabelValues(label).Inc()
	c.JSON(status, body)
}

// HandleWaitlistStats reports the total number of signups
func (h *Handlers) HandleWaitlistStats(c *gin.Context) {
	count, err := h.stats.Count(c.Request.Context())
	status, body, label := BuildStatsResponse(count, err)
	if err != nil {
		h.log.Error("failed to load waitlist stats", zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
	}
	metrics.StatsRequestsTotal.WithLabelValues(label).Inc()
	c.JSON(status, body)
}

// decodeObject reads a JSON body. Valid JSON that is not an object decodes to
// an empty map so that validation reports every missing field. Only
// unparsable bodies are errors.
func decodeObject(r *http.Request) (map[string]interface{}, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	if raw, ok := decoded.(map[string]interface{}); ok {
		return raw, nil
	}
	return map[string]interface{}{}, nil
}
