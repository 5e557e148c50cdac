package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/middleware"
)

// NewRouter registers every route and the middleware chain
func NewRouter(h *Handlers, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log, SubmitResponse{Message: msgUnexpected}),
		middleware.CORS(allowedOrigins),
	)

	router.POST("/api/waitlist", h.HandleWaitlistSubmission)
	router.GET("/api/waitlist/stats", h.HandleWaitlistStats)
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
