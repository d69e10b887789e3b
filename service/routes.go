package service

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RegisterRoutes attaches the reachability routes to r.
func RegisterRoutes(r gin.IRouter, handlers *Handlers) {
	r.GET("/health", handlers.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/reachability", handlers.HandleReachability)
	}
}

// NewRouter returns a gin engine with recovery, access logging and the
// reachability routes.
func NewRouter(handlers *Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(logger))
	RegisterRoutes(router, handlers)
	return router
}

// accessLog logs one line per request at debug level.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.Writer.Header().Get("X-Request-ID")),
			zap.Duration("elapsed", time.Since(start)))
	}
}
