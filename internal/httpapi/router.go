package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dariadocs/namescreen/internal/orchestrator"
)

// NewRouter builds the gin engine exposing the two routes spec §6
// names plus a GET /health liveness probe, grouped the way the
// teacher's routes.go groups /v1/addresses — here there is only one
// group, since the surface is deliberately this narrow.
func NewRouter(orch *orchestrator.Orchestrator, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginZapLogger(logger))

	h := NewHandler(orch, logger)

	router.POST("/normalize", h.Normalize)
	router.POST("/process", h.Process)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	return router
}

// ginZapLogger replaces gin's default stdout logger middleware with a
// zap-backed one, consistent with the rest of the pipeline's
// structured-logging convention rather than gin's own text logger.
func ginZapLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if logger == nil {
			return
		}
		logger.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
