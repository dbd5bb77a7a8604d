package telemetry

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
)

// HTTPLogger writes one access line per request and records request metrics.
// m may be nil.
func HTTPLogger(logger log.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
			m.requestTime.WithLabelValues(route).Observe(latency.Seconds())
		}

		fields := []any{
			log.HTTPMethodKey, c.Request.Method,
			log.HTTPPathKey, c.Request.URL.Path,
			log.HTTPStatusKey, status,
			log.ClientIPKey, c.ClientIP(),
			log.DurationMsKey, latency.Milliseconds(),
		}
		if status >= 500 {
			logger.Error("[access]", fields...)
			return
		}
		logger.Info("[access]", fields...)
	}
}

// HTTPRecovery turns a handler panic into a 500 response and logs it with its
// stack trace. The process keeps serving.
func HTTPRecovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := errors.WithStack(errors.NewPanicError(c.FullPath(), r))
				logger.Error("Handler panicked", err,
					log.HTTPMethodKey, c.Request.Method,
					log.HTTPPathKey, c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(500, gin.H{
					"error":  "internal",
					"detail": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// NewEngine returns a gin engine with the access logger and recovery
// middleware installed. Release mode is used in production.
func NewEngine(logger log.Logger, m *Metrics, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(HTTPLogger(logger, m), HTTPRecovery(logger))
	return engine
}
