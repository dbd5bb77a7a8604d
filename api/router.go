package api

import (
	"github.com/gin-gonic/gin"

	"github.com/YuminosukeSato/houseprice/pkg/log"
	"github.com/YuminosukeSato/houseprice/pkg/telemetry"
)

// NewRouter returns an engine serving the API routes. m may be nil, in which
// case /metrics is not mounted.
func NewRouter(e Estimator, logger log.Logger, m *telemetry.Metrics, production bool) *gin.Engine {
	useJSONFieldNames()
	if logger == nil {
		logger = log.GetLogger()
	}

	engine := telemetry.NewEngine(logger, m, production)
	ctl := NewController(e, logger)

	engine.GET("/", ctl.Root)
	engine.POST("/predict", ctl.Predict)
	engine.GET("/health", ctl.Health)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return engine
}
