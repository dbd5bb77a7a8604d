// Package api is the request front-end: a JSON API over the valuation
// estimator.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
	"github.com/YuminosukeSato/houseprice/valuation"
)

// Estimator is the part of valuation.Estimator the controller needs.
type Estimator interface {
	Estimate(r valuation.Record) (valuation.Price, error)
	Handle() *pipeline.Handle
}

// Controller serves the API routes.
type Controller struct {
	estimator Estimator
	logger    log.Logger
}

// NewController returns a Controller over e.
func NewController(e Estimator, logger log.Logger) *Controller {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Controller{
		estimator: e,
		logger:    logger.With(log.ComponentKey, "api", log.FrontendKey, "api"),
	}
}

// Root handles GET /.
func (ctl *Controller) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": WelcomeMessage})
}

// Predict handles POST /predict.
func (ctl *Controller) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := bindingError(err)
		ctl.logger.Debug("Request rejected by binding", log.ErrorKindKey, resp.Error, log.HTTPPathKey, c.Request.URL.Path)
		abortWith(c, http.StatusUnprocessableEntity, resp)
		return
	}

	price, err := ctl.estimator.Estimate(req.Record())
	if err != nil {
		status, resp := estimateError(err)
		if errors.KindOf(err) == errors.KindInternal {
			ctl.logger.Error("Unexpected estimate failure", err, log.HTTPPathKey, c.Request.URL.Path)
		}
		abortWith(c, status, resp)
		return
	}
	c.JSON(http.StatusOK, PredictResponse{PredictedPrice: float64(price)})
}

// Health handles GET /health. It answers 200 when the model is loaded and
// 503 otherwise.
func (ctl *Controller) Health(c *gin.Context) {
	h := ctl.estimator.Handle()
	resp := HealthResponse{ModelPath: h.Path()}
	if p, err := h.Pipeline(); err == nil {
		resp.Status = "ok"
		resp.ModelAvailable = true
		resp.Model = p.Name()
		resp.Regressor = p.RegressorKind()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Status = "degraded"
	if cause := h.Err(); cause != nil {
		resp.Error = cause.Error()
	}
	c.JSON(http.StatusServiceUnavailable, resp)
}
