// Package webui is the interactive front-end: a form over the house fields,
// an estimate on explicit submit, and a price curve for the submitted house.
package webui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/houseprice/chart"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
	"github.com/YuminosukeSato/houseprice/pkg/telemetry"
	"github.com/YuminosukeSato/houseprice/valuation"
)

//go:embed templates/index.html
var templateFS embed.FS

// Chart size in the page.
const (
	ChartWidth  = 7 * vg.Inch
	ChartHeight = 3.5 * vg.Inch
)

type fieldView struct {
	Name, Label, Widget string
	Min, Max, Step      string
	Value               string
}

type echoCell struct {
	Name  string
	Value string
}

type pageView struct {
	Fields   []fieldView
	City     string
	State    string
	Notices  []Notice
	Price    string
	Echo     []echoCell
	ChartURL string
}

// sweeper is implemented by estimators that can value chart points
// without counting them as predictions.
type sweeper interface {
	WithoutObserver() *valuation.Estimator
}

// Handler serves the form and the chart.
type Handler struct {
	estimator Estimator
	sweep     chart.PredictFunc
	formatter *valuation.Formatter
	logger    log.Logger
}

// NewHandler returns a Handler. The formatter renders prices and chart axes.
func NewHandler(e Estimator, f *valuation.Formatter, logger log.Logger) *Handler {
	if logger == nil {
		logger = log.GetLogger()
	}
	sweep := e.Estimate
	if s, ok := e.(sweeper); ok {
		sweep = s.WithoutObserver().Estimate
	}
	return &Handler{
		estimator: e,
		sweep:     sweep,
		formatter: f,
		logger:    logger.With(log.ComponentKey, "webui", log.FrontendKey, "webui"),
	}
}

// Index handles GET /. Query values, when present, pre-fill the form.
func (h *Handler) Index(c *gin.Context) {
	s := NewSession()
	if len(c.Request.URL.Query()) > 0 {
		s.Edit(ParseRecord(c.Request.URL.Query()))
	}
	c.HTML(http.StatusOK, "index.html", h.view(s))
}

// Submit handles POST /: the explicit estimate action.
func (h *Handler) Submit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}
	s := NewSession()
	s.Edit(ParseRecord(c.Request.PostForm))
	if err := s.Submit(h.estimator); err != nil && errors.KindOf(err) == errors.KindInternal {
		h.logger.Error("Unexpected estimate failure", err)
	}
	// Errors are rendered into the page; the interaction continues.
	c.HTML(http.StatusOK, "index.html", h.view(s))
}

// Chart handles GET /chart.png for the record in the query string.
func (h *Handler) Chart(c *gin.Context) {
	r := ParseRecord(c.Request.URL.Query())
	current, err := h.estimator.Estimate(r)
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	sweep, err := chart.SweepSqftLiving(h.sweep, r, chart.SqftLivingMin, chart.SqftLivingMax, chart.DefaultSteps)
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, sweep, current, h.formatter, ChartWidth, ChartHeight); err != nil {
		h.logger.Error("Chart rendering failed", err)
		c.String(http.StatusInternalServerError, "chart rendering failed")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func statusFor(err error) int {
	switch errors.KindOf(err) {
	case errors.KindModelUnavailable:
		return http.StatusServiceUnavailable
	case errors.KindInvalidInput, errors.KindPredictionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) view(s *Session) pageView {
	r := s.Record()
	vals := Values(r)

	v := pageView{
		City:    r.City,
		State:   s.State().String(),
		Notices: s.Notices(),
	}
	for _, f := range Fields {
		v.Fields = append(v.Fields, fieldView{
			Name:   f.Name,
			Label:  f.Label,
			Widget: f.Widget,
			Min:    echoValue(f.Min),
			Max:    echoValue(f.Max),
			Step:   echoValue(f.Step),
			Value:  vals.Get(f.Name),
		})
	}
	if s.State() == Estimated {
		v.Price = h.formatter.Format(s.Price())
		for _, p := range r.Pairs() {
			v.Echo = append(v.Echo, echoCell{Name: p.Name, Value: echoValue(p.Value)})
		}
		v.ChartURL = "/chart.png?" + vals.Encode()
	}
	return v
}

func echoValue(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return ""
}

// NewRouter returns an engine serving the interactive front-end. m may be
// nil, in which case /metrics is not mounted.
func NewRouter(e Estimator, f *valuation.Formatter, logger log.Logger, m *telemetry.Metrics, production bool) *gin.Engine {
	if logger == nil {
		logger = log.GetLogger()
	}
	engine := telemetry.NewEngine(logger, m, production)
	engine.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/index.html")))

	h := NewHandler(e, f, logger)
	engine.GET("/", h.Index)
	engine.POST("/", h.Submit)
	engine.GET("/chart.png", h.Chart)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return engine
}
