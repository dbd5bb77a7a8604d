package pipeline

import (
	"sync"
	"time"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
)

// Handle is the result of loading an artifact: either a ready Pipeline or the
// "unavailable" state carrying the reason. A Handle never changes once built
// and is shared read-only by every request.
type Handle struct {
	path     string
	pipeline *Pipeline
	report   CheckReport
	err      error
}

// Ready wraps a built pipeline.
func Ready(path string, p *Pipeline) *Handle {
	return &Handle{path: path, pipeline: p}
}

// Unavailable builds the unavailable handle for path.
func Unavailable(path string, cause error) *Handle {
	return &Handle{path: path, err: errors.NewModelUnavailableError(path, cause)}
}

// Available reports whether a pipeline was loaded.
func (h *Handle) Available() bool { return h != nil && h.pipeline != nil }

// Path returns the artifact path the handle was loaded from.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Pipeline returns the loaded pipeline or a ModelUnavailable error.
func (h *Handle) Pipeline() (*Pipeline, error) {
	if h == nil {
		return nil, errors.NewModelUnavailableError("", nil)
	}
	if h.pipeline == nil {
		return nil, h.err
	}
	return h.pipeline, nil
}

// Err returns why the handle is unavailable, or nil.
func (h *Handle) Err() error {
	if h == nil {
		return errors.NewModelUnavailableError("", nil)
	}
	return h.err
}

// CheckReport returns the self-check results recorded at load time.
func (h *Handle) CheckReport() CheckReport {
	if h == nil {
		return CheckReport{}
	}
	return h.report
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger   log.Logger
	expected []string
}

// WithLogger sets the logger used to report the load outcome.
func WithLogger(l log.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// WithExpectedColumns requires the artifact's feature_names to equal cols.
func WithExpectedColumns(cols []string) Option {
	return func(o *loadOptions) { o.expected = cols }
}

// Load reads, validates and self-checks the artifact at path. It never fails:
// any problem yields an unavailable Handle whose Err explains it.
func Load(path string, opts ...Option) *Handle {
	o := loadOptions{logger: log.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(log.ComponentKey, "pipeline", log.ModelPathKey, path)

	start := time.Now()
	h := load(path, o.expected)
	if !h.Available() {
		logger.Error("Model artifact unavailable", h.err,
			log.OperationKey, log.OperationLoad,
			log.PhaseKey, log.PhaseStartup,
		)
		return h
	}

	p := h.pipeline
	logger.Info("Model artifact loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhaseStartup,
		log.ModelNameKey, p.Name(),
		log.RegressorKindKey, p.RegressorKind(),
		log.FeaturesKey, len(p.Features()),
		log.SamplesKey, h.report.Rows,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return h
}

func load(path string, expected []string) (h *Handle) {
	defer func() {
		if r := recover(); r != nil {
			h = Unavailable(path, errors.NewPanicError("pipeline.Load", r))
		}
	}()

	var a Artifact
	if err := model.LoadModel(&a, path); err != nil {
		return Unavailable(path, err)
	}
	p, err := Build(&a, expected)
	if err != nil {
		return Unavailable(path, err)
	}
	report, err := SelfCheck(p, a.Checks)
	if err != nil {
		return Unavailable(path, err)
	}
	return &Handle{path: path, pipeline: p, report: report}
}

// Loader loads an artifact at most once per process.
type Loader struct {
	path string
	opts []Option

	once   sync.Once
	handle *Handle
}

// NewLoader returns a Loader for path.
func NewLoader(path string, opts ...Option) *Loader {
	if path == "" {
		path = DefaultPath
	}
	return &Loader{path: path, opts: opts}
}

// Handle loads the artifact on first use and returns the same Handle afterwards.
func (l *Loader) Handle() *Handle {
	l.once.Do(func() {
		l.handle = Load(l.path, l.opts...)
	})
	return l.handle
}
