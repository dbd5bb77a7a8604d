package valuation

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
)

// Observer receives the outcome of every estimate, for metrics.
type Observer interface {
	ObservePrediction(outcome string, elapsed time.Duration)
}

// Outcome labels reported to an Observer.
const (
	OutcomeOK     = "ok"
	OutcomeCached = "cached"
)

// Estimator is Predict with logging, metrics and optional memoisation. It is
// safe for concurrent use; the handle is only read.
type Estimator struct {
	handle   *pipeline.Handle
	logger   log.Logger
	observer Observer
	cache    *lru.Cache[Record, Price]
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator) error

// WithEstimatorLogger sets the logger.
func WithEstimatorLogger(l log.Logger) EstimatorOption {
	return func(e *Estimator) error {
		e.logger = l
		return nil
	}
}

// WithObserver reports every outcome to o.
func WithObserver(o Observer) EstimatorOption {
	return func(e *Estimator) error {
		e.observer = o
		return nil
	}
}

// WithCache memoises up to size estimates keyed by the full record. A size
// of 0 disables the cache.
func WithCache(size int) EstimatorOption {
	return func(e *Estimator) error {
		if size < 0 {
			return errors.NewValidationError("cache.size", "must be >= 0", size)
		}
		if size == 0 {
			e.cache = nil
			return nil
		}
		c, err := lru.New[Record, Price](size)
		if err != nil {
			return errors.Wrap(err, "create prediction cache")
		}
		e.cache = c
		return nil
	}
}

// NewEstimator returns an Estimator over h.
func NewEstimator(h *pipeline.Handle, opts ...EstimatorOption) (*Estimator, error) {
	e := &Estimator{handle: h, logger: log.GetLogger()}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With(log.ComponentKey, "valuation")
	return e, nil
}

// WithoutObserver returns a copy of e that reports nothing to its observer.
// The copy shares e's cache.
func (e *Estimator) WithoutObserver() *Estimator {
	quiet := *e
	quiet.observer = nil
	return &quiet
}

// Handle returns the pipeline handle the estimator reads.
func (e *Estimator) Handle() *pipeline.Handle { return e.handle }

// Estimate values r. See Predict for the error classification.
func (e *Estimator) Estimate(r Record) (Price, error) {
	start := time.Now()

	if e.cache != nil {
		if price, ok := e.cache.Get(r); ok {
			e.observe(OutcomeCached, start)
			return price, nil
		}
	}

	raw, price, err := predict(e.handle, r)
	if err != nil {
		e.observe(errors.KindOf(err).String(), start)
		e.logFailure(r, err)
		return 0, err
	}

	if e.cache != nil {
		e.cache.Add(r, price)
	}
	e.observe(OutcomeOK, start)
	if e.logger.Enabled(context.Background(), log.LevelDebug) {
		e.logger.Debug("Price estimated",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.CityKey, r.City,
			log.RawOutputKey, raw,
			log.PriceKey, float64(price),
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return price, nil
}

func (e *Estimator) observe(outcome string, start time.Time) {
	if e.observer != nil {
		e.observer.ObservePrediction(outcome, time.Since(start))
	}
}

func (e *Estimator) logFailure(r Record, err error) {
	fields := []any{
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.ErrorKindKey, errors.KindOf(err).String(),
		log.ErrorTypeKey, errors.TypeName(err),
		log.CityKey, r.City,
	}
	switch errors.KindOf(err) {
	case errors.KindModelUnavailable:
		e.logger.Warn("Estimate refused: model unavailable", append(fields, log.ModelPathKey, e.handle.Path())...)
	case errors.KindInvalidInput:
		e.logger.Warn("Estimate rejected: invalid input", append([]any{err}, fields...)...)
	default:
		e.logger.Warn("Estimate failed", append([]any{err}, fields...)...)
	}
}
