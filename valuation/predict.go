package valuation

import (
	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
)

// Price is an estimated market value in the model's currency.
type Price float64

// Predict values r with the pipeline behind h.
//
// Errors are classified as errors.KindModelUnavailable when h holds no
// pipeline, errors.KindInvalidInput when r fails validation (the pipeline is
// not called), and errors.KindPredictionFailed when the pipeline rejects the
// record, e.g. for a city it was not trained on. The cause is kept in the
// chain.
func Predict(h *pipeline.Handle, r Record) (Price, error) {
	_, price, err := predict(h, r)
	return price, err
}

// predict also returns the raw regressor output for logging.
func predict(h *pipeline.Handle, r Record) (float64, Price, error) {
	p, err := h.Pipeline()
	if err != nil {
		return 0, 0, err
	}
	if err := r.Validate(); err != nil {
		return 0, 0, err
	}

	t, err := r.Table()
	if err != nil {
		return 0, 0, errors.NewPredictionFailedError("table", err)
	}
	raw, err := p.Predict(t)
	if err != nil {
		return 0, 0, errors.NewPredictionFailedError("pipeline", err)
	}
	if len(raw) != 1 {
		return 0, 0, errors.NewPredictionFailedError("pipeline", errors.NewDimensionError("Predict", 1, len(raw), 0))
	}
	if err := errors.CheckScalar("Predict", raw[0]); err != nil {
		return 0, 0, errors.NewPredictionFailedError("pipeline", err)
	}

	price := p.TargetTransform().Inverse(raw[0])
	if err := errors.CheckScalar("Predict.inverse", price); err != nil {
		return raw[0], 0, errors.NewPredictionFailedError("inverse", err)
	}
	if price < 0 {
		return raw[0], 0, errors.NewPredictionFailedError("inverse", errors.NewValidationError("price", "must be >= 0", price))
	}
	return raw[0], Price(price), nil
}
