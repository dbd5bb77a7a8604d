package pipeline

import (
	"fmt"

	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/metrics"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CheckTolerance is the largest mean absolute error accepted by SelfCheck.
const CheckTolerance = 1e-6

// CheckReport summarises how closely the restored pipeline reproduces the
// outputs recorded when the artifact was exported.
type CheckReport struct {
	Rows     int
	MAE      float64
	MaxError float64
}

// SelfCheck runs the recorded check rows through p. It returns an error when a
// row cannot be evaluated or the mean absolute error exceeds CheckTolerance.
func SelfCheck(p *Pipeline, checks []Check) (CheckReport, error) {
	if len(checks) == 0 {
		return CheckReport{}, nil
	}

	t, err := checkTable(p.features, checks)
	if err != nil {
		return CheckReport{}, err
	}
	got, err := p.Predict(t)
	if err != nil {
		return CheckReport{}, errors.Wrap(err, "self-check rows could not be predicted")
	}

	want := mat.NewVecDense(len(checks), nil)
	for i, c := range checks {
		want.SetVec(i, c.Raw)
	}
	pred := mat.NewVecDense(len(got), got)

	report := CheckReport{Rows: len(checks)}
	if report.MAE, err = metrics.MAE(want, pred); err != nil {
		return report, err
	}
	if report.MaxError, err = metrics.MaxError(want, pred); err != nil {
		return report, err
	}
	if !(report.MAE <= CheckTolerance) {
		return report, errors.NewValidationError("checks", fmt.Sprintf("mean absolute error must be <= %g", CheckTolerance), report.MAE)
	}
	return report, nil
}

// checkTable builds a table in feature order; string values become
// categorical columns and numbers numeric ones.
func checkTable(features []string, checks []Check) (*table.Table, error) {
	t := table.New(len(checks))
	for _, name := range features {
		first, ok := checks[0].Row[name]
		if !ok {
			return nil, errors.NewValidationError("checks[0].row", "missing feature", name)
		}
		switch first.(type) {
		case string:
			values := make([]string, len(checks))
			for i, c := range checks {
				s, ok := c.Row[name].(string)
				if !ok {
					return nil, errors.NewValidationError(fmt.Sprintf("checks[%d].row.%s", i, name), "expected a string", c.Row[name])
				}
				values[i] = s
			}
			if err := t.AddCategorical(name, values...); err != nil {
				return nil, err
			}
		default:
			values := make([]float64, len(checks))
			for i, c := range checks {
				v, ok := toFloat(c.Row[name])
				if !ok {
					return nil, errors.NewValidationError(fmt.Sprintf("checks[%d].row.%s", i, name), "expected a number", c.Row[name])
				}
				values[i] = v
			}
			if err := t.AddNumeric(name, values...); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
