package lightgbm

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ObjectiveType is the LightGBM objective the booster was trained with
type ObjectiveType string

const (
	RegressionL2 ObjectiveType = "regression"
	RegressionL1 ObjectiveType = "regression_l1"
	Huber        ObjectiveType = "huber"
	Fair         ObjectiveType = "fair"
	Quantile     ObjectiveType = "quantile"
	MAPE         ObjectiveType = "mape"
	Poisson      ObjectiveType = "poisson"
	Gamma        ObjectiveType = "gamma"
	Tweedie      ObjectiveType = "tweedie"
)

// Booster is an immutable tree ensemble. Safe for concurrent use.
type Booster struct {
	Trees         []LeavesTree
	Objective     ObjectiveType
	AverageOutput bool
	NumFeatures   int
	FeatureNames  []string
}

// NFeaturesIn returns the number of input features the trees were trained on.
func (b *Booster) NFeaturesIn() int { return b.NumFeatures }

// Predict returns an n×1 matrix of predictions.
func (b *Booster) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if cols != b.NumFeatures {
		return nil, errors.NewDimensionError("lightgbm.Predict", b.NumFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	fvals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(fvals, i, X)
		predictions.Set(i, 0, b.PredictSingle(fvals))
	}
	return predictions, nil
}

// PredictSingle predicts one row of features.
func (b *Booster) PredictSingle(fvals []float64) float64 {
	raw := b.PredictRaw(fvals)
	switch b.Objective {
	case Poisson, Gamma, Tweedie:
		return math.Exp(raw)
	default:
		return raw
	}
}

// PredictRaw returns the summed leaf values before the objective transform.
func (b *Booster) PredictRaw(fvals []float64) float64 {
	var sum float64
	for i := range b.Trees {
		sum += b.Trees[i].Predict(fvals)
	}
	if b.AverageOutput && len(b.Trees) > 0 {
		sum /= float64(len(b.Trees))
	}
	return sum
}

func (b *Booster) String() string {
	return fmt.Sprintf("lightgbm.Booster(objective=%s, trees=%d, n_features=%d)", b.Objective, len(b.Trees), b.NumFeatures)
}
