// Package fixture builds small, self-consistent model artifacts for tests.
package fixture

import (
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/preprocessing"
)

// Cities are the categories the fixture encoder was "trained" on.
var Cities = []string{"Bellevue", "Kirkland", "Redmond", "Seattle"}

var numeric = []string{
	"bedrooms", "bathrooms", "sqft_living", "sqft_lot", "floors", "waterfront",
	"view", "condition", "sqft_above", "sqft_basement", "yr_built", "yr_renovated",
}

// SeattleRaw is the log1p-space output for the default form record
// (3 bed, 2.0 bath, 1800 sqft, ..., Seattle).
const SeattleRaw = 12.796649692926604

// SeattlePrice is expm1(SeattleRaw).
const SeattlePrice = 361004.94052465976

// Artifact returns a linear log1p artifact over the 13 house columns with one
// recorded self-check row.
func Artifact() *pipeline.Artifact {
	weights := &model.ModelWeights{
		ModelType: "LinearRegression",
		Version:   "1.0.0",
		Coefficients: []float64{
			-0.02, 0.03, 0.28, 0.02, 0.01, 0.04, 0.06, 0.04, 0.02, 0.01, -0.09, 0.005,
			0.35, 0.2, 0.25, 0.1,
		},
		Intercept: 12.9,
		IsFitted:  true,
	}
	weights.Seal()

	return &pipeline.Artifact{
		FormatVersion:   pipeline.FormatVersion,
		Name:            "fixture-linear",
		FeatureNames:    append(append([]string(nil), numeric...), "city"),
		TargetTransform: pipeline.TargetLog1p,
		Preprocessor: pipeline.Preprocessor{Transformers: []preprocessing.TransformerSpec{
			{
				Name:    "num",
				Kind:    preprocessing.KindStandardScaler,
				Columns: numeric,
				Mean:    []float64{3.4, 2.1, 2080, 15100, 1.49, 0.0075, 0.23, 3.41, 1790, 292, 1971, 84},
				Scale:   []float64{0.9, 0.77, 918, 41400, 0.54, 0.086, 0.77, 0.65, 828, 443, 29.4, 402},
			},
			{
				Name:          "cat",
				Kind:          preprocessing.KindOneHotEncoder,
				Columns:       []string{"city"},
				Categories:    [][]string{Cities},
				HandleUnknown: string(preprocessing.HandleUnknownError),
			},
		}},
		Regressor: pipeline.RegressorSpec{Kind: pipeline.RegressorLinear, Weights: weights},
		Checks: []pipeline.Check{{
			Row: map[string]interface{}{
				"bedrooms": 3.0, "bathrooms": 2.0, "sqft_living": 1800.0, "sqft_lot": 5000.0,
				"floors": 2.0, "waterfront": 0.0, "view": 0.0, "condition": 3.0,
				"sqft_above": 1800.0, "sqft_basement": 0.0, "yr_built": 1995.0, "yr_renovated": 0.0,
				"city": "Seattle",
			},
			Raw: SeattleRaw,
		}},
	}
}

// Write saves a as name in a temporary directory and returns the path. The
// encoding follows the extension of name.
func Write(t testing.TB, a *pipeline.Artifact, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := model.SaveModel(a, path); err != nil {
		t.Fatalf("fixture: save artifact: %v", err)
	}
	return path
}

// Handle loads Artifact() from a temporary file.
func Handle(t testing.TB) *pipeline.Handle {
	t.Helper()
	h := pipeline.Load(Write(t, Artifact(), pipeline.DefaultPath))
	if !h.Available() {
		t.Fatalf("fixture: artifact unavailable: %v", h.Err())
	}
	return h
}
