package pipeline

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/preprocessing"
)

// smallArtifact predicts log1p(price) = 12 + 0.5*scaled(sqft) + city effect.
func smallArtifact() *Artifact {
	w := &model.ModelWeights{
		ModelType:    "LinearRegression",
		Version:      "1.0.0",
		Coefficients: []float64{0.5, 0.1, 0.3},
		Intercept:    12,
		IsFitted:     true,
	}
	w.Seal()
	return &Artifact{
		FormatVersion:   FormatVersion,
		Name:            "small",
		FeatureNames:    []string{"sqft_living", "city"},
		TargetTransform: TargetLog1p,
		Preprocessor: Preprocessor{Transformers: []preprocessing.TransformerSpec{
			{Kind: preprocessing.KindStandardScaler, Columns: []string{"sqft_living"}, Mean: []float64{2000}, Scale: []float64{1000}},
			{Kind: preprocessing.KindOneHotEncoder, Columns: []string{"city"}, Categories: [][]string{{"Redmond", "Seattle"}}},
		}},
		Regressor: RegressorSpec{Kind: RegressorLinear, Weights: w},
		Checks: []Check{
			{Row: map[string]interface{}{"sqft_living": 3000.0, "city": "Seattle"}, Raw: 12.8},
			{Row: map[string]interface{}{"sqft_living": 2000.0, "city": "Redmond"}, Raw: 12.1},
		},
	}
}

func smallTable(t *testing.T, sqft float64, city string) *table.Table {
	t.Helper()
	tbl := table.New(1)
	if err := tbl.AddNumeric("sqft_living", sqft); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddCategorical("city", city); err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestBuildAndPredict(t *testing.T) {
	p, err := Build(smallArtifact(), []string{"sqft_living", "city"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.RegressorKind() != RegressorLinear || p.Name() != "small" {
		t.Errorf("pipeline metadata = %q %q", p.RegressorKind(), p.Name())
	}
	if cats := p.CategoricalFeatures(); len(cats) != 1 || cats[0] != "city" {
		t.Errorf("CategoricalFeatures() = %v", cats)
	}

	got, err := p.Predict(smallTable(t, 3000, "Seattle"))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(got) != 1 || math.Abs(got[0]-12.8) > 1e-12 {
		t.Errorf("Predict() = %v, want [12.8]", got)
	}
	if price := p.TargetTransform().Inverse(got[0]); math.Abs(price-math.Expm1(12.8)) > 1e-6 {
		t.Errorf("Inverse() = %v", price)
	}
}

func TestPredictUnknownCategory(t *testing.T) {
	p, err := Build(smallArtifact(), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Predict(smallTable(t, 3000, "Nowhereville"))
	var unknown *errors.UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("Predict() error = %v, want UnknownCategoryError", err)
	}
	if unknown.Value != "Nowhereville" {
		t.Errorf("unknown.Value = %q", unknown.Value)
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *Artifact)
		expected []string
	}{
		{"version", func(a *Artifact) { a.FormatVersion = "2" }, nil},
		{"no features", func(a *Artifact) { a.FeatureNames = nil }, nil},
		{"feature order", func(a *Artifact) {}, []string{"city", "sqft_living"}},
		{"target transform", func(a *Artifact) { a.TargetTransform = "sqrt" }, nil},
		{"unknown transformer column", func(a *Artifact) { a.Preprocessor.Transformers[0].Columns = []string{"sqft_lot"} }, nil},
		{"ignore unknown categories", func(a *Artifact) { a.Preprocessor.Transformers[1].HandleUnknown = "ignore" }, nil},
		{"regressor kind", func(a *Artifact) { a.Regressor.Kind = "svm" }, nil},
		{"missing weights", func(a *Artifact) { a.Regressor.Weights = nil }, nil},
		{"empty lightgbm", func(a *Artifact) { a.Regressor = RegressorSpec{Kind: RegressorLightGBM} }, nil},
		{"width mismatch", func(a *Artifact) {
			a.Preprocessor.Transformers[1].Categories = [][]string{{"Redmond", "Seattle", "Tacoma"}}
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := smallArtifact()
			tt.mutate(a)
			if _, err := Build(a, tt.expected); err == nil {
				t.Error("Build() expected error")
			}
		})
	}
}

func TestBuildDefaultsToLog1p(t *testing.T) {
	a := smallArtifact()
	a.TargetTransform = ""
	p, err := Build(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.TargetTransform() != TargetLog1p {
		t.Errorf("TargetTransform() = %q, want log1p", p.TargetTransform())
	}
	if TargetIdentity.Inverse(5) != 5 {
		t.Error("identity Inverse changed the value")
	}
}

const lightgbmDump = `{
  "objective": "regression",
  "max_feature_idx": 2,
  "tree_info": [{
    "tree_index": 0,
    "shrinkage": 1,
    "tree_structure": {
      "split_feature": 0, "threshold": 0, "decision_type": "<=", "missing_type": "None",
      "left_child": {"leaf_value": 12.0},
      "right_child": {"leaf_value": 13.0}
    }
  }]
}`

func TestBuildLightGBM(t *testing.T) {
	a := smallArtifact()
	a.Regressor = RegressorSpec{Kind: RegressorLightGBM, Model: []byte(lightgbmDump)}
	a.Checks = []Check{{Row: map[string]interface{}{"sqft_living": 2500.0, "city": "Redmond"}, Raw: 13}}

	p, err := Build(a, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	report, err := SelfCheck(p, a.Checks)
	if err != nil {
		t.Fatalf("SelfCheck() error = %v", err)
	}
	if report.Rows != 1 || report.MAE != 0 {
		t.Errorf("SelfCheck() = %+v", report)
	}
}

func TestSelfCheck(t *testing.T) {
	p, err := Build(smallArtifact(), nil)
	if err != nil {
		t.Fatal(err)
	}

	report, err := SelfCheck(p, smallArtifact().Checks)
	if err != nil {
		t.Fatalf("SelfCheck() error = %v", err)
	}
	if report.Rows != 2 || report.MAE > CheckTolerance || report.MaxError > CheckTolerance {
		t.Errorf("SelfCheck() = %+v", report)
	}

	if r, err := SelfCheck(p, nil); err != nil || r.Rows != 0 {
		t.Errorf("SelfCheck(nil) = %+v, %v", r, err)
	}

	tests := []struct {
		name   string
		checks []Check
	}{
		{"drifted output", []Check{{Row: map[string]interface{}{"sqft_living": 3000.0, "city": "Seattle"}, Raw: 12.9}}},
		{"missing feature", []Check{{Row: map[string]interface{}{"city": "Seattle"}, Raw: 12.8}}},
		{"wrong type", []Check{
			{Row: map[string]interface{}{"sqft_living": 3000.0, "city": "Seattle"}, Raw: 12.8},
			{Row: map[string]interface{}{"sqft_living": "big", "city": "Seattle"}, Raw: 12.8},
		}},
		{"untrained city", []Check{{Row: map[string]interface{}{"sqft_living": 3000.0, "city": "Tacoma"}, Raw: 12.8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelfCheck(p, tt.checks); err == nil {
				t.Error("SelfCheck() expected error")
			}
		})
	}
}
