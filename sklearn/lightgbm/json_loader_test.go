package lightgbm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Two trees over three features:
//
//	tree 0: f0 <= 1.5 ? (f2 in {1,3} ? 1.0 : 2.0) : 3.0
//	tree 1: constant 0.5
const testDump = `{
  "name": "tree",
  "version": "v4",
  "num_class": 1,
  "num_tree_per_iteration": 1,
  "label_index": 0,
  "max_feature_idx": 2,
  "objective": "regression",
  "average_output": false,
  "feature_names": ["sqft", "floors", "city_cat"],
  "tree_info": [
    {
      "tree_index": 0,
      "num_leaves": 3,
      "num_cat": 1,
      "shrinkage": 0.1,
      "tree_structure": {
        "split_index": 0,
        "split_feature": 0,
        "threshold": 1.5,
        "decision_type": "<=",
        "default_left": true,
        "missing_type": "NaN",
        "left_child": {
          "split_index": 1,
          "split_feature": 2,
          "threshold": "1||3",
          "decision_type": "==",
          "default_left": false,
          "missing_type": "None",
          "left_child": {"leaf_index": 0, "leaf_value": 1.0},
          "right_child": {"leaf_index": 1, "leaf_value": 2.0}
        },
        "right_child": {"leaf_index": 2, "leaf_value": 3.0}
      }
    },
    {
      "tree_index": 1,
      "num_leaves": 1,
      "num_cat": 0,
      "shrinkage": 1,
      "tree_structure": {"leaf_value": 0.5}
    }
  ]
}`

func TestLoadJSONModelPredict(t *testing.T) {
	b, err := LoadJSONModel([]byte(testDump))
	if err != nil {
		t.Fatalf("LoadJSONModel() error = %v", err)
	}
	if b.NFeaturesIn() != 3 {
		t.Errorf("NFeaturesIn() = %d, want 3", b.NFeaturesIn())
	}

	tests := []struct {
		name  string
		fvals []float64
		want  float64
	}{
		{"left then category hit", []float64{1, 0, 3}, 1.5},
		{"left then category miss", []float64{1, 0, 2}, 2.5},
		{"threshold is inclusive", []float64{1.5, 0, 1}, 1.5},
		{"right", []float64{2, 0, 1}, 3.5},
		{"NaN goes default left", []float64{math.NaN(), 0, 1}, 1.5},
		{"NaN category goes right", []float64{0, 0, math.NaN()}, 2.5},
		{"negative category goes right", []float64{0, 0, -1}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.PredictSingle(tt.fvals); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PredictSingle(%v) = %v, want %v", tt.fvals, got, tt.want)
			}
		})
	}

	X := mat.NewDense(2, 3, []float64{1, 0, 3, 2, 0, 1})
	got, err := b.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got.At(0, 0) != 1.5 || got.At(1, 0) != 3.5 {
		t.Errorf("Predict() = %v", mat.Formatted(got))
	}
	if _, err := b.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() expected dimension error")
	}
}

func TestNumericalDecisionMissingZero(t *testing.T) {
	node := &LeavesNode{Threshold: -1, Flags: missingZero | defaultLeft}
	if !numericalDecision(node, 0) {
		t.Error("zero should follow default_left")
	}
	if numericalDecision(node, 0.5) {
		t.Error("0.5 should go right of threshold -1")
	}
	// NaN without missing_type NaN is treated as zero
	if !numericalDecision(node, math.NaN()) {
		t.Error("NaN should be treated as zero")
	}
}

func TestObjectiveTransform(t *testing.T) {
	b := &Booster{
		Trees:       []LeavesTree{{LeafValues: []float64{math.Log(4)}}},
		Objective:   Poisson,
		NumFeatures: 1,
	}
	if got := b.PredictSingle([]float64{0}); math.Abs(got-4) > 1e-12 {
		t.Errorf("poisson PredictSingle() = %v, want 4", got)
	}

	avg := &Booster{
		Trees:         []LeavesTree{{LeafValues: []float64{2}}, {LeafValues: []float64{4}}},
		Objective:     RegressionL2,
		AverageOutput: true,
		NumFeatures:   1,
	}
	if got := avg.PredictSingle([]float64{0}); got != 3 {
		t.Errorf("average_output PredictSingle() = %v, want 3", got)
	}
}

func TestLoadJSONModelErrors(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{"not json", `{`},
		{"classifier", `{"objective":"binary sigmoid:1","max_feature_idx":0,"tree_info":[{"tree_structure":{"leaf_value":1}}]}`},
		{"multiclass", `{"objective":"regression","num_class":3,"max_feature_idx":0,"tree_info":[{"tree_structure":{"leaf_value":1}}]}`},
		{"no trees", `{"objective":"regression","max_feature_idx":0,"tree_info":[]}`},
		{"feature out of range", `{"objective":"regression","max_feature_idx":0,"tree_info":[{"tree_structure":{
			"split_feature":4,"threshold":1,"decision_type":"<=",
			"left_child":{"leaf_value":1},"right_child":{"leaf_value":2}}}]}`},
		{"bad decision type", `{"objective":"regression","max_feature_idx":0,"tree_info":[{"tree_structure":{
			"split_feature":0,"threshold":1,"decision_type":">",
			"left_child":{"leaf_value":1},"right_child":{"leaf_value":2}}}]}`},
		{"bad categorical threshold", `{"objective":"regression","max_feature_idx":0,"tree_info":[{"tree_structure":{
			"split_feature":0,"threshold":"a||b","decision_type":"==",
			"left_child":{"leaf_value":1},"right_child":{"leaf_value":2}}}]}`},
		{"single child", `{"objective":"regression","max_feature_idx":0,"tree_info":[{"tree_structure":{
			"split_feature":0,"threshold":1,"decision_type":"<=",
			"left_child":{"leaf_value":1}}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadJSONModel([]byte(tt.dump)); err == nil {
				t.Error("LoadJSONModel() expected error")
			}
		})
	}
}

func TestParseObjectiveWithParameters(t *testing.T) {
	o, err := parseObjective("tweedie tweedie_variance_power:1.5")
	if err != nil || o != Tweedie {
		t.Errorf("parseObjective() = %q, %v", o, err)
	}
	o, err = parseObjective("")
	if err != nil || o != RegressionL2 {
		t.Errorf("parseObjective(\"\") = %q, %v", o, err)
	}
}
