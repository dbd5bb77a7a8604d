// Package pipeline restores the prediction pipeline (column preprocessing
// followed by a regressor) from a model artifact and hands it out through an
// immutable Handle.
package pipeline

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/preprocessing"
)

// FormatVersion is the only artifact format version understood by this package.
const FormatVersion = "1"

// DefaultPath is the artifact file name used when none is configured.
const DefaultPath = "modelo_previsao_preco_v1.json"

// TargetTransform describes how the training target was transformed.
type TargetTransform string

const (
	// TargetLog1p means the regressor predicts log(1 + price).
	TargetLog1p TargetTransform = "log1p"
	// TargetIdentity means the regressor predicts the price directly.
	TargetIdentity TargetTransform = "identity"
)

// Inverse maps a regressor output back to the target scale.
func (t TargetTransform) Inverse(raw float64) float64 {
	if t == TargetIdentity {
		return raw
	}
	return math.Expm1(raw)
}

// Regressor kinds.
const (
	RegressorLinear   = "linear"
	RegressorLightGBM = "lightgbm"
)

// Artifact is the serialized pipeline document.
type Artifact struct {
	FormatVersion   string          `json:"format_version"`
	Name            string          `json:"name,omitempty"`
	FeatureNames    []string        `json:"feature_names"`
	TargetTransform TargetTransform `json:"target_transform"`
	Preprocessor    Preprocessor    `json:"preprocessor"`
	Regressor       RegressorSpec   `json:"regressor"`
	Checks          []Check         `json:"checks,omitempty"`
}

// Preprocessor holds the ColumnTransformer steps in output order.
type Preprocessor struct {
	Transformers []preprocessing.TransformerSpec `json:"transformers"`
}

// RegressorSpec is the final estimator. Exactly one of Weights and Model is set,
// depending on Kind.
type RegressorSpec struct {
	Kind    string              `json:"kind"`
	Weights *model.ModelWeights `json:"weights,omitempty"`
	Model   json.RawMessage     `json:"model,omitempty"` // LightGBM dump_model() output
}

// Check is a recorded row and the raw regressor output expected for it.
type Check struct {
	Row map[string]interface{} `json:"row"`
	Raw float64                `json:"raw"`
}

func (a *Artifact) String() string {
	name := a.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s(v%s, %s, %d features)", name, a.FormatVersion, a.Regressor.Kind, len(a.FeatureNames))
}
