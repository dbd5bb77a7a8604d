package pipeline

import (
	"fmt"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/preprocessing"
	"github.com/YuminosukeSato/houseprice/sklearn/lightgbm"
	"github.com/YuminosukeSato/houseprice/sklearn/linear_model"
)

// Pipeline is a restored preprocessing + regressor chain. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	name     string
	features []string
	target   TargetTransform
	pre      *preprocessing.ColumnTransformer
	reg      model.Regressor
	regKind  string
}

// Build validates an artifact and restores its pipeline. When expected is
// non-empty the artifact's feature names must match it exactly, in order.
func Build(a *Artifact, expected []string) (*Pipeline, error) {
	if a.FormatVersion != FormatVersion {
		return nil, errors.NewValidationError("format_version", "unsupported artifact version", a.FormatVersion)
	}
	if len(a.FeatureNames) == 0 {
		return nil, errors.NewValidationError("feature_names", "must not be empty", nil)
	}
	if len(expected) > 0 && !equalStrings(a.FeatureNames, expected) {
		return nil, errors.NewValidationError("feature_names", fmt.Sprintf("must be %v", expected), a.FeatureNames)
	}

	target := a.TargetTransform
	switch target {
	case "":
		target = TargetLog1p
	case TargetLog1p, TargetIdentity:
	default:
		return nil, errors.NewValidationError("target_transform", "must be 'log1p' or 'identity'", string(target))
	}

	known := make(map[string]bool, len(a.FeatureNames))
	for _, f := range a.FeatureNames {
		known[f] = true
	}
	for i, spec := range a.Preprocessor.Transformers {
		for _, c := range spec.Columns {
			if !known[c] {
				return nil, errors.NewValidationError(fmt.Sprintf("transformers[%d].columns", i), "not a feature of the artifact", c)
			}
		}
		// An ignored category encodes as all zeros and yields a price for a
		// city the model never saw.
		if spec.Kind == preprocessing.KindOneHotEncoder && spec.HandleUnknown == string(preprocessing.HandleUnknownIgnore) {
			return nil, errors.NewValidationError(fmt.Sprintf("transformers[%d].handle_unknown", i), "unseen categories must raise", spec.HandleUnknown)
		}
	}

	pre, err := preprocessing.NewColumnTransformer(a.Preprocessor.Transformers)
	if err != nil {
		return nil, errors.NewModelError("pipeline.Build", "invalid preprocessor", err)
	}

	var reg model.Regressor
	switch a.Regressor.Kind {
	case RegressorLinear:
		reg, err = linear_model.FromWeights(a.Regressor.Weights)
	case RegressorLightGBM:
		if len(a.Regressor.Model) == 0 {
			err = errors.NewValidationError("regressor.model", "must not be empty", nil)
			break
		}
		reg, err = lightgbm.LoadJSONModel(a.Regressor.Model)
	default:
		err = errors.NewValidationError("regressor.kind", "must be 'linear' or 'lightgbm'", a.Regressor.Kind)
	}
	if err != nil {
		return nil, errors.NewModelError("pipeline.Build", "invalid regressor", err)
	}

	if reg.NFeaturesIn() != pre.NFeaturesOut() {
		return nil, errors.NewDimensionError("pipeline.Build", pre.NFeaturesOut(), reg.NFeaturesIn(), 1)
	}

	return &Pipeline{
		name:     a.Name,
		features: append([]string(nil), a.FeatureNames...),
		target:   target,
		pre:      pre,
		reg:      reg,
		regKind:  a.Regressor.Kind,
	}, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Name returns the artifact name.
func (p *Pipeline) Name() string { return p.name }

// Features returns the training column order.
func (p *Pipeline) Features() []string { return append([]string(nil), p.features...) }

// CategoricalFeatures returns the columns consumed by encoders.
func (p *Pipeline) CategoricalFeatures() []string { return p.pre.CategoricalColumns() }

// RegressorKind returns "linear" or "lightgbm".
func (p *Pipeline) RegressorKind() string { return p.regKind }

// TargetTransform returns how raw outputs map back to prices.
func (p *Pipeline) TargetTransform() TargetTransform { return p.target }

// Predict transforms t and returns one raw regressor output per row, in the
// regressor's target space. Panics inside a stage are returned as errors.
func (p *Pipeline) Predict(t *table.Table) (out []float64, err error) {
	defer errors.Recover(&err, "Pipeline.Predict")

	X, err := p.pre.Transform(t)
	if err != nil {
		return nil, err
	}
	Y, err := p.reg.Predict(X)
	if err != nil {
		return nil, err
	}
	rows, _ := Y.Dims()
	out = make([]float64, rows)
	for i := range out {
		out[i] = Y.At(i, 0)
	}
	return out, nil
}
