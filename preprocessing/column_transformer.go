package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/core/table"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 変換器の種類（scikit-learnのクラス名）
const (
	KindStandardScaler = "StandardScaler"
	KindMinMaxScaler   = "MinMaxScaler"
	KindOneHotEncoder  = "OneHotEncoder"
	KindPassthrough    = "passthrough"
)

// TransformerSpec は成果物に保存された1つの列変換器
type TransformerSpec struct {
	Name    string   `json:"name,omitempty"`
	Kind    string   `json:"kind"`
	Columns []string `json:"columns"`

	// StandardScaler
	Mean     []float64 `json:"mean,omitempty"`
	Scale    []float64 `json:"scale,omitempty"`
	WithMean *bool     `json:"with_mean,omitempty"`
	WithStd  *bool     `json:"with_std,omitempty"`

	// MinMaxScaler
	DataMin      []float64 `json:"data_min,omitempty"`
	DataMax      []float64 `json:"data_max,omitempty"`
	FeatureRange []float64 `json:"feature_range,omitempty"`
	Clip         bool      `json:"clip,omitempty"`

	// OneHotEncoder
	Categories    [][]string `json:"categories,omitempty"`
	HandleUnknown string     `json:"handle_unknown,omitempty"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

type step struct {
	name        string
	columns     []string
	numeric     model.Transformer
	categorical model.CategoricalTransformer
}

func (s step) width() int {
	if s.categorical != nil {
		return s.categorical.NFeaturesOut()
	}
	return s.numeric.NFeaturesOut()
}

// ColumnTransformer はscikit-learnのColumnTransformerと同様に、
// 列のサブセットごとに変換器を適用して結果を横に連結する。
// どの変換器にも指定されていない列は捨てられる（remainder="drop"）。
type ColumnTransformer struct {
	steps []step
	width int
}

// NewColumnTransformer は成果物の変換器一覧からColumnTransformerを構築する
func NewColumnTransformer(specs []TransformerSpec) (*ColumnTransformer, error) {
	if len(specs) == 0 {
		return nil, errors.NewModelError("NewColumnTransformer", "no transformers", errors.ErrEmptyData)
	}

	ct := &ColumnTransformer{}
	for i, spec := range specs {
		if len(spec.Columns) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("transformers[%d].columns", i), "must not be empty", spec.Kind)
		}
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", spec.Kind, i)
		}
		s := step{name: name, columns: spec.Columns}

		switch spec.Kind {
		case KindStandardScaler:
			scaler, err := NewStandardScaler(spec.Mean, spec.Scale, boolOr(spec.WithMean, true), boolOr(spec.WithStd, true))
			if err != nil {
				return nil, errors.Wrapf(err, "transformer %q", name)
			}
			s.numeric = scaler
		case KindMinMaxScaler:
			featureRange := [2]float64{0, 1}
			switch len(spec.FeatureRange) {
			case 0:
			case 2:
				featureRange = [2]float64{spec.FeatureRange[0], spec.FeatureRange[1]}
			default:
				return nil, errors.NewValidationError(name+".feature_range", "must have exactly two values", spec.FeatureRange)
			}
			scaler, err := NewMinMaxScaler(spec.DataMin, spec.DataMax, featureRange, spec.Clip)
			if err != nil {
				return nil, errors.Wrapf(err, "transformer %q", name)
			}
			s.numeric = scaler
		case KindOneHotEncoder:
			enc, err := NewOneHotEncoder(spec.Columns, spec.Categories, HandleUnknown(spec.HandleUnknown))
			if err != nil {
				return nil, errors.Wrapf(err, "transformer %q", name)
			}
			s.categorical = enc
		case KindPassthrough:
			s.numeric = &Passthrough{NFeatures: len(spec.Columns)}
		default:
			return nil, errors.NewValidationError(fmt.Sprintf("transformers[%d].kind", i), "unsupported transformer", spec.Kind)
		}

		var in int
		if s.categorical != nil {
			in = s.categorical.NFeaturesIn()
		} else {
			in = s.numeric.NFeaturesIn()
		}
		if in != len(spec.Columns) {
			return nil, errors.Wrapf(errors.NewDimensionError("NewColumnTransformer", len(spec.Columns), in, 1), "transformer %q", name)
		}

		ct.steps = append(ct.steps, s)
		ct.width += s.width()
	}
	return ct, nil
}

// NFeaturesOut は変換後の列数を返す
func (ct *ColumnTransformer) NFeaturesOut() int { return ct.width }

// InputColumns は変換器が参照する入力列名を変換器順に返す
func (ct *ColumnTransformer) InputColumns() []string {
	var cols []string
	for _, s := range ct.steps {
		cols = append(cols, s.columns...)
	}
	return cols
}

// CategoricalColumns はカテゴリ変換器が参照する入力列名を返す
func (ct *ColumnTransformer) CategoricalColumns() []string {
	var cols []string
	for _, s := range ct.steps {
		if s.categorical != nil {
			cols = append(cols, s.columns...)
		}
	}
	return cols
}

// Transform は表を変換して n_rows × NFeaturesOut() の行列を返す
func (ct *ColumnTransformer) Transform(t *table.Table) (*mat.Dense, error) {
	rows := t.Rows()
	if rows == 0 {
		return nil, errors.NewModelError("ColumnTransformer.Transform", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(rows, ct.width, nil)
	offset := 0
	for _, s := range ct.steps {
		block, err := ct.apply(s, t)
		if err != nil {
			return nil, err
		}
		r, c := block.Dims()
		if r != rows {
			return nil, errors.NewDimensionError("ColumnTransformer."+s.name, rows, r, 0)
		}
		if c != s.width() {
			return nil, errors.NewDimensionError("ColumnTransformer."+s.name, s.width(), c, 1)
		}
		out.Slice(0, rows, offset, offset+c).(*mat.Dense).Copy(block)
		offset += c
	}
	return out, nil
}

func (ct *ColumnTransformer) apply(s step, t *table.Table) (mat.Matrix, error) {
	if s.categorical == nil {
		X, err := t.Numeric(s.columns)
		if err != nil {
			return nil, err
		}
		return s.numeric.Transform(X)
	}

	columns := make([][]string, len(s.columns))
	for j, name := range s.columns {
		c, ok := t.Column(name)
		if !ok {
			return nil, errors.NewValidationError("column", "missing from input table", name)
		}
		if c.Kind != table.Categorical {
			return nil, errors.NewValidationError(name, "expected a categorical column", c.Kind.String())
		}
		columns[j] = c.Strings
	}
	return s.categorical.TransformStrings(columns)
}
