package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// StandardScaler はscikit-learn互換の標準化スケーラー
// 学習済みの平均・標準偏差を使ってデータを平均0、標準偏差1に変換する
type StandardScaler struct {
	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は学習済みの統計量からStandardScalerを復元する
//
// パラメータ:
//   - mean: 各特徴量の平均 (withMean=false の場合は nil 可)
//   - scale: 各特徴量の標準偏差 (withStd=false の場合は nil 可)
//   - withMean: 平均を引くかどうか
//   - withStd: 標準偏差で割るかどうか
//
// 使用例:
//
//	scaler, err := preprocessing.NewStandardScaler([]float64{3.4}, []float64{0.9}, true, true)
//	XScaled, err := scaler.Transform(X)
func NewStandardScaler(mean, scale []float64, withMean, withStd bool) (*StandardScaler, error) {
	n := len(mean)
	if len(scale) > n {
		n = len(scale)
	}
	if n == 0 {
		return nil, errors.NewModelError("NewStandardScaler", "empty statistics", errors.ErrEmptyData)
	}
	if withMean && len(mean) != n {
		return nil, errors.NewDimensionError("NewStandardScaler", n, len(mean), 1)
	}
	if withStd && len(scale) != n {
		return nil, errors.NewDimensionError("NewStandardScaler", n, len(scale), 1)
	}
	if withStd {
		for j, v := range scale {
			if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewValidationError(fmt.Sprintf("scale[%d]", j), "must be finite and non-zero", v)
			}
		}
	}
	if err := errors.CheckNumericalStability("NewStandardScaler", mean); err != nil {
		return nil, err
	}

	return &StandardScaler{
		Mean:      mean,
		Scale:     scale,
		NFeatures: n,
		WithMean:  withMean,
		WithStd:   withStd,
	}, nil
}

// NFeaturesIn は入力列数を返す
func (s *StandardScaler) NFeaturesIn() int { return s.NFeatures }

// NFeaturesOut は出力列数を返す
func (s *StandardScaler) NFeaturesOut() int { return s.NFeatures }

// Transform は学習済みの統計情報を使ってデータを標準化する
//
// パラメータ:
//   - X: 変換するデータ
//
// 戻り値:
//   - mat.Matrix: 標準化されたデータ
//   - error: エラーが発生した場合
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			if s.WithMean {
				value -= s.Mean[j]
			}
			if s.WithStd {
				value /= s.Scale[j]
			}
			result.Set(i, j, value)
		}
	}

	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

// MinMaxScaler はscikit-learn互換のMin-Maxスケーラー
// 学習時の最小値・最大値を使ってデータを指定範囲（デフォルト[0,1]）に変換する
type MinMaxScaler struct {
	// DataMin は各特徴量の学習時最小値
	DataMin []float64

	// DataMax は各特徴量の学習時最大値
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64

	// Clip は範囲外の値を FeatureRange に切り詰めるかどうか
	Clip bool

	// NFeatures は特徴量の数
	NFeatures int

	scale []float64
	min   []float64
}

// NewMinMaxScaler は学習済みの最小値・最大値からMinMaxScalerを復元する
//
// 定数列（max == min）はscikit-learnと同様に幅1として扱う。
func NewMinMaxScaler(dataMin, dataMax []float64, featureRange [2]float64, clip bool) (*MinMaxScaler, error) {
	if len(dataMin) == 0 {
		return nil, errors.NewModelError("NewMinMaxScaler", "empty statistics", errors.ErrEmptyData)
	}
	if len(dataMax) != len(dataMin) {
		return nil, errors.NewDimensionError("NewMinMaxScaler", len(dataMin), len(dataMax), 1)
	}
	if featureRange[0] >= featureRange[1] {
		return nil, errors.NewValidationError("feature_range", "minimum must be smaller than maximum", featureRange)
	}
	if err := errors.CheckNumericalStability("NewMinMaxScaler", append(append([]float64{}, dataMin...), dataMax...)); err != nil {
		return nil, err
	}

	m := &MinMaxScaler{
		DataMin:      dataMin,
		DataMax:      dataMax,
		FeatureRange: featureRange,
		Clip:         clip,
		NFeatures:    len(dataMin),
		scale:        make([]float64, len(dataMin)),
		min:          make([]float64, len(dataMin)),
	}
	width := featureRange[1] - featureRange[0]
	for j := range dataMin {
		dataRange := dataMax[j] - dataMin[j]
		if dataRange < 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("data_max[%d]", j), "must not be smaller than data_min", dataMax[j])
		}
		if dataRange == 0 {
			dataRange = 1
		}
		m.scale[j] = width / dataRange
		m.min[j] = featureRange[0] - dataMin[j]*m.scale[j]
	}
	return m, nil
}

// NFeaturesIn は入力列数を返す
func (m *MinMaxScaler) NFeaturesIn() int { return m.NFeatures }

// NFeaturesOut は出力列数を返す
func (m *MinMaxScaler) NFeaturesOut() int { return m.NFeatures }

// Transform はデータを FeatureRange にスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			scaled := X.At(i, j)*m.scale[j] + m.min[j]
			if m.Clip {
				scaled = math.Max(m.FeatureRange[0], math.Min(m.FeatureRange[1], scaled))
			}
			result.Set(i, j, scaled)
		}
	}

	return result, nil
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}

// Passthrough は列をそのまま出力する変換器
type Passthrough struct {
	NFeatures int
}

// NFeaturesIn は入力列数を返す
func (p *Passthrough) NFeaturesIn() int { return p.NFeatures }

// NFeaturesOut は出力列数を返す
func (p *Passthrough) NFeaturesOut() int { return p.NFeatures }

// Transform は入力のコピーを返す
func (p *Passthrough) Transform(X mat.Matrix) (mat.Matrix, error) {
	if _, c := X.Dims(); c != p.NFeatures {
		return nil, errors.NewDimensionError("Passthrough.Transform", p.NFeatures, c, 1)
	}
	return mat.DenseCopyOf(X), nil
}
