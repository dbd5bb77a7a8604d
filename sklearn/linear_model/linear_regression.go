// Package linear_model は学習済みの線形回帰モデルを推論用に復元する。
package linear_model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 重みとして受け付けるモデル種別。いずれも予測は X·coef + intercept
var supportedModelTypes = map[string]bool{
	"LinearRegression": true,
	"Ridge":            true,
	"Lasso":            true,
	"ElasticNet":       true,
}

// LinearRegression is an immutable linear model restored from exported weights.
// Safe for concurrent use.
type LinearRegression struct {
	modelType string
	version   string

	coef_      []float64 // Weight coefficients
	intercept_ float64   // Intercept
	features_  []string  // Names of the transformed features, if exported

	nFeatures_ int
}

// FromWeights は重みからLinearRegressionを復元する
//
// 重みは Validate() で検証され、メタデータにチェックサムがあれば照合する。
func FromWeights(weights *model.ModelWeights) (*LinearRegression, error) {
	if weights == nil {
		return nil, errors.NewModelError("linear_model.FromWeights", "nil weights", errors.ErrEmptyData)
	}
	if !supportedModelTypes[weights.ModelType] {
		return nil, errors.NewValidationError("model_type", "not a linear model", weights.ModelType)
	}
	if err := weights.Validate(); err != nil {
		return nil, errors.NewModelError("linear_model.FromWeights", "invalid weights", err)
	}
	if err := errors.CheckNumericalStability("linear_model.FromWeights", append(append([]float64{}, weights.Coefficients...), weights.Intercept)); err != nil {
		return nil, err
	}

	lr := &LinearRegression{
		modelType:  weights.ModelType,
		version:    weights.Version,
		coef_:      make([]float64, len(weights.Coefficients)),
		intercept_: weights.Intercept,
		features_:  weights.Features,
		nFeatures_: len(weights.Coefficients),
	}
	copy(lr.coef_, weights.Coefficients)

	// n_features がメタデータにあれば係数の数と一致すること
	if v, ok := weights.Metadata["n_features"].(float64); ok && int(v) != lr.nFeatures_ {
		return nil, errors.NewDimensionError("linear_model.FromWeights", int(v), lr.nFeatures_, 1)
	}
	return lr, nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if cols != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures_, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := lr.intercept_
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * lr.coef_[j]
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// NFeaturesIn は期待する入力特徴量数を返す
func (lr *LinearRegression) NFeaturesIn() int { return lr.nFeatures_ }

// Coef は重み係数のコピーを返す
func (lr *LinearRegression) Coef() []float64 {
	coef := make([]float64, len(lr.coef_))
	copy(coef, lr.coef_)
	return coef
}

// Intercept は切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept_
}

// Features は変換後の特徴量名を返す（エクスポートされていなければ nil）
func (lr *LinearRegression) Features() []string {
	return lr.features_
}

// ExportWeights はモデルの重みをチェックサム付きでエクスポートする
func (lr *LinearRegression) ExportWeights() *model.ModelWeights {
	weights := &model.ModelWeights{
		ModelType:    lr.modelType,
		Version:      lr.version,
		Coefficients: lr.Coef(),
		Intercept:    lr.intercept_,
		Features:     lr.features_,
		IsFitted:     true,
		Metadata: map[string]interface{}{
			"n_features": float64(lr.nFeatures_),
		},
	}
	weights.Seal()
	return weights
}

// GetWeightHash calculates the hash value of weights (for verification)
func (lr *LinearRegression) GetWeightHash() string {
	data := append(lr.Coef(), lr.intercept_)
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:])
}

// String returns the string representation of the model
func (lr *LinearRegression) String() string {
	return fmt.Sprintf("%s(n_features=%d, intercept=%g)", lr.modelType, lr.nFeatures_, lr.intercept_)
}
