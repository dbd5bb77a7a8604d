// Package model はパイプラインを構成する推論専用コンポーネントのインターフェースと、
// 学習済みパラメータのシリアライズ形式を定義する。
package model

import "gonum.org/v1/gonum/mat"

// Transformer は学習済み統計量を使って数値列を変換する
type Transformer interface {
	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// NFeaturesIn は入力として期待する列数を返す
	NFeaturesIn() int

	// NFeaturesOut は変換後の列数を返す
	NFeaturesOut() int
}

// CategoricalTransformer は文字列カテゴリ列を数値行列に変換する
type CategoricalTransformer interface {
	// TransformStrings は columns[j][i] (j列目, i行目) を変換する
	TransformStrings(columns [][]string) (*mat.Dense, error)

	// NFeaturesIn は入力として期待する列数を返す
	NFeaturesIn() int

	// NFeaturesOut は変換後の列数を返す
	NFeaturesOut() int
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor は学習済みの回帰モデル
type Regressor interface {
	Predictor

	// NFeaturesIn は学習時の特徴量数を返す
	NFeaturesIn() int
}
