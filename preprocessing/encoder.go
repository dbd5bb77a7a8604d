package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// HandleUnknown は未学習カテゴリの扱い
type HandleUnknown string

const (
	// HandleUnknownError は未学習カテゴリでエラーを返す (デフォルト)
	HandleUnknownError HandleUnknown = "error"
	// HandleUnknownIgnore は未学習カテゴリを全て0の行として出力する
	HandleUnknownIgnore HandleUnknown = "ignore"
)

// OneHotEncoder はscikit-learn互換のワンホットエンコーダー
// 学習時に見たカテゴリの一覧から、各入力列をカテゴリ数ぶんの0/1列に展開する。
// カテゴリの比較は完全一致で、大文字小文字や前後の空白の正規化は行わない。
type OneHotEncoder struct {
	// Columns は入力列名（エラーメッセージ用）
	Columns []string

	// Categories は列ごとの学習済みカテゴリ（出力列の順序）
	Categories [][]string

	// HandleUnknown は未学習カテゴリの扱い
	HandleUnknown HandleUnknown

	lookup  []map[string]int
	offsets []int
	width   int
}

// NewOneHotEncoder は学習済みカテゴリからOneHotEncoderを復元する
//
// パラメータ:
//   - columns: 入力列名
//   - categories: 列ごとのカテゴリ一覧（len(columns) と同じ長さ）
//   - handleUnknown: "error" または "ignore"（空文字列は "error"）
func NewOneHotEncoder(columns []string, categories [][]string, handleUnknown HandleUnknown) (*OneHotEncoder, error) {
	if len(columns) == 0 {
		return nil, errors.NewModelError("NewOneHotEncoder", "no columns", errors.ErrEmptyData)
	}
	if len(categories) != len(columns) {
		return nil, errors.NewDimensionError("NewOneHotEncoder", len(columns), len(categories), 1)
	}
	switch handleUnknown {
	case "":
		handleUnknown = HandleUnknownError
	case HandleUnknownError, HandleUnknownIgnore:
	default:
		return nil, errors.NewValidationError("handle_unknown", "must be 'error' or 'ignore'", string(handleUnknown))
	}

	enc := &OneHotEncoder{
		Columns:       columns,
		Categories:    categories,
		HandleUnknown: handleUnknown,
		lookup:        make([]map[string]int, len(columns)),
		offsets:       make([]int, len(columns)),
	}
	for j, cats := range categories {
		if len(cats) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("categories[%d]", j), "column has no categories", columns[j])
		}
		enc.offsets[j] = enc.width
		enc.lookup[j] = make(map[string]int, len(cats))
		for k, c := range cats {
			if _, dup := enc.lookup[j][c]; dup {
				return nil, errors.NewValidationError(fmt.Sprintf("categories[%d]", j), "duplicate category", c)
			}
			enc.lookup[j][c] = k
		}
		enc.width += len(cats)
	}
	return enc, nil
}

// NFeaturesIn は入力列数を返す
func (e *OneHotEncoder) NFeaturesIn() int { return len(e.Columns) }

// NFeaturesOut は出力列数（全カテゴリ数の合計）を返す
func (e *OneHotEncoder) NFeaturesOut() int { return e.width }

// Knows は column 列で value が学習済みカテゴリかどうかを返す
func (e *OneHotEncoder) Knows(column int, value string) bool {
	if column < 0 || column >= len(e.lookup) {
		return false
	}
	_, ok := e.lookup[column][value]
	return ok
}

// TransformStrings はカテゴリ列をワンホット行列に変換する
//
// 未学習のカテゴリは HandleUnknown が "error" の場合
// UnknownCategoryError を返す。
func (e *OneHotEncoder) TransformStrings(columns [][]string) (*mat.Dense, error) {
	if len(columns) != len(e.Columns) {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", len(e.Columns), len(columns), 1)
	}
	rows := len(columns[0])
	for _, col := range columns[1:] {
		if len(col) != rows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", rows, len(col), 0)
		}
	}
	if rows == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	result := mat.NewDense(rows, e.width, nil)
	for j, col := range columns {
		for i, value := range col {
			k, ok := e.lookup[j][value]
			if !ok {
				if e.HandleUnknown == HandleUnknownIgnore {
					continue
				}
				return nil, errors.NewUnknownCategoryError(e.Columns[j], value, len(e.Categories[j]))
			}
			result.Set(i, e.offsets[j]+k, 1)
		}
	}
	return result, nil
}

// OutputNames はscikit-learnの get_feature_names_out と同じ "列_カテゴリ" 形式の名前を返す
func (e *OneHotEncoder) OutputNames() []string {
	names := make([]string, 0, e.width)
	for j, cats := range e.Categories {
		for _, c := range cats {
			names = append(names, e.Columns[j]+"_"+c)
		}
	}
	return names
}
