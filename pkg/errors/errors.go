// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// 推論境界で呼び出し側が区別できるエラーは ModelUnavailable / InvalidInput /
// PredictionFailed の3種類のみで、それ以外の型はその原因として添付されます。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	エラー分類
//
// ===========================================================================

// Kind identifies which of the caller-visible failure modes an error belongs to.
type Kind int

const (
	// KindInternal is anything outside the taxonomy.
	KindInternal Kind = iota
	// KindModelUnavailable means the artifact could not be loaded at startup.
	KindModelUnavailable
	// KindInvalidInput means the record was rejected before reaching the model.
	KindInvalidInput
	// KindPredictionFailed means the pipeline itself raised during transform or predict.
	KindPredictionFailed
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindModelUnavailable:
		return "model_unavailable"
	case KindInvalidInput:
		return "invalid_input"
	case KindPredictionFailed:
		return "prediction_failed"
	default:
		return "internal"
	}
}

var (
	// ErrModelUnavailable はモデル成果物が読み込めなかった場合のセンチネルです。
	ErrModelUnavailable = New("model unavailable")

	// ErrInvalidInput は入力レコードが不正な場合のセンチネルです。
	ErrInvalidInput = New("invalid input")

	// ErrPredictionFailed はパイプラインの変換・予測が失敗した場合のセンチネルです。
	ErrPredictionFailed = New("prediction failed")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)

// KindOf classifies err. A nil error is KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var unavailable *ModelUnavailableError
	if errors.As(err, &unavailable) {
		return KindModelUnavailable
	}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return KindInvalidInput
	}
	var failed *PredictionFailedError
	if errors.As(err, &failed) {
		return KindPredictionFailed
	}
	return KindInternal
}

// ModelUnavailableError はモデル成果物が存在しない、または読み込めない場合のエラーです。
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("houseprice: model artifact %q is unavailable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("houseprice: model artifact %q is unavailable", e.Path)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// Is matches ErrModelUnavailable.
func (e *ModelUnavailableError) Is(target error) bool { return target == ErrModelUnavailable }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ModelUnavailableError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "ModelUnavailableError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewModelUnavailableError は新しいModelUnavailableErrorを作成し、スタックトレースを付与します。
func NewModelUnavailableError(path string, cause error) error {
	return errors.WithStack(&ModelUnavailableError{Path: path, Err: cause})
}

// InvalidInputError は入力レコードがモデル呼び出し前に拒否された場合のエラーです。
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("houseprice: invalid input for field %q: %s", e.Field, e.Reason)
}

// Is matches ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Str("reason", e.Reason).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError は新しいInvalidInputErrorを作成し、スタックトレースを付与します。
func NewInvalidInputError(field, reason string) error {
	return errors.WithStack(&InvalidInputError{Field: field, Reason: reason})
}

// PredictionFailedError はパイプラインが変換・予測中に失敗した場合のエラーです。
// 原因（未学習のカテゴリなど）は Err に保持され、抑制されません。
type PredictionFailedError struct {
	Op  string
	Err error
}

func (e *PredictionFailedError) Error() string {
	return fmt.Sprintf("houseprice: prediction failed in %s: %v", e.Op, e.Err)
}

func (e *PredictionFailedError) Unwrap() error { return e.Err }

// Is matches ErrPredictionFailed.
func (e *PredictionFailedError) Is(target error) bool { return target == ErrPredictionFailed }

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PredictionFailedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "PredictionFailedError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewPredictionFailedError は新しいPredictionFailedErrorを作成し、スタックトレースを付与します。
func NewPredictionFailedError(op string, cause error) error {
	return errors.WithStack(&PredictionFailedError{Op: op, Err: cause})
}

// ===========================================================================
//
//	原因として添付される構造化エラー型
//
// ===========================================================================

// UnknownCategoryError はエンコーダが学習時に見ていないカテゴリを受け取った場合のエラーです。
type UnknownCategoryError struct {
	Column string
	Value  string
	Known  int // 学習済みカテゴリ数
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("found unknown category %q in column %q during transform (%d known categories)",
		e.Value, e.Column, e.Known)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnknownCategoryError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("value", e.Value).
		Int("known", e.Known).
		Str("type", "UnknownCategoryError")
}

// NewUnknownCategoryError は新しいUnknownCategoryErrorを作成し、スタックトレースを付与します。
func NewUnknownCategoryError(column, value string, known int) error {
	return errors.WithStack(&UnknownCategoryError{Column: column, Value: value, Known: known})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("houseprice: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は成果物や設定値の検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("houseprice: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ModelError はモデル成果物の構造に関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("houseprice: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("houseprice: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// TypeName returns the name of the most specific structured type found in
// err's chain, for log fields and metrics labels.
func TypeName(err error) string {
	if err == nil {
		return ""
	}
	var (
		unknown    *UnknownCategoryError
		dimension  *DimensionError
		validation *ValidationError
		model      *ModelError
		panicErr   *PanicError
	)
	switch {
	case errors.As(err, &unknown):
		return "UnknownCategoryError"
	case errors.As(err, &dimension):
		return "DimensionError"
	case errors.As(err, &validation):
		return "ValidationError"
	case errors.As(err, &model):
		return "ModelError"
	case errors.As(err, &panicErr):
		return "PanicError"
	}
	switch KindOf(err) {
	case KindModelUnavailable:
		return "ModelUnavailableError"
	case KindInvalidInput:
		return "InvalidInputError"
	case KindPredictionFailed:
		return "PredictionFailedError"
	}
	return "error"
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
