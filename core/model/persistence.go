package model

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format は成果物ファイルのエンコーディング
type Format string

const (
	// FormatJSON はJSON形式（デフォルト）
	FormatJSON Format = "json"
	// FormatGob はencoding/gob形式
	FormatGob Format = "gob"
)

// FormatFor はファイル拡張子からエンコーディングを判定する
func FormatFor(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".gob") {
		return FormatGob
	}
	return FormatJSON
}

// LoadModel はファイルから成果物を読み込む
//
// パラメータ:
//   - v: 読み込み先（ポインタ）
//   - filename: 読み込み元のファイルパス。拡張子でエンコーディングを判定する
//
// ファイルが存在しない場合は os.ErrNotExist をラップしたエラーを返す。
func LoadModel(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadModelFromReader(v, file, FormatFor(filename))
}

// LoadModelFromReader はio.Readerから成果物を読み込む
func LoadModelFromReader(v interface{}, r io.Reader, format Format) error {
	switch format {
	case FormatGob:
		if err := gob.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode model: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode model: %w", err)
		}
	}
	return nil
}

// SaveModel は成果物をファイルに保存する（ツール・テスト用）
func SaveModel(v interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return SaveModelToWriter(v, file, FormatFor(filename))
}

// SaveModelToWriter は成果物をio.Writerに保存する
func SaveModelToWriter(v interface{}, w io.Writer, format Format) error {
	switch format {
	case FormatGob:
		if err := gob.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
	}
	return nil
}
