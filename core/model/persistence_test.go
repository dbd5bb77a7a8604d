package model

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

type doc struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"model.json":     FormatJSON,
		"model.gob":      FormatGob,
		"MODEL.GOB":      FormatGob,
		"model":          FormatJSON,
		"dir.gob/x.json": FormatJSON,
	}
	for name, want := range tests {
		if got := FormatFor(name); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSaveLoadModel(t *testing.T) {
	for _, ext := range []string{".json", ".gob"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "artifact"+ext)
			in := doc{Name: "x", Values: []float64{1.5, 2}}
			if err := SaveModel(&in, path); err != nil {
				t.Fatalf("SaveModel() error = %v", err)
			}
			var out doc
			if err := LoadModel(&out, path); err != nil {
				t.Fatalf("LoadModel() error = %v", err)
			}
			if out.Name != in.Name || len(out.Values) != 2 || out.Values[0] != 1.5 {
				t.Errorf("LoadModel() = %+v, want %+v", out, in)
			}
		})
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	var out doc
	err := LoadModel(&out, filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadModel() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadModelFromReaderRejectsUnknownFields(t *testing.T) {
	var out doc
	err := LoadModelFromReader(&out, strings.NewReader(`{"name":"x","extra":1}`), FormatJSON)
	if err == nil {
		t.Error("LoadModelFromReader() expected error for unknown field")
	}

	var buf bytes.Buffer
	if err := SaveModelToWriter(&doc{Name: "y"}, &buf, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if err := LoadModelFromReader(&out, &buf, FormatJSON); err != nil || out.Name != "y" {
		t.Errorf("LoadModelFromReader() = %+v, %v", out, err)
	}
}
