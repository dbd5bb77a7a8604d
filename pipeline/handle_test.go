package pipeline

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/YuminosukeSato/houseprice/core/model"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
)

func writeArtifact(t *testing.T, a *Artifact, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := model.SaveModel(a, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"model.json", "model.gob"} {
		t.Run(name, func(t *testing.T) {
			logger, _ := log.NewTestLogger(log.LevelDebug)
			h := Load(writeArtifact(t, smallArtifact(), name), WithLogger(logger), WithExpectedColumns([]string{"sqft_living", "city"}))
			if !h.Available() {
				t.Fatalf("Load() unavailable: %v", h.Err())
			}
			if h.Err() != nil {
				t.Errorf("Err() = %v, want nil", h.Err())
			}
			if h.CheckReport().Rows != 2 {
				t.Errorf("CheckReport().Rows = %d, want 2", h.CheckReport().Rows)
			}
			if _, err := h.Pipeline(); err != nil {
				t.Errorf("Pipeline() error = %v", err)
			}
			if !logger.ContainsMessage("Model artifact loaded") {
				t.Error("load success was not logged")
			}
			if !logger.ContainsField(log.ModelNameKey, "small") {
				t.Error("model name was not logged")
			}
		})
	}
}

func TestLoadUnavailable(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`{"format_version": "1", `), 0o600); err != nil {
		t.Fatal(err)
	}
	bad := smallArtifact()
	bad.Checks[0].Raw = 99

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), DefaultPath)},
		{"corrupt file", corrupt},
		{"failed self-check", writeArtifact(t, bad, "bad.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := log.NewTestLogger(log.LevelDebug)
			h := Load(tt.path, WithLogger(logger))
			if h.Available() {
				t.Fatal("Load() returned an available handle")
			}
			_, err := h.Pipeline()
			if !errors.Is(err, errors.ErrModelUnavailable) {
				t.Errorf("Pipeline() error = %v, want ErrModelUnavailable", err)
			}
			if errors.KindOf(h.Err()) != errors.KindModelUnavailable {
				t.Errorf("KindOf(Err()) = %v", errors.KindOf(h.Err()))
			}
			if h.Path() != tt.path {
				t.Errorf("Path() = %q, want %q", h.Path(), tt.path)
			}
			if !logger.ContainsMessage("Model artifact unavailable") {
				t.Error("unavailability was not logged")
			}
		})
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	if h.Available() {
		t.Error("nil handle reported available")
	}
	if _, err := h.Pipeline(); !errors.Is(err, errors.ErrModelUnavailable) {
		t.Errorf("Pipeline() error = %v", err)
	}
}

func TestLoaderLoadsOnce(t *testing.T) {
	path := writeArtifact(t, smallArtifact(), "model.json")
	logger, _ := log.NewTestLogger(log.LevelDebug)
	l := NewLoader(path, WithLogger(logger))

	var wg sync.WaitGroup
	handles := make([]*Handle, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = l.Handle()
		}(i)
	}
	wg.Wait()

	for i, h := range handles {
		if h != handles[0] {
			t.Fatalf("Handle() #%d returned a different handle", i)
		}
	}

	// The file is no longer read after the first load.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !l.Handle().Available() {
		t.Error("Handle() reloaded the artifact")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	loads := 0
	for _, e := range entries {
		if e["message"] == "Model artifact loaded" {
			loads++
		}
	}
	if loads != 1 {
		t.Errorf("artifact loaded %d times, want 1", loads)
	}
}

func TestNewLoaderDefaultPath(t *testing.T) {
	if l := NewLoader(""); l.path != DefaultPath {
		t.Errorf("NewLoader(\"\").path = %q, want %q", l.path, DefaultPath)
	}
}
