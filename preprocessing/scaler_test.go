package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerTransform(t *testing.T) {
	tests := []struct {
		name     string
		mean     []float64
		scale    []float64
		withMean bool
		withStd  bool
		X        *mat.Dense
		want     []float64
	}{
		{
			name:     "mean and std",
			mean:     []float64{2, 10},
			scale:    []float64{2, 5},
			withMean: true,
			withStd:  true,
			X:        mat.NewDense(2, 2, []float64{4, 20, 0, 5}),
			want:     []float64{1, 2, -1, -1},
		},
		{
			name:     "std only",
			scale:    []float64{2, 5},
			withMean: false,
			withStd:  true,
			X:        mat.NewDense(1, 2, []float64{4, 20}),
			want:     []float64{2, 4},
		},
		{
			name:     "mean only",
			mean:     []float64{1, 1},
			withMean: true,
			withStd:  false,
			X:        mat.NewDense(1, 2, []float64{4, 20}),
			want:     []float64{3, 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStandardScaler(tt.mean, tt.scale, tt.withMean, tt.withStd)
			if err != nil {
				t.Fatalf("NewStandardScaler() error = %v", err)
			}
			got, err := s.Transform(tt.X)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			r, c := got.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					if math.Abs(got.At(i, j)-tt.want[i*c+j]) > 1e-12 {
						t.Errorf("Transform()[%d,%d] = %v, want %v", i, j, got.At(i, j), tt.want[i*c+j])
					}
				}
			}
		})
	}
}

func TestNewStandardScalerRejectsBadStats(t *testing.T) {
	tests := []struct {
		name  string
		mean  []float64
		scale []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"zero scale", []float64{1}, []float64{0}},
		{"nan mean", []float64{math.NaN()}, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStandardScaler(tt.mean, tt.scale, true, true); err == nil {
				t.Error("NewStandardScaler() expected error")
			}
		})
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	s, err := NewStandardScaler([]float64{0, 0}, []float64{1, 1}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Transform() expected dimension error")
	}
}

func TestMinMaxScalerTransform(t *testing.T) {
	m, err := NewMinMaxScaler([]float64{0, 10}, []float64{10, 10}, [2]float64{0, 1}, false)
	if err != nil {
		t.Fatalf("NewMinMaxScaler() error = %v", err)
	}
	got, err := m.Transform(mat.NewDense(2, 2, []float64{5, 10, 20, 11}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	// 定数列は幅1として扱われる
	want := mat.NewDense(2, 2, []float64{0.5, 0, 2, 1})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Errorf("Transform() = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}

	clipped, err := NewMinMaxScaler([]float64{0}, []float64{10}, [2]float64{-1, 1}, true)
	if err != nil {
		t.Fatal(err)
	}
	got, err = clipped.Transform(mat.NewDense(3, 1, []float64{-5, 5, 50}))
	if err != nil {
		t.Fatal(err)
	}
	want = mat.NewDense(3, 1, []float64{-1, 0, 1})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Errorf("clipped Transform() = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}
}

func TestNewMinMaxScalerRejectsBadStats(t *testing.T) {
	if _, err := NewMinMaxScaler([]float64{1}, []float64{0}, [2]float64{0, 1}, false); err == nil {
		t.Error("expected error for max < min")
	}
	if _, err := NewMinMaxScaler([]float64{0}, []float64{1}, [2]float64{1, 1}, false); err == nil {
		t.Error("expected error for empty feature range")
	}
	if _, err := NewMinMaxScaler([]float64{0, 1}, []float64{1}, [2]float64{0, 1}, false); err == nil {
		t.Error("expected error for length mismatch")
	}
}
