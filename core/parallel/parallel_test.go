package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct{ items, workers int }{
		{0, 4}, {1, 4}, {7, 3}, {100, 0}, {5, 10},
	} {
		seen := make([]int32, tc.items)
		Parallelize(tc.items, tc.workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, n := range seen {
			if n != 1 {
				t.Errorf("items=%d workers=%d: index %d visited %d times", tc.items, tc.workers, i, n)
			}
		}
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 10, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestMap(t *testing.T) {
	out := make([]int, 50)
	err := Map(len(out), 4, func(i int) error {
		out[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestMapReturnsLowestIndexError(t *testing.T) {
	errLow := errors.New("low")
	errHigh := errors.New("high")
	var visited int32
	err := Map(40, 0, func(i int) error {
		atomic.AddInt32(&visited, 1)
		switch i {
		case 7:
			return errLow
		case 30:
			return errHigh
		}
		return nil
	})
	if !errors.Is(err, errLow) {
		t.Errorf("Map() error = %v, want %v", err, errLow)
	}
	if visited != 40 {
		t.Errorf("visited %d indices, want 40", visited)
	}
}
