package calculator

import (
	"math"
	"testing"
)

func TestSMASeries_WindowExactness(t *testing.T) {
	// closes 1..60: mean of any 50-wide window is easy to state in closed form.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}

	s, err := SMASeries(closes, SMAShortWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Offset != SMAShortWindow-1 {
		t.Fatalf("expected offset %d, got %d", SMAShortWindow-1, s.Offset)
	}
	if got, want := len(s.Values), 11; got != want {
		t.Fatalf("expected %d values, got %d", want, got)
	}
	if math.Abs(s.Values[0]-25.5) > 1e-9 { // mean(1..50)
		t.Errorf("first window: expected 25.5, got %v", s.Values[0])
	}
	if math.Abs(s.Values[10]-35.5) > 1e-9 { // mean(11..60)
		t.Errorf("last window: expected 35.5, got %v", s.Values[10])
	}
}

// Moving one index forward must shift the window by exactly one element:
// the difference between neighbors is (entering - leaving) / window.
func TestSMASeries_SingleStepShift(t *testing.T) {
	closes := []float64{4, 9, 1, 7, 3, 8, 2, 6, 5, 10, 11, 2}
	window := 5
	s, err := SMASeries(closes, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k := 1; k < len(s.Values); k++ {
		i := s.Offset + k
		want := (closes[i] - closes[i-window]) / float64(window)
		got := s.Values[k] - s.Values[k-1]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("step %d: expected delta %v, got %v", k, want, got)
		}
	}
}

func TestSMASeries_ShortInput(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}

	short, err := SMASeries(closes, SMAShortWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !short.Defined() {
		t.Error("60 closes must define SMA50")
	}

	long, err := SMASeries(closes, SMALongWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if long.Defined() {
		t.Error("60 closes must leave SMA200 empty")
	}
}

func TestSMASeries_AlignedAt(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	s, err := SMASeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.At(1); ok {
		t.Error("index 1 must be undefined for window 3")
	}
	v, ok := s.At(2)
	if !ok || math.Abs(v-2.0) > 1e-9 {
		t.Errorf("index 2: expected 2.0, got %v (ok=%v)", v, ok)
	}
	v, ok = s.At(4)
	if !ok || math.Abs(v-4.0) > 1e-9 {
		t.Errorf("index 4: expected 4.0, got %v (ok=%v)", v, ok)
	}
}
