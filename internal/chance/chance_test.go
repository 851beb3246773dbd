package chance

import (
	"math"
	"testing"
	"time"
)

func TestSequenceCyclesAndCountsDraws(t *testing.T) {
	s := NewSequence(0.1, 0.9)

	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	want := []float64{0.1, 0.9, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d = %v, want %v", i, got[i], want[i])
		}
	}

	if s.Draws() != 3 {
		t.Fatalf("expected 3 draws, got %d", s.Draws())
	}
}

func TestSequenceIntNStaysInRange(t *testing.T) {
	s := NewSequence(0, 0.5, 0.999999)

	for _, want := range []int{0, 2, 3} {
		if got := s.IntN(4); got != want {
			t.Fatalf("IntN(4) = %d, want %d", got, want)
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sources with equal seeds diverged at draw %d", i)
		}
	}
}

func TestNeverFailsEveryTrial(t *testing.T) {
	var n Never
	if n.Float64() < 1 {
		t.Fatalf("Never must not draw below 1")
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDays(t *testing.T) {
	if got := Days(7); got != 7*24*time.Hour {
		t.Fatalf("Days(7) = %v", got)
	}
	if got := Days(-3); got != 0 {
		t.Fatalf("Days(-3) = %v, want 0", got)
	}
	if got := Days(1e300); got != time.Duration(math.MaxInt64) {
		t.Fatalf("Days(1e300) should saturate, got %v", got)
	}
	if got := NonNegative(-time.Second); got != 0 {
		t.Fatalf("NonNegative(-1s) = %v", got)
	}
}
