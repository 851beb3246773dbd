// Package chance holds the random sources and clamping helpers shared by the
// forgetting and misspelling engines. Engines never reach for a global
// generator; every draw goes through a Source handed in by the caller.
package chance

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the engines draw from.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

// New returns a deterministic PCG-backed source for the given seed.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewFromTime seeds a source from the wall clock. Only the CLI layer calls
// this; tests always use New or a Sequence.
func NewFromTime(now time.Time) Source {
	return New(uint64(now.UnixNano()))
}

// Sequence replays a fixed list of draws, cycling when exhausted.
type Sequence struct {
	values []float64
	next   int
	draws  int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: append([]float64(nil), values...)}
}

func (s *Sequence) Float64() float64 {
	s.draws++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// IntN maps the next float draw onto [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.draws
}

// Never is a source whose float draws are 1, which no probability in [0, 1]
// exceeds, so no Bernoulli trial against it succeeds.
type Never struct{}

func (Never) Float64() float64 { return 1 }
func (Never) IntN(int) int     { return 0 }

// Clamp01 limits p to [0, 1]. NaN clamps to 0.
func Clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// NonNegative treats negative durations as zero.
func NonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Days converts a fractional number of days to a duration. Negative and NaN
// inputs give zero; values beyond the representable range saturate.
func Days(days float64) time.Duration {
	if math.IsNaN(days) || days <= 0 {
		return 0
	}
	limit := float64(math.MaxInt64) / float64(24*time.Hour)
	if days >= limit {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(days * float64(24*time.Hour))
}
