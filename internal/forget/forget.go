// Package forget decides whether an aging note slips out of view.
//
// A note is safe for a grace period after its last modification. After that
// the chance of forgetting it ramps linearly from zero up to the configured
// base probability over the ramp window, and stays there.
package forget

import (
	"time"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/note"
)

// Age is how long ago n was last touched, never negative.
func Age(n note.Note, now time.Time) time.Duration {
	return chance.NonNegative(now.Sub(n.LastTouched()))
}

// Ramp scales elapsed time past the grace period into [0,1]. A zero window
// means the ramp is saturated the moment the grace period ends.
func Ramp(elapsed, window time.Duration) float64 {
	elapsed = chance.NonNegative(elapsed)
	window = chance.NonNegative(window)
	if window == 0 {
		return 1
	}
	return chance.Clamp01(float64(elapsed) / float64(window))
}

// Probability is the effective chance that n is forgotten at now.
func Probability(n note.Note, now time.Time, s config.Settings) float64 {
	if !s.ForgettingEnabled {
		return 0
	}

	age := Age(n, now)
	delay := chance.NonNegative(s.ForgetDelay())
	if age < delay {
		return 0
	}

	return chance.Clamp01(s.ForgetBaseProbability) * Ramp(age-delay, s.ForgetWindow())
}

// ShouldForget draws once from rng and reports whether n is forgotten.
// Disabled settings and notes inside the grace period consume no draw.
func ShouldForget(n note.Note, now time.Time, s config.Settings, rng chance.Source) bool {
	if !s.ForgettingEnabled {
		return false
	}
	if Age(n, now) < chance.NonNegative(s.ForgetDelay()) {
		return false
	}

	p := Probability(n, now, s)
	return rng.Float64() < p
}
