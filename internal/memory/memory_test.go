package memory

import (
	"testing"
	"time"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/note"
)

const day = 24 * time.Hour

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func oldNote(title, content string) note.Note {
	return note.New(title, content, now.Add(-90*day))
}

func aggressive() config.Settings {
	s := config.Defaults()
	s.ForgetDelayDays = 1
	s.ForgetWindowDays = 0
	s.ForgetBaseProbability = 1
	s.MisspellingProbability = 1
	s.MisspellingPersist = true
	return s
}

func TestDecideForgetsWithoutMisspelling(t *testing.T) {
	rng := chance.NewSequence(0)
	s := NewSession(aggressive(), rng)

	d := s.Decide(oldNote("hello", "world"), now)
	if !d.Forgotten {
		t.Fatalf("expected note to be forgotten")
	}
	if d.Misspelled || d.Persist {
		t.Fatalf("forgotten notes are not misspelled: %+v", d)
	}
	if rng.Draws() != 1 {
		t.Fatalf("expected a single forget draw, got %d", rng.Draws())
	}
}

func TestDecideMisspellsVisibleNotes(t *testing.T) {
	settings := aggressive()
	settings.ForgettingEnabled = false
	s := NewSession(settings, chance.NewSequence(0))

	d := s.Decide(oldNote("hello", ""), now)
	if d.Forgotten {
		t.Fatalf("forgetting is disabled")
	}
	if !d.Misspelled || !d.Persist {
		t.Fatalf("expected a persisted misspelling, got %+v", d)
	}
	if d.Title == "hello" {
		t.Fatalf("expected title to change")
	}
	if d.Content != "" {
		t.Fatalf("empty content must stay empty, got %q", d.Content)
	}
}

func TestOverrideDisablesBothEngines(t *testing.T) {
	rng := chance.NewSequence(0)
	s := NewSession(aggressive(), rng, WithOverride(true))

	n := oldNote("hello", "world")
	d := s.Decide(n, now)
	if d.Forgotten || d.Misspelled || d.Persist {
		t.Fatalf("override must leave the note untouched: %+v", d)
	}
	if d.Title != n.Title || d.Content != n.Content {
		t.Fatalf("override changed text: %+v", d)
	}
	if d.Probability != 0 {
		t.Fatalf("expected zero probability under override, got %v", d.Probability)
	}
	if rng.Draws() != 0 {
		t.Fatalf("expected no draws under override, got %d", rng.Draws())
	}
	if !s.Overridden() {
		t.Fatalf("expected Overridden to report the override")
	}
}

func TestRedrawIsTheDefault(t *testing.T) {
	settings := aggressive()
	settings.MisspellingEnabled = false
	settings.ForgetBaseProbability = 0.5
	s := NewSession(settings, chance.NewSequence(0.1, 0.9))

	n := oldNote("title", "")
	first := s.Decide(n, now).Forgotten
	second := s.Decide(n, now).Forgotten
	if !first || second {
		t.Fatalf("expected independent draws (true, false), got (%v, %v)", first, second)
	}
}

func TestStickyKeepsOutcomeUntilModified(t *testing.T) {
	settings := aggressive()
	settings.MisspellingEnabled = false
	settings.ForgetBaseProbability = 0.5
	rng := chance.NewSequence(0.1, 0.9)
	s := NewSession(settings, rng, WithSticky(true))

	n := oldNote("title", "")
	for i := 0; i < 3; i++ {
		if !s.Decide(n, now).Forgotten {
			t.Fatalf("refresh %d: sticky outcome changed", i)
		}
	}
	if rng.Draws() != 1 {
		t.Fatalf("expected one draw, got %d", rng.Draws())
	}

	n.Touch(now.Add(-30 * day))
	if s.Decide(n, now).Forgotten {
		t.Fatalf("expected a modified note to be redrawn")
	}
}

func TestNilSourceNeverFires(t *testing.T) {
	s := NewSession(aggressive(), nil)
	d := s.Decide(oldNote("hello", "world"), now)
	if d.Forgotten || d.Misspelled {
		t.Fatalf("expected Never source to skip both engines: %+v", d)
	}
}

func TestForgetDrawsOnlyTheForgetOutcome(t *testing.T) {
	settings := aggressive()
	settings.ForgettingEnabled = false
	rng := chance.NewSequence(0)
	s := NewSession(settings, rng)

	n := oldNote("hello", "world")
	d := s.Forget(n, now)
	if d.Forgotten || d.Misspelled || d.Persist {
		t.Fatalf("expected an untouched decision, got %+v", d)
	}
	if d.Title != "hello" || d.Content != "world" {
		t.Fatalf("Forget must pass text through, got %q / %q", d.Title, d.Content)
	}
	if rng.Draws() != 0 {
		t.Fatalf("expected no draws with forgetting disabled, got %d", rng.Draws())
	}

	d = s.Misspell(n, d)
	if !d.Misspelled || !d.Persist {
		t.Fatalf("expected Misspell to fill the display text, got %+v", d)
	}
}
