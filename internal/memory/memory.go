// Package memory combines the forgetting and misspelling engines into a
// per-note display decision for one session.
package memory

import (
	"sync"
	"time"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/forget"
	"github.com/Paintersrp/forgetful/internal/misspell"
	"github.com/Paintersrp/forgetful/internal/note"
)

// Decision is what the display layer should do with a note this refresh.
type Decision struct {
	Forgotten  bool
	Title      string
	Content    string
	Misspelled bool
	// Persist is set when the misspelled text should be written back.
	Persist bool
	// Probability is the forget chance the decision was drawn against.
	Probability float64
}

// Decider produces display decisions in two steps. Forget is drawn for
// every note so hidden notes are still counted; Misspell is only run for
// notes that are about to be shown.
type Decider interface {
	Forget(n note.Note, now time.Time) Decision
	Misspell(n note.Note, d Decision) Decision
}

// Session holds the random source and overrides for one run.
type Session struct {
	mu       sync.Mutex
	settings config.Settings
	rng      chance.Source
	override bool
	sticky   bool
	cache    map[stickyKey]bool
}

type stickyKey struct {
	id       string
	modified int64
}

// Option configures a Session.
type Option func(*Session)

// WithOverride disables forgetting and misspelling for the session without
// touching the stored settings.
func WithOverride(on bool) Option {
	return func(s *Session) { s.override = on }
}

// WithSticky keeps a note's forget outcome for the rest of the session
// until the note is modified.
func WithSticky(on bool) Option {
	return func(s *Session) { s.sticky = on }
}

// NewSession builds a session over settings. A nil rng uses Never.
func NewSession(settings config.Settings, rng chance.Source, opts ...Option) *Session {
	if rng == nil {
		rng = chance.Never{}
	}
	s := &Session{
		settings: settings,
		rng:      rng,
		cache:    make(map[stickyKey]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overridden reports whether the don't-forget override is active.
func (s *Session) Overridden() bool {
	return s.override
}

// Settings returns the effective settings, with both engines switched off
// under the override.
func (s *Session) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective()
}

func (s *Session) effective() config.Settings {
	out := s.settings
	if s.override {
		out.ForgettingEnabled = false
		out.MisspellingEnabled = false
	}
	return out
}

// SetSettings swaps in updated settings, dropping any sticky outcomes.
func (s *Session) SetSettings(settings config.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.cache = make(map[stickyKey]bool)
}

// Probability is the forget chance for n at now under the session.
func (s *Session) Probability(n note.Note, now time.Time) float64 {
	return forget.Probability(n, now, s.Settings())
}

// Decide runs the forgetting engine and, for notes that stay visible, the
// misspelling engine over title and content.
func (s *Session) Decide(n note.Note, now time.Time) Decision {
	d := s.Forget(n, now)
	if d.Forgotten {
		return d
	}
	return s.Misspell(n, d)
}

// Forget draws the forget outcome for n. Title and content are passed
// through untouched.
func (s *Session) Forget(n note.Note, now time.Time) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.effective()
	return Decision{
		Title:       n.Title,
		Content:     n.Content,
		Probability: forget.Probability(n, now, settings),
		Forgotten:   s.forgotten(n, now, settings),
	}
}

// Misspell fills the display text of d. Forgotten notes are left as they are.
func (s *Session) Misspell(n note.Note, d Decision) Decision {
	if d.Forgotten {
		return d
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.effective()
	title, persistTitle := misspell.Mutate(n.Title, settings, s.rng)
	content, persistContent := misspell.Mutate(n.Content, settings, s.rng)
	d.Title = title
	d.Content = content
	d.Misspelled = title != n.Title || content != n.Content
	d.Persist = persistTitle || persistContent
	return d
}

func (s *Session) forgotten(n note.Note, now time.Time, settings config.Settings) bool {
	if !s.sticky {
		return forget.ShouldForget(n, now, settings, s.rng)
	}

	key := stickyKey{id: n.ID, modified: n.LastTouched().Unix()}
	if v, ok := s.cache[key]; ok {
		return v
	}
	v := forget.ShouldForget(n, now, settings, s.rng)
	s.cache[key] = v
	return v
}
