// Package store owns the notes document on disk.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/pathutil"
)

var (
	// ErrNotFound is returned when no note has the requested id.
	ErrNotFound = errors.New("note not found")
	// ErrDuplicateID is returned when adding a note whose id is taken.
	ErrDuplicateID = errors.New("duplicate note id")
)

// Store is the in-memory note set backed by a JSON document. All methods
// are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	path     string
	notes    []note.Note
	index    map[string]int
	lastHash [sha256.Size]byte
	saved    bool

	now             func() time.Time
	misplaceProb    float64
	misplaceRNG     chance.Source
	misplaceAllowed bool
}

// Option configures a Store at Open.
type Option func(*Store)

// WithClock sets the time source used to stamp modifications.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMisplace gives Open a chance p of misplacing the notes file before
// reading it. The file is renamed, not removed.
func WithMisplace(p float64, rng chance.Source) Option {
	return func(s *Store) {
		s.misplaceProb = chance.Clamp01(p)
		s.misplaceRNG = rng
		s.misplaceAllowed = rng != nil
	}
}

type envelope struct {
	Version int               `json:"version"`
	Notes   []json.RawMessage `json:"notes"`
}

type savedEnvelope struct {
	Version int         `json:"version"`
	Notes   []note.Note `json:"notes"`
}

// Open loads the notes document at path. It never fails outright: problems
// are described by the returned LoadReport and the store starts empty.
func Open(path string, opts ...Option) (*Store, LoadReport) {
	s := &Store{
		path:  path,
		index: make(map[string]int),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	report := LoadReport{Path: path}
	if s.misplaceAllowed && s.misplaceProb > 0 && s.misplaceRNG.Float64() < s.misplaceProb {
		moved, err := Misplace(path, s.now())
		switch {
		case err == nil:
			report.Misplaced = moved
			report.Fresh = true
			return s, report
		case !errors.Is(err, fs.ErrNotExist):
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not misplace notes file: %v", err))
		}
	}

	s.load(&report)
	return s, report
}

// Reload replaces the in-memory notes with the current file contents.
func (s *Store) Reload() LoadReport {
	report := LoadReport{Path: s.path}
	s.load(&report)
	return report
}

func (s *Store) load(report *LoadReport) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.reset(nil)
		if errors.Is(err, fs.ErrNotExist) {
			report.Fresh = true
			return
		}
		report.Err = fmt.Errorf("failed to read notes file: %w", err)
		return
	}

	notes, err := decode(data, note.Timestamp(s.now()), report)
	if err != nil {
		s.reset(nil)
		report.Err = err
		return
	}
	s.reset(notes)
	report.Loaded = len(notes)
}

// decode reads either document shape. Records with no readable created_at
// are stamped with loadedAt.
func decode(data []byte, loadedAt time.Time, report *LoadReport) ([]note.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to parse notes list: %w", err)
		}
		report.Legacy = true
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to parse notes document: %w", err)
		}
		if env.Version > constants.CurrentVersion {
			report.Warnings = append(report.Warnings, fmt.Sprintf("notes document version %d is newer than %d", env.Version, constants.CurrentVersion))
		}
		records = env.Notes
	default:
		return nil, errors.New("notes document is neither a list nor an object")
	}

	notes := make([]note.Note, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, raw := range records {
		var n note.Note
		if err := json.Unmarshal(raw, &n); err != nil {
			report.Skipped++
			continue
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = loadedAt
		}
		if n.ModifiedAt.IsZero() || n.ModifiedAt.Before(n.CreatedAt) {
			n.ModifiedAt = n.CreatedAt
		}
		if seen[n.ID] {
			report.Skipped++
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}
	return notes, nil
}

func (s *Store) reset(notes []note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.notes))
	for i, n := range s.notes {
		s.index[n.ID] = i
	}
}

// Save writes every note to disk atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := savedEnvelope{Version: constants.CurrentVersion, Notes: s.notes}
	if doc.Notes == nil {
		doc.Notes = []note.Note{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	data = append(data, '\n')

	if err := pathutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	s.lastHash = sha256.Sum256(data)
	s.saved = true
	return nil
}

// IsOwnWrite reports whether data is exactly what the last Save wrote.
func (s *Store) IsOwnWrite(data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved && sha256.Sum256(data) == s.lastHash
}

// Path returns the notes file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// All returns copies of every note in insertion order.
func (s *Store) All() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]note.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

// Get returns a copy of the note with id.
func (s *Store) Get(id string) (note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return note.Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.notes[i].Clone(), nil
}

// Add inserts n, assigning an id and timestamps when missing.
func (s *Store) Add(n note.Note) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, ok := s.index[n.ID]; ok {
		return note.Note{}, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = note.Timestamp(s.now())
	}
	if n.ModifiedAt.Before(n.CreatedAt) {
		n.ModifiedAt = n.CreatedAt
	}
	n.Tags = note.NormalizeTags(n.Tags)

	s.notes = append(s.notes, n.Clone())
	s.index[n.ID] = len(s.notes) - 1
	return n, nil
}

// Update replaces the stored note with the same id and stamps modified_at.
func (s *Store) Update(n note.Note) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[n.ID]
	if !ok {
		return note.Note{}, fmt.Errorf("%w: %s", ErrNotFound, n.ID)
	}
	n.CreatedAt = s.notes[i].CreatedAt
	n.Tags = note.NormalizeTags(n.Tags)
	n.Touch(s.now())

	s.notes[i] = n.Clone()
	return n, nil
}

// Rewrite replaces the title and content of a note without counting as an
// edit: modified_at is left alone.
func (s *Store) Rewrite(id, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes[i].Title = title
	s.notes[i].Content = content
	return nil
}

// Delete removes the note with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	s.reindex()
	return nil
}
