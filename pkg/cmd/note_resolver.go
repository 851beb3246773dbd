package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/state"
	"github.com/Paintersrp/forgetful/internal/store"
)

// ErrAmbiguous is returned when an argument matches more than one note.
var ErrAmbiguous = errors.New("more than one note matches")

// ResolveNote finds a stored note by full id, unique id prefix or exact
// title, ignoring case.
func ResolveNote(s *state.State, arg string) (note.Note, error) {
	if s == nil || s.Store == nil {
		return note.Note{}, fmt.Errorf("state is not initialized")
	}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return note.Note{}, fmt.Errorf("a note id or title is required")
	}

	if n, err := s.Store.Get(arg); err == nil {
		return n, nil
	}

	lower := strings.ToLower(arg)
	var byPrefix, byTitle []note.Note
	for _, n := range s.Store.All() {
		if strings.HasPrefix(strings.ToLower(n.ID), lower) {
			byPrefix = append(byPrefix, n)
		}
		if strings.ToLower(n.Title) == lower {
			byTitle = append(byTitle, n)
		}
	}

	for _, candidates := range [][]note.Note{byPrefix, byTitle} {
		switch len(candidates) {
		case 0:
			continue
		case 1:
			return candidates[0], nil
		default:
			return note.Note{}, fmt.Errorf("%w %q", ErrAmbiguous, arg)
		}
	}

	return note.Note{}, fmt.Errorf("%w: %q", store.ErrNotFound, arg)
}
