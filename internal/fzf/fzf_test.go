package fzf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/forgetful/internal/memory"
	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/internal/views"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func entry(id, title, content string) views.Entry {
	n := note.New(title, content, now.Add(-time.Hour))
	n.ID = id
	return views.Entry{Note: n, Decision: memory.Decision{Title: title, Content: content, Probability: 0.25}}
}

func TestFindMatchesUniqueIDPrefixWithoutPrompt(t *testing.T) {
	f := NewFuzzyFinder([]views.Entry{
		entry("abc123", "Groceries", ""),
		entry("abd456", "Dentist", ""),
	}, now, "")

	e, err := f.Find("abd")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", e.Note.Title)

	e, err = f.Find("groceries")
	require.NoError(t, err)
	assert.Equal(t, "abc123", e.Note.ID)
}

func TestFindRejectsEmptyList(t *testing.T) {
	_, err := NewFuzzyFinder(nil, now, "").Find("x")
	assert.Error(t, err)
}

func TestDocumentUsesDisplayedText(t *testing.T) {
	e := entry("abc123", "Groceries", "- [ ] milk\n- [x] eggs")
	e.Decision.Title = "Grocreies"

	doc := Document(e, now)
	assert.True(t, strings.HasPrefix(doc, "# Grocreies\n"))
	assert.Contains(t, doc, "**Subtasks:** 1/2")
	assert.Contains(t, doc, "**Forget chance:** 25%")
	assert.Contains(t, doc, "1h ago")
}
