package root

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/state"
)

func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	s := &state.State{}
	cmd, err := NewCmdRoot(s)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--dont-forget"}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAddThenListAsJSON(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, dir, "add", "Buy", "milk", "--tags", "Errands,home", "--priority", "a", "--due", "2030-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "New note added! Buy milk")

	_, _, err = execute(t, dir, "add", "Call mom")
	require.NoError(t, err)

	out, _, err = execute(t, dir, "list", "--format", "json", "--sort", "priority")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Buy milk", records[0]["title"])
	assert.Equal(t, "A", records[0]["priority"])
	assert.Equal(t, "2030-05-01", records[0]["due_date"])
	assert.Equal(t, []any{"errands", "home"}, records[0]["tags"])
	assert.Equal(t, "Call mom", records[1]["title"])

	_, err = os.Stat(filepath.Join(dir, constants.NotesFile))
	assert.NoError(t, err)
}

func TestListYAMLAndTagFilter(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "add", "Report", "--tags", "work")
	require.NoError(t, err)
	_, _, err = execute(t, dir, "add", "Laundry", "--tags", "home")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "list", "--format", "yaml", "--tag", "work")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Report", records[0]["title"])
}

func TestAddRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, dir, "add")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "add", "x", "--priority", "Z")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "add", "x", "--due", "next blue moon")
	assert.Error(t, err)
}

func TestArchiveHidesNoteUntilAll(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "add", "Old idea")
	require.NoError(t, err)

	_, _, err = execute(t, dir, "archive", "old idea")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Old idea")

	out, _, err = execute(t, dir, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Old idea")

	_, _, err = execute(t, dir, "unarchive", "Old idea")
	require.NoError(t, err)

	out, _, err = execute(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[T] Old idea")
}

func TestRemoveRequiresForce(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "add", "Temp")
	require.NoError(t, err)

	_, _, err = execute(t, dir, "remove", "Temp")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "remove", "Temp", "--force")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "list", "--all")
	require.NoError(t, err)
	assert.NotContains(t, out, "Temp")
}

func TestSettingsGetAndSet(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, dir, "settings", "set", "misspelling_probability", "0.25")
	require.NoError(t, err)
	assert.Contains(t, out, "0.25")

	out, _, err = execute(t, dir, "settings", "get", "misspelling_probability")
	require.NoError(t, err)
	assert.Equal(t, "0.25", strings.TrimSpace(out))

	_, _, err = execute(t, dir, "settings", "set", "misspelling_probability", "2")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "settings", "set", "nope", "1")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, constants.SettingsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"misspelling_probability": 0.25`)
}

func TestShowRawByTitle(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "add", "Recipe", "--content=- [ ] eggs\n- [x] flour")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "show", "recipe", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Recipe")
	assert.Contains(t, out, "**Subtasks:** 1/2")
}

func TestTagsCountsNotes(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "add", "One", "--tags", "work,home")
	require.NoError(t, err)
	_, _, err = execute(t, dir, "add", "Two", "--tags", "work")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "tags")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "work"))
}

func TestVersionSkipsDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	out, _, err := execute(t, dir, "version")
	require.NoError(t, err)
	assert.Equal(t, constants.AppName+" "+constants.Version, strings.TrimSpace(out))

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
