package constants

const (
	Version        = `0.3.0`
	AppName        = `forgetful`
	NotesFile      = `manager_chan_notes.json`
	SettingsFile   = `manager_chan_settings.json`
	LogFile        = `forgetful.log`
	EnvPrefix      = `FORGETFUL`
	CurrentVersion = 1
)

// Defaults for a fresh settings document.
const (
	DefaultForgetDelayDays        = 7
	DefaultForgetWindowDays       = 14
	DefaultForgetBaseProbability  = 0.15
	DefaultMisspellingProbability = 0.10
	DefaultSort                   = "priority"
)

// SortKeys are the accepted note orderings.
var SortKeys = []string{
	"priority",
	"due_date",
	"created_at",
	"modified_at",
	"status",
	"title",
}

// ValidSortKey reports whether key is one of SortKeys.
func ValidSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Messages shown by Manager-chan in the status bar.
var Messages = map[string]string{
	"welcome":            "Let's get things organized... I hope!",
	"quit":               "Saving (I think!)... Bye bye!",
	"forgot_items":       "Loaded %d notes... but %d seemed to vanish! Gomen!",
	"loaded":             "Loaded %d notes!",
	"forgot_file":        "EHHHH?! Where did I put the notes file?! (%s) I can't find it! Starting over... Gomen!",
	"misspelled":         "(Huh? Did I write that correctly...?)",
	"fresh":              "No notes file found at '%s'. Starting fresh!",
	"corrupt":            "Notes file '%s' is corrupted or invalid (%v). Starting fresh!",
	"saved":              "Saved %d notes! Phew!",
	"error":              "Waaah! Something went wrong: %v",
	"empty":              "List is empty! Or I forgot everything...",
	"no_results":         "No results for '%s'",
	"no_matches":         "No notes match filters.",
	"status_update":      "Status changed to %s",
	"priority_update":    "Priority changed to %s",
	"note_added":         "New note added!",
	"note_updated":       "Note updated!",
	"note_deleted":       "Note deleted!",
	"edit_cancelled":     "Edit cancelled.",
	"delete_failed":      "Failed to delete note (already gone?).",
	"confirm_delete":     "Really delete '%s'? This can't be undone (probably)! (y/n)",
	"settings_saved":     "Settings saved!",
	"settings_error":     "Settings error: %v. Not saved.",
	"sort_applied":       "Sorted by %s",
	"filters_applied":    "Filters applied: %s",
	"filters_cleared":    "Filters and search cleared.",
	"search_applied":     "Searching for: '%s'",
	"search_cleared":     "Search cleared.",
	"search_cancelled":   "Search cancelled (empty).",
	"text_empty_error":   "Note text cannot be empty!",
	"due_date_error":     "Invalid due date format (use YYYY-MM-DD). Ignoring.",
	"copied":             "Copied note to clipboard!",
	"reloaded":           "Someone changed my notes file! Reloaded %d notes.",
	"showing_forgotten":  "Showing everything, even the stuff I forgot.",
	"hiding_forgotten":   "Back to what I remember.",
	"dont_forget_active": "Trying EXTRA hard today. Nothing will be forgotten!",
}

const HelpText = `Manager-chan's Forgetful Notes Help
-------------------------------------
Navigation:
  Up/Down: Select note
  Enter/Tab: Toggle details pane
  Ctrl+C / Ctrl+Q: Quit

Actions:
  a: Add new note
  e: Edit selected note
  d: Delete selected note
  space: Cycle status (Todo > In Prog > Done > Archived)
  p: Cycle priority (None > A > B > C)
  y: Copy note to clipboard

View Control:
  s: Change Sort order
  f: Filter notes (or clear filters)
  /: Search notes (or clear search)
  F: Show forgotten and archived notes

Other:
  h / ?: Show this help
  Ctrl+S: Open Settings panel
-------------------------------------
Manager-chan tries her best, but sometimes... she forgets! Ehehe...`
