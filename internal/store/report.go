package store

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// LoadReport describes what happened when the notes document was read.
type LoadReport struct {
	Path      string
	Loaded    int
	Skipped   int
	Fresh     bool
	Legacy    bool
	Misplaced string
	Warnings  []string
	Err       error
}

// OK reports whether the document was read without a fatal problem.
func (r LoadReport) OK() bool {
	return r.Err == nil
}

func (r LoadReport) String() string {
	var parts []string
	switch {
	case r.Misplaced != "":
		parts = append(parts, fmt.Sprintf("notes file misplaced to %s", r.Misplaced))
	case r.Err != nil:
		parts = append(parts, fmt.Sprintf("notes file %s unreadable: %v", r.Path, r.Err))
	case r.Fresh:
		parts = append(parts, fmt.Sprintf("no notes file at %s", r.Path))
	default:
		parts = append(parts, fmt.Sprintf("loaded %d notes from %s", r.Loaded, r.Path))
	}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d bad records", r.Skipped))
	}
	if r.Legacy {
		parts = append(parts, "legacy list format")
	}
	parts = append(parts, r.Warnings...)
	return strings.Join(parts, "; ")
}

// MisplacedSuffix marks a notes file that was renamed out of the way.
const MisplacedSuffix = ".forgotten_"

// Misplace renames the file at path to <path>.forgotten_<unix> and returns
// the new location.
func Misplace(path string, now time.Time) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	target := fmt.Sprintf("%s%s%d", path, MisplacedSuffix, now.Unix())
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("failed to misplace %s: %w", path, err)
	}
	return target, nil
}
