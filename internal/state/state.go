package state

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/config"
	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/memory"
	"github.com/Paintersrp/forgetful/internal/store"
	"github.com/Paintersrp/forgetful/internal/views"
)

// Options control how a session is opened.
type Options struct {
	DataDir    string
	DontForget bool
	// Seed makes the session deterministic when non-zero.
	Seed     uint64
	Sticky   bool
	LogLevel string
	// LogOutput overrides the log file, mostly for tests.
	LogOutput io.Writer
	Now       func() time.Time
}

// State is everything a command needs for one run.
type State struct {
	DataDir     string
	Settings    *config.Manager
	SettingsErr error
	Store       *store.Store
	LoadReport  store.LoadReport
	Session     *memory.Session
	Logger      *log.Logger
	Watcher     *NotesWatcher
	Now         func() time.Time

	logFile *os.File
}

// NewState opens the settings and notes documents in opts.DataDir.
func NewState(opts Options) (*State, error) {
	s := &State{}
	if err := s.Open(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// Open fills s in place so commands built before flag parsing can share it.
func (s *State) Open(opts Options) error {
	dir, err := ResolveDataDir(opts.DataDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	s.DataDir = dir
	s.Now = opts.Now
	if s.Now == nil {
		s.Now = time.Now
	}

	if err := s.openLogger(opts); err != nil {
		return err
	}

	s.Settings, s.SettingsErr = config.Open(filepath.Join(dir, constants.SettingsFile))
	if s.SettingsErr != nil {
		s.Logger.Warn("settings fell back to defaults", "err", s.SettingsErr)
	}
	settings := s.Settings.Settings()

	var rng chance.Source
	if opts.Seed != 0 {
		rng = chance.New(opts.Seed)
	} else {
		rng = chance.NewFromTime(time.Now())
	}

	storeOpts := []store.Option{store.WithClock(s.Now)}
	if !opts.DontForget {
		storeOpts = append(storeOpts, store.WithMisplace(settings.FileForgetProbability, rng))
	}
	s.Store, s.LoadReport = store.Open(filepath.Join(dir, constants.NotesFile), storeOpts...)
	s.logReport(s.LoadReport)

	s.Session = memory.NewSession(
		settings,
		rng,
		memory.WithOverride(opts.DontForget),
		memory.WithSticky(opts.Sticky),
	)
	if opts.DontForget {
		s.Logger.Info("don't-forget override active")
	}
	return nil
}

// ResolveDataDir defaults to the working directory.
func ResolveDataDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory %s: %w", dir, err)
	}
	return abs, nil
}

func (s *State) openLogger(opts Options) error {
	w := opts.LogOutput
	if w == nil {
		f, err := os.OpenFile(filepath.Join(s.DataDir, constants.LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			w = io.Discard
		} else {
			s.logFile = f
			w = f
		}
	}

	level := log.InfoLevel
	if opts.LogLevel != "" {
		if parsed, err := log.ParseLevel(opts.LogLevel); err == nil {
			level = parsed
		}
	}

	s.Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          constants.AppName,
		Level:           level,
	})
	return nil
}

func (s *State) logReport(r store.LoadReport) {
	switch {
	case r.Misplaced != "":
		s.Logger.Warn("notes file misplaced", "path", r.Path, "moved_to", r.Misplaced)
	case r.Err != nil:
		s.Logger.Error("notes file unreadable, starting empty", "path", r.Path, "err", r.Err)
	case r.Fresh:
		s.Logger.Info("no notes file, starting fresh", "path", r.Path)
	default:
		s.Logger.Info("notes loaded", "path", r.Path, "count", r.Loaded, "skipped", r.Skipped, "legacy", r.Legacy)
	}
	for _, w := range r.Warnings {
		s.Logger.Warn(w)
	}
}

// Refresh builds the list for q and writes back any misspellings that the
// settings ask to keep.
func (s *State) Refresh(q views.Query) (views.View, error) {
	v := views.Build(s.Store.All(), q, s.Now(), s.Session)
	if v.ForgottenCount > 0 {
		s.Logger.Debug("notes forgotten this refresh", "count", v.ForgottenCount)
	}
	if len(v.Persist) == 0 {
		return v, nil
	}

	var errs []error
	for _, e := range v.Persist {
		if err := s.Store.Rewrite(e.Note.ID, e.Decision.Title, e.Decision.Content); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.Store.Save(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		s.Logger.Error("failed to persist misspellings", "err", err)
		return v, err
	}
	s.Logger.Debug("persisted misspellings", "count", len(v.Persist))
	return v, nil
}

// CurrentSettings is the saved settings document, before any override.
func (s *State) CurrentSettings() config.Settings {
	return s.Settings.Settings()
}

// UpdateSettings saves next and applies it to the running session.
func (s *State) UpdateSettings(next config.Settings) error {
	if err := s.Settings.Replace(next); err != nil {
		s.Logger.Error("failed to save settings", "err", err)
		return err
	}
	s.Session.SetSettings(s.Settings.Settings())
	return nil
}

// Save flushes notes and settings.
func (s *State) Save() error {
	var errs []error
	if s.Store != nil {
		if err := s.Store.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Settings != nil {
		if err := s.Settings.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if err != nil && s.Logger != nil {
		s.Logger.Error("save failed", "err", err)
	}
	return err
}

// Watch starts watching the notes file for changes made by other programs.
func (s *State) Watch() (*NotesWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}
	w, err := NewNotesWatcher(s.Store.Path(), s.Store.IsOwnWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to create notes watcher: %w", err)
	}
	w.OnChange(func(path string) {
		s.Logger.Info("notes file changed externally", "path", path)
	})
	w.OnClose(func() {
		s.Logger.Debug("notes watcher stopped", "path", s.Store.Path())
	})
	s.Watcher = w
	return w, nil
}

// Close releases the watcher and log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logFile = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
