package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/pathutil"
)

// Settings is the persisted behaviour toggles document.
type Settings struct {
	ForgettingEnabled      bool    `json:"forgetting_enabled"      mapstructure:"forgetting_enabled"`
	ForgetDelayDays        float64 `json:"forget_delay_days"       mapstructure:"forget_delay_days"`
	ForgetWindowDays       float64 `json:"forget_window_days"      mapstructure:"forget_window_days"`
	ForgetBaseProbability  float64 `json:"forget_base_probability" mapstructure:"forget_base_probability"`
	MisspellingEnabled     bool    `json:"misspelling_enabled"     mapstructure:"misspelling_enabled"`
	MisspellingProbability float64 `json:"misspelling_probability" mapstructure:"misspelling_probability"`
	MisspellingPersist     bool    `json:"misspelling_persist"     mapstructure:"misspelling_persist"`
	ShowASCIIArt           bool    `json:"show_ascii_art"          mapstructure:"show_ascii_art"`
	DefaultSort            string  `json:"default_sort"            mapstructure:"default_sort"`
	FileForgetProbability  float64 `json:"file_forget_probability" mapstructure:"file_forget_probability"`
	Version                int     `json:"version"                 mapstructure:"version"`
}

// Defaults returns the settings used when no document exists.
func Defaults() Settings {
	return Settings{
		ForgettingEnabled:      true,
		ForgetDelayDays:        constants.DefaultForgetDelayDays,
		ForgetWindowDays:       constants.DefaultForgetWindowDays,
		ForgetBaseProbability:  constants.DefaultForgetBaseProbability,
		MisspellingEnabled:     true,
		MisspellingProbability: constants.DefaultMisspellingProbability,
		MisspellingPersist:     false,
		ShowASCIIArt:           true,
		DefaultSort:            constants.DefaultSort,
		FileForgetProbability:  0,
		Version:                constants.CurrentVersion,
	}
}

// legacyKeys maps older setting names onto their current key.
var legacyKeys = map[string]string{
	"forget_enabled":             "forgetting_enabled",
	"misspell_enabled":           "misspelling_enabled",
	"misspell_probability":       "misspelling_probability",
	"misspell_saves_permanently": "misspelling_persist",
	"show_manager_chan":          "show_ascii_art",
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("forgetting_enabled", d.ForgettingEnabled)
	v.SetDefault("forget_delay_days", d.ForgetDelayDays)
	v.SetDefault("forget_window_days", d.ForgetWindowDays)
	v.SetDefault("forget_base_probability", d.ForgetBaseProbability)
	v.SetDefault("misspelling_enabled", d.MisspellingEnabled)
	v.SetDefault("misspelling_probability", d.MisspellingProbability)
	v.SetDefault("misspelling_persist", d.MisspellingPersist)
	v.SetDefault("show_ascii_art", d.ShowASCIIArt)
	v.SetDefault("default_sort", d.DefaultSort)
	v.SetDefault("file_forget_probability", d.FileForgetProbability)
	v.SetDefault("version", d.Version)
}

// Load reads the settings document at path. Missing keys take their
// defaults. A missing file yields defaults with no error; an unreadable or
// malformed file yields defaults and a *LoadError describing the problem.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), &LoadError{Path: path, Err: err}
	}

	for legacy, key := range legacyKeys {
		if !v.InConfig(key) && v.InConfig(legacy) {
			v.Set(key, v.Get(legacy))
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Defaults(), &LoadError{Path: path, Err: err}
	}

	s.Normalize()
	return s, nil
}

// Save writes s to path atomically as indented JSON.
func Save(path string, s Settings) error {
	s.Normalize()
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := pathutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Normalize clamps probabilities into [0,1], durations to be non-negative
// and replaces an unknown sort key with the default.
func (s *Settings) Normalize() {
	s.ForgetBaseProbability = chance.Clamp01(s.ForgetBaseProbability)
	s.MisspellingProbability = chance.Clamp01(s.MisspellingProbability)
	s.FileForgetProbability = chance.Clamp01(s.FileForgetProbability)
	s.ForgetDelayDays = nonNegativeDays(s.ForgetDelayDays)
	s.ForgetWindowDays = nonNegativeDays(s.ForgetWindowDays)
	if !constants.ValidSortKey(s.DefaultSort) {
		s.DefaultSort = constants.DefaultSort
	}
	s.Version = constants.CurrentVersion
}

func nonNegativeDays(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return d
}

// ForgetDelay is the grace period before a note may be forgotten.
func (s Settings) ForgetDelay() time.Duration {
	return chance.Days(s.ForgetDelayDays)
}

// ForgetWindow is the span over which the forget probability ramps up.
func (s Settings) ForgetWindow() time.Duration {
	return chance.Days(s.ForgetWindowDays)
}
