package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Paintersrp/forgetful/internal/constants"
)

// Kind describes how a setting is edited.
type Kind int

const (
	KindBool Kind = iota
	KindProbability
	KindDays
	KindChoice
)

// Field describes one user facing setting.
type Field struct {
	Key     string
	Label   string
	Kind    Kind
	Choices []string

	get func(Settings) string
	set func(*Settings, string) error
}

// Value renders the current value of the field in s.
func (f Field) Value(s Settings) string {
	return f.get(s)
}

// Fields lists every editable setting in display order.
var Fields = []Field{
	boolField("forgetting_enabled", "Forgetting", func(s *Settings) *bool { return &s.ForgettingEnabled }),
	daysField("forget_delay_days", "Forget grace period (days)", func(s *Settings) *float64 { return &s.ForgetDelayDays }),
	daysField("forget_window_days", "Forget ramp window (days)", func(s *Settings) *float64 { return &s.ForgetWindowDays }),
	probField("forget_base_probability", "Forget probability", func(s *Settings) *float64 { return &s.ForgetBaseProbability }),
	boolField("misspelling_enabled", "Misspelling", func(s *Settings) *bool { return &s.MisspellingEnabled }),
	probField("misspelling_probability", "Misspelling probability", func(s *Settings) *float64 { return &s.MisspellingProbability }),
	boolField("misspelling_persist", "Save misspellings", func(s *Settings) *bool { return &s.MisspellingPersist }),
	boolField("show_ascii_art", "Show Manager-chan", func(s *Settings) *bool { return &s.ShowASCIIArt }),
	{
		Key:     "default_sort",
		Label:   "Default sort",
		Kind:    KindChoice,
		Choices: constants.SortKeys,
		get:     func(s Settings) string { return s.DefaultSort },
		set: func(s *Settings, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if !constants.ValidSortKey(v) {
				return &ValueError{Key: "default_sort", Value: v, Reason: "expected one of " + strings.Join(constants.SortKeys, ", ")}
			}
			s.DefaultSort = v
			return nil
		},
	},
	probField("file_forget_probability", "Misplace notes file probability", func(s *Settings) *float64 { return &s.FileForgetProbability }),
}

// Lookup finds the field for key.
func Lookup(key string) (Field, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range Fields {
		if f.Key == key {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Get renders the value of key in s.
func (s Settings) Get(key string) (string, error) {
	f, err := Lookup(key)
	if err != nil {
		return "", err
	}
	return f.get(s), nil
}

// Set parses value and assigns it to key. s is left unchanged on error.
func (s *Settings) Set(key, value string) error {
	f, err := Lookup(key)
	if err != nil {
		return err
	}
	next := *s
	if err := f.set(&next, value); err != nil {
		return err
	}
	next.Normalize()
	*s = next
	return nil
}

func boolField(key, label string, ptr func(*Settings) *bool) Field {
	return Field{
		Key:   key,
		Label: label,
		Kind:  KindBool,
		get:   func(s Settings) string { return strconv.FormatBool(*ptr(&s)) },
		set: func(s *Settings, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "on", "1":
				*ptr(s) = true
			case "false", "no", "off", "0":
				*ptr(s) = false
			default:
				return &ValueError{Key: key, Value: v, Reason: "expected true or false"}
			}
			return nil
		},
	}
}

func probField(key, label string, ptr func(*Settings) *float64) Field {
	return Field{
		Key:   key,
		Label: label,
		Kind:  KindProbability,
		get:   func(s Settings) string { return strconv.FormatFloat(*ptr(&s), 'f', -1, 64) },
		set: func(s *Settings, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0 || f > 1 {
				return &ValueError{Key: key, Value: v, Reason: "expected a number between 0 and 1"}
			}
			*ptr(s) = f
			return nil
		},
	}
}

func daysField(key, label string, ptr func(*Settings) *float64) Field {
	return Field{
		Key:   key,
		Label: label,
		Kind:  KindDays,
		get:   func(s Settings) string { return strconv.FormatFloat(*ptr(&s), 'f', -1, 64) },
		set: func(s *Settings, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0 {
				return &ValueError{Key: key, Value: v, Reason: "expected a non-negative number of days"}
			}
			*ptr(s) = f
			return nil
		},
	}
}
