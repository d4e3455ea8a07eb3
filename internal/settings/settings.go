// Package settings persists user preferences (timer cadence, difficulty
// preset, breathing pattern) as a JSON blob in the per-user data directory.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/focusflow/internal/config"
)

// ItemKey is the storage key of the settings blob.
const ItemKey = "settings"

// ErrUnknownKey is returned by Get and Set for an unrecognised setting name.
var ErrUnknownKey = errors.New("settings: unknown key")

// Backend stores opaque items by key. *gdata.Manager implements it.
type Backend interface {
	ItemExists(itemKey string) bool
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
	DeleteItem(itemKey string) error
}

// Settings are user overrides. Zero values mean "not set" and leave the
// config file value in effect.
type Settings struct {
	FocusMinutes      int    `json:"focusMinutes,omitempty"`
	ShortBreakMinutes int    `json:"shortBreakMinutes,omitempty"`
	LongBreakMinutes  int    `json:"longBreakMinutes,omitempty"`
	LongBreakEvery    int    `json:"longBreakEvery,omitempty"`
	AutoStart         *bool  `json:"autoStart,omitempty"`
	Preset            string `json:"preset,omitempty"`
	BreathPattern     string `json:"breathPattern,omitempty"`
}

// Store loads and saves Settings through a Backend.
type Store struct {
	backend Backend
}

// Open opens the per-user data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("settings: open data dir: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps a backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Load returns the saved settings, or zero Settings if none were saved.
func (s *Store) Load() (Settings, error) {
	if !s.backend.ItemExists(ItemKey) {
		return Settings{}, nil
	}
	data, err := s.backend.LoadItem(ItemKey)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load: %w", err)
	}
	if len(data) == 0 {
		return Settings{}, nil
	}

	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("settings: parse: %w", err)
	}
	return st, nil
}

// Save writes the settings.
func (s *Store) Save(st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.backend.SaveItem(ItemKey, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Reset deletes the saved settings.
func (s *Store) Reset() error {
	if !s.backend.ItemExists(ItemKey) {
		return nil
	}
	if err := s.backend.DeleteItem(ItemKey); err != nil {
		return fmt.Errorf("settings: reset: %w", err)
	}
	return nil
}

// setting describes one user-facing key.
type setting struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

var registry = map[string]setting{
	"focus":            intSetting(func(s *Settings) *int { return &s.FocusMinutes }),
	"short_break":      intSetting(func(s *Settings) *int { return &s.ShortBreakMinutes }),
	"long_break":       intSetting(func(s *Settings) *int { return &s.LongBreakMinutes }),
	"long_break_every": intSetting(func(s *Settings) *int { return &s.LongBreakEvery }),
	"auto_start": {
		get: func(s *Settings) string {
			if s.AutoStart == nil {
				return ""
			}
			return strconv.FormatBool(*s.AutoStart)
		},
		set: func(s *Settings, v string) error {
			if v == "" {
				s.AutoStart = nil
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("settings: auto_start: %w", err)
			}
			s.AutoStart = &b
			return nil
		},
	},
	"preset": {
		get: func(s *Settings) string { return s.Preset },
		set: func(s *Settings, v string) error {
			if v != "" && config.ParsePreset(v) == "" {
				return fmt.Errorf("settings: preset must be easy, normal or hard, got %q", v)
			}
			s.Preset = v
			return nil
		},
	},
	"breath_pattern": {
		get: func(s *Settings) string { return s.BreathPattern },
		set: func(s *Settings, v string) error {
			s.BreathPattern = v
			return nil
		},
	},
}

func intSetting(field func(*Settings) *int) setting {
	return setting{
		get: func(s *Settings) string {
			if v := *field(s); v != 0 {
				return strconv.Itoa(v)
			}
			return ""
		},
		set: func(s *Settings, v string) error {
			if v == "" {
				*field(s) = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("settings: %q is not a positive whole number", v)
			}
			*field(s) = n
			return nil
		},
	}
}

// Keys returns the setting names in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a setting as text; unset settings are "".
func (s *Settings) Get(key string) (string, error) {
	def, ok := registry[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return def.get(s), nil
}

// Set parses and stores a setting. An empty value unsets it.
func (s *Settings) Set(key, value string) error {
	def, ok := registry[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return def.set(s, strings.TrimSpace(value))
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// ApplyTimer overrides the config values that are set.
func (s Settings) ApplyTimer(cfg *config.TimerConfig) {
	if s.FocusMinutes > 0 {
		cfg.FocusMinutes = s.FocusMinutes
	}
	if s.ShortBreakMinutes > 0 {
		cfg.ShortBreakMinutes = s.ShortBreakMinutes
	}
	if s.LongBreakMinutes > 0 {
		cfg.LongBreakMinutes = s.LongBreakMinutes
	}
	if s.LongBreakEvery > 0 {
		cfg.LongBreakEvery = s.LongBreakEvery
	}
	if s.AutoStart != nil {
		cfg.AutoStart = *s.AutoStart
	}
}
