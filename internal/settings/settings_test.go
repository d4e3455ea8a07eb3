package settings

import (
	"errors"
	"testing"

	"github.com/vovakirdan/focusflow/internal/config"
)

// memBackend is an in-memory Backend.
type memBackend struct {
	items map[string][]byte
	fail  error
}

func newMemBackend() *memBackend {
	return &memBackend{items: make(map[string][]byte)}
}

func (m *memBackend) ItemExists(key string) bool {
	_, ok := m.items[key]
	return ok
}

func (m *memBackend) LoadItem(key string) ([]byte, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.items[key], nil
}

func (m *memBackend) SaveItem(key string, data []byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBackend) DeleteItem(key string) error {
	delete(m.items, key)
	return nil
}

func TestLoadEmpty(t *testing.T) {
	st, err := NewStore(newMemBackend()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st != (Settings{}) {
		t.Errorf("Load() = %+v, want zero settings", st)
	}
}

func TestSaveLoadReset(t *testing.T) {
	backend := newMemBackend()
	store := NewStore(backend)

	var st Settings
	for key, val := range map[string]string{
		"focus":       "50",
		"short-break": "10",
		"auto_start":  "true",
		"preset":      "hard",
	} {
		if err := st.Set(key, val); err != nil {
			t.Fatalf("Set(%q, %q): %v", key, val, err)
		}
	}
	if err := store.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FocusMinutes != 50 || got.ShortBreakMinutes != 10 || got.Preset != "hard" {
		t.Errorf("Load() = %+v", got)
	}
	if got.AutoStart == nil || !*got.AutoStart {
		t.Error("AutoStart not restored")
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if backend.ItemExists(ItemKey) {
		t.Error("Reset left the item behind")
	}
}

func TestLoadCorrupt(t *testing.T) {
	backend := newMemBackend()
	backend.items[ItemKey] = []byte("{not json")
	if _, err := NewStore(backend).Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveBackendError(t *testing.T) {
	backend := newMemBackend()
	backend.fail = errors.New("disk full")
	err := NewStore(backend).Save(Settings{FocusMinutes: 30})
	if !errors.Is(err, backend.fail) {
		t.Errorf("Save() error = %v, want wrapped backend error", err)
	}
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    error
		fails      bool
	}{
		{"focus", "45", nil, false},
		{"focus", "0", nil, true},
		{"focus", "abc", nil, true},
		{"auto_start", "maybe", nil, true},
		{"preset", "nightmare", nil, true},
		{"preset", "easy", nil, false},
		{"volume", "11", ErrUnknownKey, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var st Settings
			err := st.Set(tt.key, tt.value)
			if (err != nil) != tt.fails {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.fails)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Set() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnsetWithEmptyValue(t *testing.T) {
	st := Settings{FocusMinutes: 30}
	if err := st.Set("focus", ""); err != nil {
		t.Fatal(err)
	}
	if v, _ := st.Get("focus"); v != "" {
		t.Errorf("Get(focus) = %q after unset", v)
	}
}

func TestApplyTimer(t *testing.T) {
	cfg := config.DefaultTimerConfig()
	off := false
	Settings{FocusMinutes: 50, LongBreakEvery: 2, AutoStart: &off}.ApplyTimer(&cfg)

	if cfg.FocusMinutes != 50 || cfg.LongBreakEvery != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ShortBreakMinutes != 5 {
		t.Errorf("unset short break changed to %d", cfg.ShortBreakMinutes)
	}

	cfg.AutoStart = true
	Settings{AutoStart: &off}.ApplyTimer(&cfg)
	if cfg.AutoStart {
		t.Error("explicit auto_start=false not applied")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("Keys() not sorted: %v", keys)
		}
	}
}
