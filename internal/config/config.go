// Package config provides YAML-based configuration loading for the platformer
// and the focus timer, difficulty presets, and a file watcher for hot reload.
package config

// PlatformerConfig contains all configuration for the break-time platformer.
type PlatformerConfig struct {
	Physics PlatformerPhysics `yaml:"physics"`
	Level   string            `yaml:"level"` // Optional level file path; empty uses the embedded office level
}

// PlatformerPhysics defines the per-tick kinematics constants, in world pixels.
type PlatformerPhysics struct {
	MoveSpeed    float64 `yaml:"move_speed"`     // Horizontal speed while a direction is held
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Upward velocity applied on jump (negative)
	Gravity      float64 `yaml:"gravity"`        // Added to vertical velocity every tick
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal downward velocity
	FallDeathY   float64 `yaml:"fall_death_y"`   // Character y beyond which the run ends
}

// TimerConfig contains the focus/break cadence.
type TimerConfig struct {
	FocusMinutes      int  `yaml:"focus_minutes"`
	ShortBreakMinutes int  `yaml:"short_break_minutes"`
	LongBreakMinutes  int  `yaml:"long_break_minutes"`
	LongBreakEvery    int  `yaml:"long_break_every"` // Focus sessions before a long break
	AutoStart         bool `yaml:"auto_start"`       // Start the next phase without waiting
}

// Preset represents a named difficulty level for the platformer.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a CLI/settings string to a Preset.
// Unknown or empty strings yield "" which means "use config as is".
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetEasy, PresetNormal, PresetHard:
		return Preset(s)
	default:
		return ""
	}
}
