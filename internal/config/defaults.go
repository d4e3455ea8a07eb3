package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/timer.yaml
var defaultTimerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			MoveSpeed:    5,
			JumpImpulse:  -12,
			Gravity:      0.5,
			MaxFallSpeed: 12,
			FallDeathY:   500,
		},
	}
}

// DefaultTimerConfig returns the classic 25/5/15 cadence.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakEvery:    4,
		AutoStart:         false,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "platformer":
		return defaultPlatformerYAML
	case "timer":
		return defaultTimerYAML
	default:
		return nil
	}
}
