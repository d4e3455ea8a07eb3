package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads platformer configuration.
// Search order: customPath -> ~/.focusflow/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	return load("platformer", customPath, DefaultPlatformerConfig())
}

// LoadTimer loads timer configuration.
// Search order: customPath -> ~/.focusflow/configs/timer.yaml -> ./configs/timer.yaml -> embedded default
func LoadTimer(customPath string) (TimerConfig, error) {
	return load("timer", customPath, DefaultTimerConfig())
}

// load decodes the first readable config for name over a copy of fallback,
// so files may override only the fields they care about.
func load[T any](name, customPath string, fallback T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := UserConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".focusflow", "configs", filename)
}

// ApplyPlatformerPreset modifies the physics based on a difficulty preset.
// Normal and the empty preset leave the config untouched.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Physics.MoveSpeed = 4
		cfg.Physics.Gravity = 0.4
		cfg.Physics.JumpImpulse = -12
	case PresetHard:
		cfg.Physics.MoveSpeed = 7
		cfg.Physics.Gravity = 0.6
		cfg.Physics.JumpImpulse = -12.5
	}
}
