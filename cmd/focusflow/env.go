package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/vovakirdan/focusflow/internal/breathe"
	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/games/platformer/levels"
	"github.com/vovakirdan/focusflow/internal/settings"
	"github.com/vovakirdan/focusflow/internal/storage"
	"github.com/vovakirdan/focusflow/internal/timer"
)

// appName names the per-user settings directory.
const appName = "focusflow"

// env is everything a session needs, resolved from flags, config files and
// saved settings. Flags win over settings, settings over config files.
type env struct {
	settings   settings.Settings
	durations  timer.Durations
	platformer config.PlatformerConfig
	level      platformer.Level
	pattern    breathe.Pattern
}

// loadSettings opens the settings store. Failures degrade to empty settings.
func loadSettings() (*settings.Store, settings.Settings) {
	store, err := settings.Open(appName)
	if err != nil {
		logger.Warn("settings unavailable", "error", err)
		return nil, settings.Settings{}
	}
	st, err := store.Load()
	if err != nil {
		logger.Warn("could not read settings", "error", err)
		return store, settings.Settings{}
	}
	return store, st
}

// loadEnv resolves the session environment. levelRef may be a level file
// path or a built-in level ID; empty uses the config's level or the default.
func loadEnv(levelRef string) (env, error) {
	_, st := loadSettings()
	e := env{settings: st}

	timerCfg, err := config.LoadTimer(flagTimerConfig)
	if err != nil {
		return e, err
	}
	st.ApplyTimer(&timerCfg)
	e.durations = timer.DurationsFrom(timerCfg)

	e.platformer, err = loadPlatformerConfig(st)
	if err != nil {
		return e, err
	}

	if levelRef == "" {
		levelRef = e.platformer.Level
	}
	e.level, err = loadLevel(levelRef)
	if err != nil {
		return e, err
	}
	for _, f := range levels.Validate(e.level) {
		logger.Warn("level check", "level", e.level.ID, "finding", f.String())
	}

	e.pattern = breathe.Box
	if st.BreathPattern != "" {
		p, err := breathe.ParsePattern(st.BreathPattern)
		if err != nil {
			logger.Warn("ignoring saved breathing pattern", "error", err)
		} else {
			e.pattern = p
		}
	}
	return e, nil
}

// loadPlatformerConfig loads physics and applies the preset from the flag,
// or from settings when the flag is unset.
func loadPlatformerConfig(st settings.Settings) (config.PlatformerConfig, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, err
	}

	presetName := flagPreset
	if presetName == "" {
		presetName = st.Preset
	}
	preset := config.ParsePreset(presetName)
	if presetName != "" && preset == "" {
		return cfg, fmt.Errorf("unknown preset %q (want easy, normal or hard)", presetName)
	}
	config.ApplyPlatformerPreset(&cfg, preset)
	return cfg, nil
}

func loadLevel(ref string) (platformer.Level, error) {
	switch {
	case ref == "":
		return levels.Default()
	case filepath.Ext(ref) != "":
		return levels.LoadFile(ref)
	default:
		return levels.Builtin().LoadByID(ref)
	}
}

// newGame builds the platformer. A level the engine rejects disables the
// game rather than the whole app.
func newGame(e env) *platformer.Game {
	game, err := platformer.NewGame(e.platformer, e.level)
	if err != nil {
		logger.Warn("platformer disabled", "level", e.level.ID, "error", err)
		return nil
	}
	return game
}

// openStore opens the history database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// terminalSize returns the terminal size, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
