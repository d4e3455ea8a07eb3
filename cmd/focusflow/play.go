package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/platform/tui"
)

var (
	flagLevel string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the break-time platformer",
	Long: `Run through the office: jump onto desks and shelves, dodge chairs,
printers and paperclips, and collect coffee, documents and points.
The focus timer keeps running in the HUD but the game stays unlocked.

Controls:
  Left/A, Right/D  - Move
  Up/W/Space       - Jump
  P                - Pause
  R                - Restart (after game over)
  Esc              - Back to the timer
  Q/Ctrl+C         - Quit

Levels:
  --level takes a .yaml, .toml or .tmx file, or a built-in level ID.

With --watch, edits to the platformer config are picked up and applied
at the next restart.

Examples:
  focusflow play
  focusflow play --preset hard
  focusflow play --level ./levels/basement.toml
  focusflow play --config ./platformer.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level file or built-in level ID")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload physics when the config file changes")
}

func runPlay(_ *cobra.Command, _ []string) error {
	e, err := loadEnv(flagLevel)
	if err != nil {
		return err
	}

	var reload <-chan tui.PhysicsReloadMsg
	if flagWatch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reload = watchPhysics(ctx)
	}

	return runAppWith(e, tui.ViewGame, true, reload)
}

// configDirs lists the existing directories a platformer config may come from.
func configDirs() []string {
	var candidates []string
	if flagConfig != "" {
		candidates = append(candidates, filepath.Dir(flagConfig))
	} else {
		if p := config.UserConfigPath("platformer.yaml"); p != "" {
			candidates = append(candidates, filepath.Dir(p))
		}
		candidates = append(candidates, "configs")
	}

	var dirs []string
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// watchPhysics re-reads the platformer config whenever a config file
// changes and forwards the result to the app. The channel closes when ctx
// is done or the watcher fails.
func watchPhysics(ctx context.Context) <-chan tui.PhysicsReloadMsg {
	out := make(chan tui.PhysicsReloadMsg, 1)

	dirs := configDirs()
	if len(dirs) == 0 {
		logger.Warn("nothing to watch: no config directory found")
		close(out)
		return out
	}

	w, err := config.NewWatcher(dirs...)
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
		close(out)
		return out
	}

	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "error", err)
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				_, st := loadSettings()
				cfg, loadErr := loadPlatformerConfig(st)
				msg := tui.PhysicsReloadMsg{Physics: cfg.Physics, Err: loadErr}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
				logger.Debug("config changed", "path", path)
			}
		}
	}()
	return out
}
