package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/platform/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Start the focus timer",
	Long: `Start the focus timer. Focus sessions alternate with short breaks, with
a long break after every few sessions. During a break, press g to play
the platformer or b for the breathing guide.

Controls:
  Space/Enter  - Start/pause the timer
  N            - Skip to the next phase
  G            - Play (breaks only)
  B            - Breathing guide
  H            - History
  Esc          - Back
  Q/Ctrl+C     - Quit

Examples:
  focusflow timer
  focusflow timer --timer-config ./timer.yaml`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func runTimer(_ *cobra.Command, _ []string) error {
	return runApp(tui.ViewTimer, "", false)
}

// runApp loads the environment and runs the TUI until the user quits.
func runApp(view tui.View, levelRef string, freePlay bool) error {
	e, err := loadEnv(levelRef)
	if err != nil {
		return err
	}
	return runAppWith(e, view, freePlay, nil)
}

func runAppWith(e env, view tui.View, freePlay bool, reload <-chan tui.PhysicsReloadMsg) error {
	store := openStore()
	width, height := terminalSize()

	runErr := tui.Run(tui.Options{
		Durations: e.durations,
		Game:      newGame(e),
		Pattern:   e.pattern,
		Store:     store,
		TickRate:  flagFPS,
		StartView: view,
		FreePlay:  freePlay,
		Reload:    reload,
		Width:     width,
		Height:    height,
	})

	// Close store before reporting
	if store != nil {
		store.Close()
	}
	return runErr
}
