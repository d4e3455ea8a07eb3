// focusflow is a focus timer for the terminal with a platformer and a
// breathing guide for the breaks.
//
// Usage:
//
//	focusflow                    - Start the focus timer
//	focusflow play               - Play the break-time platformer
//	focusflow breathe            - Start the breathing guide
//	focusflow history            - Show recent focus sessions
//	focusflow scores             - Show platformer high scores
//	focusflow levels [dir]       - List levels and check them
//	focusflow settings ...       - Show or change saved settings
//	focusflow serve              - Start SSH server for remote sessions
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--db <path>          - Set database path (default: ~/.focusflow/focusflow.db)
//	--config <path>      - Platformer config YAML
//	--timer-config <path> - Timer config YAML
//	--preset <name>      - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS         int
	flagDBPath      string
	flagConfig      string
	flagTimerConfig string
	flagPreset      string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "focusflow",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "FocusFlow - focus timer with break-time games",
	Long: `FocusFlow is a terminal focus timer. Work in focus sessions, then spend
the breaks playing a short office platformer or following a breathing guide.

Available commands:
  timer     - Focus timer (default)
  play      - Play the platformer directly
  breathe   - Breathing guide
  history   - Recent focus sessions
  scores    - Platformer high scores
  levels    - List and check levels
  settings  - Saved settings
  serve     - Start SSH server for remote sessions

Examples:
  focusflow
  focusflow play --preset easy
  focusflow play --level ./my-office.tmx --watch
  focusflow settings set focus 50
  focusflow serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTimer,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.focusflow/focusflow.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTimerConfig, "timer-config", "", "Path to custom timer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(breatheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
