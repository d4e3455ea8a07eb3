package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/breathe"
	"github.com/vovakirdan/focusflow/internal/platform/tui"
)

var flagPattern string

var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Start the breathing guide",
	Long: `Follow a breathing pattern: the box grows as you breathe in and shrinks
as you breathe out.

Patterns:
  box       - 4s in, 4s hold, 4s out, 4s hold
  478       - 4s in, 7s hold, 8s out
  coherent  - 5s in, 5s out

Examples:
  focusflow breathe
  focusflow breathe --pattern 478`,
	Args: cobra.NoArgs,
	RunE: runBreathe,
}

func init() {
	names := make([]string, 0, len(breathe.Patterns()))
	for _, p := range breathe.Patterns() {
		names = append(names, p.Name)
	}
	breatheCmd.Flags().StringVar(&flagPattern, "pattern", "", "Breathing pattern: "+strings.Join(names, ", "))
}

func runBreathe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv("")
	if err != nil {
		return err
	}
	if flagPattern != "" {
		if e.pattern, err = breathe.ParsePattern(flagPattern); err != nil {
			return err
		}
	}
	return runAppWith(e, tui.ViewBreathe, false, nil)
}
