package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent focus sessions",
	Long: `Display recent focus and break sessions with today's totals.

Examples:
  focusflow history
  focusflow history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	stats, err := store.FocusStats(storage.StartOfDay(time.Now()))
	if err != nil {
		return err
	}
	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Focus history"))
	fmt.Println()
	fmt.Printf("Today: %d sessions  |  All time: %d completed, %d skipped, %d minutes\n",
		stats.Today, stats.Completed, stats.Skipped, stats.TotalMinutes)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println(dimStyle.Render("Run 'focusflow' to start your first focus session!"))
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		status := "done"
		if !s.Completed {
			status = "skipped"
		}
		rows = append(rows, []string{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Phase,
			strconv.Itoa(s.PlannedSecs/60) + "m",
			status,
		})
	}
	fmt.Println(renderTable([]string{"Date", "Phase", "Length", "Status"}, rows))
	return nil
}
