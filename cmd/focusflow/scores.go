package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show platformer high scores",
	Long: `Display the top platformer scores.

Examples:
  focusflow scores
  focusflow scores --limit 5
  focusflow scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(platformer.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	scores, err := store.TopScores(platformer.GameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println(titleStyle.Render("High Scores - Office Dash"))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println(dimStyle.Render("Run 'focusflow play' to set the first high score!"))
		return nil
	}

	rows := make([][]string, 0, len(scores))
	for i, entry := range scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(entry.Score),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(renderTable([]string{"Rank", "Score", "Date"}, rows))

	if stats, err := store.GetGameStats(platformer.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
