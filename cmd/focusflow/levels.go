package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focusflow/internal/games/platformer/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List levels and check them",
	Long: `List the built-in levels, or the .yaml, .toml and .tmx levels in a
directory, with any layout problems found in them. Files that fail to
parse are skipped.

Examples:
  focusflow levels
  focusflow levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	loader := levels.Builtin()
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
	}

	all, err := loader.LoadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	rows := make([][]string, 0, len(all))
	var problems []string
	for _, lvl := range all {
		findings := levels.Validate(lvl)
		status := "ok"
		if len(findings) > 0 {
			status = strconv.Itoa(len(findings)) + " warning(s)"
		}
		for _, f := range findings {
			problems = append(problems, fmt.Sprintf("%s: %s", lvl.ID, f))
		}
		rows = append(rows, []string{
			lvl.ID,
			lvl.Name,
			strconv.Itoa(len(lvl.Platforms)),
			strconv.Itoa(len(lvl.Obstacles)),
			strconv.Itoa(len(lvl.Collectibles)),
			status,
		})
	}

	fmt.Println(renderTable([]string{"ID", "Name", "Platforms", "Obstacles", "Collectibles", "Check"}, rows))
	for _, p := range problems {
		fmt.Println(dimStyle.Render("  " + p))
	}
	fmt.Println()
	fmt.Println("Run 'focusflow play --level <id or file>' to play a level.")
	return nil
}
