package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top scores for a level, or a summary of every played
level when no level is given.

Examples:
  comet scores
  comet scores citadel
  comet scores 1 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}
	_, lvls, err := loadSetup(logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printLevelSummary(store, lvls)
	}

	index, err := levels.Resolve(lvls, args[0])
	if err != nil {
		return err
	}
	lvl := lvls[index]

	scores, err := store.TopScores(lvl.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", lvl.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'comet play %s' to set the first high score!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Result", "Ticks", "Replay", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----", "------", "----")
	for i, e := range scores {
		replayCol := "-"
		if e.ReplayID > 0 {
			replayCol = fmt.Sprintf("%d", e.ReplayID)
		}
		fmt.Printf("  %-4d  %-8d  %-8s  %-8d  %-6s  %s\n",
			i+1, e.Score, e.Outcome, e.Ticks, replayCol, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelSummary(store *storage.Store, lvls []levels.Level) error {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %s\n", "Level", "Runs", "Clears", "Best", "Average")
	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %s\n", "-----", "----", "------", "----", "-------")
	for _, l := range lvls {
		st, ok := stats[l.ID]
		if !ok {
			fmt.Printf("  %-16s  %-5d  %-6s  %-6s  %s\n", l.Name, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-16s  %-5d  %-6d  %-6d  %.1f\n", l.Name, st.RunsCount, st.Clears, st.HighScore, st.AvgScore)
	}
	return nil
}
