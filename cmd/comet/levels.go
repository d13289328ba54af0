package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vovakirdan/tui-comet/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the castles that can be played, builtin or from --levels-dir.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

var flagLevelIDs bool

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelIDs, "ids", false, "Print only level IDs, one per line")
}

// printLevelIDs lists IDs without building the levels when a directory is set.
func printLevelIDs() error {
	var ids []string
	if flagLevelsDir == "" {
		for _, l := range levels.BuiltinLevels() {
			ids = append(ids, l.ID)
		}
	} else {
		var err error
		if ids, err = levels.NewLoader(flagLevelsDir).ListIDs(); err != nil {
			return err
		}
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func runLevels(_ *cobra.Command, _ []string) error {
	if flagLevelIDs {
		return printLevelIDs()
	}

	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}
	_, lvls, err := loadSetup(logger)
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-16s  %s\n", "#", maxIDLen, "ID", "Name", "Bricks")
	fmt.Printf("  %-3s  %-*s  %-16s  %s\n", "-", maxIDLen, "--", "----", "------")
	for i, l := range lvls {
		fmt.Printf("  %-3d  %-*s  %-16s  %d\n", i+1, maxIDLen, l.ID, l.Name, len(l.Bricks))
	}

	fmt.Println()
	if flagLevelsDir == "" {
		fmt.Printf("%d builtin castles.\n", levels.LevelCount())
	}
	fmt.Println("Run 'comet play <id>' to play a level.")
	return nil
}
