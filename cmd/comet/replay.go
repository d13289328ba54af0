package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/replay"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

var flagReplaysLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays [level]",
	Short: "List stored replays",
	Long: `List the most recent stored runs, optionally for one level.

Examples:
  comet replays
  comet replays keep --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a stored replay",
	Long: `Decode a stored run and play it again from its seed and inputs,
checking that it reaches the recorded tick count, score and outcome.

Examples:
  comet replay 12
  comet replay 12 --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of replays to list")
}

func runReplays(_ *cobra.Command, args []string) error {
	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}

	levelID := ""
	if len(args) == 1 {
		_, lvls, err := loadSetup(logger)
		if err != nil {
			return err
		}
		index, err := levels.Resolve(lvls, args[0])
		if err != nil {
			return err
		}
		levelID = lvls[index].ID
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.RecentReplays(levelID, flagReplaysLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No replays stored yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-16s  %-8s  %-8s  %s\n", "ID", "Level", "Score", "Ticks", "Date")
	fmt.Printf("  %-5s  %-16s  %-8s  %-8s  %s\n", "--", "-----", "-----", "-----", "----")
	for _, r := range recs {
		fmt.Printf("  %-5d  %-16s  %-8d  %-8d  %s\n", r.ID, r.LevelID, r.Score, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Replay(id)
	if err != nil {
		return err
	}
	run, err := replay.Decode(rec.Data)
	if err != nil {
		return err
	}

	logger.Info("replaying", "id", id, "level", run.LevelID, "seed", run.Seed, "commands", len(run.Entries))
	final, err := game.Replay(run, logger)
	if err != nil {
		return err
	}

	logger.Info("replay verified", "ticks", final.Tick, "score", final.Score, "phase", final.Phase)
	return nil
}
