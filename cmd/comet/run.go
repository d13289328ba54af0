package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/platform/tui"
)

var (
	flagTicks  int
	flagNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run [level]",
	Short: "Play a level headless with the autopilot",
	Long: `Simulate a level without a terminal UI. The autopilot steers the moon
under the lowest falling comet. The finished run is stored with its replay
unless --no-save is given.

Examples:
  comet run
  comet run citadel --ticks 50000 --seed 7
  comet run 2 --no-save --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Maximum number of ticks to simulate")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the run")
}

func runHeadless(_ *cobra.Command, args []string) error {
	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}

	cfg, lvls, err := loadSetup(logger)
	if err != nil {
		return err
	}
	index, err := levelArg(lvls, args)
	if err != nil {
		return err
	}

	s := seed()
	g, err := game.New(game.Options{
		Config:     cfg,
		Levels:     lvls,
		LevelIndex: index,
		Seed:       s,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("run started", "level", g.ID(), "seed", s, "max_ticks", flagTicks)
	final, err := g.Play(flagTicks, game.Autopilot(cfg.Input.KeyStep))
	if err != nil {
		return fmt.Errorf("run stopped at tick %d: %w", final.Tick, err)
	}

	logger.Info("run finished",
		"level", final.LevelID,
		"phase", final.Phase,
		"ticks", final.Tick,
		"score", final.Score,
		"lives", final.Lives,
		"bricks_left", final.AliveBricks(),
	)

	if flagNoSave || !g.Over() {
		return nil
	}

	store := openStore(logger)
	if store == nil {
		return nil
	}
	defer store.Close()

	id, err := tui.SaveRun(store, g)
	if err != nil {
		return err
	}
	logger.Info("run saved", "replay", id)
	return nil
}
