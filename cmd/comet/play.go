package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, by ID or number (default: the first).

Controls:
  Left/Right, A/D  - Move the moon
  Mouse            - Drag the moon
  P/Space          - Pause
  R                - Restart (after the run ends)
  Esc/B            - Leave (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  comet play
  comet play citadel
  comet play 3 --seed 42
  comet play keep --config ./my-comet.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = seed()
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, lvls, err := loadSetup(logger)
	if err != nil {
		return err
	}
	index, err := levelArg(lvls, args)
	if err != nil {
		return err
	}

	rc := terminalConfig()
	g, err := game.New(game.Options{
		Config:     cfg,
		Levels:     lvls,
		LevelIndex: index,
		Seed:       rc.Seed,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("playing", "level", g.ID(), "seed", rc.Seed)
	return tui.Run(g, store, rc, logger)
}
