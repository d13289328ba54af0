package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start comet in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - High scores
  Q            - Quit

Examples:
  comet menu
  comet menu --fps 30
  comet menu --levels-dir ./castles`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, lvls, err := loadSetup(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	theme := tui.ThemeByName(flagTheme)
	rc := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(lvls, store, rc, theme)
		if err != nil {
			return err
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(lvls, store, rc.ScreenW, rc.ScreenH, theme)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		// Fresh seed for each game unless pinned.
		rc.Seed = flagSeed
		if rc.Seed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		g, err := game.New(game.Options{
			Config:     cfg,
			Levels:     lvls,
			LevelIndex: menuResult.LevelIndex,
			Seed:       rc.Seed,
			Logger:     logger,
		})
		if err != nil {
			logger.Error("cannot start game", "err", err)
			continue
		}

		if err := tui.Run(g, store, rc, logger); err != nil {
			logger.Error("game ended with error", "err", err)
		}
	}
}
