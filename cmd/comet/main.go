// comet is a terminal castle-breaking game: steer the moon, bounce comets
// into the castle and bring it down.
//
// Usage:
//
//	comet levels             - List available levels
//	comet play [level]       - Play a level (ID or number)
//	comet menu               - Pick levels interactively
//	comet run [level]        - Play headless with the autopilot
//	comet scores [level]     - Show high scores
//	comet replays [level]    - List stored replays
//	comet replay <id>        - Re-simulate a stored replay
//	comet serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible bonus drops
//	--db <path>           - Set database path (default: ~/.comet/comet.db)
//	--config <path>       - Game config YAML
//	--levels-dir <path>   - Directory of level files instead of the builtins
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-comet/internal/config"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/platform/tui"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
	flagLogFile   string
	flagTheme     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "comet",
	Short: "Comet - bring down castles with bouncing comets",
	Long: `Comet is a terminal game: steer the moon along the bottom of the
sky, bounce comets into the castle and knock every brick down before
you run out of lives.

Available commands:
  levels   - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  run      - Headless autopilot run (records a replay)
  scores   - View high scores
  replays  - List stored replays
  replay   - Re-simulate a stored replay
  serve    - Start SSH server for remote play

Examples:
  comet levels
  comet play citadel
  comet menu
  comet run keep --ticks 20000
  comet serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", tui.DefaultFPS, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files (default: builtin castles)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. Interactive commands own the terminal,
// so they log to --log-file or nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if interactive {
		w = io.Discard
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("open log file: %w", err)
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "comet",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}

// loadSetup resolves the game config and level set from the global flags.
// Skipped level files are reported as warnings.
func loadSetup(logger *log.Logger) (config.CometConfig, []levels.Level, error) {
	cfg, err := config.LoadComet(flagConfig)
	if err != nil {
		return config.CometConfig{}, nil, err
	}

	lvls, skipped, err := levels.Load(flagLevelsDir)
	if err != nil {
		return config.CometConfig{}, nil, err
	}
	for _, e := range skipped {
		logger.Warn("skipped level file", "err", e)
	}
	return cfg, lvls, nil
}

// levelArg resolves an optional level argument to an index.
func levelArg(lvls []levels.Level, args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return levels.Resolve(lvls, args[0])
}

// seed returns --seed, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the scores database; failures only disable saving.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
