package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-comet/internal/config"
	"github.com/vovakirdan/tui-comet/internal/engine"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/replay"
)

// ErrReplayMismatch is returned when a re-simulated run does not reach the
// recorded outcome.
var ErrReplayMismatch = errors.New("game: replay mismatch")

// Recording returns the run played so far as a self-contained replay.
func (g *Game) Recording() (replay.Run, error) {
	cfgYAML, err := config.Marshal(g.cfg)
	if err != nil {
		return replay.Run{}, err
	}
	lvl, err := levels.Select(g.levels, g.levelIndex)
	if err != nil {
		return replay.Run{}, err
	}

	s := g.driver.Snapshot()
	if s.Phase == engine.PhasePaused {
		s.Phase = engine.PhasePlaying
	}
	return replay.Run{
		LevelIndex: g.levelIndex,
		LevelID:    lvl.ID,
		LevelName:  lvl.Name,
		Layout:     replay.LayoutOf(lvl.Bricks),
		Config:     cfgYAML,
		Seed:       g.seed,
		Entries:    g.rec.Entries(),
		Ticks:      s.Tick,
		FinalScore: s.Score,
		Phase:      string(s.Phase),
	}, nil
}

// Pilot chooses the command for the next tick of a headless run.
type Pilot func(s engine.State) *engine.Command

// Play runs up to ticks fixed ticks headlessly, asking pilot for a command
// before each one. It stops early when the run ends.
func (g *Game) Play(ticks int, pilot Pilot) (engine.State, error) {
	for range ticks {
		s := g.driver.Snapshot()
		if s.Phase != engine.PhasePlaying {
			return s, nil
		}
		if pilot != nil {
			if cmd := pilot(s); cmd != nil {
				g.driver.Push(*cmd)
			}
		}
		if err := g.driver.Tick(); err != nil {
			return g.driver.Snapshot(), err
		}
	}
	return g.driver.Snapshot(), nil
}

// Autopilot returns a pilot that steers the moon under the lowest falling
// comet, at most maxStep units per tick.
func Autopilot(maxStep float64) Pilot {
	return func(s engine.State) *engine.Command {
		target, ok := lowestComet(s)
		if !ok {
			return nil
		}
		dx := max(-maxStep, min(maxStep, target-s.Moon.X))
		if math.Abs(dx) < 0.5 {
			return nil
		}
		cmd := engine.MoonMove(dx)
		return &cmd
	}
}

func lowestComet(s engine.State) (float64, bool) {
	best, found := 0.0, false
	bestY := math.Inf(-1)
	for _, c := range s.Comets {
		if !c.Active {
			continue
		}
		y := c.Y
		if c.VY < 0 {
			y -= engine.FieldHeight // rising comets matter less
		}
		if y > bestY {
			best, bestY, found = c.X, y, true
		}
	}
	return best, found
}

// Replay re-simulates a recorded run and checks it reaches the recorded
// tick count and score.
func Replay(run replay.Run, logger *log.Logger) (engine.State, error) {
	cfg, err := config.Parse(run.Config)
	if err != nil {
		return engine.State{}, fmt.Errorf("game: replay config: %w", err)
	}

	g, err := New(Options{
		Config:     cfg,
		Levels:     []levels.Level{run.Level()},
		LevelIndex: run.LevelIndex,
		Seed:       run.Seed,
		Logger:     logger,
	})
	if err != nil {
		return engine.State{}, err
	}

	next := 0
	for tick := uint64(0); tick < run.Ticks; tick++ {
		if next < len(run.Entries) && run.Entries[next].Tick == tick {
			g.driver.Push(run.Entries[next].Command())
			next++
		}
		if err := g.driver.Tick(); err != nil {
			return g.driver.Snapshot(), err
		}
		if g.Over() {
			break
		}
	}

	final := g.driver.Snapshot()
	if final.Tick != run.Ticks || final.Score != run.FinalScore || string(final.Phase) != run.Phase {
		return final, fmt.Errorf("%w: got tick %d score %d %s, recorded tick %d score %d %s",
			ErrReplayMismatch, final.Tick, final.Score, final.Phase, run.Ticks, run.FinalScore, run.Phase)
	}
	return final, nil
}
