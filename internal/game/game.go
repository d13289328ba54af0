// Package game implements the comet game flow on top of the engine: scoring,
// lives and respawn, bonus drops and timed bonuses, pause and restart, run
// recording and the terminal projection of a snapshot.
package game

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-comet/internal/config"
	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/replay"
)

// Options configures a new game.
type Options struct {
	Config     config.CometConfig
	Levels     []levels.Level
	LevelIndex int
	Seed       int64
	Logger     *log.Logger
}

// Game is one player's comet session. Input methods, Advance and Reset must
// be called from a single goroutine; Snapshot may be called from any.
type Game struct {
	cfg        config.CometConfig
	levels     []levels.Level
	levelIndex int
	seed       int64
	logger     *log.Logger

	driver *engine.Driver
	drops  dropper
	rec    replay.Recorder

	// Flow state outside the snapshot, only touched inside step.
	serving     bool    // Waiting to serve a new comet
	respawnIn   int     // Ticks until the comet is served
	timedFactor float64 // Product of active timed multiplier bonuses
}

// New creates a game at the start of the selected level.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:        opts.Config,
		levels:     opts.Levels,
		levelIndex: opts.LevelIndex,
		seed:       opts.Seed,
		logger:     opts.Logger,
	}

	initial, err := g.initialState()
	if err != nil {
		return nil, err
	}
	g.resetFlow()
	g.driver = engine.NewDriver(initial, g.step, opts.Config.Input.QueueSize, opts.Logger)
	return g, nil
}

func (g *Game) initialState() (engine.State, error) {
	s, err := engine.NewState(g.levelIndex, g.levels)
	if err != nil {
		return engine.State{}, err
	}
	s.Lives = g.cfg.Gameplay.Lives
	return s, nil
}

func (g *Game) resetFlow() {
	g.drops = dropper{cfg: g.cfg.Bonus, rng: NewSimpleRNG(g.seed)}
	g.rec.Reset()
	g.serving = false
	g.respawnIn = 0
	g.timedFactor = 1
}

// ID returns the current level ID, used as the score key.
func (g *Game) ID() string {
	return g.driver.Snapshot().LevelID
}

// Title returns the display name of the current level.
func (g *Game) Title() string {
	lvl, err := levels.Select(g.levels, g.levelIndex)
	if err != nil {
		return ""
	}
	return lvl.Name
}

// Reset restarts the level with the original seed.
func (g *Game) Reset() error {
	s, err := g.initialState()
	if err != nil {
		return err
	}
	g.resetFlow()
	g.driver.Reset(s)
	return nil
}

// HandleInput turns one frame of semantic actions into commands and flow
// changes. Movement is queued; pause and restart apply immediately.
func (g *Game) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.driver.Push(engine.MoonMove(-g.cfg.Input.KeyStep))
	}
	if in.Has(core.ActionRight) {
		g.driver.Push(engine.MoonMove(g.cfg.Input.KeyStep))
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if in.Has(core.ActionRestart) && g.Over() {
		if err := g.Reset(); err != nil {
			g.logger.Error("restart failed", "err", err)
		}
	}
}

// MoveMoon queues a moon move of cells terminal columns (mouse drag).
func (g *Game) MoveMoon(cells int) bool {
	if cells == 0 {
		return false
	}
	return g.driver.Push(engine.MoonMove(float64(cells) * g.cfg.Input.MouseScale))
}

// Push queues a raw command.
func (g *Game) Push(cmd engine.Command) bool {
	return g.driver.Push(cmd)
}

// TogglePause switches between playing and paused.
func (g *Game) TogglePause() {
	g.driver.Update(func(s engine.State) engine.State {
		switch s.Phase {
		case engine.PhasePlaying:
			s.Phase = engine.PhasePaused
		case engine.PhasePaused:
			s.Phase = engine.PhasePlaying
		}
		return s
	})
}

// Abort ends a run that can no longer be stepped. The snapshot is kept and
// the phase becomes game over, so the run can be saved and restarted.
func (g *Game) Abort() {
	g.driver.Update(func(s engine.State) engine.State {
		if !isOver(s.Phase) {
			s.Phase = engine.PhaseGameOver
		}
		return s
	})
}

// Advance runs the fixed ticks covered by elapsed wall time.
func (g *Game) Advance(elapsed time.Duration) (int, error) {
	return g.driver.Advance(elapsed)
}

// Tick runs one fixed tick.
func (g *Game) Tick() error {
	return g.driver.Tick()
}

// Snapshot returns a copy of the latest snapshot.
func (g *Game) Snapshot() engine.State {
	return g.driver.Snapshot()
}

// Over reports whether the run has ended (game over or castle cleared).
func (g *Game) Over() bool {
	return isOver(g.driver.Snapshot().Phase)
}

func isOver(p engine.Phase) bool {
	return p == engine.PhaseGameOver || p == engine.PhaseCleared
}

// State returns the platform-facing status.
func (g *Game) State() core.GameState {
	s := g.driver.Snapshot()
	return core.GameState{
		Score:    s.Score,
		GameOver: isOver(s.Phase),
		Paused:   s.Phase == engine.PhasePaused,
	}
}

// step is the driver's StepFunc: an engine tick followed by the flow rules.
// It only runs while playing; other phases freeze the snapshot.
func (g *Game) step(prev engine.State, dt float64, cmd *engine.Command) (engine.State, error) {
	if prev.Phase != engine.PhasePlaying {
		return prev, nil
	}

	next, err := engine.Step(prev, dt, cmd)
	if err != nil {
		return prev, err
	}
	if cmd != nil {
		g.rec.Record(prev.Tick, *cmd)
	}

	if err := g.applyRules(prev, &next, dt); err != nil {
		return prev, err
	}
	return next, nil
}

func (g *Game) applyRules(prev engine.State, next *engine.State, dt float64) error {
	next.ShakeT = max(0, next.ShakeT-dt)

	for i, b := range next.Bricks {
		if b.Alive || !prev.Bricks[i].Alive {
			continue
		}
		next.Score += int(math.Round(float64(g.cfg.Gameplay.PointsPerBrick) * next.Multiplier))
		next.ShakeT = float64(g.cfg.Gameplay.ShakeTicks)
		if d, ok := g.drops.roll(b.X+b.W/2, b.Y+b.H/2); ok {
			next.BonusDrops = append(next.BonusDrops, d)
		}
	}

	g.expireBonuses(next)

	for _, b := range fall(next, dt) {
		if err := g.catch(next, b); err != nil {
			return err
		}
	}

	if next.AliveBricks() == 0 {
		next.Phase = engine.PhaseCleared
		return nil
	}

	g.handleCometLoss(next)
	return nil
}

// catch applies a bonus the moon caught. A comet bonus with no comet in play
// is skipped.
func (g *Game) catch(next *engine.State, b engine.Bonus) error {
	applied, err := engine.ApplyBonus(*next, b)
	if errors.Is(err, engine.ErrInvariant) {
		g.logger.Debug("bonus skipped", "bonus", b, "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	*next = applied

	if b.Kind() == engine.BonusMultiplier {
		g.timedFactor *= b.Factor()
		next.ActiveBonuses[multiplierKey] = g.cfg.Bonus.MultiplierDuration
	}
	return nil
}

// expireBonuses counts down timed bonuses. An expired multiplier divides its
// factors back out, never dropping below 1.
func (g *Game) expireBonuses(next *engine.State) {
	for name, left := range next.ActiveBonuses {
		left--
		if left > 0 {
			next.ActiveBonuses[name] = left
			continue
		}
		delete(next.ActiveBonuses, name)
		if name == multiplierKey {
			next.Multiplier = max(1, next.Multiplier/g.timedFactor)
			g.timedFactor = 1
		}
	}
}

// handleCometLoss prunes fallen comets, takes a life when none are left and
// serves a new comet after the respawn delay.
func (g *Game) handleCometLoss(next *engine.State) {
	next.PruneComets()
	if len(next.Comets) > 0 {
		g.serving = false
		return
	}

	if !g.serving {
		next.Lives--
		if next.Lives <= 0 {
			next.Phase = engine.PhaseGameOver
			return
		}
		g.serving = true
		g.respawnIn = g.cfg.Gameplay.RespawnDelay
	}

	if g.respawnIn > 0 {
		g.respawnIn--
		return
	}

	c := engine.NewComet()
	c.X = next.Moon.X
	next.Comets = append(next.Comets, c)
	g.serving = false
}

