package game

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-comet/internal/config"
	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
	"github.com/vovakirdan/tui-comet/internal/levels"
	"github.com/vovakirdan/tui-comet/internal/replay"
)

func testConfig() config.CometConfig {
	cfg := config.DefaultCometConfig()
	cfg.Bonus.DropChance = 0
	return cfg
}

func newTestGame(t *testing.T, cfg config.CometConfig) *Game {
	t.Helper()
	lvl, err := levels.ParseLevel("pair", "Pair", []string{"##"})
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}
	g, err := New(Options{Config: cfg, Levels: []levels.Level{lvl}, Seed: 7})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

// parkMoon moves the moon away from x=240 so falling test comets miss it.
func parkMoon(s engine.State) engine.State {
	s.Moon.X = 400
	return s
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultCometConfig()
	cfg.Bonus.DropChance = 60

	run := func() engine.State {
		g, err := New(Options{Config: cfg, Levels: levels.BuiltinLevels(), LevelIndex: 3, Seed: 12345})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		s, err := g.Play(3000, Autopilot(cfg.Input.KeyStep))
		if err != nil {
			t.Fatalf("Play() failed: %v", err)
		}
		return s
	}

	s1, s2 := run(), run()

	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Lives != s2.Lives || s1.Phase != s2.Phase {
		t.Errorf("runs differ: tick %d/%d score %d/%d lives %d/%d", s1.Tick, s2.Tick, s1.Score, s2.Score, s1.Lives, s2.Lives)
	}
	if s1.Moon != s2.Moon || len(s1.Comets) != len(s2.Comets) {
		t.Errorf("moon or comets differ")
	}
	for i := range s1.Bricks {
		if s1.Bricks[i] != s2.Bricks[i] {
			t.Fatalf("brick %d differs", i)
		}
	}
}

func TestGameNewUsesConfiguredLives(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 5
	g := newTestGame(t, cfg)

	if got := g.Snapshot().Lives; got != 5 {
		t.Errorf("Lives = %d, expected 5", got)
	}
	if g.ID() != "pair" || g.Title() != "Pair" {
		t.Errorf("ID/Title = %s/%s", g.ID(), g.Title())
	}
}

func TestGameNewRejectsBadInput(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 0
	if _, err := New(Options{Config: cfg, Levels: levels.BuiltinLevels()}); !errors.Is(err, engine.ErrConfiguration) {
		t.Errorf("expected configuration error for bad config, got %v", err)
	}
	if _, err := New(Options{Config: testConfig()}); !errors.Is(err, engine.ErrConfiguration) {
		t.Errorf("expected configuration error for no levels, got %v", err)
	}
}

func TestGameScoresDestroyedBrick(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.driver.Update(func(s engine.State) engine.State {
		s.Multiplier = 2
		s.Bricks[0].Damage = 0.75
		s.Comets[0] = engine.Comet{X: 20, Y: 105, VX: 0, VY: -4, R: 7, Active: true}
		return s
	})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	s := g.Snapshot()
	if s.Bricks[0].Alive {
		t.Fatal("brick should be destroyed")
	}
	if s.Score != 20 {
		t.Errorf("Score = %d, expected points_per_brick x multiplier = 20", s.Score)
	}
	if s.ShakeT != float64(testConfig().Gameplay.ShakeTicks) {
		t.Errorf("ShakeT = %v, expected shake to start", s.ShakeT)
	}
	if s.Phase != engine.PhasePlaying {
		t.Errorf("one brick left, phase should stay playing, got %s", s.Phase)
	}

	g.Tick()
	if got := g.Snapshot().ShakeT; got != s.ShakeT-1 {
		t.Errorf("shake should decay by one per tick, got %v", got)
	}
}

func TestGameClearedWhenLastBrickFalls(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.driver.Update(func(s engine.State) engine.State {
		s.Bricks[0].Alive = false
		s.Bricks[0].Damage = 1
		s.Bricks[1].Damage = 0.75
		s.Comets[0] = engine.Comet{X: 60, Y: 105, VX: 0, VY: -4, R: 7, Active: true}
		return s
	})

	g.Tick()

	s := g.Snapshot()
	if s.Phase != engine.PhaseCleared {
		t.Fatalf("Phase = %s, expected cleared", s.Phase)
	}
	if !g.Over() || !g.State().GameOver {
		t.Error("cleared run should be over")
	}

	tick := s.Tick
	g.Tick()
	if g.Snapshot().Tick != tick {
		t.Error("ended run must not advance")
	}
}

func TestGameLifeLossAndRespawn(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.RespawnDelay = 3
	g := newTestGame(t, cfg)
	g.driver.Update(func(s engine.State) engine.State {
		s = parkMoon(s)
		s.Comets[0] = engine.Comet{X: 240, Y: 919, VX: 0, VY: 3, R: 7, Active: true}
		return s
	})

	g.Tick()
	s := g.Snapshot()
	if len(s.Comets) != 0 {
		t.Fatalf("fallen comet should be pruned, have %d", len(s.Comets))
	}
	if s.Lives != cfg.Gameplay.Lives-1 {
		t.Errorf("Lives = %d, expected %d", s.Lives, cfg.Gameplay.Lives-1)
	}
	scr := core.NewScreen(48, 30)
	g.Render(scr)
	if !strings.Contains(scr.Row(29), "Get ready") {
		t.Errorf("serve hint missing: %q", scr.Row(29))
	}

	for range 2 {
		g.Tick()
	}
	if len(g.Snapshot().Comets) != 0 {
		t.Fatal("comet served before the respawn delay elapsed")
	}

	g.Tick()
	s = g.Snapshot()
	if len(s.Comets) != 1 {
		t.Fatalf("expected a new comet, have %d", len(s.Comets))
	}
	if s.Comets[0].X != s.Moon.X || s.Comets[0].Y != engine.CometStartY {
		t.Errorf("new comet should be served above the moon, got %+v", s.Comets[0])
	}
	if s.Lives != cfg.Gameplay.Lives-1 {
		t.Error("waiting to serve must not cost more lives")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 1
	g := newTestGame(t, cfg)
	g.driver.Update(func(s engine.State) engine.State {
		s = parkMoon(s)
		s.Comets[0] = engine.Comet{X: 240, Y: 919, VX: 0, VY: 3, R: 7, Active: true}
		return s
	})

	g.Tick()

	if got := g.Snapshot(); got.Phase != engine.PhaseGameOver || got.Lives != 0 {
		t.Fatalf("expected game over with 0 lives, got %s/%d", got.Phase, got.Lives)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.HandleInput(in)

	s := g.Snapshot()
	if s.Phase != engine.PhasePlaying || s.Lives != 1 || s.Tick != 0 || len(s.Comets) != 1 {
		t.Errorf("restart should start the level fresh, got %+v", s)
	}
}

func TestGameRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Tick()

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.HandleInput(in)

	if g.Snapshot().Tick != 1 {
		t.Error("restart must only apply after the run ended")
	}
}

func TestGamePauseFreezes(t *testing.T) {
	g := newTestGame(t, testConfig())

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.HandleInput(in)

	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.MoveMoon(3)
	g.Tick()
	s := g.Snapshot()
	if s.Tick != 0 || s.Moon.X != engine.MoonStartX {
		t.Error("paused game must not advance or move the moon")
	}

	g.HandleInput(in)
	g.Tick()
	if g.State().Paused || g.Snapshot().Tick != 1 {
		t.Error("unpaused game should advance")
	}
}

func TestGameKeyInputMovesMoon(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.HandleInput(in)
	g.Tick()

	if got := g.Snapshot().Moon.X; got != engine.MoonStartX-cfg.Input.KeyStep {
		t.Errorf("Moon.X = %v, expected %v", got, engine.MoonStartX-cfg.Input.KeyStep)
	}

	g.MoveMoon(2)
	g.Tick()
	want := engine.MoonStartX - cfg.Input.KeyStep + 2*cfg.Input.MouseScale
	if got := g.Snapshot().Moon.X; got != want {
		t.Errorf("Moon.X = %v after mouse move, expected %v", got, want)
	}
}

func TestGameCatchesLifeDrop(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.driver.Update(func(s engine.State) engine.State {
		s.BonusDrops = []engine.BonusDrop{
			{X: s.Moon.X, Y: s.Moon.Top() - 1, VY: 2.5, Bonus: engine.LifeBonus(1)},
			{X: 10, Y: engine.DeathLine - 1, VY: 2.5, Bonus: engine.CometBonus()},
			{X: 10, Y: 300, VY: 2.5, Bonus: engine.CometBonus()},
		}
		return s
	})

	g.Tick()

	s := g.Snapshot()
	if s.Lives != testConfig().Gameplay.Lives+1 {
		t.Errorf("Lives = %d, expected a caught life", s.Lives)
	}
	if len(s.BonusDrops) != 1 || s.BonusDrops[0].Y != 302.5 {
		t.Errorf("expected only the falling drop to remain, got %+v", s.BonusDrops)
	}
	if len(s.Comets) != 1 {
		t.Error("lost comet drop must not apply")
	}
}

func TestGameCatchesFastDrop(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
	}{
		{"band height", 2 * engine.MoonHalfH},
		{"faster than band", 30},
		{"very fast", 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Bonus.FallSpeed = tc.speed
			g := newTestGame(t, cfg)
			g.driver.Update(func(s engine.State) engine.State {
				s.BonusDrops = []engine.BonusDrop{
					{X: s.Moon.X, Y: s.Moon.Top() - 1, VY: tc.speed, Bonus: engine.LifeBonus(1)},
				}
				return s
			})

			g.Tick()

			s := g.Snapshot()
			if s.Lives != cfg.Gameplay.Lives+1 || len(s.BonusDrops) != 0 {
				t.Errorf("drop falling through the moon was not caught: lives=%d drops=%d", s.Lives, len(s.BonusDrops))
			}
		})
	}
}

func TestGameDropBelowMoonNotCaught(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.driver.Update(func(s engine.State) engine.State {
		s.BonusDrops = []engine.BonusDrop{
			{X: s.Moon.X, Y: s.Moon.Y + s.Moon.HT + 1, VY: 2.5, Bonus: engine.LifeBonus(1)},
		}
		return s
	})

	g.Tick()

	s := g.Snapshot()
	if s.Lives != testConfig().Gameplay.Lives || len(s.BonusDrops) != 1 {
		t.Errorf("drop already below the moon must keep falling: lives=%d drops=%d", s.Lives, len(s.BonusDrops))
	}
}

func TestGameTimedMultiplier(t *testing.T) {
	cfg := testConfig()
	cfg.Bonus.MultiplierDuration = 3
	g := newTestGame(t, cfg)
	g.driver.Update(func(s engine.State) engine.State {
		s.BonusDrops = []engine.BonusDrop{
			{X: s.Moon.X, Y: s.Moon.Top() - 1, VY: 2.5, Bonus: engine.MultiplierBonus(2)},
		}
		return s
	})

	g.Tick()
	s := g.Snapshot()
	if s.Multiplier != 2 || s.ActiveBonuses[multiplierKey] != 3 {
		t.Fatalf("expected x2 for 3 ticks, got x%v for %d", s.Multiplier, s.ActiveBonuses[multiplierKey])
	}

	g.Tick()
	g.Tick()
	if g.Snapshot().Multiplier != 2 {
		t.Error("multiplier expired early")
	}

	g.Tick()
	s = g.Snapshot()
	if s.Multiplier != 1 {
		t.Errorf("Multiplier = %v after expiry, expected 1", s.Multiplier)
	}
	if _, ok := s.ActiveBonuses[multiplierKey]; ok {
		t.Error("expired bonus should be removed")
	}
}

func TestGameMultiplierExpiryFloor(t *testing.T) {
	cfg := testConfig()
	cfg.Bonus.MultiplierDuration = 1
	g := newTestGame(t, cfg)
	g.driver.Update(func(s engine.State) engine.State {
		s.BonusDrops = []engine.BonusDrop{
			{X: s.Moon.X, Y: s.Moon.Top() - 1, VY: 2.5, Bonus: engine.MultiplierBonus(4)},
		}
		return s
	})
	g.Tick()
	g.driver.Update(func(s engine.State) engine.State {
		s.Multiplier = 2
		return s
	})
	g.Tick()

	if got := g.Snapshot().Multiplier; got != 1 {
		t.Errorf("Multiplier = %v, expected the floor of 1", got)
	}
}

func TestGameCometDropWithoutComets(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.RespawnDelay = 100
	g := newTestGame(t, cfg)
	g.driver.Update(func(s engine.State) engine.State {
		s.Comets = nil
		s.BonusDrops = []engine.BonusDrop{
			{X: s.Moon.X, Y: s.Moon.Top() - 1, VY: 2.5, Bonus: engine.CometBonus()},
		}
		return s
	})

	if err := g.Tick(); err != nil {
		t.Fatalf("comet drop with no comet should be skipped, got %v", err)
	}
	if len(g.Snapshot().Comets) != 0 {
		t.Error("no comet should appear")
	}
}

func TestDropperRoll(t *testing.T) {
	cfg := testConfig().Bonus
	cfg.DropChance = 100
	cfg.Table = []config.BonusWeight{{Bonus: engine.CometBonus(), Weight: 1}}

	d := dropper{cfg: cfg, rng: NewSimpleRNG(1)}
	for range 20 {
		drop, ok := d.roll(10, 20)
		if !ok {
			t.Fatal("drop chance 100 should always drop")
		}
		if drop.Bonus != engine.CometBonus() || drop.X != 10 || drop.Y != 20 || drop.VY != cfg.FallSpeed {
			t.Errorf("unexpected drop %+v", drop)
		}
	}

	cfg.DropChance = 0
	d = dropper{cfg: cfg, rng: NewSimpleRNG(1)}
	if _, ok := d.roll(10, 20); ok {
		t.Error("drop chance 0 should never drop")
	}
}

func TestDropperWeights(t *testing.T) {
	cfg := testConfig().Bonus
	cfg.DropChance = 100
	cfg.Table = []config.BonusWeight{
		{Bonus: engine.LifeBonus(1), Weight: 0},
		{Bonus: engine.MultiplierBonus(2), Weight: 3},
		{Bonus: engine.CometBonus(), Weight: 1},
	}

	d := dropper{cfg: cfg, rng: NewSimpleRNG(99)}
	counts := map[engine.BonusKind]int{}
	for range 4000 {
		drop, _ := d.roll(0, 0)
		counts[drop.Bonus.Kind()]++
	}

	if counts[engine.BonusLife] != 0 {
		t.Error("zero-weight bonus should never drop")
	}
	if counts[engine.BonusMultiplier] < 2500 || counts[engine.BonusComet] < 700 {
		t.Errorf("weights not respected: %v", counts)
	}
}

func TestReplayReproducesRun(t *testing.T) {
	cfg := config.DefaultCometConfig()
	cfg.Bonus.DropChance = 50

	g, err := New(Options{Config: cfg, Levels: levels.BuiltinLevels(), LevelIndex: 1, Seed: 99})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	played, err := g.Play(2000, Autopilot(cfg.Input.KeyStep))
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	run, err := g.Recording()
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if len(run.Entries) == 0 {
		t.Fatal("autopilot run should record commands")
	}

	data, err := replay.Encode(run)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	decoded, err := replay.Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	final, err := Replay(decoded, nil)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if final.Score != played.Score || final.Tick != played.Tick || final.Moon != played.Moon {
		t.Errorf("replay diverged: score %d/%d tick %d/%d", final.Score, played.Score, final.Tick, played.Tick)
	}

	decoded.FinalScore++
	if _, err := Replay(decoded, nil); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("tampered replay should mismatch, got %v", err)
	}
}

func TestAutopilotSteersTowardComet(t *testing.T) {
	s := parkMoon(engine.State{Moon: engine.Moon{X: 240, Y: 800, HW: 70, HT: 14}})
	s.Comets = []engine.Comet{
		{X: 100, Y: 300, VY: 2, Active: true},
		{X: 460, Y: 100, VY: -2, Active: true},
	}

	cmd := Autopilot(24)(s)
	if cmd == nil || cmd.DeltaX != -24 {
		t.Fatalf("expected a full step toward the falling comet, got %+v", cmd)
	}

	s.Moon.X = 100
	if cmd := Autopilot(24)(s); cmd != nil {
		t.Errorf("moon under the comet should not move, got %+v", cmd)
	}

	s.Comets = nil
	if cmd := Autopilot(24)(s); cmd != nil {
		t.Error("no comet, no command")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig())
	scr := core.NewScreen(48, 30)

	g.Render(scr)

	out := scr.String()
	if !strings.Contains(scr.Row(0), "Score: 0") || !strings.Contains(scr.Row(0), "Lives: 3") {
		t.Errorf("HUD missing: %q", scr.Row(0))
	}
	for _, r := range []rune{CometChar, MoonChar, BrickSolid} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("screen missing %q", r)
		}
	}

	if strings.Contains(scr.Row(0), "Comets:") {
		t.Errorf("single comet should not be counted: %q", scr.Row(0))
	}
	g.driver.Update(func(s engine.State) engine.State {
		extra := s.Comets[0]
		extra.X += 40
		s.Comets = append(s.Comets[:1:1], extra)
		return s
	})
	g.Render(scr)
	if !strings.Contains(scr.Row(0), "Comets: 2") {
		t.Errorf("comet count missing: %q", scr.Row(0))
	}

	g.TogglePause()
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestRenderProjection(t *testing.T) {
	scr := core.NewScreen(48, 31)
	s := engine.State{
		Phase: engine.PhasePlaying,
		Moon:  engine.Moon{X: 240, Y: 800, HW: 70, HT: 14},
		Bricks: []engine.Brick{
			{X: 0, Y: 90, W: 40, H: 30, Alive: true, Damage: 0.75, Color: core.ColorRed},
		},
		Comets: []engine.Comet{{X: 240, Y: 450, Active: true}},
	}

	Render(scr, s, "")

	// 48 columns over 480 units and 30 field rows over 900 units: 10 units
	// per column and 30 units per row, below a one-row HUD.
	if got := scr.GetCell(24, 16); got.Rune != CometChar {
		t.Errorf("comet not at (24,16), found %q", got.Rune)
	}
	if got := scr.GetCell(0, 4); got.Rune != BrickBroken || got.Color != core.ColorRed {
		t.Errorf("damaged brick not drawn at (0,4): %+v", got)
	}
	if got := scr.GetCell(17, 1+26); got.Rune != MoonChar {
		t.Errorf("moon not drawn at row 27, found %q", got.Rune)
	}
}

func TestRenderTooSmall(t *testing.T) {
	scr := core.NewScreen(10, 5)
	Render(scr, engine.State{}, "")
	if !strings.Contains(scr.String(), "small") {
		t.Error("expected a too-small message")
	}
}

func TestGameAbortCorruptRun(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.driver.Update(func(s engine.State) engine.State {
		s.Comets[0].VX = math.Inf(1)
		return s
	})

	for range 2 {
		if err := g.Tick(); !errors.Is(err, engine.ErrCorruptSnapshot) {
			t.Fatalf("Tick() = %v, expected corrupt snapshot", err)
		}
	}

	g.Abort()
	if !g.Over() || g.Snapshot().Phase != engine.PhaseGameOver {
		t.Fatalf("aborted run should be over, phase %s", g.Snapshot().Phase)
	}
	if err := g.Tick(); err != nil {
		t.Errorf("ended run should not be stepped: %v", err)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.HandleInput(in)
	if s := g.Snapshot(); s.Phase != engine.PhasePlaying || s.Tick != 0 {
		t.Errorf("restart after abort: phase %s tick %d", s.Phase, s.Tick)
	}
}
