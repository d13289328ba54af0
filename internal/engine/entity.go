// Package engine implements the comet simulation core: the entity model, the
// per-tick integrator and collision resolver, bonus application and the tick
// orchestrator. Step and its helpers perform no I/O and never block; Driver
// feeds them fixed ticks from wall-clock time.
package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vovakirdan/tui-comet/internal/core"
)

// Phase is the coarse game phase carried by a snapshot.
// Only PhasePlaying is driven by the engine itself.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "gameover"
	PhaseCleared  Phase = "cleared"
)

// Comet is the gravity-affected projectile.
type Comet struct {
	X, Y   float64 // Center position
	VX, VY float64 // Velocity per tick
	R      float64 // Radius, constant once created
	Active bool    // False once the comet fell past the death line
}

// Moon is the player-controlled paddle.
type Moon struct {
	X, Y float64 // Center position
	HW   float64 // Half width
	HT   float64 // Half height
}

// Top returns the y coordinate of the moon's top edge.
func (m Moon) Top() float64 {
	return m.Y - m.HT
}

// Brick is a destructible castle block.
type Brick struct {
	X, Y, W, H float64
	Color      core.Color
	Alive      bool
	Damage     float64 // 0.0 to 1.0, the brick dies at 1.0
}

// Particle is a cosmetic spark aged by the simulation.
type Particle struct {
	X, Y float64
	Life int // Ticks left
}

// BonusDrop is a bonus falling from a destroyed brick, waiting to be caught.
type BonusDrop struct {
	X, Y  float64
	VY    float64
	Bonus Bonus
}

// Level is a level descriptor: an ordered brick layout.
type Level struct {
	ID     string
	Name   string
	Bricks []Brick
}

// State is the complete simulation snapshot.
type State struct {
	Phase      Phase
	LevelIndex int
	LevelID    string
	Layout     []Brick // Initial layout of the current level, never mutated

	Score      int
	Lives      int
	Multiplier float64

	Moon       Moon
	Comets     []Comet
	Bricks     []Brick
	Particles  []Particle
	BonusDrops []BonusDrop

	// ActiveBonuses maps a timed bonus name to its remaining ticks.
	ActiveBonuses map[string]int

	Tick   uint64
	ShakeT float64
}

// NewComet returns the comet served at level start.
func NewComet() Comet {
	return Comet{
		X:      CometStartX,
		Y:      CometStartY,
		VX:     CometStartVX,
		VY:     CometStartVY,
		R:      CometRadius,
		Active: true,
	}
}

// NewState builds the level-start snapshot for levels[levelIndex mod len].
func NewState(levelIndex int, levels []Level) (State, error) {
	if len(levels) == 0 {
		return State{}, &ConfigurationError{Field: "levels", Reason: "no levels available"}
	}

	lvl := levels[wrapIndex(levelIndex, len(levels))]
	for i, b := range lvl.Bricks {
		if b.W <= 0 || b.H <= 0 || !core.Finite(b.X, b.Y, b.W, b.H) {
			return State{}, &ConfigurationError{
				Field:  "brick",
				Value:  fmt.Sprintf("%s[%d]", lvl.ID, i),
				Reason: "brick needs a finite position and positive size",
			}
		}
	}

	return State{
		Phase:      PhasePlaying,
		LevelIndex: levelIndex,
		LevelID:    lvl.ID,
		Layout:     lvl.Bricks,
		Lives:      StartLives,
		Multiplier: 1,
		Moon: Moon{
			X:  MoonStartX,
			Y:  MoonStartY,
			HW: MoonHalfW,
			HT: MoonHalfH,
		},
		Comets:        []Comet{NewComet()},
		Bricks:        freshBricks(lvl.Bricks),
		Particles:     []Particle{},
		BonusDrops:    []BonusDrop{},
		ActiveBonuses: map[string]int{},
	}, nil
}

// freshBricks copies a layout with every brick alive and undamaged.
func freshBricks(layout []Brick) []Brick {
	bricks := make([]Brick, len(layout))
	for i, b := range layout {
		b.Alive = true
		b.Damage = 0
		bricks[i] = b
	}
	return bricks
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// Clone returns a deep copy sharing nothing mutable with s.
// Layout is shared since it is never written.
func (s State) Clone() State {
	c := s
	c.Comets = slices.Clone(s.Comets)
	c.Bricks = slices.Clone(s.Bricks)
	c.Particles = slices.Clone(s.Particles)
	c.BonusDrops = slices.Clone(s.BonusDrops)
	c.ActiveBonuses = maps.Clone(s.ActiveBonuses)
	if c.ActiveBonuses == nil {
		c.ActiveBonuses = map[string]int{}
	}
	return c
}

// ActiveComets counts comets still in play.
func (s State) ActiveComets() int {
	n := 0
	for _, c := range s.Comets {
		if c.Active {
			n++
		}
	}
	return n
}

// AliveBricks counts bricks that have not been destroyed.
func (s State) AliveBricks() int {
	n := 0
	for _, b := range s.Bricks {
		if b.Alive {
			n++
		}
	}
	return n
}

// PruneComets drops inactive comets, keeping order.
func (s *State) PruneComets() {
	s.Comets = slices.DeleteFunc(s.Comets, func(c Comet) bool {
		return !c.Active
	})
}
