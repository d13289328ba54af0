package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-comet/internal/core"
)

// CommandKind identifies a queued player command.
type CommandKind string

// CommandMoonMove moves the moon horizontally by DeltaX.
const CommandMoonMove CommandKind = "moon-move"

// Command is a discrete player command consumed by one tick.
type Command struct {
	Kind   CommandKind
	DeltaX float64
}

// MoonMove builds a moon-move command.
func MoonMove(dx float64) Command {
	return Command{Kind: CommandMoonMove, DeltaX: dx}
}

// Step runs one fixed tick and returns the next snapshot.
//
// The moon moves first (when cmd is non-nil), then every comet runs through
// Integrate and Resolve in order, particles age by one tick and the tick
// counter advances. prev is never modified. If the command is malformed or the
// resulting snapshot is visibly corrupt, prev is returned with an error and
// nothing is committed.
func Step(prev State, dt float64, cmd *Command) (State, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return prev, &ConfigurationError{Field: "dt", Value: fmt.Sprint(dt), Reason: "tick duration must be positive and finite"}
	}

	next := prev.Clone()

	if cmd != nil {
		if err := applyCommand(&next, *cmd); err != nil {
			return prev, err
		}
	}

	for i, c := range next.Comets {
		c = Integrate(c, dt)
		next.Comets[i] = Resolve(c, &next)
	}

	next.Particles = ageParticles(next.Particles)
	next.Tick++

	if err := validate(next); err != nil {
		return prev, err
	}
	return next, nil
}

func applyCommand(s *State, cmd Command) error {
	switch cmd.Kind {
	case CommandMoonMove:
		if !core.Finite(cmd.DeltaX) {
			return &ConfigurationError{Field: "command", Value: string(cmd.Kind), Reason: "delta must be finite"}
		}
		s.Moon.X = core.ClampF(s.Moon.X+cmd.DeltaX, s.Moon.HW, FieldWidth-s.Moon.HW)
		return nil
	}
	return &ConfigurationError{Field: "command", Value: string(cmd.Kind), Reason: "unknown command kind"}
}

// ageParticles decrements every particle once and drops the spent ones.
// The slice is filtered in place.
func ageParticles(ps []Particle) []Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.Life--
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	return alive
}

// validate refuses snapshots carrying NaN/Inf values or active comets far
// outside any plausible position.
func validate(s State) error {
	if !core.Finite(s.Moon.X, s.Moon.Y, s.Multiplier) {
		return fmt.Errorf("%w: moon or multiplier is not finite", ErrCorruptSnapshot)
	}

	for i, c := range s.Comets {
		if !core.Finite(c.X, c.Y, c.VX, c.VY, c.R) {
			return fmt.Errorf("%w: comet %d has non-finite kinematics", ErrCorruptSnapshot, i)
		}
		if !c.Active {
			continue
		}
		if c.X < -plausibilityMargin || c.X > FieldWidth+plausibilityMargin ||
			c.Y < -plausibilityMargin || c.Y > FieldHeight+plausibilityMargin {
			return fmt.Errorf("%w: comet %d at (%.1f, %.1f)", ErrCorruptSnapshot, i, c.X, c.Y)
		}
	}

	return nil
}
