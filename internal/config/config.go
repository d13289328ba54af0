// Package config provides YAML-based configuration loading for the comet game.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-comet/internal/engine"
)

// CometConfig contains all tunable game-flow configuration. Physics constants
// live in the engine and are not configurable.
type CometConfig struct {
	Gameplay Gameplay    `yaml:"gameplay"`
	Bonus    BonusConfig `yaml:"bonus"`
	Input    InputConfig `yaml:"input"`
}

// Gameplay defines scoring and life rules.
type Gameplay struct {
	Lives          int `yaml:"lives"`
	PointsPerBrick int `yaml:"points_per_brick"`
	RespawnDelay   int `yaml:"respawn_delay"` // Ticks before a new comet is served
	ShakeTicks     int `yaml:"shake_ticks"`
}

// BonusConfig defines bonus drops from destroyed bricks.
type BonusConfig struct {
	DropChance         int           `yaml:"drop_chance"` // Percent, 0-100
	FallSpeed          float64       `yaml:"fall_speed"`  // Field units per tick
	MultiplierDuration int           `yaml:"multiplier_duration"`
	Table              []BonusWeight `yaml:"table"`
}

// BonusWeight is one entry of the weighted drop table.
type BonusWeight struct {
	Bonus  engine.Bonus `yaml:"bonus"` // "multiplier:2", "life:1", "comet"
	Weight int          `yaml:"weight"`
}

// InputConfig defines how player input becomes moon-move commands.
type InputConfig struct {
	KeyStep    float64 `yaml:"key_step"`    // Moon delta per key press
	MouseScale float64 `yaml:"mouse_scale"` // Field units per terminal column
	QueueSize  int     `yaml:"queue_size"`
}

// TotalWeight sums the drop table weights.
func (b BonusConfig) TotalWeight() int {
	total := 0
	for _, w := range b.Table {
		total += w.Weight
	}
	return total
}

// Validate reports the first out-of-range value.
func (c CometConfig) Validate() error {
	switch {
	case c.Gameplay.Lives <= 0:
		return invalid("gameplay.lives", c.Gameplay.Lives, "must be positive")
	case c.Gameplay.PointsPerBrick < 0:
		return invalid("gameplay.points_per_brick", c.Gameplay.PointsPerBrick, "must not be negative")
	case c.Gameplay.RespawnDelay < 0:
		return invalid("gameplay.respawn_delay", c.Gameplay.RespawnDelay, "must not be negative")
	case c.Gameplay.ShakeTicks < 0:
		return invalid("gameplay.shake_ticks", c.Gameplay.ShakeTicks, "must not be negative")
	case c.Bonus.DropChance < 0 || c.Bonus.DropChance > 100:
		return invalid("bonus.drop_chance", c.Bonus.DropChance, "must be between 0 and 100")
	case c.Bonus.FallSpeed <= 0:
		return invalid("bonus.fall_speed", c.Bonus.FallSpeed, "must be positive")
	case c.Bonus.MultiplierDuration <= 0:
		return invalid("bonus.multiplier_duration", c.Bonus.MultiplierDuration, "must be positive")
	case c.Input.KeyStep <= 0:
		return invalid("input.key_step", c.Input.KeyStep, "must be positive")
	case c.Input.MouseScale <= 0:
		return invalid("input.mouse_scale", c.Input.MouseScale, "must be positive")
	case c.Input.QueueSize < 0:
		return invalid("input.queue_size", c.Input.QueueSize, "must not be negative")
	}

	for i, w := range c.Bonus.Table {
		if w.Bonus.IsZero() {
			return invalid(fmt.Sprintf("bonus.table[%d].bonus", i), "", "missing bonus")
		}
		if w.Weight < 0 {
			return invalid(fmt.Sprintf("bonus.table[%d].weight", i), w.Weight, "must not be negative")
		}
	}
	if c.Bonus.DropChance > 0 && c.Bonus.TotalWeight() == 0 {
		return invalid("bonus.table", "", "drops enabled but no weighted bonus")
	}
	return nil
}

func invalid(field string, value any, reason string) error {
	return &engine.ConfigurationError{Field: field, Value: fmt.Sprint(value), Reason: reason}
}
