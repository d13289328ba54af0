package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-comet/internal/engine"
)

//go:embed defaults/comet.yaml
var defaultCometYAML []byte

// DefaultCometConfig returns the default comet configuration.
func DefaultCometConfig() CometConfig {
	return CometConfig{
		Gameplay: Gameplay{
			Lives:          engine.StartLives,
			PointsPerBrick: 10,
			RespawnDelay:   60, // One second at 60 ticks
			ShakeTicks:     8,
		},
		Bonus: BonusConfig{
			DropChance:         15,
			FallSpeed:          2.5,
			MultiplierDuration: 600, // Ten seconds
			Table: []BonusWeight{
				{Bonus: engine.MultiplierBonus(2), Weight: 5},
				{Bonus: engine.LifeBonus(1), Weight: 2},
				{Bonus: engine.CometBonus(), Weight: 3},
			},
		},
		Input: InputConfig{
			KeyStep:    24,
			MouseScale: 8,
			QueueSize:  engine.DefaultQueueSize,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultCometYAML
}
