package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file. A level gives
// either explicit bricks in field units or ASCII rows, not both.
type YAMLLevel struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Bricks []YAMLBrick `yaml:"bricks,omitempty"`
	Rows   []string    `yaml:"rows,omitempty"`
}

// YAMLBrick is a single brick in field units.
type YAMLBrick struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Color string  `yaml:"color,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	switch {
	case len(yl.Rows) > 0 && len(yl.Bricks) > 0:
		return Level{}, levelError(yl.ID, "give either bricks or rows, not both")
	case len(yl.Rows) > 0:
		return ParseLevel(yl.ID, yl.Name, yl.Rows)
	}

	lvl := Level{ID: yl.ID, Name: yl.Name}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}
	for i, b := range yl.Bricks {
		color, ok := core.ParseColor(b.Color)
		if !ok {
			return Level{}, levelError(yl.ID, fmt.Sprintf("brick %d has unknown color %q", i, b.Color))
		}
		lvl.Bricks = append(lvl.Bricks, engine.Brick{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Color: color,
			Alive: true,
		})
	}

	if err := Validate(lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
