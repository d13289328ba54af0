// Package levels provides the castle layouts the comet plays against:
// built-in ASCII castles and YAML level files loaded from a directory.
package levels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
)

// Level is a level descriptor: an ID, a display name and an ordered brick layout.
type Level = engine.Level

// Grid geometry used to project ASCII maps into the playfield.
const (
	Columns  = 12
	BrickW   = engine.FieldWidth / Columns
	BrickH   = 20.0
	GridTop  = 80.0
	MaxRows  = 30
	gridLeft = 0.0
)

// palette maps digit cells to brick colors. '#' is plain stone.
var palette = map[byte]core.Color{
	'1': core.ColorRed,
	'2': core.ColorOrange,
	'3': core.ColorYellow,
	'4': core.ColorGreen,
	'5': core.ColorCyan,
	'6': core.ColorBlue,
	'7': core.ColorMagenta,
	'8': core.ColorWhite,
	'9': core.ColorGray,
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = stone brick
//	'.' or ' ' = empty
//	'1'-'9' = colored brick (see palette)
//
// Rows are at most Columns wide; row r, column c becomes a brick at
// (c*BrickW, GridTop + r*BrickH).
func ParseLevel(id, name string, rows []string) (Level, error) {
	if id == "" {
		return Level{}, levelError(id, "level needs an id")
	}
	if len(rows) > MaxRows {
		return Level{}, levelError(id, fmt.Sprintf("at most %d rows allowed", MaxRows))
	}

	lvl := Level{ID: id, Name: name}
	if lvl.Name == "" {
		lvl.Name = id
	}

	for r, line := range rows {
		line = strings.TrimRight(line, " ")
		if len(line) > Columns {
			return Level{}, levelError(id, fmt.Sprintf("row %d is wider than %d columns", r, Columns))
		}
		for c := range len(line) {
			ch := line[c]
			var color core.Color
			switch {
			case ch == '.' || ch == ' ':
				continue
			case ch == '#':
				color = core.ColorLavender
			default:
				var ok bool
				color, ok = palette[ch]
				if !ok {
					return Level{}, levelError(id, fmt.Sprintf("unknown cell %q at row %d col %d", ch, r, c))
				}
			}
			lvl.Bricks = append(lvl.Bricks, engine.Brick{
				X:     gridLeft + float64(c)*BrickW,
				Y:     GridTop + float64(r)*BrickH,
				W:     BrickW,
				H:     BrickH,
				Color: color,
				Alive: true,
			})
		}
	}

	if len(lvl.Bricks) == 0 {
		return Level{}, levelError(id, "level has no bricks")
	}
	return lvl, nil
}

func levelError(id, reason string) error {
	return &engine.ConfigurationError{Field: "level", Value: id, Reason: reason}
}

// Validate checks a layout loaded from outside the ASCII grid.
func Validate(lvl Level) error {
	if lvl.ID == "" {
		return levelError("", "level needs an id")
	}
	if len(lvl.Bricks) == 0 {
		return levelError(lvl.ID, "level has no bricks")
	}
	for i, b := range lvl.Bricks {
		if b.W <= 0 || b.H <= 0 || !core.Finite(b.X, b.Y, b.W, b.H) {
			return levelError(lvl.ID, fmt.Sprintf("brick %d needs a finite position and positive size", i))
		}
		if b.X < 0 || b.X+b.W > engine.FieldWidth || b.Y < 0 || b.Y+b.H > engine.DeathLine {
			return levelError(lvl.ID, fmt.Sprintf("brick %d lies outside the field", i))
		}
	}
	return nil
}

// Select returns levels[index mod len(levels)]. Negative indices wrap too.
func Select(levels []Level, index int) (Level, error) {
	if len(levels) == 0 {
		return Level{}, &engine.ConfigurationError{Field: "levels", Reason: "no levels available"}
	}
	n := len(levels)
	return levels[((index%n)+n)%n], nil
}

// ByID returns the level with the given ID and its index.
func ByID(levels []Level, id string) (Level, int, bool) {
	for i, lvl := range levels {
		if lvl.ID == id {
			return lvl, i, true
		}
	}
	return Level{}, -1, false
}

// Resolve turns a CLI level argument into an index: a level ID, or a
// number taken modulo the level count.
func Resolve(levels []Level, arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	if _, i, ok := ByID(levels, arg); ok {
		return i, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		return n, nil
	}
	return 0, fmt.Errorf("levels: unknown level %q", arg)
}
