// Package core provides fundamental types and utilities shared by the game and
// the terminal platform. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned cell rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Scale maps v from the range [0, from) onto [0, to) cells, truncating.
func Scale(v, from float64, to int) int {
	if from <= 0 {
		return 0
	}
	return int(math.Floor(v / from * float64(to)))
}
