package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
)

// Visual characters for rendering
const (
	CometChar    = '●'
	MoonChar     = '▀'
	ParticleChar = '·'
	BrickSolid   = '█'
	BrickCracked = '▓'
	BrickBroken  = '▒'
)

// Minimum terminal size for the field to stay readable.
const (
	MinScreenW = 24
	MinScreenH = 14
)

// hudRows is the number of rows above the field.
const hudRows = 1

// brickGlyph shades a brick by damage.
func brickGlyph(damage float64) rune {
	switch {
	case damage <= 0:
		return BrickSolid
	case damage <= 0.5:
		return BrickCracked
	default:
		return BrickBroken
	}
}

// dropGlyph returns the glyph and color of a falling bonus.
func dropGlyph(b engine.Bonus) (rune, core.Color) {
	switch b.Kind() {
	case engine.BonusMultiplier:
		return '×', core.ColorBrightYellow
	case engine.BonusLife:
		return '♥', core.ColorBrightRed
	case engine.BonusComet:
		return '✦', core.ColorBrightCyan
	default:
		return '?', core.ColorGray
	}
}

// projection maps field units to screen cells.
type projection struct {
	w, h   int // Field area in cells
	top    int // First field row
	offset int // Horizontal shake offset
}

func newProjection(dst *core.Screen, s engine.State) projection {
	p := projection{w: dst.Width(), h: dst.Height() - hudRows, top: hudRows}
	if s.ShakeT > 0 {
		p.offset = 1
		if s.Tick%2 == 1 {
			p.offset = -1
		}
	}
	return p
}

func (p projection) x(v float64) int {
	return core.Scale(v, engine.FieldWidth, p.w) + p.offset
}

func (p projection) y(v float64) int {
	return p.top + core.Scale(v, engine.FieldHeight, p.h)
}

// Render draws a snapshot onto the screen: HUD, castle, drops, particles,
// moon, comets and the phase overlay.
func Render(dst *core.Screen, s engine.State, title string) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	p := newProjection(dst, s)

	renderHUD(dst, s, title)
	renderBricks(dst, p, s.Bricks)
	renderDrops(dst, p, s.BonusDrops)
	renderParticles(dst, p, s.Particles)
	renderMoon(dst, p, s.Moon)
	renderComets(dst, p, s.Comets)
	renderOverlay(dst, s)
}

// Render draws the game's latest snapshot.
func (g *Game) Render(dst *core.Screen) {
	Render(dst, g.driver.Snapshot(), g.Title())
}

func renderHUD(dst *core.Screen, s engine.State, title string) {
	left := fmt.Sprintf("Score: %d  Lives: %d  x%g", s.Score, max(s.Lives, 0), s.Multiplier)
	if n := s.ActiveComets(); n > 1 {
		left += fmt.Sprintf("  Comets: %d", n)
	}
	if b := bonusSummary(s.ActiveBonuses); b != "" {
		left += "  " + b
	}
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	if title != "" && len(left)+len(title)+3 < dst.Width() {
		dst.DrawTextColored(dst.Width()-len([]rune(title))-1, 0, title, core.ColorGray)
	}
}

// bonusSummary lists active timed bonuses with their seconds left.
func bonusSummary(active map[string]int) string {
	if len(active) == 0 {
		return ""
	}
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s(%ds)", name, (active[name]+59)/60)
	}
	return strings.Join(parts, " ")
}

func renderBricks(dst *core.Screen, p projection, bricks []engine.Brick) {
	for _, b := range bricks {
		if !b.Alive {
			continue
		}
		x0, y0 := p.x(b.X), p.y(b.Y)
		x1, y1 := max(p.x(b.X+b.W), x0+1), max(p.y(b.Y+b.H), y0+1)

		// Leave a one-cell gap between neighbours when there is room.
		if x1-x0 > 2 {
			x1--
		}
		dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), brickGlyph(b.Damage), b.Color)
	}
}

func renderDrops(dst *core.Screen, p projection, drops []engine.BonusDrop) {
	for _, d := range drops {
		r, c := dropGlyph(d.Bonus)
		dst.SetColored(p.x(d.X), p.y(d.Y), r, c)
	}
}

func renderParticles(dst *core.Screen, p projection, particles []engine.Particle) {
	for _, pt := range particles {
		c := core.ColorBrightYellow
		if pt.Life < engine.ParticleLife/2 {
			c = core.ColorGray
		}
		dst.SetColored(p.x(pt.X), p.y(pt.Y), ParticleChar, c)
	}
}

func renderMoon(dst *core.Screen, p projection, m engine.Moon) {
	x0 := p.x(m.X - m.HW)
	x1 := max(p.x(m.X+m.HW), x0+1)
	dst.DrawHLine(x0, p.y(m.Top()), x1-x0, MoonChar, core.ColorBrightWhite)
}

func renderComets(dst *core.Screen, p projection, comets []engine.Comet) {
	for _, c := range comets {
		if !c.Active {
			continue
		}
		dst.SetColored(p.x(c.X), p.y(c.Y), CometChar, core.ColorBrightCyan)
	}
}

func renderOverlay(dst *core.Screen, s engine.State) {
	switch s.Phase {
	case engine.PhasePlaying:
		if len(s.Comets) == 0 {
			dst.DrawTextCentered(dst.Height()-1, "Get ready...")
		}

	case engine.PhasePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case engine.PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))

	case engine.PhaseCleared:
		drawCenteredBox(dst, "CASTLE FALLEN!", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
