package engine

import "math"

// Resolve detects and resolves the collisions of a comet that was already
// advanced by Integrate. It returns the corrected comet and applies brick
// damage and particle spawns to s.
//
// Checks run in a fixed order and each one sees the outcome of the previous:
// walls, ceiling, moon, bricks, death line. Bricks and the moon are tested
// against the comet's center x and its radius-expanded vertical extent.
func Resolve(c Comet, s *State) Comet {
	if !c.Active {
		return c
	}

	// Reflection only, the comet is not pushed back inside.
	if c.X < c.R || c.X > FieldWidth-c.R {
		c.VX = -c.VX
	}
	if c.Y < c.R {
		c.VY = -c.VY
	}

	if hitsMoon(c, s.Moon) {
		c.VY = -math.Abs(c.VY)
		c.VX += (c.X - s.Moon.X) * MoonKick
	}

	for i := range s.Bricks {
		b := &s.Bricks[i]
		if !b.Alive || !overlapsBrick(c, *b) {
			continue
		}
		damageBrick(b)
		c.VY = -c.VY
		s.Particles = append(s.Particles, Particle{X: c.X, Y: c.Y, Life: ParticleLife})
	}

	if c.Y > DeathLine {
		c.Active = false
	}

	return c
}

func hitsMoon(c Comet, m Moon) bool {
	return c.Y+c.R > m.Top() && c.X > m.X-m.HW && c.X < m.X+m.HW
}

func overlapsBrick(c Comet, b Brick) bool {
	return c.X > b.X && c.X < b.X+b.W &&
		c.Y-c.R < b.Y+b.H && c.Y+c.R > b.Y
}

// damageBrick applies one hit. Damage is capped at 1 and the brick dies
// exactly when it gets there.
func damageBrick(b *Brick) {
	b.Damage = math.Min(1, b.Damage+DamageStep)
	if b.Damage >= 1 {
		b.Alive = false
	}
}
