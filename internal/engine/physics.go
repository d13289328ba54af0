package engine

import "math"

// Integrate advances one comet's kinematics by dt ticks.
// Gravity accelerates the comet downward up to MaxVY, then position follows
// velocity. Inactive comets are returned unchanged. No collision handling
// happens here; see Resolve.
func Integrate(c Comet, dt float64) Comet {
	if !c.Active {
		return c
	}

	c.VY = math.Min(c.VY+Gravity*dt, MaxVY)
	c.X += c.VX * dt
	c.Y += c.VY * dt
	return c
}
