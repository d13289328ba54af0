package engine

// Field and physics constants. The simulation runs in logical units on a
// FieldWidth x FieldHeight playfield; dt is a tick multiplier, nominally 1.0
// at 60 logical ticks per second.
const (
	FieldWidth  = 480.0
	FieldHeight = 900.0

	Gravity = 0.12
	MaxVY   = 8.0

	DamageStep   = 0.25
	ParticleLife = 30
	MoonKick     = 0.03
	DeathLine    = 920.0

	// NominalDT is one 60th-of-a-second logical step.
	NominalDT = 1.0
)

// Level-start values.
const (
	StartLives = 3

	MoonStartX = 240.0
	MoonStartY = 800.0
	MoonHalfW  = 70.0
	MoonHalfH  = 14.0

	CometStartX  = 240.0
	CometStartY  = 760.0
	CometStartVX = 2.0
	CometStartVY = -4.0
	CometRadius  = 7.0
)

// plausibilityMargin bounds how far outside the field an active comet may
// be before a snapshot is considered corrupt.
const plausibilityMargin = 1000.0
