package game

// SimpleRNG is a small deterministic generator for bonus drops. Its state is
// a single word so a run can be reproduced from the seed alone.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64 (64-bit LCG, Knuth's MMIX constants).
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are the well-mixed ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}
