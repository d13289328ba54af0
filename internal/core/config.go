package core

// RuntimeConfig describes the terminal a game is shown on.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second; the simulation itself runs at a fixed 60 Hz
	Seed     int64 // RNG seed for bonus drops
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the coarse status the platform needs to drive a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended (lost or cleared)
	Paused   bool // Whether the game is paused
}
