package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic play; 0 picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the game status reported to the platform after each tick.
type GameState struct {
	Score    int  // Cells cleared so far
	GameOver bool // Session ended, won or lost
	Won      bool // Session ended with every block placed
	Paused   bool // Session is idle and waiting for start
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
