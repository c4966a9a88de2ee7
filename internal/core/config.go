package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a level run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID   string // Level being played
	Ticks     int    // Frames simulated since the level started, pauses excluded
	Deaths    int    // Player deaths since the level started
	Completed bool   // Both doors are open
	GameOver  bool   // The run has ended (completed or abandoned)
	Paused    bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Died is set on the tick a player died.
	Died bool
	// JustCompleted is set only on the tick the level was finished.
	JustCompleted bool
}
