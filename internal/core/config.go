package core

// RuntimeConfig contains settings passed to the game when a session starts.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Redraw ticks per second
	CellSize  int   // Pixel size of one map cell
	Seed      int64 // Coin distribution seed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
		CellSize:  10,
		Seed:      1,
	}
}

// GameState reports the current state of a game to the platform.
type GameState struct {
	Coins    int
	Lives    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State   GameState
	Message string // Latest interact/attack result, empty when nothing happened
}
