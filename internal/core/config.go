package core

// RuntimeConfig contains configuration passed to a game session at start.
// The platform fills it from the terminal size and CLI flags.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic piece generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState summarizes a running game for the platform (HUD, journal).
type GameState struct {
	Score    int  // Lines cleared, one point each
	Level    int  // Current level, starting at 1
	Lines    int  // Lines cleared towards the next level
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}
