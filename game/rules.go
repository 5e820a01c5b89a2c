package game

// Rules holds the scoring and timing constants applied by GameState.
type Rules struct {
	ScaredTime  int     // Moves a ghost stays scared after a capsule is eaten
	TimePenalty float64 // Deducted on every pacman move
	FoodReward  float64
	GhostReward float64 // Eating a scared ghost
	WinReward   float64
	LosePenalty float64
}

// NewStandardRules returns the classic scoring: -1 per move, +10 per food, +200 per eaten ghost,
// +500 for clearing the board and -500 for being caught.
func NewStandardRules() Rules {
	return Rules{
		ScaredTime:  40,
		TimePenalty: 1,
		FoodReward:  10,
		GhostReward: 200,
		WinReward:   500,
		LosePenalty: 500,
	}
}
