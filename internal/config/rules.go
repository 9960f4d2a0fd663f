package config

// RulesConfig selects the optional end-of-game rules and generator options.
type RulesConfig struct {
	// DetectRepetition enables threefold repetition detection.
	DetectRepetition bool

	// DetectFiftyMove enables the fifty-move rule.
	DetectFiftyMove bool

	// AllowAmbiguousCastleSquares lists castling with the king sent onto the
	// rook's square among generated moves.
	AllowAmbiguousCastleSquares bool
}

// NewRulesConfig creates a RulesConfig with default values.
// All fields use Go zero values: only insufficient material ends a game by rule.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{}
}
