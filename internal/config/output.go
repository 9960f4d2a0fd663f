package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// minLineLength is the narrowest line that still fits any single move token.
const minLineLength = 20

// OutputConfig holds settings related to PGN output formatting.
type OutputConfig struct {
	// MaxLineLength is the maximum line length for PGN output
	MaxLineLength uint

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether the game result is written after the moves
	KeepResults bool

	// KeepChecks controls whether check symbols (+, #) are included
	KeepChecks bool

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		KeepChecks:      true,
		TagFormat:       AllTags,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < minLineLength {
		return fmt.Errorf("line length %d below minimum %d: %w",
			o.MaxLineLength, minLineLength, errors.ErrInvalidConfig)
	}
	if o.TagFormat < AllTags || o.TagFormat > NoTags {
		return fmt.Errorf("unknown tag format %d: %w", o.TagFormat, errors.ErrInvalidConfig)
	}
	return nil
}
