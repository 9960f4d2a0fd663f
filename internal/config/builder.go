package config

import "github.com/rs/zerolog"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithLogger sets the logger.
func (b *ConfigBuilder) WithLogger(l zerolog.Logger) *ConfigBuilder {
	b.cfg.Logger = l
	return b
}

// WithWorkers sets the number of generator workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithRepetition enables threefold repetition detection.
func (b *ConfigBuilder) WithRepetition(enabled bool) *ConfigBuilder {
	b.cfg.Rules.DetectRepetition = enabled
	return b
}

// WithFiftyMoveRule enables the fifty-move rule.
func (b *ConfigBuilder) WithFiftyMoveRule(enabled bool) *ConfigBuilder {
	b.cfg.Rules.DetectFiftyMove = enabled
	return b
}

// WithAmbiguousCastleSquares lists rook-square castling among generated moves.
func (b *ConfigBuilder) WithAmbiguousCastleSquares(enabled bool) *ConfigBuilder {
	b.cfg.Rules.AllowAmbiguousCastleSquares = enabled
	return b
}

// WithLatin1Input decodes PGN input as ISO 8859-1.
func (b *ConfigBuilder) WithLatin1Input(enabled bool) *ConfigBuilder {
	b.cfg.Input.Latin1 = enabled
	return b
}

// WithStopOnError makes the first malformed game end parsing.
func (b *ConfigBuilder) WithStopOnError(enabled bool) *ConfigBuilder {
	b.cfg.Input.StopOnError = enabled
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithTagFormat sets which tags are written.
func (b *ConfigBuilder) WithTagFormat(form TagOutputForm) *ConfigBuilder {
	b.cfg.Output.TagFormat = form
	return b
}

// KeepMoveNumbers controls whether move numbers are written.
func (b *ConfigBuilder) KeepMoveNumbers(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepMoveNumbers = keep
	return b
}

// KeepResults controls whether the result follows the moves.
func (b *ConfigBuilder) KeepResults(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepResults = keep
	return b
}

// KeepChecks controls whether check symbols are written.
func (b *ConfigBuilder) KeepChecks(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepChecks = keep
	return b
}
