package main

import (
	"io"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Output.TagFormat != config.AllTags {
					t.Errorf("TagFormat = %v, want AllTags", cfg.Output.TagFormat)
				}
				if !cfg.Output.KeepResults || !cfg.Output.KeepChecks || !cfg.Output.KeepMoveNumbers {
					t.Errorf("Output = %+v, want everything kept", cfg.Output)
				}
				if cfg.Rules.DetectRepetition || cfg.Rules.DetectFiftyMove {
					t.Errorf("Rules = %+v, want optional rules off", cfg.Rules)
				}
				if cfg.Output.MaxLineLength != 80 {
					t.Errorf("MaxLineLength = %d, want 80", cfg.Output.MaxLineLength)
				}
			},
		},
		{
			name: "notags wins over seven tag roster",
			args: []string{"-7", "-notags"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Output.TagFormat != config.NoTags {
					t.Errorf("TagFormat = %v, want NoTags", cfg.Output.TagFormat)
				}
			},
		},
		{
			name: "seven tag roster",
			args: []string{"-7"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Output.TagFormat != config.SevenTagRoster {
					t.Errorf("TagFormat = %v, want SevenTagRoster", cfg.Output.TagFormat)
				}
			},
		},
		{
			name: "move text options",
			args: []string{"-noresults", "-nochecks", "-nomovenumbers", "-w", "120"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Output.KeepResults || cfg.Output.KeepChecks || cfg.Output.KeepMoveNumbers {
					t.Errorf("Output = %+v, want results, checks and numbers dropped", cfg.Output)
				}
				if cfg.Output.MaxLineLength != 120 {
					t.Errorf("MaxLineLength = %d, want 120", cfg.Output.MaxLineLength)
				}
			},
		},
		{
			name: "rules",
			args: []string{"-repetition", "-fifty", "-rookcastle"},
			check: func(t *testing.T, cfg *config.Config) {
				want := config.RulesConfig{DetectRepetition: true, DetectFiftyMove: true, AllowAmbiguousCastleSquares: true}
				if cfg.Rules != want {
					t.Errorf("Rules = %+v, want %+v", cfg.Rules, want)
				}
			},
		},
		{
			name: "input",
			args: []string{"-latin1", "-strict"},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Input.Latin1 || !cfg.Input.StopOnError {
					t.Errorf("Input = %+v, want both set", cfg.Input)
				}
			},
		},
		{
			name: "workers",
			args: []string{"-workers", "3"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 3 {
					t.Errorf("Workers = %d, want 3", cfg.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			cfg := config.NewConfig()
			applyFlags(cfg, opts)
			tt.check(t, cfg)
		})
	}
}

func TestParseFlags_Files(t *testing.T) {
	opts, err := parseFlags([]string{"-J", "a.pgn", "b.pgn"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if len(opts.files) != 2 || opts.files[0] != "a.pgn" || opts.files[1] != "b.pgn" {
		t.Errorf("files = %v, want [a.pgn b.pgn]", opts.files)
	}
	if opts.positionMode() {
		t.Error("positionMode() = true, want false for PGN input")
	}
}

func TestOptions_PositionMode(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-fen", "8/8/8/8/8/8/8/K6k w - - 0 1"}, true},
		{[]string{"-moves", "e4"}, true},
		{[]string{"-legal"}, true},
		{[]string{"-J"}, false},
	}

	for _, tt := range tests {
		opts, err := parseFlags(tt.args, io.Discard)
		if err != nil {
			t.Fatalf("parseFlags(%v) error = %v", tt.args, err)
		}
		if got := opts.positionMode(); got != tt.want {
			t.Errorf("positionMode(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
