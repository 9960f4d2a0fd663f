// Package output writes games as PGN or JSON.
package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// OutputWriter handles formatted output with line length control.
// The first write error is kept and later writes are dropped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

// WritePGN writes the displayed main line of g as one PGN game followed by a
// blank line. The Result tag and the terminating token both reflect the
// displayed position.
func WritePGN(w io.Writer, g *game.Game, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	if cfg.Output.TagFormat != config.NoTags {
		writeTags(ow, g, cfg.Output.TagFormat)
		ow.NewLine()
	}
	writeMoves(ow, g, &cfg.Output)
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

// writeTags writes the seven tag roster in its fixed order, then, unless
// restricted, the remaining tags sorted by name.
func writeTags(ow *OutputWriter, g *game.Game, form config.TagOutputForm) {
	tags := g.Tags()
	tags[chess.ResultTag] = g.Result()

	for _, name := range chess.SevenTagRoster {
		value, ok := tags[name]
		if !ok || value == "" {
			value = chess.SevenTagDefaults[name]
		}
		writeTag(ow, name, value)
	}

	if form == config.SevenTagRoster {
		return
	}
	for _, name := range slices.Sorted(maps.Keys(tags)) {
		if !chess.IsSevenTagRosterTag(name) {
			writeTag(ow, name, tags[name])
		}
	}
}

func writeTag(ow *OutputWriter, name, value string) {
	ow.emit(fmt.Sprintf("[%s \"%s\"]\n", name, escapeTagValue(value)))
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves writes the numbered move text and the result.
func writeMoves(ow *OutputWriter, g *game.Game, out *config.OutputConfig) {
	board := g.Board()
	board.SeekStart()
	moveNum := board.FullMoveNumber()
	isWhite := board.ToMove() == chess.White

	for i, m := range g.Moves() {
		if out.KeepMoveNumbers {
			if isWhite {
				ow.Write(fmt.Sprintf("%d.", moveNum))
			} else if i == 0 {
				ow.Write(fmt.Sprintf("%d...", moveNum))
			}
		}
		ow.Write(moveText(m, out.KeepChecks))

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}

	if out.KeepResults {
		ow.Write(g.Result())
	}
}

// moveText returns the SAN of m, optionally without check and mate marks.
func moveText(m chess.Move, keepChecks bool) string {
	text := m.SAN
	if text == "" {
		text = m.String()
	}
	if !keepChecks {
		text = strings.TrimRight(text, "+#")
	}
	return text
}
