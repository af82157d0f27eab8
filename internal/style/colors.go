// Package style decorates rendered grids with ANSI colors and emoji and
// composes multi-layer and per-feature renderings.
package style

import (
	"maps"
	"slices"

	"github.com/kyokomi/emoji/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Reset ends every colored cell.
var Reset = termenv.CSI + termenv.ResetSeq + "m"

var colors = map[string]termenv.ANSIColor{
	"black":          termenv.ANSIBlack,
	"red":            termenv.ANSIRed,
	"green":          termenv.ANSIGreen,
	"yellow":         termenv.ANSIYellow,
	"blue":           termenv.ANSIBlue,
	"magenta":        termenv.ANSIMagenta,
	"cyan":           termenv.ANSICyan,
	"white":          termenv.ANSIWhite,
	"gray":           termenv.ANSIBrightBlack,
	"bright_red":     termenv.ANSIBrightRed,
	"bright_green":   termenv.ANSIBrightGreen,
	"bright_yellow":  termenv.ANSIBrightYellow,
	"bright_blue":    termenv.ANSIBrightBlue,
	"bright_magenta": termenv.ANSIBrightMagenta,
	"bright_cyan":    termenv.ANSIBrightCyan,
	"bright_white":   termenv.ANSIBrightWhite,
}

// Colors returns the supported color names, sorted.
func Colors() []string {
	return slices.Sorted(maps.Keys(colors))
}

// Sequence returns the escape sequence that sets both the foreground and the
// background to the named color, so a colored cell reads as a solid block.
func Sequence(name string) (string, bool) {
	c, ok := colors[name]
	if !ok {
		return "", false
	}
	return termenv.CSI + c.Sequence(false) + "m" + termenv.CSI + c.Sequence(true) + "m", true
}

// Emoji resolves an alias such as ":+1:" to its glyph.
func Emoji(alias string) (string, bool) {
	g, ok := emoji.CodeMap()[alias]
	return g, ok
}

// IsDecoration reports whether name is a known color or emoji alias.
func IsDecoration(name string) bool {
	if _, ok := colors[name]; ok {
		return true
	}
	_, ok := Emoji(name)
	return ok
}

// cellPainter renders one cell together with its trailing separator so that
// every cell occupies two terminal columns.
type cellPainter func(r rune) string

func painter(name string) (cellPainter, bool) {
	if seq, ok := Sequence(name); ok {
		return func(r rune) string { return seq + string(r) + " " + Reset }, true
	}
	if g, ok := Emoji(name); ok {
		// wide glyphs already fill both columns
		if runewidth.StringWidth(g) < 2 {
			g += " "
		}
		return func(rune) string { return g }, true
	}
	return nil, false
}
