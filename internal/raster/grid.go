// Package raster turns geometries into character grids and back.
//
// A Grid is the in-memory form of a rendering: rows top to bottom, one rune
// per cell. Its text form joins cells with a single space and rows with a
// newline, which keeps cells roughly square in a terminal.
package raster

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	errs "geoascii/internal/errors"
)

// Grid is a rectangular matrix of single-character cells.
type Grid [][]rune

// NewGrid returns a width x height grid with every cell set to fill.
func NewGrid(width, height int, fill rune) Grid {
	g := make(Grid, height)
	for y := range g {
		row := make([]rune, width)
		for x := range row {
			row[x] = fill
		}
		g[y] = row
	}
	return g
}

func (g Grid) Height() int { return len(g) }

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// IsRect reports whether every row has the same length.
func (g Grid) IsRect() bool {
	for _, row := range g {
		if len(row) != g.Width() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]rune(nil), row...)
	}
	return out
}

func (g Grid) String() string { return Encode(g) }

// Encode joins the cells of each row with a single space and the rows with
// a newline.
func Encode(g Grid) string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, r := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Decode is the inverse of Encode. Each line holds cells at even rune
// offsets and separators at odd ones, so blank (' ') cells survive.
func Decode(s string) Grid {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	g := make(Grid, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		runes := []rune(line)
		row := make([]rune, 0, (len(runes)+1)/2)
		for i := 0; i < len(runes); i += 2 {
			row = append(row, runes[i])
		}
		g = append(g, row)
	}
	return g
}

// Cell parses a fill or mark setting: exactly one printable, single-column
// character.
func Cell(s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, errs.New(errs.ErrCodeInvalidConfiguration, "cell value must be exactly one character, got %q", s)
	}
	if err := checkCell(runes[0]); err != nil {
		return 0, err
	}
	return runes[0], nil
}

func checkCell(r rune) error {
	if !unicode.IsPrint(r) || runewidth.RuneWidth(r) != 1 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "cell value %q is not a printable single-column character", r)
	}
	return nil
}
