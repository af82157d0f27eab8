package style

import (
	"strings"

	errs "geoascii/internal/errors"
	"geoascii/internal/raster"
)

// Map assigns a color name or emoji alias to grid cell values. Cells without
// an entry are left undecorated.
type Map map[rune]string

// ParseMap builds a Map from string keys, as read from a config file or the
// command line. Keys must be valid cell values.
func ParseMap(m map[string]string) (Map, error) {
	out := make(Map, len(m))
	for k, v := range m {
		r, err := raster.Cell(k)
		if err != nil {
			return nil, err
		}
		if !IsDecoration(v) {
			return nil, errs.New(errs.ErrCodeInvalidConfiguration, "%q is neither a color nor an emoji alias", v)
		}
		out[r] = v
	}
	return out, nil
}

// Style decorates the cells of an encoded grid. A cell mapped to a color is
// written as the color sequence, the cell, its separator space and Reset; a
// cell mapped to an emoji is replaced by the glyph. Unmapped cells and the
// grid's rows and columns are kept as they are, so Style(text, nil) == text.
func Style(text string, m Map) (string, error) {
	painters := make(map[rune]cellPainter, len(m))
	for r, name := range m {
		p, ok := painter(name)
		if !ok {
			return "", errs.New(errs.ErrCodeInvalidConfiguration, "unknown color or emoji %q for cell %q", name, r)
		}
		painters[r] = p
	}

	var b strings.Builder
	for y, row := range raster.Decode(text) {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, r := range row {
			if p, ok := painters[r]; ok {
				b.WriteString(p(r))
				continue
			}
			b.WriteRune(r)
			if x < len(row)-1 {
				b.WriteByte(' ')
			}
		}
	}
	return b.String(), nil
}
