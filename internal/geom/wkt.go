package geom

import (
	"strconv"
	"strings"
	"unicode"

	errs "geoascii/internal/errors"
)

var wktTypes = map[string]string{
	"POINT":              TypePoint,
	"MULTIPOINT":         TypeMultiPoint,
	"LINESTRING":         TypeLineString,
	"MULTILINESTRING":    TypeMultiLineString,
	"POLYGON":            TypePolygon,
	"MULTIPOLYGON":       TypeMultiPolygon,
	"GEOMETRYCOLLECTION": TypeGeometryCollection,
}

// ParseWKT parses a single WKT geometry.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON,
// MULTIPOLYGON and GEOMETRYCOLLECTION, with optional Z/M/ZM and EMPTY.
func ParseWKT(wkt string) (Geometry, error) {
	p := &wktParser{s: wkt}
	p.skip()
	if p.eof() {
		return Geometry{}, errs.New(errs.ErrCodeInvalidFormat, "empty wkt")
	}
	g, err := p.geometry()
	if err != nil {
		return Geometry{}, err
	}
	p.skip()
	if !p.eof() {
		return Geometry{}, p.errorf("trailing input")
	}
	return g, nil
}

// LoadWKT reads a file holding one or more WKT geometries separated by
// whitespace or semicolons. Each becomes a Feature with no properties.
func LoadWKT(path string) (*FeatureCollection, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p := &wktParser{s: string(data)}
	fc := &FeatureCollection{Type: TypeFeatureCollection}
	for {
		p.skip()
		for !p.eof() && p.peek() == ';' {
			p.i++
			p.skip()
		}
		if p.eof() {
			break
		}
		g, err := p.geometry()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "wkt %s", path)
		}
		fc.Features = append(fc.Features, NewFeature(g, nil))
	}
	if len(fc.Features) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "wkt %s: no geometries", path)
	}
	return fc, nil
}

type wktParser struct {
	s string
	i int
}

func (p *wktParser) eof() bool { return p.i >= len(p.s) }
func (p *wktParser) peek() byte { return p.s[p.i] }

func (p *wktParser) skip() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.i++
	}
}

func (p *wktParser) errorf(format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidFormat, "wkt offset %d: "+format, append([]any{p.i}, args...)...)
}

func (p *wktParser) word() string {
	p.skip()
	start := p.i
	for !p.eof() && unicode.IsLetter(rune(p.peek())) {
		p.i++
	}
	return strings.ToUpper(p.s[start:p.i])
}

func (p *wktParser) geometry() (Geometry, error) {
	tag := p.word()
	gt, ok := wktTypes[tag]
	if !ok {
		return Geometry{}, p.errorf("unsupported wkt type %q", tag)
	}
	// dimension suffix (Z, M, ZM) or EMPTY
	save := p.i
	switch p.word() {
	case "Z", "M", "ZM":
		save = p.i
		if p.word() == "EMPTY" {
			return Geometry{Type: gt}, nil
		}
		p.i = save
	case "EMPTY":
		return Geometry{Type: gt}, nil
	default:
		p.i = save
	}

	if gt == TypeGeometryCollection {
		return p.collection()
	}
	items, err := p.list()
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{Type: gt}
	switch gt {
	case TypePoint:
		if len(items) != 1 {
			return Geometry{}, p.errorf("point needs one position")
		}
		g.Coordinates = items[0]
	case TypeMultiPoint:
		// both MULTIPOINT (1 2, 3 4) and MULTIPOINT ((1 2), (3 4))
		pts := make([]any, 0, len(items))
		for _, it := range items {
			if wrapped, ok := it.([]any); ok && len(wrapped) == 1 {
				if _, isPos := wrapped[0].([]any); isPos {
					it = wrapped[0]
				}
			}
			pts = append(pts, it)
		}
		g.Coordinates = pts
	default:
		g.Coordinates = items
	}
	return g, nil
}

func (p *wktParser) collection() (Geometry, error) {
	p.skip()
	if p.eof() || p.peek() != '(' {
		return Geometry{}, p.errorf("expected '('")
	}
	p.i++
	g := Geometry{Type: TypeGeometryCollection}
	for {
		sub, err := p.geometry()
		if err != nil {
			return Geometry{}, err
		}
		g.Geometries = append(g.Geometries, sub)
		p.skip()
		if p.eof() {
			return Geometry{}, p.errorf("unterminated collection")
		}
		switch p.peek() {
		case ',':
			p.i++
		case ')':
			p.i++
			return g, nil
		default:
			return Geometry{}, p.errorf("unexpected %q", p.peek())
		}
	}
}

// list parses a parenthesised, comma separated list whose members are
// either nested lists or positions. Positions become []any{x, y(, z)}.
func (p *wktParser) list() ([]any, error) {
	p.skip()
	if p.eof() || p.peek() != '(' {
		return nil, p.errorf("expected '('")
	}
	p.i++
	var items []any
	for {
		p.skip()
		if p.eof() {
			return nil, p.errorf("unterminated list")
		}
		if p.peek() == '(' {
			sub, err := p.list()
			if err != nil {
				return nil, err
			}
			items = append(items, sub)
		} else {
			pos, err := p.position()
			if err != nil {
				return nil, err
			}
			items = append(items, pos)
		}
		p.skip()
		if p.eof() {
			return nil, p.errorf("unterminated list")
		}
		switch p.peek() {
		case ',':
			p.i++
		case ')':
			p.i++
			return items, nil
		default:
			return nil, p.errorf("unexpected %q", p.peek())
		}
	}
}

func (p *wktParser) position() ([]any, error) {
	start := p.i
	for !p.eof() && p.peek() != ',' && p.peek() != ')' {
		p.i++
	}
	parts := strings.Fields(p.s[start:p.i])
	if len(parts) < 2 {
		return nil, p.errorf("position needs at least two ordinates")
	}
	pos := make([]any, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, p.errorf("bad ordinate %q", part)
		}
		pos = append(pos, f)
	}
	return pos, nil
}
