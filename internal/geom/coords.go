package geom

import (
	"encoding/json"

	errs "geoascii/internal/errors"
)

// number accepts the numeric forms coordinates arrive in: float64 from
// encoding/json, json.Number from decoders with UseNumber, and the Go
// literals callers write by hand.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// position reads an [x, y(, z)] array.
func position(v any) (x, y float64, ok bool) {
	switch p := v.(type) {
	case []float64:
		if len(p) >= 2 {
			return p[0], p[1], true
		}
	case [2]float64:
		return p[0], p[1], true
	case [3]float64:
		return p[0], p[1], true
	case []any:
		if len(p) >= 2 {
			x, xok := number(p[0])
			y, yok := number(p[1])
			if xok && yok {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// children returns the sub-arrays of a nested coordinate array.
func children(v any) ([]any, bool) {
	switch c := v.(type) {
	case []any:
		return c, true
	case [][]float64:
		return toItems(c), true
	case [][][]float64:
		return toItems(c), true
	case [][][][]float64:
		return toItems(c), true
	case [][2]float64:
		return toItems(c), true
	case [][][2]float64:
		return toItems(c), true
	case [][][][2]float64:
		return toItems(c), true
	}
	return nil, false
}

func positions(v any) ([][2]float64, bool) {
	kids, ok := children(v)
	if !ok {
		return nil, false
	}
	pts := make([][2]float64, 0, len(kids))
	for _, k := range kids {
		x, y, ok := position(k)
		if !ok {
			return nil, false
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts, true
}

func positionLists(v any) ([][][2]float64, bool) {
	kids, ok := children(v)
	if !ok {
		return nil, false
	}
	out := make([][][2]float64, 0, len(kids))
	for _, k := range kids {
		pts, ok := positions(k)
		if !ok {
			return nil, false
		}
		out = append(out, pts)
	}
	return out, true
}

// Decompose flattens g into points, lines and polygons. Empty geometries
// decompose to empty Data; coordinates that do not match the geometry type
// fail with INVALID_INPUT.
func (g Geometry) Decompose() (Data, error) {
	var d Data
	if err := g.DecomposeInto(&d); err != nil {
		return Data{}, err
	}
	d.BBox = g.extend(emptyBBox())
	return d, nil
}

// DecomposeInto appends the parts of g to d. d.BBox is left untouched.
func (g Geometry) DecomposeInto(d *Data) error {
	bad := func() error {
		return errs.New(errs.ErrCodeInvalidInput, "malformed %s coordinates", g.Type)
	}
	if g.Coordinates == nil && g.Type != TypeGeometryCollection {
		return nil
	}
	switch g.Type {
	case TypePoint:
		x, y, ok := position(g.Coordinates)
		if !ok {
			if kids, isArr := children(g.Coordinates); isArr && len(kids) == 0 {
				return nil
			}
			return bad()
		}
		d.Points = append(d.Points, [2]float64{x, y})
	case TypeMultiPoint:
		pts, ok := positions(g.Coordinates)
		if !ok {
			return bad()
		}
		d.Points = append(d.Points, pts...)
	case TypeLineString:
		ls, ok := positions(g.Coordinates)
		if !ok {
			return bad()
		}
		if len(ls) > 0 {
			d.Lines = append(d.Lines, ls)
		}
	case TypeMultiLineString:
		mls, ok := positionLists(g.Coordinates)
		if !ok {
			return bad()
		}
		for _, ls := range mls {
			if len(ls) > 0 {
				d.Lines = append(d.Lines, ls)
			}
		}
	case TypePolygon:
		poly, ok := positionLists(g.Coordinates)
		if !ok {
			return bad()
		}
		if len(poly) > 0 {
			d.Polygons = append(d.Polygons, poly)
		}
	case TypeMultiPolygon:
		kids, ok := children(g.Coordinates)
		if !ok {
			return bad()
		}
		for _, k := range kids {
			poly, ok := positionLists(k)
			if !ok {
				return bad()
			}
			if len(poly) > 0 {
				d.Polygons = append(d.Polygons, poly)
			}
		}
	case TypeGeometryCollection:
		for _, sub := range g.Geometries {
			if err := sub.DecomposeInto(d); err != nil {
				return err
			}
		}
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown geometry type %q", g.Type)
	}
	return nil
}
