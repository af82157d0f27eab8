package geom

import (
	errs "geoascii/internal/errors"
)

// MinBBox computes the minimal box enclosing every geometry in src and
// returns a Source that can be iterated again over the same items.
//
// Restartable sources (slices, collections, files) come back unchanged. A
// one-shot source is drained into an Items buffer first, so the returned
// Source still yields every item, in order, after the scan has consumed the
// original.
func MinBBox(src any) (BBox, Source, error) {
	s, err := AsSource(src)
	if err != nil {
		return BBox{}, nil, err
	}
	if !IsRestartable(s) {
		s = Buffer(s)
	}
	b, err := Bounds(s)
	if err != nil {
		return BBox{}, nil, err
	}
	return b, s, nil
}

// Bounds computes the minimal box over src. Only the first two ordinates of
// each position count. It fails with EMPTY_BOUNDS when src carries no
// coordinates at all. Bounds consumes one-shot sources; use MinBBox when the
// items are needed again.
func Bounds(src any) (BBox, error) {
	b := emptyBBox()
	for g, err := range Extract(src) {
		if err != nil {
			return BBox{}, err
		}
		b = g.extend(b)
	}
	if b.IsEmpty() {
		return BBox{}, errs.New(errs.ErrCodeEmptyBounds, "no geometries to compute a bounding box from")
	}
	return b, nil
}

// BBox returns the bounds of g alone. ok is false for empty geometries.
func (g Geometry) BBox() (b BBox, ok bool) {
	b = g.extend(emptyBBox())
	return b, !b.IsEmpty()
}

func (g Geometry) extend(b BBox) BBox {
	if g.Type == TypeGeometryCollection {
		for _, sub := range g.Geometries {
			b = sub.extend(b)
		}
		return b
	}
	walkPositions(g.Coordinates, func(x, y float64) {
		b = b.Extend(x, y)
	})
	return b
}

// walkPositions descends nested coordinate arrays and calls fn for every
// position found.
func walkPositions(v any, fn func(x, y float64)) {
	if x, y, ok := position(v); ok {
		fn(x, y)
		return
	}
	kids, ok := children(v)
	if !ok {
		return
	}
	for _, k := range kids {
		walkPositions(k, fn)
	}
}
