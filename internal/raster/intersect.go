package raster

import "geoascii/internal/geom"

// segmentHits reports whether segment a-b touches the closed rectangle r
// (Liang-Barsky clipping). Degenerate segments and rectangles are fine.
func segmentHits(a, b [2]float64, r geom.BBox) bool {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a[0] - r.MinX, r.MaxX - a[0], a[1] - r.MinY, r.MaxY - a[1]}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return true
}

func lineHits(pts [][2]float64, r geom.BBox) bool {
	if len(pts) == 1 {
		return segmentHits(pts[0], pts[0], r)
	}
	for i := 0; i+1 < len(pts); i++ {
		if segmentHits(pts[i], pts[i+1], r) {
			return true
		}
	}
	return false
}

// polygonHits reports whether a polygon (outer ring plus holes) overlaps r:
// either an edge touches r or r's center lies inside the polygon. The second
// case covers a cell sitting wholly inside the polygon.
func polygonHits(rings [][][2]float64, r geom.BBox) bool {
	for _, ring := range rings {
		if len(ring) == 0 {
			continue
		}
		// rings need not repeat their first vertex
		closed := ring
		if ring[0] != ring[len(ring)-1] {
			closed = append(append([][2]float64(nil), ring...), ring[0])
		}
		if lineHits(closed, r) {
			return true
		}
	}
	cx := (r.MinX + r.MaxX) / 2
	cy := (r.MinY + r.MaxY) / 2
	return insideRings(rings, cx, cy)
}

// insideRings applies the even-odd rule across all rings, so holes cut out
// of the outer ring.
func insideRings(rings [][][2]float64, x, y float64) bool {
	in := false
	for _, ring := range rings {
		n := len(ring)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := ring[i], ring[j]
			if (a[1] > y) != (b[1] > y) {
				xCross := a[0] + (y-a[1])*(b[0]-a[0])/(b[1]-a[1])
				if x < xCross {
					in = !in
				}
			}
		}
	}
	return in
}
