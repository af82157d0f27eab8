package raster

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"geoascii/internal/geom"
)

type partKind int

const (
	partLine partKind = iota
	partPolygon
)

// part is one line or polygon out of a decomposed geometry, stored in the
// R-tree by its bounds.
type part struct {
	kind  partKind
	pts   [][2]float64   // line vertices
	rings [][][2]float64 // polygon rings
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (p *part) Bounds() rtreego.Rect { return p.rect }

func (p *part) hits(r geom.BBox) bool {
	if p.kind == partLine {
		return lineHits(p.pts, r)
	}
	return polygonHits(p.rings, r)
}

// spatialIndex answers "which parts might touch this cell" so each cell
// only runs exact tests against nearby geometry. Parts whose bounds cannot
// form an R-tree rectangle are kept aside and tested against every cell.
type spatialIndex struct {
	tree  *rtreego.Rtree
	eps   float64
	parts []*part
	loose []*part
}

func newSpatialIndex(d geom.Data, frame geom.BBox) *spatialIndex {
	// R-tree rectangles need non-zero sides; pad every box by eps.
	eps := 1e-9 * math.Max(1, math.Max(frame.Width(), frame.Height()))
	ix := &spatialIndex{tree: rtreego.NewTree(2, 25, 50), eps: eps}
	for _, ls := range d.Lines {
		ix.add(&part{kind: partLine, pts: ls}, boundsOf(ls))
	}
	for _, poly := range d.Polygons {
		b := geom.Union()
		for _, ring := range poly {
			b = geom.Union(b, boundsOf(ring))
		}
		if b.IsEmpty() {
			continue
		}
		ix.add(&part{kind: partPolygon, rings: poly}, b)
	}
	return ix
}

func (ix *spatialIndex) add(p *part, b geom.BBox) {
	ix.parts = append(ix.parts, p)
	r, err := ix.rect(b)
	if err != nil {
		ix.loose = append(ix.loose, p)
		return
	}
	p.rect = r
	ix.tree.Insert(p)
}

func (ix *spatialIndex) rect(b geom.BBox) (rtreego.Rect, error) {
	point := rtreego.Point{b.MinX - ix.eps, b.MinY - ix.eps}
	lengths := []float64{b.Width() + 2*ix.eps, b.Height() + 2*ix.eps}
	return rtreego.NewRect(point, lengths)
}

// anyHits reports whether any part touches r.
func (ix *spatialIndex) anyHits(r geom.BBox) bool {
	for _, p := range ix.loose {
		if p.hits(r) {
			return true
		}
	}
	if ix.tree.Size() == 0 {
		return false
	}
	q, err := ix.rect(r)
	if err != nil {
		for _, p := range ix.parts {
			if p.hits(r) {
				return true
			}
		}
		return false
	}
	for _, s := range ix.tree.SearchIntersect(q) {
		if s.(*part).hits(r) {
			return true
		}
	}
	return false
}

func boundsOf(pts [][2]float64) geom.BBox {
	b := geom.Union()
	for _, p := range pts {
		b = b.Extend(p[0], p[1])
	}
	return b
}
