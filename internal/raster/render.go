package raster

import (
	"math"

	errs "geoascii/internal/errors"
	"geoascii/internal/geom"
)

const (
	DefaultFill = ' '
	DefaultChar = '+'
)

// Options control a single rendering. Zero runes select the defaults.
type Options struct {
	Fill rune       // cell value where no geometry is present
	Char rune       // cell value where geometry is present
	BBox *geom.BBox // frame to render; computed from the source when nil
}

func (o Options) cells() (fill, char rune, err error) {
	fill, char = o.Fill, o.Char
	if fill == 0 {
		fill = DefaultFill
	}
	if char == 0 {
		char = DefaultChar
	}
	if err := checkCell(fill); err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "fill")
	}
	if err := checkCell(char); err != nil {
		return 0, 0, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "char")
	}
	return fill, char, nil
}

// Render rasterizes every geometry in src into a grid width cells wide.
//
// The height follows the frame's aspect ratio, round(width * h / w), and is
// at least 1. A cell is set to Char when any geometry touches its
// sub-rectangle of the frame and to Fill otherwise; the result does not
// depend on the order of geometries in src.
//
// Without opts.BBox the frame is the minimal bounding box of src; one-shot
// sources are buffered for that scan so no geometry is lost. An empty src
// renders as all Fill when a BBox is given and fails with EMPTY_BOUNDS
// otherwise.
func Render(src any, width int, opts Options) (Grid, error) {
	fill, char, err := opts.cells()
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfiguration, "width must be positive, got %d", width)
	}

	var (
		bbox geom.BBox
		s    geom.Source
	)
	if opts.BBox != nil {
		bbox = *opts.BBox
		if bbox.MinX > bbox.MaxX || bbox.MinY > bbox.MaxY {
			return nil, errs.New(errs.ErrCodeInvalidConfiguration, "bbox min exceeds max: %+v", bbox)
		}
		if s, err = geom.AsSource(src); err != nil {
			return nil, err
		}
	} else if bbox, s, err = geom.MinBBox(src); err != nil {
		return nil, err
	}

	var data geom.Data
	for g, err := range geom.Extract(s) {
		if err != nil {
			return nil, err
		}
		if err := g.DecomposeInto(&data); err != nil {
			return nil, err
		}
	}

	f := newFrame(bbox, width)
	grid := NewGrid(f.width, f.height, fill)
	ix := newSpatialIndex(data, f.bbox)
	for y := range f.height {
		for x := range f.width {
			if ix.anyHits(f.cell(x, y)) {
				grid[y][x] = char
			}
		}
	}
	for _, p := range data.Points {
		if x, y, ok := f.locate(p); ok {
			grid[y][x] = char
		}
	}
	return grid, nil
}

// frame maps a bounding box onto a width x height cell lattice. Row 0 is
// the top (MaxY) edge.
type frame struct {
	bbox          geom.BBox
	width, height int
	cw, ch        float64
}

func newFrame(b geom.BBox, width int) frame {
	// a zero-width box becomes square (or 1 unit wide when it is a point)
	if b.Width() == 0 {
		pad := b.Height() / 2
		if pad == 0 {
			pad = 0.5
		}
		b.MinX -= pad
		b.MaxX += pad
	}
	height := int(math.Round(float64(width) * b.Height() / b.Width()))
	if height < 1 {
		height = 1
	}
	return frame{
		bbox:   b,
		width:  width,
		height: height,
		cw:     b.Width() / float64(width),
		ch:     b.Height() / float64(height),
	}
}

// cell returns the geographic rectangle of column x, row y.
func (f frame) cell(x, y int) geom.BBox {
	c := geom.BBox{
		MinX: f.bbox.MinX + float64(x)*f.cw,
		MaxX: f.bbox.MinX + float64(x+1)*f.cw,
		MaxY: f.bbox.MaxY - float64(y)*f.ch,
		MinY: f.bbox.MaxY - float64(y+1)*f.ch,
	}
	if x == f.width-1 {
		c.MaxX = f.bbox.MaxX
	}
	if y == f.height-1 {
		c.MinY = f.bbox.MinY
	}
	return c
}

// locate finds the cell holding point p. Cells are half-open so a point on
// an inner cell edge lands in exactly one cell; points on the frame's max
// edges go to the last column or row. ok is false outside the frame.
func (f frame) locate(p [2]float64) (x, y int, ok bool) {
	b := f.bbox
	if p[0] < b.MinX || p[0] > b.MaxX || p[1] < b.MinY || p[1] > b.MaxY {
		return 0, 0, false
	}
	x = min(int((p[0]-b.MinX)/f.cw), f.width-1)
	if f.ch > 0 {
		y = min(int((b.MaxY-p[1])/f.ch), f.height-1)
	}
	return x, y, true
}
