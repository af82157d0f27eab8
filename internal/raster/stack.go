package raster

import (
	errs "geoascii/internal/errors"
)

// Blank marks an empty cell in a grid that is about to be stacked. Layers
// meant for stacking are rendered with Blank as their fill.
const Blank = ' '

// Stack overlays grids of identical dimensions. Each result cell holds the
// value of the last grid that is not Blank there, or fill when every grid is
// Blank. A single grid is returned unchanged.
func Stack(grids []Grid, fill rune) (Grid, error) {
	if err := checkCell(fill); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "stack fill")
	}
	if len(grids) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "nothing to stack")
	}
	first := grids[0]
	for i, g := range grids {
		if !g.IsRect() {
			return nil, errs.New(errs.ErrCodeDimensionMismatch, "grid %d is not rectangular", i)
		}
		if g.Width() != first.Width() || g.Height() != first.Height() {
			return nil, errs.New(errs.ErrCodeDimensionMismatch,
				"grid %d is %dx%d, grid 0 is %dx%d", i, g.Width(), g.Height(), first.Width(), first.Height())
		}
	}
	if len(grids) == 1 {
		return first, nil
	}

	out := NewGrid(first.Width(), first.Height(), fill)
	for _, g := range grids {
		for y, row := range g {
			for x, r := range row {
				if r != Blank {
					out[y][x] = r
				}
			}
		}
	}
	return out, nil
}

// StackText is Stack over encoded grids. fill must be a single character.
func StackText(layers []string, fill string) (string, error) {
	f, err := Cell(fill)
	if err != nil {
		return "", err
	}
	if len(layers) == 1 {
		return layers[0], nil
	}
	grids := make([]Grid, len(layers))
	for i, l := range layers {
		grids[i] = Decode(l)
	}
	out, err := Stack(grids, f)
	if err != nil {
		return "", err
	}
	return Encode(out), nil
}
