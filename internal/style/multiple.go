package style

import (
	errs "geoascii/internal/errors"
	"geoascii/internal/geom"
	"geoascii/internal/raster"
)

// Layer is a source drawn with its own cell value.
type Layer struct {
	Source any
	Char   rune
}

// RenderMultiple renders every layer into one shared frame and stacks the
// results in order, so later layers sit on top of earlier ones. Without a
// bbox the frame is the union of the layers' bounds; layers without any
// geometry contribute nothing. fill marks cells no layer touches.
func RenderMultiple(layers []Layer, width int, fill rune, bbox *geom.BBox) (raster.Grid, error) {
	if len(layers) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no layers to render")
	}
	if fill == 0 {
		fill = raster.DefaultFill
	}
	srcs := make([]any, len(layers))
	for i, l := range layers {
		srcs[i] = l.Source
	}
	if bbox == nil {
		b, err := sharedFrame(srcs)
		if err != nil {
			return nil, err
		}
		bbox = &b
	}

	if len(layers) == 1 {
		// Stack keeps a lone grid as is, so draw the fill directly
		return raster.Render(srcs[0], width, raster.Options{Fill: fill, Char: layers[0].Char, BBox: bbox})
	}
	grids := make([]raster.Grid, len(layers))
	for i, l := range layers {
		g, err := raster.Render(srcs[i], width, raster.Options{Fill: raster.Blank, Char: l.Char, BBox: bbox})
		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "layer %d", i)
		}
		grids[i] = g
	}
	return raster.Stack(grids, fill)
}

// sharedFrame unions the bounds of srcs. One-shot sources are replaced in
// place by their buffered items.
func sharedFrame(srcs []any) (geom.BBox, error) {
	boxes := make([]geom.BBox, 0, len(srcs))
	for i, src := range srcs {
		b, s, err := geom.MinBBox(src)
		switch {
		case errs.Is(err, errs.ErrCodeEmptyBounds):
			srcs[i] = geom.Items{}
			continue
		case err != nil:
			return geom.BBox{}, err
		}
		srcs[i] = s
		boxes = append(boxes, b)
	}
	u := geom.Union(boxes...)
	if u.IsEmpty() {
		return geom.BBox{}, errs.New(errs.ErrCodeEmptyBounds, "no layer has any geometry")
	}
	return u, nil
}

// layerChars are handed out to layers styled with a color or emoji.
const layerChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// StyledLayer is a source drawn with a color name, an emoji alias or a plain
// cell value.
type StyledLayer struct {
	Source any
	Style  string
}

// StyleMultiple renders layers like RenderMultiple and decorates the result.
// Each decorated layer gets a private cell value; fill may itself be a color
// or emoji, in which case it gets one too. An empty fill is the default.
func StyleMultiple(layers []StyledLayer, width int, fill string, bbox *geom.BBox) (string, error) {
	plain := make([]rune, 0, len(layers)+1)
	cellOf := func(s string) (rune, bool, error) {
		if IsDecoration(s) {
			return 0, true, nil
		}
		r, err := raster.Cell(s)
		return r, false, err
	}
	for _, l := range append([]string{fill}, styles(layers)...) {
		if l == "" {
			continue
		}
		if r, deco, err := cellOf(l); err == nil && !deco {
			plain = append(plain, r)
		}
	}
	next := charPool(plain)

	m := Map{}
	assign := func(s string) (rune, error) {
		r, deco, err := cellOf(s)
		if err != nil {
			return 0, errs.New(errs.ErrCodeInvalidConfiguration, "%q is not a color, an emoji alias or a single character", s)
		}
		if !deco {
			return r, nil
		}
		if r, ok := next(); ok {
			m[r] = s
			return r, nil
		}
		return 0, errs.New(errs.ErrCodeInvalidConfiguration, "too many styled layers")
	}

	var fillCell rune
	if fill != "" {
		r, err := assign(fill)
		if err != nil {
			return "", err
		}
		fillCell = r
	}
	ls := make([]Layer, len(layers))
	for i, l := range layers {
		r, err := assign(l.Style)
		if err != nil {
			return "", err
		}
		ls[i] = Layer{Source: l.Source, Char: r}
	}

	g, err := RenderMultiple(ls, width, fillCell, bbox)
	if err != nil {
		return "", err
	}
	return Style(raster.Encode(g), m)
}

func styles(layers []StyledLayer) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Style
	}
	return out
}

// charPool returns a generator over layerChars that skips taken runes.
func charPool(taken []rune) func() (rune, bool) {
	used := make(map[rune]bool, len(taken))
	for _, r := range taken {
		used[r] = true
	}
	pool := []rune(layerChars)
	return func() (rune, bool) {
		for len(pool) > 0 {
			r := pool[0]
			pool = pool[1:]
			if !used[r] {
				return r, true
			}
		}
		return 0, false
	}
}
