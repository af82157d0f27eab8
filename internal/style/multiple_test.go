package style

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	errs "geoascii/internal/errors"
	"geoascii/internal/geom"
	"geoascii/internal/raster"
)

var (
	polyLayer = []geom.Geometry{{
		Type:        geom.TypePolygon,
		Coordinates: [][][]float64{{{0, 0}, {6, 0}, {6, 6}, {0, 6}, {0, 0}}},
	}}
	lineLayer = []geom.Geometry{{
		Type:        geom.TypeLineString,
		Coordinates: [][]float64{{2, 8}, {12, 3}},
	}}
	pointLayer = []geom.Geometry{
		{Type: geom.TypePoint, Coordinates: []float64{11, 11}},
		{Type: geom.TypePoint, Coordinates: []float64{1, 9}},
	}
)

func TestRenderMultiple(t *testing.T) {
	layers := []Layer{{polyLayer, '+'}, {lineLayer, '-'}, {pointLayer, '*'}}
	got, err := RenderMultiple(layers, 20, '#', nil)
	if err != nil {
		t.Fatal(err)
	}

	bbox := geom.BBox{MinX: 0, MinY: 0, MaxX: 12, MaxY: 11}
	var grids []raster.Grid
	for _, l := range layers {
		g, err := raster.Render(l.Source, 20, raster.Options{Fill: raster.Blank, Char: l.Char, BBox: &bbox})
		if err != nil {
			t.Fatal(err)
		}
		grids = append(grids, g)
	}
	want, err := raster.Stack(grids, '#')
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenderMultiple() =\n%s\nwant\n%s", raster.Encode(got), raster.Encode(want))
	}
}

func TestRenderMultipleBuffersOneShotLayers(t *testing.T) {
	once := geom.NewOnce(func(yield func(any) bool) {
		for _, g := range lineLayer {
			if !yield(g) {
				return
			}
		}
	})
	got, err := RenderMultiple([]Layer{{polyLayer, '+'}, {once, '-'}}, 12, '.', nil)
	if err != nil {
		t.Fatal(err)
	}
	want, err := RenderMultiple([]Layer{{polyLayer, '+'}, {lineLayer, '-'}}, 12, '.', nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("one-shot layer rendered differently:\n%s\nwant\n%s", raster.Encode(got), raster.Encode(want))
	}
}

func TestRenderMultipleEmptyLayer(t *testing.T) {
	got, err := RenderMultiple([]Layer{{polyLayer, '+'}, {[]geom.Geometry{}, '-'}}, 6, '.', nil)
	if err != nil {
		t.Fatal(err)
	}
	want, err := raster.Render(polyLayer, 6, raster.Options{Fill: '.'})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenderMultiple() =\n%s\nwant\n%s", raster.Encode(got), raster.Encode(want))
	}
}

func TestRenderMultipleSingleLayer(t *testing.T) {
	got, err := RenderMultiple([]Layer{{lineLayer, '-'}}, 10, '.', nil)
	if err != nil {
		t.Fatal(err)
	}
	want, err := raster.Render(lineLayer, 10, raster.Options{Fill: '.', Char: '-'})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenderMultiple() =\n%s\nwant\n%s", raster.Encode(got), raster.Encode(want))
	}
}

func TestRenderMultipleErrors(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
		code   errs.Code
	}{
		{"no layers", nil, errs.ErrCodeInvalidInput},
		{"all empty", []Layer{{[]geom.Geometry{}, '+'}}, errs.ErrCodeEmptyBounds},
		{"bad item", []Layer{{[]any{42}, '+'}}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderMultiple(tt.layers, 10, '.', nil); !errs.Is(err, tt.code) {
				t.Errorf("RenderMultiple() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestStyleMultiple(t *testing.T) {
	bbox := &geom.BBox{MinX: 0, MinY: 0, MaxX: 12, MaxY: 11}
	layers := []StyledLayer{{polyLayer, ":+1:"}, {lineLayer, "blue"}, {pointLayer, "red"}}
	thumbsUp, _ := Emoji(":+1:")
	wave, _ := Emoji(":water_wave:")

	tests := []struct {
		fill string
		want []string
	}{
		{"yellow", []string{thumbsUp, blue, red, yellow}},
		{".", []string{thumbsUp, blue, red, "."}},
		{":water_wave:", []string{thumbsUp, blue, red, wave}},
	}
	for _, tt := range tests {
		t.Run(tt.fill, func(t *testing.T) {
			got, err := StyleMultiple(layers, 20, tt.fill, bbox)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("StyleMultiple() output lacks %q", w)
				}
			}
		})
	}
}

func TestStyleMultiplePlainCells(t *testing.T) {
	got, err := StyleMultiple([]StyledLayer{{polyLayer, "0"}, {lineLayer, "green"}}, 12, ".", nil)
	if err != nil {
		t.Fatal(err)
	}
	// the plain layer keeps its own cell and the colored layer must not reuse it
	if !strings.Contains(got, "0 ") {
		t.Error("plain layer cell missing")
	}
	if strings.Contains(got, "\x1b[32m\x1b[42m0") {
		t.Error("colored layer was assigned the plain layer's cell")
	}
	if n := len(strings.Split(got, "\n")); n != 8 {
		t.Errorf("StyleMultiple() has %d rows, want 8", n)
	}
}

func TestStyleMultipleInvalidStyle(t *testing.T) {
	_, err := StyleMultiple([]StyledLayer{{polyLayer, "not a style"}}, 10, "", nil)
	if !errs.Is(err, errs.ErrCodeInvalidConfiguration) {
		t.Errorf("StyleMultiple() error = %v, want INVALID_CONFIGURATION", err)
	}
}

func TestCharPool(t *testing.T) {
	next := charPool([]rune{'0', '2'})
	var got []rune
	for range 3 {
		r, ok := next()
		if !ok {
			t.Fatal("pool ran dry")
		}
		got = append(got, r)
	}
	if want := []rune{'1', '3', '4'}; !slices.Equal(got, want) {
		t.Errorf("charPool() handed out %q, want %q", got, want)
	}
}
