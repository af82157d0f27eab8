package raster

import (
	"reflect"
	"strings"
	"testing"

	errs "geoascii/internal/errors"
)

var (
	sampleText = strings.Join([]string{
		"* * * * *",
		"  *   *  ",
		"* * * * *",
	}, "\n")
	sampleGrid = Grid{
		{'*', '*', '*', '*', '*'},
		{' ', '*', ' ', '*', ' '},
		{'*', '*', '*', '*', '*'},
	}
)

func TestEncode(t *testing.T) {
	if got := Encode(sampleGrid); got != sampleText {
		t.Errorf("Encode() = %q, want %q", got, sampleText)
	}
}

func TestDecode(t *testing.T) {
	if got := Decode(sampleText); !reflect.DeepEqual(got, sampleGrid) {
		t.Errorf("Decode() = %q, want %q", got, sampleGrid)
	}
	if got := Decode(""); got != nil {
		t.Errorf("Decode(\"\") = %q, want nil", got)
	}
}

func TestRoundTrip(t *testing.T) {
	grids := []Grid{
		sampleGrid,
		{{'a'}},
		{{' ', ' '}, {' ', ' '}},
		{{'#', '.', '@'}},
		{{'x'}, {'y'}, {'z'}},
	}
	for _, g := range grids {
		if got := Decode(Encode(g)); !reflect.DeepEqual(got, g) {
			t.Errorf("Decode(Encode(%q)) = %q", g, got)
		}
		s := Encode(g)
		if got := Encode(Decode(s)); got != s {
			t.Errorf("Encode(Decode(%q)) = %q", s, got)
		}
	}
}

func TestDecodeCRLF(t *testing.T) {
	got := Decode("a b\r\nc d")
	if want := (Grid{{'a', 'b'}, {'c', 'd'}}); !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestGridDimensions(t *testing.T) {
	g := NewGrid(4, 3, '.')
	if g.Width() != 4 || g.Height() != 3 || !g.IsRect() {
		t.Errorf("NewGrid(4, 3) = %dx%d rect=%v", g.Width(), g.Height(), g.IsRect())
	}
	if (Grid{{'a', 'b'}, {'c'}}).IsRect() {
		t.Error("ragged grid reported as rectangular")
	}
	c := g.Clone()
	c[0][0] = 'x'
	if g[0][0] != '.' {
		t.Error("Clone shares rows with the original")
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"+", '+', false},
		{" ", ' ', false},
		{"é", 'é', false},
		{"", 0, true},
		{"too long", 0, true},
		{"\t", 0, true},
		{"日", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Cell(tt.in)
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidConfiguration) {
					t.Errorf("Cell(%q) error = %v, want INVALID_CONFIGURATION", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Cell(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}
