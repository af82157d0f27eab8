package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "geoascii/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"NAME": "a"}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
    {"type": "Feature", "properties": {"NAME": "b"}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [4, 5]]}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr errs.Code
	}{
		{"collection", sampleCollection, 2, ""},
		{"feature", `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}`, 1, ""},
		{"bare geometry", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, 1, ""},
		{"missing type", `{"features":[]}`, 0, errs.ErrCodeInvalidFormat},
		{"bad json", `{`, 0, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := LoadGeoJSON(writeFile(t, "in.geojson", tt.content))
			if tt.wantErr != "" {
				if !errs.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadGeoJSON() error = %v", err)
			}
			if len(fc.Features) != tt.want {
				t.Errorf("got %d features, want %d", len(fc.Features), tt.want)
			}
		})
	}
}

func TestOpenFileIsRestartable(t *testing.T) {
	src, err := Open(writeFile(t, "in.json", sampleCollection))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !IsRestartable(src) {
		t.Fatal("file source should be restartable")
	}
	b, s, err := MinBBox(src)
	if err != nil {
		t.Fatalf("MinBBox() error = %v", err)
	}
	if s != src {
		t.Error("MinBBox should hand the file source back unchanged")
	}
	if want := (BBox{0, 0, 4, 5}); b != want {
		t.Errorf("bbox = %+v, want %+v", b, want)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.geojson")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Open(writeFile(t, "x.shp", "")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("unsupported extension error = %v", err)
	}
}

func TestStream(t *testing.T) {
	input := "\x1e" + `{"type":"Feature","properties":{"n":1},"geometry":{"type":"Point","coordinates":[0,0]}}` + "\n" +
		"\x1e" + `{"type":"Point","coordinates":[3,4]}` + "\n" +
		`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[-1,9]}}]}` + "\n"
	s := NewStream(strings.NewReader(input))
	if IsRestartable(s) {
		t.Fatal("stream should be one-shot")
	}
	b, buffered, err := MinBBox(s)
	if err != nil {
		t.Fatalf("MinBBox() error = %v", err)
	}
	if want := (BBox{-1, 0, 3, 9}); b != want {
		t.Errorf("bbox = %+v, want %+v", b, want)
	}
	if got := len(collect(t, buffered)); got != 3 {
		t.Errorf("buffered source yields %d geometries, want 3", got)
	}
	if got := len(collect(t, s)); got != 0 {
		t.Errorf("exhausted stream yields %d geometries, want 0", got)
	}
}

func TestStreamBadRecord(t *testing.T) {
	s := NewStream(strings.NewReader(`{"type":"Point","coordinates":[0,0]} {oops`))
	var gotErr error
	for _, err := range Extract(s) {
		if err != nil {
			gotErr = err
		}
	}
	if !errs.Is(gotErr, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", gotErr)
	}
}

func TestLoadNDJSON(t *testing.T) {
	p := writeFile(t, "in.geojsonl",
		`{"type":"Feature","properties":{"k":"v"},"geometry":{"type":"Point","coordinates":[1,1]}}`+"\n"+
			`{"type":"Point","coordinates":[2,2]}`+"\n")
	src, err := Open(p)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	feats, err := src.(*File).Features()
	if err != nil {
		t.Fatalf("Features() error = %v", err)
	}
	if len(feats) != 2 || feats[0].Properties["k"] != "v" {
		t.Errorf("features = %+v", feats)
	}
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		wkt      string
		wantType string
		wantBox  BBox
	}{
		{"POINT (1 2)", TypePoint, BBox{1, 2, 1, 2}},
		{"point z (1 2 3)", TypePoint, BBox{1, 2, 1, 2}},
		{"MULTIPOINT (1 2, 3 4)", TypeMultiPoint, BBox{1, 2, 3, 4}},
		{"MULTIPOINT ((1 2), (3 4))", TypeMultiPoint, BBox{1, 2, 3, 4}},
		{"LINESTRING (0 0, 10 5)", TypeLineString, BBox{0, 0, 10, 5}},
		{"MULTILINESTRING ((0 0, 1 1), (5 5, 6 7))", TypeMultiLineString, BBox{0, 0, 6, 7}},
		{"POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))", TypePolygon, BBox{0, 0, 4, 4}},
		{"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))", TypeMultiPolygon, BBox{0, 0, 6, 6}},
		{"GEOMETRYCOLLECTION (POINT (1 1), LINESTRING (2 2, 3 8))", TypeGeometryCollection, BBox{1, 1, 3, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.wkt, func(t *testing.T) {
			g, err := ParseWKT(tt.wkt)
			if err != nil {
				t.Fatalf("ParseWKT() error = %v", err)
			}
			if g.Type != tt.wantType {
				t.Errorf("type = %q, want %q", g.Type, tt.wantType)
			}
			if b, ok := g.BBox(); !ok || b != tt.wantBox {
				t.Errorf("bbox = %+v, want %+v", b, tt.wantBox)
			}
			if _, err := g.Decompose(); err != nil {
				t.Errorf("Decompose() error = %v", err)
			}
		})
	}
}

func TestParseWKTErrors(t *testing.T) {
	for _, wkt := range []string{"", "CIRCLE (1 2)", "POINT (1)", "LINESTRING (0 0, 1 1", "POINT (1 2) junk", "POINT (a b)"} {
		if _, err := ParseWKT(wkt); !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ParseWKT(%q) error = %v, want INVALID_FORMAT", wkt, err)
		}
	}
	if g, err := ParseWKT("POLYGON EMPTY"); err != nil || g.Type != TypePolygon {
		t.Errorf("POLYGON EMPTY = %+v, %v", g, err)
	}
}

func TestLoadWKT(t *testing.T) {
	fc, err := LoadWKT(writeFile(t, "in.wkt", "POINT (1 2)\nLINESTRING (0 0,\n 3 3);\n\nPOINT (5 5)\n"))
	if err != nil {
		t.Fatalf("LoadWKT() error = %v", err)
	}
	if len(fc.Features) != 3 {
		t.Errorf("got %d features, want 3", len(fc.Features))
	}
}

func TestLoadCSV(t *testing.T) {
	fc, err := LoadCSV(writeFile(t, "in.csv", "name,Latitude,LON\nx,10,20\nbad,,\ny,-5,1.5\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "x" {
		t.Errorf("properties = %v", fc.Features[0].Properties)
	}
	b, err := Bounds(fc)
	if err != nil {
		t.Fatal(err)
	}
	if want := (BBox{1.5, -5, 20, 10}); b != want {
		t.Errorf("bbox = %+v, want %+v", b, want)
	}

	if _, err := LoadCSV(writeFile(t, "nocols.csv", "a,b\n1,2\n")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("missing columns error = %v", err)
	}
}

func TestLoadKML(t *testing.T) {
	kml := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder>
  <Placemark><name>pt</name><Point><coordinates>1,2,0</coordinates></Point></Placemark>
  <Placemark><name>ln</name><LineString><coordinates>0,0 3,3</coordinates></LineString></Placemark>
  <Placemark><name>pg</name><Polygon>
    <outerBoundaryIs><LinearRing><coordinates>0,0 5,0 5,5 0,0</coordinates></LinearRing></outerBoundaryIs>
  </Polygon></Placemark>
</Folder></Document></kml>`
	fc, err := LoadKML(writeFile(t, "in.kml", kml))
	if err != nil {
		t.Fatalf("LoadKML() error = %v", err)
	}
	if len(fc.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(fc.Features))
	}
	types := []string{TypePoint, TypeLineString, TypePolygon}
	for i, f := range fc.Features {
		if f.Geometry.Type != types[i] {
			t.Errorf("feature %d type = %q, want %q", i, f.Geometry.Type, types[i])
		}
	}
	if fc.Features[2].Properties["name"] != "pg" {
		t.Errorf("name = %v", fc.Features[2].Properties["name"])
	}
}
