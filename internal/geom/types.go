package geom

import (
	"iter"
	"math"
)

// GeoJSON type tags.
const (
	TypePoint              = "Point"
	TypeLineString         = "LineString"
	TypePolygon            = "Polygon"
	TypeMultiPoint         = "MultiPoint"
	TypeMultiLineString    = "MultiLineString"
	TypeMultiPolygon       = "MultiPolygon"
	TypeGeometryCollection = "GeometryCollection"
	TypeFeature            = "Feature"
	TypeFeatureCollection  = "FeatureCollection"
)

// IsGeometryType reports whether t names one of the seven geometry types.
func IsGeometryType(t string) bool {
	switch t {
	case TypePoint, TypeLineString, TypePolygon,
		TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon,
		TypeGeometryCollection:
		return true
	}
	return false
}

// BBox is an (xmin, ymin, xmax, ymax) rectangle.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// emptyBBox is the identity for Extend and Union.
func emptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// IsEmpty reports whether no coordinate has been added to b.
func (b BBox) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Extend grows b to include (x, y).
func (b BBox) Extend(x, y float64) BBox {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
	return b
}

// Union returns the smallest box enclosing every non-empty box in boxes.
func Union(boxes ...BBox) BBox {
	out := emptyBBox()
	for _, b := range boxes {
		if b.IsEmpty() {
			continue
		}
		out = out.Extend(b.MinX, b.MinY).Extend(b.MaxX, b.MaxY)
	}
	return out
}

// Geometry is a GeoJSON geometry. Coordinates holds the nested position
// arrays as decoded from JSON ([]any of float64) or as typed slices
// ([]float64, [][]float64, ...). A third (Z) ordinate is ignored everywhere.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates any        `json:"coordinates,omitempty"`
	Geometries  []Geometry `json:"geometries,omitempty"`
}

// Feature is a geometry bundled with properties.
type Feature struct {
	Type       string         `json:"type"`
	ID         any            `json:"id,omitempty"`
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// NewFeature wraps g with props.
func NewFeature(g Geometry, props map[string]any) Feature {
	if props == nil {
		props = map[string]any{}
	}
	return Feature{Type: TypeFeature, Properties: props, Geometry: &g}
}

// FeatureCollection is a restartable Source over its features.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// All yields each feature in order.
func (fc *FeatureCollection) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, f := range fc.Features {
			if !yield(f) {
				return
			}
		}
	}
}

// GeoInterfacer is implemented by values that expose their data as a
// GeoJSON-like Feature or Geometry without being one. GeoInterface may return
// a Feature, *Feature, Geometry, *Geometry or a decoded GeoJSON map.
type GeoInterfacer interface {
	GeoInterface() any
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}
