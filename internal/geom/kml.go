package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	errs "geoascii/internal/errors"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

// LoadKML extracts Point, LineString and Polygon placemarks from a KML file,
// wherever they sit in the Document/Folder tree. The placemark name becomes
// the "name" property.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()

	fc := &FeatureCollection{Type: TypeFeatureCollection}
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "kml %s", path)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "kml %s", path)
		}
		g, ok := pm.geometry()
		if !ok {
			continue
		}
		fc.Features = append(fc.Features, NewFeature(g, map[string]any{"name": pm.Name}))
	}
	if len(fc.Features) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "kml %s: no placemarks found", path)
	}
	return fc, nil
}

func (pm kmlPlacemark) geometry() (Geometry, bool) {
	switch {
	case pm.Point != nil:
		pts := parseKMLCoords(pm.Point.Coordinates)
		if len(pts) == 0 {
			return Geometry{}, false
		}
		return Geometry{Type: TypePoint, Coordinates: pts[0]}, true
	case pm.LineString != nil:
		pts := parseKMLCoords(pm.LineString.Coordinates)
		if len(pts) == 0 {
			return Geometry{}, false
		}
		return Geometry{Type: TypeLineString, Coordinates: pts}, true
	case pm.Polygon != nil:
		outer := parseKMLCoords(pm.Polygon.Outer.Coordinates)
		if len(outer) == 0 {
			return Geometry{}, false
		}
		rings := [][][]float64{outer}
		for _, in := range pm.Polygon.Inner {
			if ring := parseKMLCoords(in.Coordinates); len(ring) > 0 {
				rings = append(rings, ring)
			}
		}
		return Geometry{Type: TypePolygon, Coordinates: rings}, true
	}
	return Geometry{}, false
}

// coordinates may contain multiple tuples separated by spaces
func parseKMLCoords(s string) [][]float64 {
	var out [][]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, []float64{lon, lat})
	}
	return out
}
