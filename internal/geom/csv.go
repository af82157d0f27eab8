package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	errs "geoascii/internal/errors"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns one Point
// feature per row. Every column, coordinates included, is kept as a string
// property.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "csv %s", path)
	}
	if len(recs) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "csv %s: empty", path)
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "csv %s: latitude/longitude columns not found", path)
	}
	fc := &FeatureCollection{Type: TypeFeatureCollection}
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				props[h] = row[i]
			}
		}
		pt := Geometry{Type: TypePoint, Coordinates: []float64{lon, lat}}
		fc.Features = append(fc.Features, NewFeature(pt, props))
	}
	if len(fc.Features) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "csv %s: no valid points parsed", path)
	}
	return fc, nil
}
