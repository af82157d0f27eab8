package geom

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "geoascii/internal/errors"
)

// Stdin is the path that selects a one-shot stream from standard input.
const Stdin = "-"

// Extensions lists the file extensions Open understands.
var Extensions = []string{".geojson", ".json", ".geojsonl", ".geojsons", ".ndjson", ".csv", ".kml", ".wkt"}

// Open returns a Source for path, dispatching on its extension. "-" reads a
// GeoJSON stream from stdin and is one-shot; files are restartable.
func Open(path string) (Source, error) {
	return OpenReader(path, os.Stdin)
}

// OpenReader is Open with an explicit reader standing in for stdin.
func OpenReader(path string, stdin io.Reader) (Source, error) {
	if path == Stdin {
		return NewStream(stdin), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	var load func(string) (*FeatureCollection, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		load = LoadGeoJSON
	case ".geojsonl", ".geojsons", ".ndjson":
		load = loadStreamFile
	case ".csv":
		load = LoadCSV
	case ".kml":
		load = LoadKML
	case ".wkt":
		load = LoadWKT
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported file: %s", ext)
	}
	return &File{Path: path, Load: load}, nil
}

// loadStreamFile reads a newline-delimited or RFC 8142 file in full.
func loadStreamFile(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fc := &FeatureCollection{Type: TypeFeatureCollection}
	for it := range NewStream(f).All() {
		if e, ok := it.(error); ok {
			return nil, e
		}
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		feat, err := featureFromMap(m)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s", path)
		}
		fc.Features = append(fc.Features, feat)
	}
	return fc, nil
}

// featureFromMap round-trips a decoded object through encoding/json so
// features and bare geometries come back as typed Features.
func featureFromMap(m map[string]any) (Feature, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Feature{}, err
	}
	fc, err := DecodeGeoJSON(data)
	if err != nil {
		return Feature{}, err
	}
	return fc.Features[0], nil
}
