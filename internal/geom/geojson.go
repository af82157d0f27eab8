package geom

import (
	"encoding/json"
	"io"
	"iter"
	"os"

	errs "geoascii/internal/errors"
)

// File is a Source backed by a path. Every pass re-reads the file, so it is
// restartable the way an open dataset handle is. Load errors surface as an
// error item that Extract reports.
type File struct {
	Path string
	Load func(path string) (*FeatureCollection, error)
}

func (f *File) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		fc, err := f.Load(f.Path)
		if err != nil {
			yield(err)
			return
		}
		for _, feat := range fc.Features {
			if !yield(feat) {
				return
			}
		}
	}
}

// Features loads the file and returns its features.
func (f *File) Features() ([]Feature, error) {
	fc, err := f.Load(f.Path)
	if err != nil {
		return nil, err
	}
	return fc.Features, nil
}

// LoadGeoJSON reads a GeoJSON file: a FeatureCollection, a single Feature or
// a bare geometry (wrapped in a Feature with no properties).
func LoadGeoJSON(path string) (*FeatureCollection, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := DecodeGeoJSON(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "geojson %s", path)
	}
	return fc, nil
}

// DecodeGeoJSON decodes a GeoJSON document into a FeatureCollection.
func DecodeGeoJSON(data []byte) (*FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.Type == TypeFeatureCollection:
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		return &fc, nil
	case probe.Type == TypeFeature:
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &FeatureCollection{Type: TypeFeatureCollection, Features: []Feature{f}}, nil
	case IsGeometryType(probe.Type):
		var g Geometry
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		return &FeatureCollection{Type: TypeFeatureCollection, Features: []Feature{NewFeature(g, nil)}}, nil
	case probe.Type == "":
		return nil, errs.New(errs.ErrCodeInvalidFormat, "missing type")
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported geojson type: %s", probe.Type)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
