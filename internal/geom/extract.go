package geom

import (
	"iter"

	errs "geoascii/internal/errors"
)

// Extract lazily yields the geometry of every item in src, in order.
//
// Each item resolves in this order:
//   - a Feature yields its geometry (features with a null geometry are skipped)
//   - a GeoInterfacer yields the geometry of its interface value when that
//     value is a Feature, and the interface value itself otherwise
//   - a value tagged with one of the geometry types is yielded unchanged
//
// Nested Sources and slices (layers) are flattened. Anything else ends the
// sequence with an INVALID_INPUT error. A single Feature, Geometry or
// GeoInterfacer passed as src is treated as a one-element sequence.
func Extract(src any) iter.Seq2[Geometry, error] {
	return func(yield func(Geometry, error) bool) {
		s, err := AsSource(src)
		if err != nil {
			yield(Geometry{}, err)
			return
		}
		walk(s, func(it any, err error) bool {
			if err != nil {
				yield(Geometry{}, err)
				return false
			}
			g, ok, err := resolve(it)
			if err != nil {
				yield(Geometry{}, err)
				return false
			}
			return !ok || yield(g, nil)
		})
	}
}

// Features is Extract keeping each item's properties and id. Bare
// geometries become features without properties.
func Features(src any) iter.Seq2[Feature, error] {
	return func(yield func(Feature, error) bool) {
		s, err := AsSource(src)
		if err != nil {
			yield(Feature{}, err)
			return
		}
		walk(s, func(it any, err error) bool {
			if err != nil {
				yield(Feature{}, err)
				return false
			}
			g, ok, err := resolve(it)
			if err != nil {
				yield(Feature{}, err)
				return false
			}
			if !ok {
				return true
			}
			f := NewFeature(g, nil)
			f.ID, f.Properties = featureMeta(it)
			return yield(f, nil)
		})
	}
}

// walk yields every single item of s, flattening nested sources. It returns
// false once yield has asked to stop or an error was yielded.
func walk(s Source, yield func(any, error) bool) bool {
	for it := range s.All() {
		// sources report read failures in-band
		if e, ok := it.(error); ok {
			yield(nil, e)
			return false
		}
		if it != nil && !isSingle(it) {
			nested, err := AsSource(it)
			if err != nil {
				yield(nil, err)
				return false
			}
			if !walk(nested, yield) {
				return false
			}
			continue
		}
		if !yield(it, nil) {
			return false
		}
	}
	return true
}

func featureMeta(item any) (id any, props map[string]any) {
	switch v := item.(type) {
	case Feature:
		return v.ID, v.Properties
	case *Feature:
		return v.ID, v.Properties
	case map[string]any:
		if t, _ := v["type"].(string); t == TypeFeature {
			props, _ = v["properties"].(map[string]any)
			return v["id"], props
		}
	case GeoInterfacer:
		return featureMeta(v.GeoInterface())
	}
	return nil, nil
}

// isSingle reports whether v is one geometry-bearing item rather than a
// collection of them. Maps are checked for their type tag first.
func isSingle(v any) bool {
	switch m := v.(type) {
	case Feature, *Feature, Geometry, *Geometry, GeoInterfacer:
		return true
	case map[string]any:
		t, _ := m["type"].(string)
		return t == TypeFeature || IsGeometryType(t)
	}
	return false
}

// resolve returns the geometry carried by a single item. ok is false for
// features without a geometry.
func resolve(item any) (g Geometry, ok bool, err error) {
	switch v := item.(type) {
	case Feature:
		return featureGeometry(&v)
	case *Feature:
		if v == nil {
			return Geometry{}, false, invalidInput(item)
		}
		return featureGeometry(v)
	case Geometry:
		return checkGeometry(&v)
	case *Geometry:
		if v == nil {
			return Geometry{}, false, invalidInput(item)
		}
		return checkGeometry(v)
	case map[string]any:
		return resolveMap(v)
	case GeoInterfacer:
		return resolveInterface(v.GeoInterface())
	}
	return Geometry{}, false, invalidInput(item)
}

func resolveInterface(gi any) (Geometry, bool, error) {
	switch v := gi.(type) {
	case GeoInterfacer:
		// an interface value must be data, not another indirection
		return Geometry{}, false, invalidInput(gi)
	case Feature, *Feature, Geometry, *Geometry, map[string]any:
		return resolve(v)
	}
	return Geometry{}, false, invalidInput(gi)
}

// featureGeometry yields a feature's geometry whatever its type; rendering
// rejects types it cannot draw.
func featureGeometry(f *Feature) (Geometry, bool, error) {
	if f.Geometry == nil {
		return Geometry{}, false, nil
	}
	return *f.Geometry, true, nil
}

func checkGeometry(g *Geometry) (Geometry, bool, error) {
	if !IsGeometryType(g.Type) {
		return Geometry{}, false, errs.New(errs.ErrCodeInvalidInput, "unknown geometry type %q", g.Type)
	}
	return *g, true, nil
}

func resolveMap(m map[string]any) (Geometry, bool, error) {
	t, _ := m["type"].(string)
	if t == TypeFeature {
		switch g := m["geometry"].(type) {
		case nil:
			return Geometry{}, false, nil
		case map[string]any:
			if t, _ := g["type"].(string); t != TypeGeometryCollection {
				return Geometry{Type: t, Coordinates: g["coordinates"]}, true, nil
			}
			geom, err := GeometryFromMap(g)
			return geom, err == nil, err
		default:
			return Geometry{}, false, invalidInput(m)
		}
	}
	geom, err := GeometryFromMap(m)
	return geom, err == nil, err
}

// GeometryFromMap converts a decoded GeoJSON geometry object.
func GeometryFromMap(m map[string]any) (Geometry, error) {
	t, _ := m["type"].(string)
	if !IsGeometryType(t) {
		return Geometry{}, invalidInput(m)
	}
	g := Geometry{Type: t, Coordinates: m["coordinates"]}
	if t == TypeGeometryCollection {
		raw, _ := m["geometries"].([]any)
		for _, r := range raw {
			sub, ok := r.(map[string]any)
			if !ok {
				return Geometry{}, invalidInput(r)
			}
			sg, err := GeometryFromMap(sub)
			if err != nil {
				return Geometry{}, err
			}
			g.Geometries = append(g.Geometries, sg)
		}
	}
	return g, nil
}

func invalidInput(item any) error {
	if m, ok := item.(map[string]any); ok {
		return errs.New(errs.ErrCodeInvalidInput, "object with type %v is not a feature or geometry", m["type"])
	}
	return errs.New(errs.ErrCodeInvalidInput, "%T is not a feature, geometry or geo-interface", item)
}
