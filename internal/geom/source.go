package geom

import (
	"iter"
	"slices"
)

// Source yields geometry-bearing items: Features, Geometries, GeoInterfacer
// values, decoded GeoJSON maps or nested Sources (layers).
type Source interface {
	All() iter.Seq[any]
}

// IsRestartable reports whether src can be iterated more than once. Sources
// are restartable unless they implement Restartable() and return false.
// Items is restartable only when every nested Source inside it is; a nested
// iterator function counts as one-shot.
func IsRestartable(src Source) bool {
	if r, ok := src.(interface{ Restartable() bool }); ok && !r.Restartable() {
		return false
	}
	if items, ok := src.(Items); ok {
		for _, it := range items {
			if nested, ok := nestedSource(it); ok && !IsRestartable(nested) {
				return false
			}
		}
	}
	return true
}

// nestedSource returns the Source form of an item that is itself a
// collection, such as a layer in a list of layers. Iterator functions come
// back as one-shot sources.
func nestedSource(it any) (Source, bool) {
	if it == nil || isSingle(it) {
		return nil, false
	}
	s, err := AsSource(it)
	return s, err == nil
}

// Items is an in-memory, restartable Source.
type Items []any

func (it Items) All() iter.Seq[any] { return slices.Values(it) }

// Once wraps an iterator that can only be consumed a single time, such as
// features decoded off a pipe. A second pass yields nothing.
type Once struct {
	seq  iter.Seq[any]
	used bool
}

// NewOnce wraps seq as a one-shot Source.
func NewOnce(seq iter.Seq[any]) *Once {
	return &Once{seq: seq}
}

func (o *Once) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		if o.used {
			return
		}
		o.used = true
		o.seq(yield)
	}
}

func (o *Once) Restartable() bool { return false }

// Buffer drains src into an Items, buffering nested one-shot Sources and
// iterator functions as well. Order and item values are preserved.
func Buffer(src Source) Items {
	var out Items
	for it := range src.All() {
		if nested, ok := nestedSource(it); ok && !IsRestartable(nested) {
			it = Buffer(nested)
		}
		out = append(out, it)
	}
	return out
}

// AsSource normalizes any accepted input into a Source:
//   - a single Feature, Geometry, GeoInterfacer or GeoJSON map becomes a
//     one-element Items
//   - a Source is returned as is
//   - an iter.Seq[any] is treated as one-shot
//   - slices of items become Items
//
// A nil input is an empty Items.
func AsSource(src any) (Source, error) {
	if src == nil {
		return Items{}, nil
	}
	if isSingle(src) {
		return Items{src}, nil
	}
	switch v := src.(type) {
	case Source:
		return v, nil
	case iter.Seq[any]:
		return NewOnce(v), nil
	case func(func(any) bool):
		return NewOnce(v), nil
	case []any:
		return Items(v), nil
	case []Feature:
		return toItems(v), nil
	case []*Feature:
		return toItems(v), nil
	case []Geometry:
		return toItems(v), nil
	case []*Geometry:
		return toItems(v), nil
	case []map[string]any:
		return toItems(v), nil
	case []Source:
		return toItems(v), nil
	case map[string]any:
		if t, _ := v["type"].(string); t == TypeFeatureCollection {
			fs, _ := v["features"].([]any)
			return Items(fs), nil
		}
	}
	return nil, invalidInput(src)
}

func toItems[T any](s []T) Items {
	out := make(Items, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}
