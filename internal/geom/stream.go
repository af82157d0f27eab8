package geom

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"iter"

	errs "geoascii/internal/errors"
)

// recordSeparator prefixes each record of an RFC 8142 GeoJSON text sequence.
const recordSeparator = 0x1E

// Stream decodes GeoJSON objects from a reader one at a time. It accepts
// newline-delimited GeoJSON, RFC 8142 text sequences and plain concatenated
// objects; FeatureCollections are expanded into their features. A Stream
// can be consumed once.
type Stream struct {
	r    io.Reader
	used bool
}

func NewStream(r io.Reader) *Stream {
	return &Stream{r: r}
}

func (s *Stream) Restartable() bool { return false }

func (s *Stream) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		if s.used {
			return
		}
		s.used = true
		dec := json.NewDecoder(&rsFilter{r: bufio.NewReader(s.r)})
		for n := 1; ; n++ {
			var raw map[string]any
			err := dec.Decode(&raw)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(errs.Wrap(errs.ErrCodeInvalidFormat, err, "stream record %d", n))
				return
			}
			if t, _ := raw["type"].(string); t == TypeFeatureCollection {
				fs, _ := raw["features"].([]any)
				for _, f := range fs {
					if !yield(f) {
						return
					}
				}
				continue
			}
			if !yield(raw) {
				return
			}
		}
	}
}

// rsFilter drops record separators so json.Decoder sees whitespace-separated
// values.
type rsFilter struct {
	r *bufio.Reader
}

func (f *rsFilter) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := f.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if b == recordSeparator {
			b = '\n'
		}
		p[n] = b
		n++
		if f.r.Buffered() == 0 {
			break
		}
	}
	return n, nil
}
