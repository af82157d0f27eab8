package style

import (
	"iter"

	"geoascii/internal/geom"
	"geoascii/internal/raster"
)

// PageOptions configure Paginate and RenderFeature.
type PageOptions struct {
	Width    int
	Fill     rune
	Char     rune
	Colormap Map

	// Properties selects the keys printed above each page. With
	// AllProperties every key is printed, sorted.
	Properties    []string
	AllProperties bool
}

func (o PageOptions) wantsTable() bool {
	return o.AllProperties || len(o.Properties) > 0
}

// Paginate yields one rendering per feature in src, each framed by that
// feature's own bounds. Pages are styled when a Colormap is set and headed by
// a properties table when properties were selected. The sequence stops at
// the first error.
func Paginate(src any, opts PageOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for f, err := range geom.Features(src) {
			if err != nil {
				yield("", err)
				return
			}
			page, err := RenderFeature(f, opts)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// RenderFeature renders a single page of Paginate.
func RenderFeature(f geom.Feature, opts PageOptions) (string, error) {
	g, err := raster.Render(f, opts.Width, raster.Options{Fill: opts.Fill, Char: opts.Char})
	if err != nil {
		return "", err
	}
	page := raster.Encode(g)
	if len(opts.Colormap) > 0 {
		if page, err = Style(page, opts.Colormap); err != nil {
			return "", err
		}
	}
	if !opts.wantsTable() {
		return page, nil
	}
	keys := opts.Properties
	if opts.AllProperties {
		keys = nil
	}
	if len(SelectProperties(f.Properties, keys)) == 0 {
		return page, nil
	}
	tbl, err := PropertiesTable(f.Properties, keys)
	if err != nil {
		return "", err
	}
	return tbl + "\n" + page, nil
}
