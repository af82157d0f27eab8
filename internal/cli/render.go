package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"geoascii/internal/config"
	errs "geoascii/internal/errors"
	"geoascii/internal/geom"
	"geoascii/internal/raster"
	"geoascii/internal/style"
	"geoascii/internal/tui"
)

// layerDefaults are drawn by layers without an explicit style, in order.
const layerDefaults = "+-*o#x@%=~"

type renderOpts struct {
	configPath string
	width      int
	fill       string
	chars      []string
	bbox       []float64
	properties string
	iterate    bool
	color      string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render [FILES...]",
		Short: "Render geometry files as text",
		Long: `Render draws every input as a layer of one shared frame, later layers on
top. Each --char styles the layer at the same position with a single
character, a color name (see "geoascii colors") or an emoji alias such as
:fire:. With --iterate every feature gets its own page; on a terminal the
pages open in an interactive pager.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &opts)
		},
	}
	addRenderFlags(cmd, &opts)
	return cmd
}

func addRenderFlags(cmd *cobra.Command, o *renderOpts) {
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "config file (default: geoascii/config.toml in the user config dir)")
	f.IntVarP(&o.width, "width", "w", config.DefaultWidth, "output width in cells")
	f.StringVar(&o.fill, "fill", string(raster.DefaultFill), "value of empty cells: a character, color or emoji")
	f.StringArrayVarP(&o.chars, "char", "c", nil, "style of the layer at the same position: a character, color or emoji (repeatable)")
	f.Float64SliceVar(&o.bbox, "bbox", nil, "frame as minx,miny,maxx,maxy (default: bounds of the input)")
	f.StringVar(&o.properties, "properties", "", "comma separated properties printed above each page, or \"all\" (with --iterate)")
	f.BoolVarP(&o.iterate, "iterate", "i", false, "render one page per feature")
	f.StringVar(&o.color, "color", config.ColorAuto, "colorize output: auto, always or never")
}

// settings are the config file merged with the command line.
type settings struct {
	cfg        config.Config
	colormap   style.Map
	bbox       *geom.BBox
	chars      []string
	properties []string
	allProps   bool
	iterate    bool
	color      bool
}

// input is one layer to draw.
type input struct {
	path  string
	style string
}

func runRender(cmd *cobra.Command, args []string, o *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := resolveSettings(cmd, o, logger)
	if err != nil {
		return err
	}
	ins, err := s.inputs(args, !isTerminal(cmd.InOrStdin()))
	if err != nil {
		return err
	}

	srcs := make([]any, len(ins))
	for i, in := range ins {
		src, err := geom.OpenReader(in.path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		srcs[i] = src
	}
	logger.Debug("rendering", "layers", len(ins), "width", s.cfg.Width, "color", s.color, "iterate", s.iterate)

	out := cmd.OutOrStdout()
	if s.iterate {
		return s.paginate(cmd, ins, srcs)
	}

	p := newProgress(logger)
	text, err := s.render(ins, srcs)
	if err != nil {
		return err
	}
	p.done("rendered")
	_, err = fmt.Fprintln(out, text)
	return err
}

func loadConfig(path string, logger *log.Logger) (config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err == nil {
			logger.Debug("loaded config", "path", path)
		}
		return cfg, err
	}
	cfg, found, err := config.LoadDefault()
	if found {
		logger.Debug("loaded default config")
	}
	return cfg, err
}

func resolveSettings(cmd *cobra.Command, o *renderOpts, logger *log.Logger) (*settings, error) {
	cfg, err := loadConfig(o.configPath, logger)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = o.width
	}
	if flags.Changed("fill") {
		cfg.Fill = o.fill
	}
	if flags.Changed("bbox") {
		cfg.BBox = o.bbox
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, c := range o.chars {
		if err := checkStyle(c); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "--char %d", i+1)
		}
	}

	s := &settings{cfg: cfg, chars: o.chars, iterate: o.iterate}
	// both were validated above
	s.colormap, _ = style.ParseMap(cfg.Colormap)
	s.bbox, _ = cfg.Frame()

	switch props := strings.TrimSpace(o.properties); props {
	case "":
	case "all":
		s.allProps = true
	default:
		for p := range strings.SplitSeq(props, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s.properties = append(s.properties, p)
			}
		}
	}
	if !s.iterate && (s.allProps || len(s.properties) > 0) {
		logger.Warn("--properties only applies with --iterate")
	}

	s.color = colorEnabled(cfg.Color, cmd.OutOrStdout())
	return s, nil
}

func checkStyle(v string) error {
	if style.IsDecoration(v) {
		return nil
	}
	_, err := raster.Cell(v)
	return err
}

// inputs lists the layers to draw: the arguments, else the layers of the
// config file, else stdin when it is piped.
func (s *settings) inputs(args []string, piped bool) ([]input, error) {
	var ins []input
	switch {
	case len(args) > 0:
		for _, a := range args {
			ins = append(ins, input{path: a})
		}
	case len(s.cfg.Layers) > 0:
		for _, l := range s.cfg.Layers {
			ins = append(ins, input{path: l.Path, style: l.Style})
		}
	case piped:
		ins = []input{{path: geom.Stdin}}
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "no input: pass files or pipe GeoJSON on stdin")
	}

	stdin := 0
	for _, in := range ins {
		if in.path == geom.Stdin {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "stdin can only be read once")
	}
	if len(s.chars) > len(ins) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%d --char values for %d inputs", len(s.chars), len(ins))
	}

	for i, c := range s.chars {
		ins[i].style = c
	}
	if ins[0].style == "" {
		ins[0].style = s.cfg.Char
	}
	used := make(map[string]bool, len(ins))
	for _, in := range ins {
		used[in.style] = true
	}
	pool := []rune(layerDefaults)
	for i := range ins {
		if ins[i].style != "" {
			continue
		}
		for len(pool) > 0 && used[string(pool[0])] {
			pool = pool[1:]
		}
		if len(pool) == 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "too many layers without a --char")
		}
		ins[i].style = string(pool[0])
		used[ins[i].style] = true
	}
	return ins, nil
}

// render draws all layers into one frame.
func (s *settings) render(ins []input, srcs []any) (string, error) {
	styles := make([]string, len(ins))
	for i, in := range ins {
		styles[i] = in.style
	}

	if !s.color {
		cells, fill := undecorate(styles, s.cfg.Fill)
		layers := make([]style.Layer, len(srcs))
		for i, src := range srcs {
			layers[i] = style.Layer{Source: src, Char: cells[i]}
		}
		g, err := style.RenderMultiple(layers, s.cfg.Width, fill, s.bbox)
		if err != nil {
			return "", err
		}
		return raster.Encode(g), nil
	}

	layers := make([]style.StyledLayer, len(srcs))
	for i, src := range srcs {
		layers[i] = style.StyledLayer{Source: src, Style: s.decorate(styles[i])}
	}
	return style.StyleMultiple(layers, s.cfg.Width, s.decorate(s.cfg.Fill), s.bbox)
}

// decorate replaces a plain cell value by its colormap entry, if any.
func (s *settings) decorate(v string) string {
	if r, err := raster.Cell(v); err == nil {
		if d, ok := s.colormap[r]; ok {
			return d
		}
	}
	return v
}

// undecorate swaps colors and emoji for plain cell values so that output
// without color stays readable. Decorated layers draw the first unused
// layerDefaults character and a decorated fill becomes the default fill.
func undecorate(styles []string, fill string) ([]rune, rune) {
	used := map[rune]bool{}
	for _, v := range append([]string{fill}, styles...) {
		if r, err := raster.Cell(v); err == nil {
			used[r] = true
		}
	}
	next := func() rune {
		for _, r := range layerDefaults {
			if !used[r] {
				used[r] = true
				return r
			}
		}
		return raster.DefaultChar
	}

	cells := make([]rune, len(styles))
	for i, v := range styles {
		if r, err := raster.Cell(v); err == nil {
			cells[i] = r
		} else {
			cells[i] = next()
		}
	}
	fillCell, err := raster.Cell(fill)
	if err != nil {
		fillCell = raster.DefaultFill
	}
	return cells, fillCell
}

// pageOptions styles pages after the first input.
func (s *settings) pageOptions(ins []input) style.PageOptions {
	opts := style.PageOptions{
		Width:         s.cfg.Width,
		Properties:    s.properties,
		AllProperties: s.allProps,
	}
	cells, fill := undecorate([]string{ins[0].style}, s.cfg.Fill)
	opts.Char, opts.Fill = cells[0], fill
	if !s.color {
		return opts
	}
	opts.Colormap = style.Map{}
	for r, d := range s.colormap {
		opts.Colormap[r] = d
	}
	if style.IsDecoration(ins[0].style) {
		opts.Colormap[opts.Char] = ins[0].style
	}
	if style.IsDecoration(s.cfg.Fill) {
		opts.Colormap[opts.Fill] = s.cfg.Fill
	}
	return opts
}

// paginate renders one page per feature of every input. Terminals get the
// interactive pager; anything else gets the pages separated by blank lines.
func (s *settings) paginate(cmd *cobra.Command, ins []input, srcs []any) error {
	out := cmd.OutOrStdout()
	opts := s.pageOptions(ins)
	src := geom.Items(srcs)

	if !isTerminal(out) {
		return writePages(out, src, opts)
	}

	pages, err := collectPages(src, opts)
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("paging", "features", len(pages))

	readsStdin := false
	for _, in := range ins {
		readsStdin = readsStdin || in.path == geom.Stdin
	}
	return tui.Run(cmd.Context(), "geoascii", pages, tui.Options{Output: out, InputTTY: readsStdin})
}

func writePages(w io.Writer, src any, opts style.PageOptions) error {
	first := true
	for page, err := range style.Paginate(src, opts) {
		if err != nil {
			return err
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintln(w, page); err != nil {
			return err
		}
	}
	return nil
}

// collectPages renders pages for the pager, which shows properties in its
// own table instead of above the map.
func collectPages(src any, opts style.PageOptions) ([]tui.Page, error) {
	keys := opts.Properties
	if opts.AllProperties {
		keys = nil
	}
	bare := opts
	bare.Properties, bare.AllProperties = nil, false

	var pages []tui.Page
	for f, err := range geom.Features(src) {
		if err != nil {
			return nil, err
		}
		body, err := style.RenderFeature(f, bare)
		if err != nil {
			return nil, err
		}
		pages = append(pages, tui.Page{
			Title:      featureTitle(f, len(pages)),
			Body:       body,
			Properties: style.SelectProperties(f.Properties, keys),
		})
	}
	return pages, nil
}

func featureTitle(f geom.Feature, i int) string {
	if f.ID != nil {
		return fmt.Sprintf("feature %d (id %s)", i+1, style.FormatValue(f.ID))
	}
	return fmt.Sprintf("feature %d", i+1)
}
