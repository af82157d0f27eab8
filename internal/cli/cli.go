// Package cli implements the geoascii command-line interface.
//
// The root command and its render subcommand draw geometry files as text
// grids on stdout:
//
//	geoascii countries.geojson
//	geoascii render -w 60 --char blue --char red lakes.geojson rivers.wkt
//	cat roads.ndjson | geoascii --iterate --properties name,kind -
//
// Settings come from the config file (see internal/config) and are
// overridden by flags. All commands support --verbose (-v) for debug-level
// logging on stderr; loggers travel through the command context.
package cli

import (
	"context"
	"errors"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. main
// calls it with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the geoascii CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Running the root command with
// files is the same as running render.
func NewRootCommand() *cobra.Command {
	var (
		verbose bool
		opts    renderOpts
	)

	root := &cobra.Command{
		Use:   "geoascii [FILES...]",
		Short: "geoascii renders vector geometries as text",
		Long: `geoascii draws points, lines and polygons from GeoJSON, WKT, CSV and KML
files as a grid of characters, optionally colorized, for a quick look at
geospatial data without leaving the terminal. Use - to read a GeoJSON text
sequence or newline-delimited GeoJSON from stdin.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("geoascii %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	addRenderFlags(root, &opts)

	root.AddCommand(newRenderCmd())
	root.AddCommand(newColorsCmd())

	return root
}

func newColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the color names accepted by --char, --fill and colormaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printColors(cmd.OutOrStdout(), colorEnabled("auto", cmd.OutOrStdout()))
		},
	}
}

// ExitCode maps an error returned by Execute to a process exit status:
// 130 when interrupted, 1 for any other failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
