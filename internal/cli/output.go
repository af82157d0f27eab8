package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"geoascii/internal/config"
	"geoascii/internal/style"
)

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorEnabled resolves a color mode for out. Auto colors terminals unless
// NO_COLOR or CLICOLOR=0 is set.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(out) && !termenv.EnvNoColor()
	}
}

func printColors(w io.Writer, color bool) error {
	for _, name := range style.Colors() {
		if !color {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
			continue
		}
		seq, _ := style.Sequence(name)
		if _, err := fmt.Fprintf(w, "%s   %s %s\n", seq, style.Reset, name); err != nil {
			return err
		}
	}
	return nil
}
