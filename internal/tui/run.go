package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configure Run.
type Options struct {
	Output io.Writer
	// InputTTY reads keys from the controlling terminal, for when stdin
	// carries the features being paged.
	InputTTY bool
}

// Run shows the pager until the user quits or ctx is cancelled.
func Run(ctx context.Context, title string, pages []Page, opts Options) error {
	popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Output != nil {
		popts = append(popts, tea.WithOutput(opts.Output))
	}
	if opts.InputTTY {
		popts = append(popts, tea.WithInputTTY())
	}
	_, err := tea.NewProgram(New(title, pages), popts...).Run()
	return err
}
