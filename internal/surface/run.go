package surface

import (
	"context"
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/statoverlay/internal/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Run shows the model full screen until the user quits. background, when
// set, runs on its own goroutine for the lifetime of the program and is
// cancelled when the program exits.
func Run(ctx context.Context, m Model, background func(context.Context) error) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New(errors.ErrSurface,
			"The debug window needs an interactive terminal",
			"Run statoverlay from a terminal, or use 'statoverlay render' for a one-shot print")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A failing background task cancels gctx, which stops the program.
	g, gctx := errgroup.WithContext(runCtx)
	if background != nil {
		g.Go(func() error { return background(gctx) })
	}

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)

	_, err := program.Run()
	cancel()
	if bgErr := g.Wait(); bgErr != nil {
		return bgErr
	}

	if err != nil {
		// Cancelling the parent context is a normal way to stop.
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrSurface,
			"The debug window stopped unexpectedly",
			"Re-run with --log-file to capture debug output")
	}
	return nil
}
