package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/tOgg1/tchat/internal/app"
	"github.com/tOgg1/tchat/internal/logging"
	"github.com/tOgg1/tchat/internal/tui"
)

// ErrNoTerminal is returned when the interactive client is started without
// a terminal on stdin and stdout.
var ErrNoTerminal = errors.New("tchat requires an interactive terminal; use the send, history and rooms subcommands instead")

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runChat logs in, loads the roster and runs the live sync and the UI until
// the user quits or a signal arrives.
func runChat(parent context.Context, opts *rootOptions) error {
	if !hasTTY() {
		return ErrNoTerminal
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, c, err := opts.login(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	defer c.Close()

	logger := logging.Component("chat")
	cfg := opts.cfg

	state := app.New(app.Config{
		BackfillLimit: cfg.Sync.BackfillLimit,
		NewestFirst:   cfg.TUI.NewestFirst,
	}, cancel)
	if err := state.Bootstrap(ctx, c); err != nil {
		return err
	}
	logger.Info().Str("user", c.User()).Str("position", c.SyncPosition()).Msg("session started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return state.Sync(gctx, c)
	})
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, state, c, tui.Config{
			RenderInterval: cfg.TUI.RenderInterval,
			ShowTimestamps: cfg.TUI.ShowTimestamps,
		})
	})

	err = g.Wait()
	logger.Info().Err(err).Msg("session ended")
	return err
}
