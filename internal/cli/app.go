// Package cli is an interactive front end for the auth engine. It renders
// what the dashboard of the web client shows: the profile card, and the
// admin panel when the Gate allows it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fortress/internal/auth"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/models"
)

// Engine is the part of auth.Engine the CLI drives.
type Engine interface {
	auth.StateReader
	Login(ctx context.Context, email, secret string) (models.User, error)
	Register(ctx context.Context, email, secret, name string) (models.User, error)
	Logout(ctx context.Context) error
	UpdateRole(ctx context.Context, targetID string, role models.Role) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	Subscribe(buffer int) (<-chan models.AuthState, func())
}

type App struct {
	engine Engine
	gate   *auth.Gate
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(engine Engine, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		engine: engine,
		gate:   auth.NewGate(engine),
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run watches the auth state and serves the REPL until the input ends, the
// user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to Fortress (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartStateWatcher(ctx)
	}()

	if a.isLoggedIn() {
		_ = a.WhoAmI(ctx)
	}
	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	<-done
}

// StartStateWatcher logs every auth state transition until ctx is done.
func (a *App) StartStateWatcher(ctx context.Context) {
	states, unsubscribe := a.engine.Subscribe(4)
	defer unsubscribe()

	first := true
	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			if first {
				first = false
				continue
			}
			if st.IsAuthenticated {
				a.log.Info(ctx, "auth state changed", "authenticated", true, "email", st.CurrentUser.Email, "role", st.CurrentUser.Role)
			} else {
				a.log.Info(ctx, "auth state changed", "authenticated", false)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.engine.State().IsAuthenticated
}

func (a *App) canManageUsers() bool {
	return a.gate.CanManageUsers()
}

func (a *App) getStatus() string {
	st := a.engine.State()
	if !st.IsAuthenticated {
		return ""
	}
	return fmt.Sprintf("(%s %s)", st.CurrentUser.Email, st.CurrentUser.Role)
}
