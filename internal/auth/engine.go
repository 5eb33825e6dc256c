package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/registry"
	"github.com/dmitrijs2005/fortress/internal/session"
)

// DefaultDelay is the simulated round trip Login and Register wait for
// before touching any store.
const DefaultDelay = time.Second

// Engine is the authentication state machine.
//
// Mutating operations are serialized by opMu for their whole duration,
// simulated delay included. Readers only take stateMu, so State and the
// Gate never wait for an in-flight Login.
type Engine struct {
	reg      registry.Registry
	creds    credentials.Store
	sessions session.Store
	log      logging.Logger
	delay    time.Duration

	opMu     sync.Mutex
	initOnce sync.Once

	stateMu sync.RWMutex
	state   models.AuthState
	hub     *broadcaster
}

// Option customises an Engine.
type Option func(*Engine)

// WithDelay sets the simulated latency of Login and Register. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// WithLogger sets the logger for state transitions. The default discards.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New wires an Engine to its stores. The engine starts Anonymous; call
// Initialize before exposing it to readers.
func New(reg registry.Registry, creds credentials.Store, sessions session.Store, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		creds:    creds,
		sessions: sessions,
		log:      logging.Nop(),
		delay:    DefaultDelay,
		state:    models.Anonymous(),
		hub:      newBroadcaster(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize restores the persisted session, if any. Only the first call
// does anything; later calls return the current state.
func (e *Engine) Initialize(ctx context.Context) models.AuthState {
	e.initOnce.Do(func() {
		e.opMu.Lock()
		defer e.opMu.Unlock()

		sess, err := e.sessions.Restore(ctx)
		switch {
		case errors.Is(err, ErrSessionCorrupt):
			e.log.Warn(ctx, "stored session discarded", "reason", err)
			e.commit(models.Anonymous())
		case err != nil:
			e.log.Error(ctx, "session restore failed", "error", err)
			e.commit(models.Anonymous())
		case sess == nil:
			e.log.Debug(ctx, "no stored session")
			e.commit(models.Anonymous())
		default:
			e.log.Info(ctx, "session restored", "email", sess.User.Email, "role", sess.User.Role)
			e.commit(models.Authenticated(sess.User))
		}
	})
	return e.State()
}

// Login authenticates email with secret. A wrong secret and an unknown email
// are both ErrInvalidCredentials. Re-login from Authenticated replaces the
// session.
func (e *Engine) Login(ctx context.Context, email, secret string) (models.User, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.log.Info(ctx, "login attempt", "email", email)
	if err := e.wait(ctx); err != nil {
		return models.User{}, err
	}
	ctx = context.WithoutCancel(ctx)

	if !e.creds.Verify(email, []byte(secret)) {
		e.log.Warn(ctx, "login failed", "email", email)
		return models.User{}, ErrInvalidCredentials
	}
	u, ok := e.reg.FindByEmail(email)
	if !ok {
		e.log.Error(ctx, "credentials without identity record", "email", email)
		return models.User{}, ErrInvalidCredentials
	}

	if _, err := e.sessions.Persist(ctx, u); err != nil {
		e.log.Error(ctx, "persist session failed", "email", email, "error", err)
		return models.User{}, ErrStorage
	}

	e.commit(models.Authenticated(u))
	e.log.Info(ctx, "login succeeded", "email", email, "role", u.Role)
	return u, nil
}

// Register creates a user with the default role and logs it in. If any step
// after the credential write fails, the earlier writes are undone.
func (e *Engine) Register(ctx context.Context, email, secret, name string) (models.User, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	e.log.Info(ctx, "register attempt", "email", email)
	if err := e.wait(ctx); err != nil {
		return models.User{}, err
	}
	ctx = context.WithoutCancel(ctx)

	if _, exists := e.reg.FindByEmail(email); exists {
		e.log.Warn(ctx, "register failed: email taken", "email", email)
		return models.User{}, ErrIdentityExists
	}

	e.creds.Set(email, []byte(secret))
	u, err := e.reg.Insert(registry.Candidate{Email: email, Name: name, Role: models.RoleUser})
	if err != nil {
		e.creds.Delete(email)
		if errors.Is(err, registry.ErrDuplicateIdentity) {
			return models.User{}, ErrIdentityExists
		}
		e.log.Error(ctx, "insert user failed", "email", email, "error", err)
		return models.User{}, ErrStorage
	}

	if _, err := e.sessions.Persist(ctx, u); err != nil {
		e.reg.Remove(u.ID)
		e.creds.Delete(email)
		e.log.Error(ctx, "persist session failed, registration rolled back", "email", email, "error", err)
		return models.User{}, ErrStorage
	}

	e.commit(models.Authenticated(u))
	e.log.Info(ctx, "register succeeded", "email", email, "id", u.ID)
	return u, nil
}

// Logout ends the session. It is a no-op when already Anonymous. The state
// becomes Anonymous even if clearing the stored session fails; that failure
// is reported as ErrStorage.
func (e *Engine) Logout(ctx context.Context) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	cur := e.State()
	if !cur.IsAuthenticated {
		return nil
	}

	err := e.sessions.Clear(context.WithoutCancel(ctx))
	e.commit(models.Anonymous())
	if err != nil {
		e.log.Error(ctx, "clear session failed", "email", cur.CurrentUser.Email, "error", err)
		return ErrStorage
	}
	e.log.Info(ctx, "logged out", "email", cur.CurrentUser.Email)
	return nil
}

// UpdateRole sets the role of targetID. The caller must be authenticated as
// an admin. An unknown target returns (nil, nil). When the target is the
// current user the session is re-persisted with the new role; if that fails
// the role change is reverted.
func (e *Engine) UpdateRole(ctx context.Context, targetID string, role models.Role) (*models.User, error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	cur := e.State()
	if !CanManageUsers(cur) {
		e.log.Warn(ctx, "role update denied", "target", targetID, "actor_role", cur.Role())
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	prev, ok := e.reg.FindByID(targetID)
	if !ok {
		e.log.Warn(ctx, "role update for unknown user", "target", targetID)
		return nil, nil
	}
	updated, _ := e.reg.UpdateRole(targetID, role)

	if targetID == cur.CurrentUser.ID {
		if _, err := e.sessions.Persist(context.WithoutCancel(ctx), updated); err != nil {
			e.reg.UpdateRole(targetID, prev.Role)
			e.log.Error(ctx, "persist refreshed session failed, role reverted", "target", targetID, "error", err)
			return nil, ErrStorage
		}
		e.commit(models.Authenticated(updated))
	}

	e.log.Info(ctx, "role updated", "target", targetID, "from", prev.Role, "to", role, "by", cur.CurrentUser.Email)
	return &updated, nil
}

// ListUsers returns every registered user. Admin only.
func (e *Engine) ListUsers(ctx context.Context) ([]models.User, error) {
	if !CanManageUsers(e.State()) {
		e.log.Warn(ctx, "user listing denied", "actor_role", e.State().Role())
		return nil, ErrForbidden
	}
	return e.reg.List(), nil
}

// State returns a copy of the current state.
func (e *Engine) State() models.AuthState {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.state.Clone()
}

// Subscribe returns a channel that first receives the current state and then
// every committed transition, in commit order. A subscriber that falls more
// than buffer states behind loses the oldest ones. cancel closes the channel.
func (e *Engine) Subscribe(buffer int) (<-chan models.AuthState, func()) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()

	return e.hub.subscribe(buffer, e.state)
}

// Close closes every subscription channel.
func (e *Engine) Close() {
	e.hub.closeAll()
}

// commit publishes st while holding the state lock, so a concurrent
// Subscribe sees either the old state followed by st, or st alone.
func (e *Engine) commit(st models.AuthState) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	e.state = st.Clone()
	e.hub.publish(e.state)
}

func (e *Engine) wait(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(e.delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		e.log.Debug(ctx, "operation cancelled during delay", "error", ctx.Err())
		return ctx.Err()
	}
}
