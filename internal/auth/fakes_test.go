package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/registry"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk full")

// fakeSessions is an in-memory session.Store with injectable failures.
type fakeSessions struct {
	mu sync.Mutex

	stored *models.Session

	restoreErr error
	persistErr error
	clearErr   error

	restores int
	persists int
	clears   int
}

func (f *fakeSessions) Persist(_ context.Context, u models.User) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persists++
	if f.persistErr != nil {
		return models.Session{}, f.persistErr
	}
	s := models.Session{User: u, Token: "tok-" + u.ID}
	f.stored = &s
	return s, nil
}

func (f *fakeSessions) Restore(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restores++
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	if f.stored == nil {
		return nil, nil
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeSessions) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.stored = nil
	return nil
}

func (f *fakeSessions) current() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		return nil
	}
	s := *f.stored
	return &s
}

var (
	adminUser = models.User{
		ID: "1", Email: "admin@fortress.com", Name: "Admin User", Role: models.RoleAdmin,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	regularUser = models.User{
		ID: "2", Email: "user@fortress.com", Name: "Regular User", Role: models.RoleUser,
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
)

const (
	adminSecret = "admin123"
	userSecret  = "user123"
)

type fixture struct {
	engine   *Engine
	reg      *registry.MemoryRegistry
	creds    *credentials.MemoryStore
	sessions *fakeSessions
}

// newFixture returns an initialized engine seeded with the two demo
// accounts and no simulated delay.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	reg := registry.NewMemoryRegistry()
	creds := credentials.NewMemoryStore()
	for _, acc := range []struct {
		u      models.User
		secret string
	}{{adminUser, adminSecret}, {regularUser, userSecret}} {
		require.NoError(t, reg.Add(acc.u))
		creds.Set(acc.u.Email, []byte(acc.secret))
	}

	f := &fixture{reg: reg, creds: creds, sessions: &fakeSessions{}}
	f.engine = New(reg, creds, f.sessions, append([]Option{WithDelay(0)}, opts...)...)
	f.engine.Initialize(context.Background())
	return f
}

func (f *fixture) login(t *testing.T, email, secret string) {
	t.Helper()
	_, err := f.engine.Login(context.Background(), email, secret)
	require.NoError(t, err)
}
