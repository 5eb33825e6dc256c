// Package registry is the system of record for user identity and role.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/google/uuid"
)

// ErrDuplicateIdentity is returned when an email or id is already taken.
var ErrDuplicateIdentity = errors.New("identity already registered")

// Candidate is the caller-controlled part of a new user record.
type Candidate struct {
	Email string
	Name  string
	// Role defaults to models.RoleUser when empty.
	Role models.Role
}

// Registry stores user records. Lookups return a copy and a found flag.
type Registry interface {
	FindByEmail(email string) (models.User, bool)
	FindByID(id string) (models.User, bool)
	// Insert creates a record with a fresh id and today's date.
	Insert(c Candidate) (models.User, error)
	// Add stores a complete record as is. Used for seeding.
	Add(u models.User) error
	// UpdateRole changes the role of id. It performs no authorisation.
	UpdateRole(id string, role models.Role) (models.User, bool)
	// Remove deletes id. Its id is never handed out again.
	Remove(id string) bool
	List() []models.User
}

// MemoryRegistry is an in-process Registry. Writes are visible to the next
// read immediately.
type MemoryRegistry struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	order   []string
	retired map[string]struct{}

	now   func() time.Time
	newID func() string
}

var _ Registry = (*MemoryRegistry)(nil)

// Option customises a MemoryRegistry.
type Option func(*MemoryRegistry)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *MemoryRegistry) { r.now = now }
}

// WithIDGenerator overrides how ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(r *MemoryRegistry) { r.newID = gen }
}

func NewMemoryRegistry(opts ...Option) *MemoryRegistry {
	r := &MemoryRegistry{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		retired: make(map[string]struct{}),
		now:     time.Now,
		newID:   func() string { return "usr-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MemoryRegistry) FindByEmail(email string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return models.User{}, false
	}
	return *r.byID[id], true
}

func (r *MemoryRegistry) FindByID(id string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

func (r *MemoryRegistry) Insert(c Candidate) (models.User, error) {
	role := c.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return models.User{}, fmt.Errorf("insert %s: unknown role %q", c.Email, role)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[c.Email]; ok {
		return models.User{}, ErrDuplicateIdentity
	}

	id := r.newID()
	if r.taken(id) {
		return models.User{}, fmt.Errorf("insert %s: id %s: %w", c.Email, id, ErrDuplicateIdentity)
	}

	u := models.User{
		ID:        id,
		Email:     c.Email,
		Name:      c.Name,
		Role:      role,
		CreatedAt: r.now().UTC().Truncate(24 * time.Hour),
	}
	r.store(u)
	return u, nil
}

func (r *MemoryRegistry) Add(u models.User) error {
	if u.ID == "" || u.Email == "" {
		return fmt.Errorf("add user: id and email are required")
	}
	if !u.Role.IsValid() {
		return fmt.Errorf("add %s: unknown role %q", u.Email, u.Role)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return fmt.Errorf("add %s: %w", u.Email, ErrDuplicateIdentity)
	}
	if r.taken(u.ID) {
		return fmt.Errorf("add id %s: %w", u.ID, ErrDuplicateIdentity)
	}
	r.store(u)
	return nil
}

func (r *MemoryRegistry) UpdateRole(id string, role models.Role) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return models.User{}, false
	}
	u.Role = role
	return *u, true
}

func (r *MemoryRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	r.retired[id] = struct{}{}
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns every user in insertion order.
func (r *MemoryRegistry) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// taken reports whether id is live or was used before. Callers hold mu.
func (r *MemoryRegistry) taken(id string) bool {
	if _, ok := r.byID[id]; ok {
		return true
	}
	_, ok := r.retired[id]
	return ok
}

// store must be called with mu held.
func (r *MemoryRegistry) store(u models.User) {
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
}
