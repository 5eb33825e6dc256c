// Package credentials keeps the secrets bound to user emails. It only ever
// answers "does this secret match"; identity data lives in the registry.
package credentials

import (
	"sync"

	"github.com/dmitrijs2005/fortress/internal/cryptox"
)

// Store verifies and records secrets per email.
type Store interface {
	// Verify reports whether secret is the one recorded for email. Unknown
	// emails simply do not verify.
	Verify(email string, secret []byte) bool
	// Set records secret for email, replacing any previous one.
	Set(email string, secret []byte)
	// Delete forgets the secret for email. Missing emails are ignored.
	Delete(email string)
}

// MemoryStore is an in-process Store. Secrets are kept as salted Argon2id
// hashes, never in plaintext.
type MemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]string

	dummyOnce sync.Once
	dummy     string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hashes: make(map[string]string)}
}

func (s *MemoryStore) Verify(email string, secret []byte) bool {
	s.mu.RLock()
	encoded, ok := s.hashes[email]
	s.mu.RUnlock()

	if !ok {
		// Spend the same work as a real check so response time does not
		// reveal which emails are registered.
		_, _ = cryptox.VerifySecret(secret, s.dummyHash())
		return false
	}

	match, err := cryptox.VerifySecret(secret, encoded)
	return err == nil && match
}

func (s *MemoryStore) Set(email string, secret []byte) {
	encoded := cryptox.HashSecret(secret)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[email] = encoded
}

func (s *MemoryStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, email)
}

func (s *MemoryStore) dummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummy = cryptox.HashSecret([]byte("fortress-unknown-account"))
	})
	return s.dummy
}
