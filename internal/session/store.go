// Package session persists the single active session (user snapshot plus
// token) in the local database so it survives a restart.
//
// Two keys make up a session: <namespace>.session.user holds the JSON user
// record and <namespace>.session.token the token. They are written in one
// transaction and removed in one statement; if only one of them is found,
// or either fails to decode or verify, the session is treated as corrupt
// and both keys are removed.
package session

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/dbx"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/repositories/metadata"
)

// ErrCorrupt reports persisted session data that could not be trusted.
// The data has already been cleared when it is returned.
var ErrCorrupt = errors.New("session data corrupt")

// Store persists and restores the active session.
type Store interface {
	// Persist replaces the stored session with u and a freshly minted token.
	Persist(ctx context.Context, u models.User) (models.Session, error)
	// Restore returns (nil, nil) when nothing is stored and an error wrapping
	// ErrCorrupt when stored data was unusable.
	Restore(ctx context.Context) (*models.Session, error)
	// Clear removes the stored session. Clearing nothing is not an error.
	Clear(ctx context.Context) error
}

// SQLiteStore is a Store over the metadata table.
type SQLiteStore struct {
	db       *sql.DB
	tokens   *Tokens
	prefix   string
	userKey  string
	tokenKey string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore keeps the session under namespace in db.
func NewSQLiteStore(db *sql.DB, namespace string, tokens *Tokens) *SQLiteStore {
	prefix := namespace + ".session."
	return &SQLiteStore{
		db:       db,
		tokens:   tokens,
		prefix:   prefix,
		userKey:  prefix + "user",
		tokenKey: prefix + "token",
	}
}

// Keys returns the user and token key names.
func (s *SQLiteStore) Keys() (userKey, tokenKey string) {
	return s.userKey, s.tokenKey
}

func (s *SQLiteStore) Persist(ctx context.Context, u models.User) (models.Session, error) {
	u.CreatedAt = u.CreatedAt.UTC()
	rawUser, err := json.Marshal(u)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode session user: %w", err)
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return models.Session{}, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, s.userKey, rawUser); err != nil {
			return err
		}
		return repo.Set(ctx, s.tokenKey, []byte(token))
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}

	return models.Session{User: u, Token: token}, nil
}

func (s *SQLiteStore) Restore(ctx context.Context) (*models.Session, error) {
	pairs, err := metadata.NewSQLiteRepository(s.db).List(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	rawUser, hasUser := pairs[s.userKey]
	rawToken, hasToken := pairs[s.tokenKey]
	if !hasUser && !hasToken {
		return nil, nil
	}

	sess, reason := s.decode(rawUser, rawToken)
	if reason == nil {
		return sess, nil
	}

	corrupt := fmt.Errorf("%w: %v", ErrCorrupt, reason)
	if err := s.Clear(ctx); err != nil {
		return nil, errors.Join(corrupt, err)
	}
	return nil, corrupt
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, s.userKey, s.tokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) decode(rawUser, rawToken []byte) (*models.Session, error) {
	if len(rawUser) == 0 {
		return nil, errors.New("user record missing")
	}
	if len(rawToken) == 0 {
		return nil, errors.New("token missing")
	}

	dec := json.NewDecoder(bytes.NewReader(rawUser))
	dec.DisallowUnknownFields()
	var u models.User
	if err := dec.Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	if u.ID == "" || u.Email == "" || !u.Role.IsValid() {
		return nil, errors.New("user record incomplete")
	}

	token := string(rawToken)
	if err := s.tokens.Check(token, u); err != nil {
		return nil, err
	}
	return &models.Session{User: u, Token: token}, nil
}
