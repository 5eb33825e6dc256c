package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// claims binds a token to the user snapshot it was minted with. A token
// whose claims disagree with the stored user record is rejected.
type claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Tokens mints and checks session tokens: HS256 JWTs with a random id, the
// issue time and, when ttl is positive, an expiry.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a token minter. The secret must not be empty.
func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) == 0 {
		return nil, errors.New("session token secret is empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("negative session ttl %s", ttl)
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue mints a fresh token for u. Two calls never return the same token.
func (t *Tokens) Issue(u models.User) (string, error) {
	now := t.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  u.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email: u.Email,
		Role:  u.Role,
	}
	if t.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Check verifies the signature and expiry of token and that it was issued
// for exactly u.
func (t *Tokens) Check(token string, u models.User) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithIssuedAt(),
	}
	if t.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("session token: %w", err)
	}
	if !parsed.Valid {
		return errors.New("session token: invalid")
	}

	if c.Subject != u.ID || c.Email != u.Email || c.Role != u.Role {
		return errors.New("session token does not match stored user")
	}
	return nil
}
