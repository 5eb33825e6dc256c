// Package seed loads demo accounts into the registry and the credential
// store. Without a seed file the embedded default.yaml is used.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/registry"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// Account is one seeded user together with its plaintext demo password.
type Account struct {
	ID        string `yaml:"id"`
	Email     string `yaml:"email"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	CreatedAt string `yaml:"created_at"`
	Password  string `yaml:"password"`
}

type document struct {
	Users []Account `yaml:"users"`
}

// Parse decodes a seed document.
func Parse(r io.Reader) ([]Account, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return doc.Users, nil
}

// Load reads accounts from path, or the embedded defaults when path is empty.
func Load(path string) ([]Account, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// User converts the account into a registry record.
func (a Account) User() (models.User, error) {
	role, err := models.ParseRole(a.Role)
	if err != nil {
		return models.User{}, fmt.Errorf("seed %s: %w", a.Email, err)
	}
	created, err := time.Parse(time.DateOnly, a.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("seed %s: created_at: %w", a.Email, err)
	}
	return models.User{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      role,
		CreatedAt: created,
	}, nil
}

// Apply adds every account to reg and records its password in creds. It
// stops at the first invalid or duplicate account; accounts applied before
// it stay in place.
func Apply(ctx context.Context, reg registry.Registry, creds credentials.Store, accounts []Account, log logging.Logger) error {
	for _, a := range accounts {
		u, err := a.User()
		if err != nil {
			return err
		}
		if a.Password == "" {
			return fmt.Errorf("seed %s: password is required", a.Email)
		}
		if err := reg.Add(u); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		creds.Set(u.Email, []byte(a.Password))
		log.Debug(ctx, "seeded account", "email", u.Email, "role", u.Role)
	}
	log.Info(ctx, "seed applied", "accounts", len(accounts))
	return nil
}
