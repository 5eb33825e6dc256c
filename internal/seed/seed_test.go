package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	accounts, err := Load("")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	reg := registry.NewMemoryRegistry()
	creds := credentials.NewMemoryStore()
	require.NoError(t, Apply(context.Background(), reg, creds, accounts, logging.Nop()))

	admin, ok := reg.FindByEmail("admin@fortress.com")
	require.True(t, ok)
	assert.Equal(t, models.User{
		ID:        "1",
		Email:     "admin@fortress.com",
		Name:      "System Administrator",
		Role:      models.RoleAdmin,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, admin)

	user, ok := reg.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, models.RoleUser, user.Role)

	assert.True(t, creds.Verify("admin@fortress.com", []byte("admin123")))
	assert.True(t, creds.Verify("user@fortress.com", []byte("user123")))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - id: "g1"
    email: guest@fortress.com
    name: Guest
    role: guest
    created_at: "2024-02-29"
    password: guest123
`), 0o600))

	accounts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	u, err := accounts[0].User()
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, u.Role)
	assert.Equal(t, "2024-02-29", u.MemberSince())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("users:\n  - id: 1\n    nickname: x\n"))
	require.Error(t, err, "unknown fields are rejected")

	accounts, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestApply_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		account Account
	}{
		{name: "bad role", account: Account{ID: "1", Email: "a@x.com", Role: "root", CreatedAt: "2024-01-01", Password: "p"}},
		{name: "bad date", account: Account{ID: "1", Email: "a@x.com", Role: "user", CreatedAt: "01/01/2024", Password: "p"}},
		{name: "no password", account: Account{ID: "1", Email: "a@x.com", Role: "user", CreatedAt: "2024-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.NewMemoryRegistry()
			err := Apply(context.Background(), reg, credentials.NewMemoryStore(), []Account{tt.account}, logging.Nop())
			require.Error(t, err)
			assert.Empty(t, reg.List())
		})
	}
}

func TestApply_Duplicate(t *testing.T) {
	accounts := []Account{
		{ID: "1", Email: "a@x.com", Role: "user", CreatedAt: "2024-01-01", Password: "p"},
		{ID: "2", Email: "a@x.com", Role: "user", CreatedAt: "2024-01-01", Password: "q"},
	}
	reg := registry.NewMemoryRegistry()
	creds := credentials.NewMemoryStore()

	err := Apply(context.Background(), reg, creds, accounts, logging.Nop())
	require.ErrorIs(t, err, registry.ErrDuplicateIdentity)
	assert.True(t, creds.Verify("a@x.com", []byte("p")), "first account keeps its password")
}
