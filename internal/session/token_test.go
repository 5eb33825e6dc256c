package session

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokens_Validation(t *testing.T) {
	_, err := NewTokens(nil, time.Hour)
	require.Error(t, err)

	_, err = NewTokens([]byte("k"), -time.Second)
	require.Error(t, err)

	_, err = NewTokens([]byte("k"), 0)
	require.NoError(t, err)
}

func TestTokens_IssueIsUnique(t *testing.T) {
	tk, err := NewTokens([]byte("k"), time.Hour)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		tok, err := tk.Issue(alice)
		require.NoError(t, err)
		require.False(t, seen[tok], "duplicate token")
		seen[tok] = true
	}
}

func TestTokens_Check(t *testing.T) {
	tk, err := NewTokens([]byte("k"), time.Hour)
	require.NoError(t, err)
	tok, err := tk.Issue(alice)
	require.NoError(t, err)

	require.NoError(t, tk.Check(tok, alice))

	other := alice
	other.ID = "9"
	assert.Error(t, tk.Check(tok, other))

	other = alice
	other.Email = "mallory@fortress.com"
	assert.Error(t, tk.Check(tok, other))

	assert.Error(t, tk.Check("not.a.jwt", alice))
}

func TestTokens_NoExpiryWhenTTLZero(t *testing.T) {
	tk, err := NewTokens([]byte("k"), 0)
	require.NoError(t, err)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tk.now = func() time.Time { return base }

	tok, err := tk.Issue(alice)
	require.NoError(t, err)

	tk.now = func() time.Time { return base.AddDate(5, 0, 0) }
	require.NoError(t, tk.Check(tok, alice))
}

func TestTokens_NonExpiringTokenRejectedOnceTTLConfigured(t *testing.T) {
	forever, err := NewTokens([]byte("k"), 0)
	require.NoError(t, err)
	tok, err := forever.Issue(models.User{ID: "1", Email: "a@b.c", Role: models.RoleUser})
	require.NoError(t, err)

	bounded, err := NewTokens([]byte("k"), time.Hour)
	require.NoError(t, err)
	assert.Error(t, bounded.Check(tok, models.User{ID: "1", Email: "a@b.c", Role: models.RoleUser}))
}
