package auth

import (
	"testing"

	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role models.Role
		perm Permission
		want bool
	}{
		{models.RoleGuest, PermProfileRead, true},
		{models.RoleGuest, PermProfileUpdate, false},
		{models.RoleUser, PermProfileUpdate, true},
		{models.RoleUser, PermPasswordChange, true},
		{models.RoleUser, PermAdminPanel, false},
		{models.RoleUser, PermUserManage, false},
		{models.RoleAdmin, PermAdminPanel, true},
		{models.RoleAdmin, PermUserManage, true},
		{models.Role(""), PermProfileRead, false},
		{models.Role("owner"), PermProfileRead, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPermission(tt.role, tt.perm), "%s/%s", tt.role, tt.perm)
	}
}

func TestPermissionsForRole(t *testing.T) {
	assert.Nil(t, PermissionsForRole("owner"))

	perms := PermissionsForRole(models.RoleAdmin)
	assert.Len(t, perms, 5)
	perms[0] = "tampered"
	assert.True(t, HasPermission(models.RoleAdmin, PermProfileRead))
}

func TestGatePredicates(t *testing.T) {
	as := func(r models.Role) models.AuthState {
		return models.Authenticated(models.User{ID: "x", Role: r})
	}
	tests := []struct {
		name                                string
		st                                  models.AuthState
		admin, manage, update, changeSecret bool
	}{
		{"anonymous", models.Anonymous(), false, false, false, false},
		{"guest", as(models.RoleGuest), false, false, false, false},
		{"user", as(models.RoleUser), false, false, true, true},
		{"admin", as(models.RoleAdmin), true, true, true, true},
		{"flag without user", models.AuthState{IsAuthenticated: true}, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, CanViewAdminPanel(tt.st))
			assert.Equal(t, tt.manage, CanManageUsers(tt.st))
			assert.Equal(t, tt.update, CanUpdateProfile(tt.st))
			assert.Equal(t, tt.changeSecret, CanChangePassword(tt.st))
		})
	}
}

type staticState struct{ st models.AuthState }

func (s *staticState) State() models.AuthState { return s.st }

func TestGate_FollowsState(t *testing.T) {
	src := &staticState{st: models.Anonymous()}
	g := NewGate(src)
	assert.False(t, g.CanViewAdminPanel())
	assert.False(t, g.Can(PermProfileRead))

	src.st = models.Authenticated(models.User{ID: "1", Role: models.RoleAdmin})
	assert.True(t, g.CanViewAdminPanel())
	assert.True(t, g.CanManageUsers())
	assert.True(t, g.CanUpdateProfile())
	assert.True(t, g.CanChangePassword())
}

func TestGate_OverEngine(t *testing.T) {
	f := newFixture(t)
	g := NewGate(f.engine)
	assert.False(t, g.CanViewAdminPanel())

	f.login(t, adminUser.Email, adminSecret)
	assert.True(t, g.CanViewAdminPanel())

	f.login(t, regularUser.Email, userSecret)
	assert.False(t, g.CanViewAdminPanel())
	assert.True(t, g.CanUpdateProfile())
}
