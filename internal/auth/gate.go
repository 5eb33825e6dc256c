package auth

import "github.com/dmitrijs2005/fortress/internal/models"

// Can reports whether st grants perm. Anonymous states grant nothing.
func Can(st models.AuthState, perm Permission) bool {
	if !st.IsAuthenticated || st.CurrentUser == nil {
		return false
	}
	return HasPermission(st.CurrentUser.Role, perm)
}

// CanViewAdminPanel reports whether st may open the admin panel.
func CanViewAdminPanel(st models.AuthState) bool { return Can(st, PermAdminPanel) }

// CanManageUsers reports whether st may list users and change their roles.
func CanManageUsers(st models.AuthState) bool { return Can(st, PermUserManage) }

// CanUpdateProfile reports whether st may edit its own profile.
func CanUpdateProfile(st models.AuthState) bool { return Can(st, PermProfileUpdate) }

// CanChangePassword reports whether st may change its own password.
func CanChangePassword(st models.AuthState) bool { return Can(st, PermPasswordChange) }

// StateReader is the read side of an Engine.
type StateReader interface {
	State() models.AuthState
}

// Gate evaluates the predicates above against the current state of r, so a
// single engine transition updates every decision at once.
type Gate struct {
	r StateReader
}

// NewGate returns a Gate reading from r.
func NewGate(r StateReader) *Gate {
	return &Gate{r: r}
}

// Can reports whether the current state grants perm.
func (g *Gate) Can(perm Permission) bool { return Can(g.r.State(), perm) }

// CanViewAdminPanel is CanViewAdminPanel over the current state.
func (g *Gate) CanViewAdminPanel() bool { return CanViewAdminPanel(g.r.State()) }

// CanManageUsers is CanManageUsers over the current state.
func (g *Gate) CanManageUsers() bool { return CanManageUsers(g.r.State()) }

// CanUpdateProfile is CanUpdateProfile over the current state.
func (g *Gate) CanUpdateProfile() bool { return CanUpdateProfile(g.r.State()) }

// CanChangePassword is CanChangePassword over the current state.
func (g *Gate) CanChangePassword() bool { return CanChangePassword(g.r.State()) }
