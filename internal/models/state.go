package models

// AuthState answers "is anyone logged in, and as whom". CurrentUser is nil
// exactly when IsAuthenticated is false.
type AuthState struct {
	CurrentUser     *User
	IsAuthenticated bool
}

// Anonymous is the logged-out state.
func Anonymous() AuthState {
	return AuthState{}
}

// Authenticated returns the logged-in state for a copy of u.
func Authenticated(u User) AuthState {
	return AuthState{CurrentUser: &u, IsAuthenticated: true}
}

// Role returns the current user's role, or the empty role when anonymous.
func (s AuthState) Role() Role {
	if !s.IsAuthenticated || s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.Role
}

// Clone returns a copy that shares no memory with s, so observers cannot
// mutate the engine's state through it.
func (s AuthState) Clone() AuthState {
	if s.CurrentUser == nil {
		return AuthState{IsAuthenticated: s.IsAuthenticated}
	}
	u := *s.CurrentUser
	return AuthState{CurrentUser: &u, IsAuthenticated: s.IsAuthenticated}
}
