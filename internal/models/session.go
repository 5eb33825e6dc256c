package models

// Session is what the session store hands back on restore: the user snapshot
// taken at login plus the opaque token minted with it.
type Session struct {
	User  User
	Token string
}
