package auth

import (
	"errors"

	"github.com/dmitrijs2005/fortress/internal/session"
)

// Errors returned by Engine operations. Storage errors never cross this
// boundary as is; they are logged and reported as ErrStorage.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityExists     = errors.New("email already registered")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidRole        = errors.New("invalid role")
	ErrStorage            = errors.New("session storage unavailable")

	// ErrSessionCorrupt is only ever logged: a corrupt session restores as
	// Anonymous.
	ErrSessionCorrupt = session.ErrCorrupt
)
