// Package auth owns the authentication state of the process.
//
// Engine is the only writer of AuthState. It moves between Anonymous and
// Authenticated(user) through Initialize, Login, Register, Logout and
// UpdateRole, coordinating the credential store, the user registry and the
// session store so that an operation either commits all of its effects or
// none of them. Observers read the state through State or Subscribe, and
// derive every role decision from it through the Gate predicates.
package auth
