// Package models defines the identity data shared by the Fortress stores,
// the auth engine and its UI collaborators.
package models

import (
	"fmt"
	"time"
)

// Role is an authorisation tier.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ValidRoles lists every role a user record may carry.
var ValidRoles = []Role{RoleAdmin, RoleUser, RoleGuest}

// IsValid reports whether r is one of ValidRoles.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is an identity record. Secrets are never part of it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberSince renders CreatedAt as a calendar date.
func (u User) MemberSince() string {
	return u.CreatedAt.Format(time.DateOnly)
}
