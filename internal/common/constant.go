// Package common contains shared constants and small helpers used across
// Fortress components.
package common

// DefaultSessionNamespace prefixes every persisted session key. The suffix is
// the persisted layout version; bump it when the layout changes so that old
// sessions are treated as absent.
const DefaultSessionNamespace = "fortress.v1"

// AppName is used for log attributes and the CLI prompt.
const AppName = "fortress"
