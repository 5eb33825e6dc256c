package credentials

import "unicode"

// MinSecretLength is the shortest secret the registration form accepts.
const MinSecretLength = 8

// Requirements is the per-rule outcome of CheckPolicy, so a form can show
// which rules are still unmet.
type Requirements struct {
	MinLength bool
	HasUpper  bool
	HasLower  bool
	HasNumber bool
}

// Valid reports whether every rule is met.
func (r Requirements) Valid() bool {
	return r.MinLength && r.HasUpper && r.HasLower && r.HasNumber
}

// CheckPolicy evaluates secret against the registration password rules.
// Length is counted in characters, not bytes.
func CheckPolicy(secret string) Requirements {
	var r Requirements
	n := 0
	for _, c := range secret {
		n++
		switch {
		case unicode.IsUpper(c):
			r.HasUpper = true
		case unicode.IsLower(c):
			r.HasLower = true
		case unicode.IsDigit(c):
			r.HasNumber = true
		}
	}
	r.MinLength = n >= MinSecretLength
	return r
}
