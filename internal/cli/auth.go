package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fortress/internal/auth"
	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/credentials"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register asks for a name, an email and a password typed twice. The password
// must satisfy credentials.CheckPolicy before the engine is called.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if name == "" || email == "" {
		fmt.Fprintln(a.out, "Name and email are required")
		return errInput
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return errInput
	}
	if req := credentials.CheckPolicy(string(password)); !req.Valid() {
		fmt.Fprintln(a.out, "Password must have "+strings.Join(unmet(req), ", "))
		return errInput
	}

	fmt.Fprintln(a.out, "Creating account...")
	u, err := a.engine.Register(ctx, email, string(password), name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrIdentityExists):
			fmt.Fprintln(a.out, "User already exists")
		default:
			fmt.Fprintln(a.out, "Registration failed:", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login asks for credentials and signs in. Unknown emails and wrong
// passwords get the same message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Signing in...")
	u, err := a.engine.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Invalid email or password")
		default:
			fmt.Fprintln(a.out, "Login failed:", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.engine.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Signed out, but the stored session could not be removed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

var errInput = errors.New("invalid input")

func unmet(r credentials.Requirements) []string {
	var out []string
	if !r.MinLength {
		out = append(out, fmt.Sprintf("at least %d characters", credentials.MinSecretLength))
	}
	if !r.HasUpper {
		out = append(out, "an uppercase letter")
	}
	if !r.HasLower {
		out = append(out, "a lowercase letter")
	}
	if !r.HasNumber {
		out = append(out, "a number")
	}
	return out
}
