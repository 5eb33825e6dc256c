package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fortress/internal/auth"
	"github.com/dmitrijs2005/fortress/internal/models"
)

// WhoAmI prints the profile card, plus the admin panel hint for admins.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.engine.State()
	if !st.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	u := st.CurrentUser
	fmt.Fprintf(a.out, "Name:         %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:        %s\n", u.Email)
	fmt.Fprintf(a.out, "Role:         %s\n", u.Role)
	fmt.Fprintf(a.out, "Member since: %s\n", u.MemberSince())

	if auth.CanViewAdminPanel(st) {
		fmt.Fprintln(a.out, "Admin panel:  'users' to manage users, 'role <id> <role>' to change a role")
	}
	return nil
}

// Users prints every registered user. Admin only.
func (a *App) Users(ctx context.Context) error {
	users, err := a.engine.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			fmt.Fprintln(a.out, "Access denied")
		}
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tMEMBER SINCE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, u.MemberSince())
	}
	return tw.Flush()
}

// Role changes the role of args[0] to args[1]. Admin only.
func (a *App) Role(ctx context.Context, args []string) error {
	role, err := models.ParseRole(args[1])
	if err != nil {
		fmt.Fprintln(a.out, "Role must be one of admin, user, guest")
		return err
	}

	u, err := a.engine.UpdateRole(ctx, args[0], role)
	switch {
	case errors.Is(err, auth.ErrForbidden):
		fmt.Fprintln(a.out, "Access denied")
		return err
	case err != nil:
		fmt.Fprintln(a.out, "Role update failed:", err)
		return err
	case u == nil:
		fmt.Fprintln(a.out, "No such user:", args[0])
		return nil
	}

	fmt.Fprintf(a.out, "%s is now %s\n", u.Email, u.Role)
	return nil
}
