package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fundry/console/internal/console/auth"
	"github.com/fundry/console/internal/console/models"
	"github.com/fundry/console/internal/console/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates, loads the profile, and
// lands on the role's default page via the routing resolver.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	role, err := a.authSvc.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "err", err)
		fmt.Println("Login failed.")
		return err
	}

	if p, err := a.client.Me(ctx); err == nil {
		a.profile = p
	}

	fmt.Printf("Signed in as %s (%s)\n", email, role)

	if p := a.pendingPath; p != "" {
		a.pendingPath = ""
		a.Goto(ctx, p)
	} else {
		a.Goto(ctx, auth.DefaultRouteFor(role))
	}
	return nil
}

// Register prompts for account details and creates the account. The user
// still signs in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	roleTag, err := getSimpleText(a.reader, "Role (BUSINESS or INVESTOR)", os.Stdout)
	if err != nil {
		return err
	}
	role := session.ParseRole(roleTag)
	if role != session.RoleBusiness && role != session.RoleInvestor {
		fmt.Println("Unknown role; expected BUSINESS or INVESTOR.")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authSvc.Register(ctx, email, password, name, role); err != nil {
		a.log.Warn(ctx, "registration failed", "err", err)
		fmt.Println("Registration failed.")
		return err
	}

	fmt.Println("Account created. Use 'login' to sign in.")
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	a.authSvc.Logout()
	a.profile = models.Profile{}
	fmt.Println("Signed out.")
	return nil
}
