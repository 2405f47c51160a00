package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/services"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

// Register prompts the user for a username, email and password and attempts
// to create a new account. It does not sign the user in; run login afterwards.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, userName, email, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and signs in. On success the token
// is persisted and the prompt switches to the resolved mode. A server that
// cannot be reached is reported distinctly from rejected credentials.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	profile, err := a.session.SignIn(ctx, userName, password)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Logged in as %s (%s mode)\n", profile.Username, services.ResolveMode(profile))
	return nil
}

// Logout clears the persisted token and the cached profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// WhoAmI prints the cached profile without touching the network.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.Profile == nil {
		fmt.Println("Not logged in")
		return nil
	}

	p := snap.Profile
	fmt.Printf("Username: %s\n", p.Username)
	fmt.Printf("Email: %s\n", p.Email)
	if p.FirstName != "" || p.LastName != "" {
		fmt.Printf("Name: %s %s\n", p.FirstName, p.LastName)
	}
	fmt.Printf("Roles: %v\n", p.Roles)
	if p.ActiveRole != nil {
		fmt.Printf("Active role: %s\n", *p.ActiveRole)
	}
	fmt.Printf("Mode: %s\n", services.ResolveMode(p))
	return nil
}
