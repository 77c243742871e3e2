package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a display name, email, and password and attempts to
// create a new account. A successful registration signs the user in
// immediately.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignUp(ctx, name, email, password); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Welcome,", a.session.User().Name)
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// cart store picks up the backend cart through the session subscription.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, email, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Welcome back,", a.session.User().Name)
	return nil
}

// Logout drops the persisted session. The backend is not contacted; bearer
// tokens simply stop being sent.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Signed out")
	return nil
}

// WhoAmI prints the current account, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not signed in")
		return nil
	}
	role := ""
	if u.IsAdmin() {
		role = " [admin]"
	}
	printlnFn(u.Name, "<"+u.Email+">"+role)
	return nil
}
