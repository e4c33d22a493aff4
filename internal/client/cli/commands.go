package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for a username and password and creates a new account.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, username, password)
	if err != nil {
		printlnFn("Registration failed:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Registered user %s (id %d). You can log in now.", user.Username, user.ID))
	return nil
}

// Login prompts for credentials and stores the access token on success.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	message, token, err := a.client.Login(ctx, username, password)
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	a.token = token
	a.userName = username
	printlnFn(message)
	return nil
}

// Jokes fetches and prints the protected joke list.
func (a *App) Jokes(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	jokes, err := a.client.Jokes(ctx, a.token)
	if err != nil {
		printlnFn("Request failed:", err)
		return err
	}

	for _, j := range jokes {
		printlnFn(fmt.Sprintf("[%s] %s", j.ID, j.Joke))
	}
	return nil
}

// Logout drops the stored token. Tokens are stateless, so nothing is sent to
// the server; the token simply expires on its own.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.token = ""
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}
