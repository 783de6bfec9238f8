package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mindarch/mindarch/internal/config"
	"github.com/mindarch/mindarch/internal/session"
	"github.com/mindarch/mindarch/internal/store"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account on the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, (*store.Remote).SignUp)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, (*store.Remote).LogIn)
	},
}

type authFunc func(*store.Remote, context.Context, string, string) (*store.Session, error)

func runAuth(cmd *cobra.Command, authenticate authFunc) error {
	serverURL := config.ServerURL()
	if serverURL == "" {
		return fmt.Errorf("set %s to the server address first", config.EnvServerURL)
	}

	username, password, err := promptCredentials()
	if err != nil {
		return err
	}

	remote := store.NewRemote(serverURL, "")
	sess, err := authenticate(remote, cmd.Context(), username, password)
	if err != nil {
		return err
	}

	err = sessionStorage().Save(&session.Session{
		Token:     sess.Token,
		Username:  sess.Username,
		ServerURL: serverURL,
	})
	if err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}

	fmt.Printf("Logged in as %s.\n", sess.Username)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		storage := sessionStorage()
		sess, err := storage.Load()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("Not logged in.")
				return nil
			}
			return err
		}

		remote := store.NewRemote(sess.ServerURL, sess.Token)
		if err := remote.LogOut(cmd.Context()); err != nil {
			// The cached session goes away regardless; the server side is
			// best effort.
			fmt.Fprintf(os.Stderr, "Warning: server logout failed: %v\n", err)
		}
		if err := storage.Delete(); err != nil {
			return fmt.Errorf("failed to remove cached session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := sessionStorage().Load()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("Not logged in (plans are stored locally).")
				return nil
			}
			return err
		}

		remote := store.NewRemote(sess.ServerURL, sess.Token)
		username, err := remote.CheckSession(cmd.Context())
		if err != nil {
			if errors.Is(err, store.ErrUnauthorized) {
				return fmt.Errorf("session for %s has expired; run: mindarch login", sess.Username)
			}
			return err
		}
		fmt.Printf("%s @ %s\n", username, sess.ServerURL)
		return nil
	},
}

func promptCredentials() (string, string, error) {
	fmt.Print("Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return username, string(passwordBytes), nil
}
