package main

import (
	"fmt"
	"syscall"

	"github.com/Rrens/assistant-cli/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var signupCmd = &cobra.Command{
	Use:   "signup <email> <username>",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := a.orchestrator.Signup(cmd.Context(), args[0], args[1], password)
		if err != nil {
			return err
		}
		fmt.Printf("Signed up as %s <%s>\n", user.Username, user.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the identity locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := a.orchestrator.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored identity and local chat state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.orchestrator.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := a.auth.State().Get()
		if state.Token == "" {
			fmt.Println("Not logged in")
			return nil
		}

		fmt.Printf("%s <%s>\n", state.User.Username, state.User.Email)
		if exp, ok := auth.TokenExpiry(state.Token); ok {
			fmt.Printf("Token expires %s\n", exp.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
