package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Auth.Login(context.Background(), username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", session.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(context.Background()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newPasswdCmd(app *App) *cobra.Command {
	var current, newPass, confirm string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			err := app.Auth.ChangePassword(context.Background(), current, newPass, confirm)
			if err != nil {
				return err
			}
			fmt.Println("Password updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&newPass, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "New password again")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}

func newPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Available == nil || !app.Available(context.Background()) {
				return fmt.Errorf("backend is not reachable")
			}
			fmt.Println("Backend is up")
			return nil
		},
	}
}

// requireLogin restores the stored session before a command that needs
// authentication, so a bare "steeldesk receipts" works after one login.
func requireLogin(app *App) error {
	if app.Auth.Current() != nil {
		return nil
	}
	session, err := app.Auth.Restore(context.Background())
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("not signed in; run 'steeldesk login' first")
	}
	return nil
}
