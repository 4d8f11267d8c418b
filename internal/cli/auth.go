package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCommand(a *app, opts *options) *cobra.Command {
	var phone, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("PAWNBOOK_PASSWORD")
			}
			if phone == "" || password == "" {
				return fmt.Errorf("both --phone and --password (or PAWNBOOK_PASSWORD) are required")
			}
			return a.run(opts, "Signing in", func(ctx context.Context) ([]string, error) {
				sess, err := a.sessions.SignIn(ctx, phone, password)
				if err != nil {
					return nil, err
				}
				return []string{
					fmt.Sprintf("signed in as %s (user %d, role %s)", sess.PhoneNumber, sess.UserID, sess.Role),
				}, nil
			})
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number to sign in with")
	cmd.Flags().StringVar(&password, "password", "", "password (falls back to PAWNBOOK_PASSWORD)")
	return cmd
}

func newLogoutCommand(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Signing out", func(ctx context.Context) ([]string, error) {
				_, _ = a.sessions.Bootstrap(ctx) // best effort, to name who is leaving
				who := a.sessions.Current()
				if err := a.sessions.Logout(ctx); err != nil {
					return nil, err
				}
				if who.Empty() {
					return []string{"signed out"}, nil
				}
				return []string{"signed out " + who.PhoneNumber}, nil
			})
		},
	}
}

func newWhoamiCommand(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session without touching the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Reading session", func(ctx context.Context) ([]string, error) {
				sess, err := a.sessions.Bootstrap(ctx)
				if err != nil {
					return nil, err
				}
				return []string{
					fmt.Sprintf("phone: %s", sess.PhoneNumber),
					fmt.Sprintf("user:  %d", sess.UserID),
					fmt.Sprintf("role:  %s", sess.Role),
				}, nil
			})
		},
	}
}
