// ABOUTME: CLI commands for signing in and out of an account.
// ABOUTME: The session is a file next to config.json; there are no passwords.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/identity"
	"github.com/spf13/cobra"
)

var authName string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to an account",
	Long: `Sign in so records go to the account backend instead of this device.

With the charm backend, your identity is your Charm account: use
'betta sync link' instead.

EXAMPLES:

  betta auth signup you@example.com --name "Sam"
  betta auth login you@example.com
  betta auth whoami
  betta auth logout`,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := requireSessions()
		if err != nil {
			return err
		}
		profile, err := p.SignUp(commandContext(cmd), args[0], authName)
		if err != nil {
			if errors.Is(err, identity.ErrEmailTaken) {
				return fmt.Errorf("%s already has an account: use 'betta auth login'", args[0])
			}
			return reportError(cmd, err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Signed up as %s\n", profile.Email)
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:     "login <email>",
	Aliases: []string{"signin"},
	Short:   "Sign in",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := requireSessions()
		if err != nil {
			return err
		}
		profile, err := p.SignIn(commandContext(cmd), args[0])
		if err != nil {
			if errors.Is(err, identity.ErrUnknownAccount) {
				return fmt.Errorf("no account for %s: use 'betta auth signup'", args[0])
			}
			return err
		}
		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Signed in as %s\n", profile.Email)
		faint.Fprintln(out, "Guest data on this device was not copied. Run 'betta migrate' to copy it.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Sign out",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := requireSessions()
		if err != nil {
			return err
		}
		if err := p.SignOut(); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Signed out. Now in guest mode.")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is signed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if tr.IsGuest() {
			fmt.Fprintln(out, "Guest (data is stored on this device only)")
			return nil
		}
		if sessions != nil {
			if profile, err := sessions.Current(commandContext(cmd)); err == nil {
				name := profile.Email
				if profile.DisplayName != nil && *profile.DisplayName != "" {
					name = fmt.Sprintf("%s <%s>", *profile.DisplayName, profile.Email)
				}
				fmt.Fprintln(out, name)
				faint.Fprintf(out, "backend: %s\n", appConfig.GetBackend())
				return nil
			}
		}
		fmt.Fprintln(out, tr.OwnerID())
		faint.Fprintf(out, "backend: %s\n", appConfig.GetBackend())
		return nil
	},
}

func requireSessions() (*identity.SessionProvider, error) {
	switch {
	case appConfig.GuestMode:
		return nil, errors.New("guest mode is on: run 'betta mode account' first")
	case charmClient != nil:
		return nil, errors.New("the charm backend signs in with your Charm account: run 'betta sync link'")
	case sessions == nil:
		return nil, errors.New("account storage is not available")
	}
	return sessions, nil
}

func init() {
	authSignupCmd.Flags().StringVar(&authName, "name", "", "display name")

	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}
