package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/forms"
)

func newSignupCmd(a *app) *cobra.Command {
	var f forms.SignupForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (does not sign you in)",
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.Password, "password", "", "Password (prompted when omitted)")

	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if f.Password == "" {
			pw, err := promptPassword(out, "Password")
			if err != nil {
				return err
			}
			confirm, err := promptPassword(out, "Confirm password")
			if err != nil {
				return err
			}
			f.Password, f.ConfirmPassword = pw, confirm
		} else {
			f.ConfirmPassword = f.Password
		}

		if err := a.forms.Validate(&f); err != nil {
			return err
		}
		if err := a.sessions.Signup(cmd.Context(), f.Name, f.Email, f.Password); err != nil {
			return userError(err)
		}

		fmt.Fprintln(out, "Account created! Sign in with: gotrek login --email", f.Email)
		return nil
	})
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var f forms.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to this profile",
	}
	cmd.Flags().StringVar(&f.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.Password, "password", "", "Password (prompted when omitted)")

	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if f.Password == "" {
			pw, err := promptPassword(out, "Password")
			if err != nil {
				return err
			}
			f.Password = pw
		}

		if err := a.forms.Validate(&f); err != nil {
			return err
		}
		session, err := a.sessions.Login(cmd.Context(), f.Email, f.Password)
		if err != nil {
			return userError(err)
		}

		fmt.Fprintf(out, "Login successful! Welcome, %s!\n", session.Name)
		return nil
	})
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of this profile",
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		return a.sessions.Logout(cmd.Context())
	})
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		snap := a.sessions.Snapshot()
		if snap.User == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "not signed in\n→ %s\n", domain.RouteLogin)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", snap.User.Name, snap.User.Email)
		return nil
	})
	return cmd
}

// userError rewrites domain errors into the messages the web forms show.
func userError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return errors.New("User with this email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errors.New("Invalid email or password")
	case errors.Is(err, domain.ErrMalformedStoreData):
		return fmt.Errorf("the profile store is corrupted (set STORE_CORRUPT_POLICY=reset to discard it): %w", err)
	default:
		return err
	}
}
