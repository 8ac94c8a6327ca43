// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// errNoPassword is returned when neither --password nor stdin supplied one.
var errNoPassword = errors.New("a password is required: pass --password or pipe it on stdin")

// # Login

func newLoginCommand(options *rootOptions) *cobra.Command {
	var credentials auth.Credentials

	command := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the garden API",
		Long: `Sign in with a username and password.

The token and profile are persisted, so later commands (and the web shell,
when it shares the session backend) reuse the sign-in.

Examples:
  hortus login --username ivanova --password s3cret
  echo s3cret | hortus login --username ivanova`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, credentials.Password)
			if err != nil {
				return err
			}
			credentials.Password = password

			if err := auth.ValidateCredentials(credentials); err != nil {
				return err
			}

			wired, err := session(cmd, options)
			if err != nil {
				return err
			}
			defer wired.Close()

			if err := wired.Manager.Login(cmd.Context(), credentials); err != nil {
				return err
			}

			printSignedIn(cmd, wired.Manager.Session())
			return nil
		},
	}

	command.Flags().StringVar(&credentials.Username, "username", "", "Account username")
	command.Flags().StringVar(&credentials.Password, "password", "", "Account password (read from stdin when omitted)")
	_ = command.MarkFlagRequired("username")

	return command
}

// # Register

func newRegisterCommand(options *rootOptions) *cobra.Command {
	var (
		input auth.RegisterInput
		role  string
	)

	command := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: fmt.Sprintf(`Create an account on the garden API and sign in with it.

Roles: %s. The API decides which roles a self-registration may request.`, strings.Join(sec.RoleNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, input.Password)
			if err != nil {
				return err
			}
			input.Password = password
			input.Role = sec.Role(role)

			if err := auth.ValidateRegistration(&input); err != nil {
				return err
			}

			wired, err := session(cmd, options)
			if err != nil {
				return err
			}
			defer wired.Close()

			if err := wired.Manager.Register(cmd.Context(), input); err != nil {
				return err
			}

			printSignedIn(cmd, wired.Manager.Session())
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&input.Username, "username", "", "Account username")
	flags.StringVar(&input.Password, "password", "", "Account password (read from stdin when omitted)")
	flags.StringVar(&input.Email, "email", "", "Contact e-mail")
	flags.StringVar(&input.FirstName, "first-name", "", "Given name")
	flags.StringVar(&input.LastName, "last-name", "", "Family name")
	flags.StringVar(&role, "role", "", "Requested role")
	_ = command.MarkFlagRequired("username")
	_ = command.MarkFlagRequired("email")

	return command
}

// # Logout

func newLogoutCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := session(cmd, options)
			if err != nil {
				return err
			}
			defer wired.Close()

			username := wired.Manager.Session().Username()
			outcome := wired.Manager.Logout(cmd.Context())
			if outcome.Kind == auth.KindLogoutRemote {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: the API did not confirm the sign-out; the local session was cleared anyway.")
			}

			if username == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s.\n", username)
			return nil
		},
	}
}

// # Status

func newStatusCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := session(cmd, options)
			if err != nil {
				return err
			}
			defer wired.Close()

			current := wired.Manager.Session()
			out := cmd.OutOrStdout()

			if !current.IsAuthenticated {
				fmt.Fprintf(out, "Not signed in. Run `%s login`.\n", constants.AppName)
				if current.Error != "" {
					fmt.Fprintf(out, "Last error: %s\n", current.Error)
				}
				return nil
			}

			fmt.Fprintf(out, "Signed in as %s (%s)\n", current.User.DisplayName(), current.Username())
			fmt.Fprintf(out, "Role:   %s\n", current.Role())
			fmt.Fprintf(out, "API:    %s\n", wired.Client.BaseURL())

			inspector := sec.NewTokenInspector()
			if remaining, ok := inspector.ExpiresIn(current.Token); ok {
				fmt.Fprintf(out, "Token:  expires in %s\n", remaining.Round(time.Second))
			} else {
				fmt.Fprintln(out, "Token:  no expiry")
			}
			return nil
		},
	}
}

// # Helpers

// readPassword returns flagValue, or the first line of stdin when the flag is empty.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return "", errNoPassword
	}
	password := strings.TrimRight(scanner.Text(), "\r")
	if password == "" {
		return "", errNoPassword
	}
	return password, nil
}

// printSignedIn confirms a successful login or registration.
func printSignedIn(cmd *cobra.Command, current auth.Session) {
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", current.Username(), current.Role())
}
