// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli is the command-line shell of the Hortus front-end.

Every command wires the front-end through the composition root and restores
the persisted session before it runs, so a sign-in made with "hortus login"
(or in the web shell, with a shared backend) is reused by later commands.

Commands:

	serve                 Run the local web shell
	login / register      Sign in, or create an account and sign in
	logout                Sign out
	status                Show the current session
	plants list|show      Browse the catalogue
	families list         List botanical families
	locations list        List garden locations
	export FORMAT         Download a catalogue report (pdf, excel, word)
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/hortus/internal/app"
	"github.com/taibuivan/hortus/internal/platform/config"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	debug bool
}

// NewRootCommand builds the hortus command tree.
func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "Botanical garden collection front-end",
		Long: `hortus is the front-end of the botanical garden collection system.

It signs operators in against the garden REST API, keeps the session between
runs, and exposes the plant catalogue either as a local web shell (serve) or
as commands.

Configuration is read from the environment (HORTUS_API_URL, SESSION_BACKEND,
SESSION_DIR, REDIS_URL, ...).`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&options.debug, "debug", false, "Enable debug logging on stderr")

	root.AddCommand(
		newServeCommand(options),
		newLoginCommand(options),
		newRegisterCommand(options),
		newLogoutCommand(options),
		newStatusCommand(options),
		newPlantsCommand(options),
		newFamiliesCommand(options),
		newLocationsCommand(options),
		newExportCommand(options),
	)

	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// # Bootstrap

/*
bootstrap loads the configuration and wires the front-end.

Parameters:
  - cmd: The running command, for its context and output streams
  - options: Persistent flags
  - level: Log level unless --debug or DEBUG=true asks for more
  - navigator: Where a rejected session sends the operator

Returns:
  - *app.App: Wired, session not yet restored
*/
func bootstrap(cmd *cobra.Command, options *rootOptions, level slog.Level, navigator navigation.Navigator) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if options.debug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := app.NewLogger(cmd.ErrOrStderr(), level)

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.StartupTimeout)
	defer cancel()

	return app.New(ctx, cfg, logger, navigator)
}

// session wires the front-end for a one-shot command and restores the
// persisted session before returning.
func session(cmd *cobra.Command, options *rootOptions) (*app.App, error) {
	var wired *app.App

	// A rejected login also answers 401; only a lost session deserves the hint.
	hint := navigation.Func(func(path string, _ navigation.Options) {
		if path != constants.PathLogin || wired == nil {
			return
		}
		switch wired.Manager.Session().Status {
		case auth.StatusLoggingIn, auth.StatusRegistering:
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Session expired. Run `%s login` to sign in again.\n", constants.AppName)
	})

	wired, err := bootstrap(cmd, options, slog.LevelWarn, hint)
	if err != nil {
		return nil, err
	}

	wired.Restore(cmd.Context())
	return wired, nil
}
