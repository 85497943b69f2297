// ABOUTME: Root Cobra command for betta CLI.
// ABOUTME: Wires config, logger, storage, identity and the tracker via PersistentPre/PostRunE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/charm"
	"github.com/harperreed/betta/internal/config"
	"github.com/harperreed/betta/internal/guest"
	"github.com/harperreed/betta/internal/identity"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/tracker"
	"github.com/harperreed/betta/internal/validation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// skipSetup marks commands that run without opening any store.
const skipSetup = "skip-setup"

var (
	appConfig    *config.Config
	logger       zerolog.Logger
	guestStore   *guest.Store
	accountStore storage.AccountStore
	sessions     *identity.SessionProvider
	charmClient  *charm.Client
	tr           *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "betta",
	Short: "Betta fish care tracker",
	Long: `Betta is a CLI tool for keeping a betta fish healthy.

WHAT IT TRACKS:

  Tank           size, heater, filter
  Fish           appetite, activity, fins, color, gills, body, behavior
  Water          temperature (°F), pH, ammonia, nitrite, nitrate
  Care           feedings, water changes, reminders, feeding schedule

QUICK START:

  $ betta tank set --size 5 --heater --filter    # Describe your tank
  $ betta water add --temp 79 --ph 7.2           # Log a water test
  $ betta fish set --appetite "Eating less"      # Record an observation
  $ betta status                                 # Health score and alerts
  $ betta reminders                              # What care is due

GUEST AND ACCOUNT MODE:

  Without signing in, everything is stored on this device only.
  Sign in to keep records in the account backend (sqlite, postgres or charm):

  $ betta auth signup you@example.com
  $ betta migrate                                # Copy guest records to the account

MCP INTEGRATION:

  Run 'betta mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

  {
    "mcpServers": {
      "betta": { "command": "betta", "args": ["mcp"] }
    }
  }

HTTP API:

  Run 'betta serve' to expose the same operations as JSON over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Annotations[skipSetup] == "true" {
			return nil
		}
		closeStores()

		var err error
		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = config.NewLogger(appConfig.GetLogLevel(), os.Stderr)

		guestStore, err = appConfig.OpenGuestStorage()
		if err != nil {
			return fmt.Errorf("failed to open guest storage: %w", err)
		}

		var provider identity.Provider = identity.Guest{}
		if !appConfig.GuestMode {
			accountStore, err = appConfig.OpenAccountStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open %s storage: %w", appConfig.GetBackend(), err)
			}
			if client, ok := accountStore.(*charm.Client); ok {
				charmClient = client
				provider = client
			} else {
				sessions = identity.NewSessionProvider(filepath.Join(config.GetConfigDir(), identity.SessionFile), accountStore)
				provider = sessions
			}
		}

		return loadTracker(cmd.Context(), provider)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStores()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{skipSetup: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "betta", version)
	},
}

// loadTracker picks the repository for the current identity and loads the snapshot.
func loadTracker(ctx context.Context, provider identity.Provider) error {
	if ctx == nil {
		ctx = context.Background()
	}
	owner, signedIn, err := identity.OwnerID(ctx, provider)
	if err != nil {
		logger.Warn().Err(err).Msg("identity lookup failed, continuing as guest")
		owner, signedIn = models.GuestOwnerID, false
	}

	var repo storage.Repository = guestStore
	if signedIn {
		repo = accountStore
	}
	tr = tracker.New(repo, guestStore, owner).WithLogger(logger)
	if err := tr.Load(ctx); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return nil
}

func closeStores() error {
	var errs []error
	if accountStore != nil {
		if c, ok := accountStore.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
		accountStore = nil
	}
	if guestStore != nil {
		errs = append(errs, guestStore.Close())
		guestStore = nil
	}
	sessions = nil
	charmClient = nil
	tr = nil
	return errors.Join(errs...)
}

// commandContext returns the command context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reportError prints per-field validation messages and adds a retry hint to
// failed repository operations. Other errors pass through unchanged.
func reportError(cmd *cobra.Command, err error) error {
	var result validation.Result
	if errors.As(err, &result) {
		out := cmd.ErrOrStderr()
		red := color.New(color.FgRed)
		for _, field := range slices.Sorted(maps.Keys(result.Errors)) {
			red.Fprintf(out, "✗ %s: %s\n", field, result.Errors[field])
		}
		return errors.New("validation failed")
	}
	var opErr *storage.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w\n\nNothing was saved. Try again in a moment.", err)
	}
	return err
}
