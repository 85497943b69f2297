// ABOUTME: CLI command for moving guest data into a signed-in account.
// ABOUTME: Guest records are only copied when the user asks for it.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateDryRun     bool
	migrateClearGuest bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy guest data into your account",
	Long: `Copy everything recorded in guest mode on this device into the
signed-in account.

IMPORTANT:

  - You must be signed in (betta auth login) or linked (betta sync link)
  - Guest records are left in place unless you pass --clear-guest
  - Running it twice copies the records twice
  - Reminders and the feeding schedule always stay on this device
  - Run with --dry-run first to see what would be copied

USAGE:

  betta migrate --dry-run   # Preview what would be copied
  betta migrate             # Perform the copy
  betta migrate --clear-guest  # Copy, then remove the guest records`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tr.IsGuest() || accountStore == nil {
			return errors.New("not signed in: run 'betta auth login' first")
		}
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			data, err := storage.BuildExport(ctx, guestStore, models.GuestOwnerID, 0)
			if err != nil {
				return fmt.Errorf("failed to read guest data: %w", err)
			}
			fmt.Fprintf(out, "\nWould copy to %s:\n", tr.OwnerID())
			fmt.Fprintf(out, "  Tanks:          %d\n", len(data.Tanks))
			fmt.Fprintf(out, "  Fish:           %d\n", len(data.FishHistory))
			fmt.Fprintf(out, "  Water readings: %d\n", len(data.WaterReadings))
			fmt.Fprintf(out, "  Feedings:       %d\n", len(data.FeedingLogs))
			fmt.Fprintf(out, "  Water changes:  %d\n", len(data.WaterChanges))
			return nil
		}

		summary, err := storage.MigrateData(ctx, guestStore, accountStore, models.GuestOwnerID, tr.OwnerID())
		if err != nil {
			return reportError(cmd, &storage.OpError{Op: "migrate guest data", Err: err})
		}
		if summary.Total() == 0 {
			fmt.Fprintln(out, "No guest data to copy.")
			return nil
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Copied %d records to your account\n", summary.Total())

		if migrateClearGuest {
			if err := guestStore.ClearRecords(); err != nil {
				return reportError(cmd, &storage.OpError{Op: "clear guest data", Err: err})
			}
			fmt.Fprintln(out, "Guest records removed from this device.")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateClearGuest, "clear-guest", false, "remove guest records after a successful copy")
	rootCmd.AddCommand(migrateCmd)
}
