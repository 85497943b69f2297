// ABOUTME: CLI commands for exporting and importing betta data.
// ABOUTME: Supports JSON, YAML, CSV and Markdown export with optional upload.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/backup"
	"github.com/harperreed/betta/internal/config"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportLimit  int
	exportUpload bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export betta data",
	Long: `Export betta data in various formats.

FORMATS:

  json       Snapshot plus history (suitable for backup/restore)
  yaml       YAML export (human-readable)
  csv        Water readings only, for spreadsheets
  markdown   Markdown report (for sharing with a vet or forum)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --limit, -n    Max records per history (0 for everything)
  --upload       Also upload to the configured backup store

BACKUP STORE:

  Configure in config.json or the environment:

    BETTA_BACKUP_DRIVER=s3  BETTA_BACKUP_BUCKET=my-bucket  BETTA_BACKUP_REGION=us-east-1
    BETTA_BACKUP_DRIVER=fs  BETTA_BACKUP_DIR=~/betta-backups

EXAMPLES:

  betta export json                     # Export as JSON
  betta export json -o backup.json      # Save to file
  betta export csv -o water.csv         # Water readings for a spreadsheet
  betta export markdown --upload        # Upload a report to the backup store`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "csv", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := commandContext(cmd)

		export, err := tr.Export(ctx, exportLimit)
		if err != nil {
			return reportError(cmd, err)
		}

		var data []byte
		ext := format
		switch format {
		case "json":
			data, err = storage.ExportJSON(export)
		case "yaml":
			data, err = storage.ExportYAML(export)
		case "csv":
			data, err = storage.ExportCSV(export.WaterReadings)
		case "markdown", "md":
			data, ext = []byte(storage.ExportMarkdown(export)), "md"
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, csv, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen)
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			green.Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else if !exportUpload {
			fmt.Fprintln(out, string(data))
		}

		if exportUpload {
			store, err := backup.Open(ctx, backupOptions())
			if err != nil {
				return fmt.Errorf("failed to open backup store: %w", err)
			}
			key := backup.Key(tr.OwnerID(), ext, time.Now())
			location, err := store.Put(ctx, key, data, backup.ContentType(format))
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}
			green.Fprintf(out, "✓ Uploaded to %s\n", location)
		}

		return nil
	},
}

func backupOptions() backup.Options {
	b := appConfig.Backup
	return backup.Options{
		Driver:    b.Driver,
		Bucket:    b.Bucket,
		Region:    b.Region,
		Endpoint:  b.Endpoint,
		PathStyle: b.PathStyle,
		Dir:       config.ExpandPath(b.Dir),
	}
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import betta data from JSON",
	Long: `Import betta data from a JSON export.

Records are added to whoever is using betta now (the signed-in account or
this device in guest mode). Reminders and the feeding schedule in the file
replace the ones on this device.

EXAMPLES:

  betta import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := storage.ParseExport(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		ctx := commandContext(cmd)
		summary, err := storage.ImportData(ctx, tr.Repository(), data, tr.OwnerID())
		if err != nil {
			return reportError(cmd, &storage.OpError{Op: "import", Err: err})
		}
		if len(data.Reminders) > 0 {
			if err := guestStore.SaveReminders(data.Reminders); err != nil {
				return fmt.Errorf("failed to restore reminders: %w", err)
			}
		}
		if len(data.FeedingSchedule) > 0 {
			if err := guestStore.SaveFeedingSchedule(data.FeedingSchedule); err != nil {
				return fmt.Errorf("failed to restore feeding schedule: %w", err)
			}
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d records from %s\n", summary.Total(), filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", models.ExportHistoryLimit, "max records per history (0 for all)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "upload to the configured backup store")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
