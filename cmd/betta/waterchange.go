// ABOUTME: CLI commands for logging partial water changes.
// ABOUTME: Records the percentage changed and lists recent changes.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var (
	changeNotes string
	changeAt    string
	changeLimit int
)

var waterChangeCmd = &cobra.Command{
	Use:     "waterchange <percent>",
	Aliases: []string{"wc"},
	Short:   "Log a partial water change",
	Long: `Log a partial water change as a percentage of the tank volume.

EXAMPLES:

  betta waterchange 25
  betta waterchange 50% --notes "gravel vacuumed"
  betta waterchange list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		if err != nil {
			return fmt.Errorf("invalid percentage: %s", args[0])
		}
		at, err := atFlag(changeAt)
		if err != nil {
			return err
		}
		change := &models.WaterChange{Percentage: pct, CreatedAt: at}
		if changeNotes != "" {
			change.WithNotes(changeNotes)
		}

		if err := tr.LogWaterChange(commandContext(cmd), change); err != nil {
			return reportError(cmd, err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Logged %.0f%% water change %s\n",
			change.Percentage, faint.Sprint(shortID(change.ID)))
		return nil
	},
}

var waterChangeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent water changes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		changes, err := tr.WaterChangeHistory(commandContext(cmd), changeLimit)
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()
		if len(changes) == 0 {
			fmt.Fprintln(out, "No water changes logged.")
			return nil
		}
		for _, c := range changes {
			fmt.Fprintf(out, "%s %s %5.1f%%%s\n",
				faint.Sprint(shortID(c.ID)),
				faint.Sprint(c.CreatedAt.Local().Format(timeLayout)),
				c.Percentage,
				notesSuffix(c.Notes))
		}
		return nil
	},
}

func init() {
	waterChangeCmd.Flags().StringVar(&changeNotes, "notes", "", "notes for the water change")
	waterChangeCmd.Flags().StringVar(&changeAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	waterChangeListCmd.Flags().IntVarP(&changeLimit, "limit", "n", models.DisplayHistoryLimit, "max number of results")

	waterChangeCmd.AddCommand(waterChangeListCmd)
	rootCmd.AddCommand(waterChangeCmd)
}
