// ABOUTME: CLI commands for logging feedings.
// ABOUTME: Records what and how much was fed and lists recent feedings.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var (
	feedNotes string
	feedAt    string
	feedLimit int
)

var feedCmd = &cobra.Command{
	Use:   "feed <food> <amount>",
	Short: "Log a feeding",
	Long: `Log a feeding.

EXAMPLES:

  betta feed pellets "3 pellets"
  betta feed bloodworms "2 worms" --notes "ate eagerly"
  betta feed pellets 3 --at "2026-03-10 18:00"
  betta feed list`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := atFlag(feedAt)
		if err != nil {
			return err
		}
		feeding := &models.FeedingLog{FoodType: args[0], Amount: args[1], CreatedAt: at}
		if feedNotes != "" {
			feeding.WithNotes(feedNotes)
		}

		if err := tr.LogFeeding(commandContext(cmd), feeding); err != nil {
			return reportError(cmd, err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Logged feeding: %s, %s %s\n",
			feeding.FoodType, feeding.Amount, faint.Sprint(shortID(feeding.ID)))
		return nil
	},
}

var feedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent feedings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		feedings, err := tr.FeedingHistory(commandContext(cmd), feedLimit)
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()
		if len(feedings) == 0 {
			fmt.Fprintln(out, "No feedings logged.")
			return nil
		}
		for _, f := range feedings {
			fmt.Fprintf(out, "%s %s %s %s%s\n",
				faint.Sprint(shortID(f.ID)),
				faint.Sprint(f.CreatedAt.Local().Format(timeLayout)),
				padRight(truncate(f.FoodType, 20), 20),
				f.Amount,
				notesSuffix(f.Notes))
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedNotes, "notes", "", "notes for the feeding")
	feedCmd.Flags().StringVar(&feedAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	feedListCmd.Flags().IntVarP(&feedLimit, "limit", "n", models.DisplayHistoryLimit, "max number of results")

	feedCmd.AddCommand(feedListCmd)
	rootCmd.AddCommand(feedCmd)
}
