// ABOUTME: CLI command for the health summary.
// ABOUTME: Prints score, level, alerts and likely causes for the current snapshot.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	statusStrategy string
	statusJSON     bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your betta's health score and alerts",
	Long: `Show the health score, level, alerts and likely causes for the
current tank, fish and water.

STRATEGIES:

  health   Fahrenheit health table (default)
  betta    Onboarding table; the stored reading is converted to °C

EXAMPLES:

  betta status
  betta status --strategy betta
  betta status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := tr.Report()
		score, err := tr.Score(statusStrategy)
		if err != nil {
			return err
		}
		report.Score = score
		report.Classification = scoring.ClassifyScore(score)

		out := cmd.OutOrStdout()
		if statusJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		if tr.IsGuest() {
			faint.Fprintln(out, "Guest mode: data is stored on this device only.")
		}
		snap := tr.Snapshot()
		fmt.Fprintf(out, "%s\n\n", snap.Fish.Name)
		levelColor(report.Classification.Level).Fprintf(out, "%d/100  %s\n", report.Score, report.Classification.Level)
		fmt.Fprintln(out, report.Classification.Description)

		printAlerts(out, report.Alerts)

		if len(report.Findings) > 0 {
			fmt.Fprintln(out, "\nLikely causes:")
			for _, f := range report.Findings {
				fmt.Fprintf(out, "  %s %s\n", f.Label, faint.Sprintf("[%s]", f.Likelihood))
				if len(f.Explains) > 0 {
					fmt.Fprintf(out, "    explains: %s\n", strings.Join(f.Explains, ", "))
				}
				fmt.Fprintf(out, "    %s\n", f.Tip)
			}
		}
		return nil
	},
}

func levelColor(level scoring.Level) *color.Color {
	switch level {
	case scoring.LevelExcellent, scoring.LevelGood:
		return color.New(color.FgGreen, color.Bold)
	case scoring.LevelFair:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printAlerts(out io.Writer, alerts []scoring.HealthAlert) {
	if len(alerts) == 0 {
		color.New(color.FgGreen).Fprintln(out, "\n✓ No alerts")
		return
	}
	counts := scoring.CountByType(alerts)
	fmt.Fprintf(out, "\nAlerts: %d critical, %d warning, %d info\n",
		counts[scoring.AlertCritical], counts[scoring.AlertWarning], counts[scoring.AlertInfo])
	for _, a := range alerts {
		var c *color.Color
		icon := "•"
		switch a.Type {
		case scoring.AlertCritical:
			c, icon = color.New(color.FgRed), "✗"
		case scoring.AlertWarning:
			c, icon = color.New(color.FgYellow), "⚠"
		default:
			c = color.New(color.FgCyan)
		}
		c.Fprintf(out, "  %s %s\n", icon, a.Title)
		fmt.Fprintf(out, "    %s\n", a.Message)
		faint.Fprintf(out, "    → %s\n", a.Recommendation)
	}
}

func init() {
	statusCmd.Flags().StringVar(&statusStrategy, "strategy", scoring.HealthScoreStrategy{}.Name(), "scoring strategy (health, betta)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(statusCmd)
}
