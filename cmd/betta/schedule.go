// ABOUTME: CLI commands for the planned feeding schedule.
// ABOUTME: Lists the schedule, adds entries and shows today's feedings.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var scheduleDays []string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the feeding schedule",
	Long: `Show the planned feeding schedule.

The default schedule feeds twice a day, Monday to Saturday, with a fast
day on Sunday.

EXAMPLES:

  betta schedule                                        # Whole schedule
  betta schedule today                                  # Feedings planned for today
  betta schedule add 12:30 bloodworms "2 worms" --days sat,sun`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := tr.FeedingSchedule()
		if err != nil {
			return reportError(cmd, err)
		}
		printSchedule(cmd.OutOrStdout(), schedule, "No feedings scheduled.")
		return nil
	},
}

var scheduleTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show feedings planned for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := tr.TodaysFeedings()
		if err != nil {
			return reportError(cmd, err)
		}
		printSchedule(cmd.OutOrStdout(), today, "No feedings planned today.")
		return nil
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <HH:MM> <food> <amount>",
	Short: "Add a scheduled feeding",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := tr.AddScheduledFeeding(models.FeedingScheduleEntry{
			Time:     args[0],
			FoodType: args[1],
			Amount:   args[2],
			Days:     append([]string(nil), scheduleDays...),
			Enabled:  true,
		})
		if err != nil {
			return reportError(cmd, err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Scheduled %s %s at %s on %s\n",
			entry.Amount, entry.FoodType, entry.Time, strings.Join(entry.Days, ","))
		return nil
	},
}

func printSchedule(out io.Writer, schedule []models.FeedingScheduleEntry, empty string) {
	if len(schedule) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	for _, e := range schedule {
		line := fmt.Sprintf("%s  %s %s  %s", e.Time, padRight(e.FoodType, 14), padRight(e.Amount, 10), strings.Join(e.Days, ","))
		if !e.Enabled {
			line = faint.Sprint(line + " (disabled)")
		}
		fmt.Fprintln(out, line)
	}
}

func init() {
	scheduleAddCmd.Flags().StringSliceVar(&scheduleDays, "days", models.WeekdayAbbreviations, "days of the week (sun,mon,...)")

	scheduleCmd.AddCommand(scheduleTodayCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	rootCmd.AddCommand(scheduleCmd)
}
