// ABOUTME: CLI commands for recurring care reminders.
// ABOUTME: Lists due and overdue tasks and marks them done.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/care"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var reminderDays int

var remindersCmd = &cobra.Command{
	Use:     "reminders",
	Aliases: []string{"r", "todo"},
	Short:   "Show care reminders",
	Long: `Show every care reminder and when it is due.

Reminders are stored on this device. The first time you run this,
default reminders are created for water changes, water tests, filter
cleaning, tank cleaning and health checks.

The ID column is a prefix you can use with done, enable and disable.

EXAMPLES:

  betta reminders                   # All reminders
  betta reminders upcoming --days 3 # Due in the next three days
  betta reminders overdue           # Past due, most urgent first
  betta reminders done 01HV         # Mark a reminder done
  betta reminders disable 01HV      # Stop a reminder`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reminders, err := tr.Reminders()
		if err != nil {
			return reportError(cmd, err)
		}
		printReminders(cmd.OutOrStdout(), reminders, "No reminders.")
		return nil
	},
}

var remindersUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show reminders due soon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reminders, err := tr.UpcomingReminders(reminderDays)
		if err != nil {
			return reportError(cmd, err)
		}
		printReminders(cmd.OutOrStdout(), reminders, fmt.Sprintf("Nothing due in the next %d days.", reminderDays))
		return nil
	},
}

var remindersOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Show overdue reminders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reminders, err := tr.OverdueReminders()
		if err != nil {
			return reportError(cmd, err)
		}
		printReminders(cmd.OutOrStdout(), reminders, "Nothing overdue.")
		return nil
	},
}

var remindersDoneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"complete"},
	Short:   "Mark a reminder done",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := tr.CompleteReminder(args[0])
		if err != nil {
			return reportError(cmd, err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s done. Next due %s\n",
			r.Title, r.NextDue.Local().Format("Mon Jan 2"))
		return nil
	},
}

var remindersEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Turn a reminder on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setReminderEnabled(cmd, args[0], true)
	},
}

var remindersDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Turn a reminder off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setReminderEnabled(cmd, args[0], false)
	},
}

func setReminderEnabled(cmd *cobra.Command, id string, enabled bool) error {
	r, err := tr.SetReminderEnabled(id, enabled)
	if err != nil {
		return reportError(cmd, err)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s %s\n", r.Title, state)
	return nil
}

func printReminders(out io.Writer, reminders []models.CareReminder, empty string) {
	if len(reminders) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	now := time.Now()
	for _, r := range reminders {
		when := care.FormatTimeRemaining(r.NextDue, now)
		line := fmt.Sprintf("%s %s %s", padRight(r.Title, 22), padRight(string(r.Priority), 9), when)
		switch {
		case !r.Enabled:
			line = faint.Sprint(line + " (disabled)")
		case r.NextDue.Before(now):
			line = color.RedString(line)
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(truncate(r.ID, 10)), line)
	}
}

func init() {
	remindersUpcomingCmd.Flags().IntVarP(&reminderDays, "days", "d", 7, "look ahead this many days")

	remindersCmd.AddCommand(remindersUpcomingCmd)
	remindersCmd.AddCommand(remindersOverdueCmd)
	remindersCmd.AddCommand(remindersDoneCmd)
	remindersCmd.AddCommand(remindersEnableCmd)
	remindersCmd.AddCommand(remindersDisableCmd)
	rootCmd.AddCommand(remindersCmd)
}
