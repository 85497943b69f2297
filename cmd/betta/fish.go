// ABOUTME: CLI commands for fish health observations.
// ABOUTME: Shows the current fish, records a new observation and lists history.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var fishLimit int

// fishFields maps flag names to the observation they set.
var fishFields = []struct {
	flag    string
	usage   string
	options []string
	set     func(f *models.Fish, v string)
}{
	{"name", "fish name", nil, func(f *models.Fish, v string) { f.Name = v }},
	{"color", "display color (#RRGGBB)", nil, func(f *models.Fish, v string) { f.Color = v }},
	{"appetite", "appetite", models.AppetiteOptions, func(f *models.Fish, v string) { f.Appetite = v }},
	{"activity", "activity level", models.ActivityOptions, func(f *models.Fish, v string) { f.Activity = v }},
	{"fins", "fin condition", models.FinConditionOptions, func(f *models.Fish, v string) { f.FinCondition = v }},
	{"coloring", "color condition", models.ColorConditionOptions, func(f *models.Fish, v string) { f.ColorCondition = v }},
	{"gills", "gill condition", models.GillConditionOptions, func(f *models.Fish, v string) { f.GillCondition = v }},
	{"body", "body condition", models.BodyConditionOptions, func(f *models.Fish, v string) { f.BodyCondition = v }},
	{"behavior", "behavior", models.BehaviorOptions, func(f *models.Fish, v string) { f.Behavior = v }},
}

var fishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Show or record your betta's condition",
	Long: `Show the latest observation of your betta.

Every observation is kept, so you can see how your fish changed over time.

VALUES (healthy first):

  --appetite   Normal | Eating less | Not eating at all
  --activity   Normal | Less active | Lethargic | Lying at bottom
  --fins       Healthy | Minor damage | Damaged | Rotting
  --coloring   Vibrant | Fading | Spots/patches
  --gills      Normal | Rapid breathing | Gasping
  --body       Normal | Thin | Bloated | Injured
  --behavior   Normal | Hiding | Glass surfing | Flashing | Clamped fins

EXAMPLES:

  betta fish                                   # Show the current observation
  betta fish set --name Sushi                  # Rename your fish
  betta fish set --appetite "Eating less"      # Record a change
  betta fish history -n 5                      # Last five observations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printFish(cmd.OutOrStdout(), tr.Snapshot().Fish)
		return nil
	},
}

var fishSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record a fish observation",
	Long: `Record a new observation of your betta.

Flags that are not given keep their current value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fish := tr.Snapshot().Fish
		fish.ID, fish.OwnerID, fish.TankID, fish.CreatedAt = uuid.Nil, "", uuid.Nil, time.Time{}
		flags := cmd.Flags()
		for _, field := range fishFields {
			if !flags.Changed(field.flag) {
				continue
			}
			value, _ := flags.GetString(field.flag)
			field.set(&fish, value)
		}

		if err := tr.SaveFish(commandContext(cmd), &fish); err != nil {
			return reportError(cmd, err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Recorded %s %s\n", fish.Name, faint.Sprint(shortID(fish.ID)))
		printFish(out, fish)
		return nil
	},
}

var fishHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List fish observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := tr.FishHistory(commandContext(cmd), fishLimit)
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(out, "No observations recorded.")
			return nil
		}
		for _, f := range history {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(shortID(f.ID)),
				faint.Sprint(f.CreatedAt.Local().Format(timeLayout)),
				padRight(truncate(f.Name, 16), 16),
				summarizeFish(*f))
		}
		return nil
	},
}

// summarizeFish lists the attributes that are not at their healthy value.
func summarizeFish(f models.Fish) string {
	var issues []string
	for _, v := range []struct{ got, healthy string }{
		{f.Appetite, models.AppetiteNormal},
		{f.Activity, models.ActivityNormal},
		{f.FinCondition, models.FinHealthy},
		{f.ColorCondition, models.ColorVibrant},
		{f.GillCondition, models.GillNormal},
		{f.BodyCondition, models.BodyNormal},
		{f.Behavior, models.BehaviorNormal},
	} {
		if v.got != v.healthy {
			issues = append(issues, v.got)
		}
	}
	if len(issues) == 0 {
		return "all normal"
	}
	return strings.Join(issues, ", ")
}

func printFish(out io.Writer, f models.Fish) {
	fmt.Fprintf(out, "Name:     %s %s\n", f.Name, faint.Sprint(f.Color))
	fmt.Fprintf(out, "Appetite: %s\n", f.Appetite)
	fmt.Fprintf(out, "Activity: %s\n", f.Activity)
	fmt.Fprintf(out, "Fins:     %s\n", f.FinCondition)
	fmt.Fprintf(out, "Color:    %s\n", f.ColorCondition)
	fmt.Fprintf(out, "Gills:    %s\n", f.GillCondition)
	fmt.Fprintf(out, "Body:     %s\n", f.BodyCondition)
	fmt.Fprintf(out, "Behavior: %s\n", f.Behavior)
}

func init() {
	for _, field := range fishFields {
		usage := field.usage
		if field.options != nil {
			usage = fmt.Sprintf("%s (%s)", usage, strings.Join(field.options, ", "))
		}
		fishSetCmd.Flags().String(field.flag, "", usage)
	}
	fishHistoryCmd.Flags().IntVarP(&fishLimit, "limit", "n", models.DisplayHistoryLimit, "max number of results")

	fishCmd.AddCommand(fishSetCmd)
	fishCmd.AddCommand(fishHistoryCmd)
	rootCmd.AddCommand(fishCmd)
}
