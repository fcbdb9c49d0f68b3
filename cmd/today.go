package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealtown/filter"
)

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Prints today's weekday index (0=Sunday) in the civil timezone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tz, _ := cmd.Flags().GetString("timezone")
		if tz == "" {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tz = cfg.App.Timezone
		}
		return printToday(cmd, tz, filter.SystemClock{})
	},
}

func printToday(cmd *cobra.Command, tz string, clock filter.Clock) error {
	day, err := filter.TodayIndex(tz, clock)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s (%s)\n", int(day), day, tz)
	return nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringP("timezone", "t", "", "IANA timezone, overriding app.timezone")
}
