package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealtown/di"
)

// refreshCmd represents the refresh-venues command
var refreshCmd = &cobra.Command{
	Use:   "refresh-venues",
	Short: "Copies venues from the listing source into the Redis cache once.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		container, err := di.NewContainer(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer container.Close()

		n, err := container.VenuesRefresherService.RefreshVenuesData(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d venues\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
