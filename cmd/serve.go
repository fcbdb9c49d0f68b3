package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealtown/di"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API and the periodic venue cache refresher.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		ctx := cmd.Context()
		container, err := di.NewContainer(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer container.Close()

		if n, err := container.VenuesRefresherService.RefreshVenuesData(ctx); err != nil {
			log.Error("initial venue refresh failed", zap.Error(err))
		} else {
			log.Info("venue cache warmed", zap.Int("venues", n))
		}
		container.VenuesRefresherService.StartPeriodicJob(ctx, cfg.Venues.RefreshInterval())

		return container.DealtownHttpServer.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
