package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealtown/config"
	"dealtown/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dealtown",
	Short: "Food and drink deals around town, filtered by day, time and distance.",
	Long: `dealtown serves the deals, lunch specials and happy hours listings API,
keeps the Redis venue cache fresh and collects submissions and analytics.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dealtown.yaml or ./config/dealtown.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "Set log level, overriding the config. Available: debug, info, warn, error")
}

// loadConfig reads the configuration and builds the logger for a command.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("loglevel"); level != "" {
		cfg.Logger.Level = level
	}
	return cfg, logger.New(cfg.Logger.Level, cfg.Logger.Format), nil
}
