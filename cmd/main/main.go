package main

import (
	"context"
	"os"

	"github.com/sigidayo/sources/internal/config"
	"github.com/sigidayo/sources/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
	flagOutput string
)

var rootCmd = &cobra.Command{
	Use:           "dynasty",
	Short:         "Dynasty Scans catalog source",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "json", "output format: json or yaml")

	rootCmd.AddCommand(searchCmd, filtersCmd, detailsCmd, coverCmd, deeplinkCmd, homeCmd)
}

// newContainer loads configuration and wires the client for a command run.
func newContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}

	return container.New(ctx, cfg)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
}
