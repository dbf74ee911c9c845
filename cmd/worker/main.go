package main

import (
	"os"

	"go-calypso/internal/app"
	"go-calypso/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var requeueVisit string

	cmd := &cobra.Command{
		Use:          "worker",
		Short:        "Relay visit lifecycle events from the outbox to Kafka",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()
			zap.ReplaceGlobals(logger)

			if requeueVisit != "" {
				_, err := app.RequeueVisitEvents(cmd.Context(), cfg, requeueVisit, logger)
				return err
			}
			return app.RunWorker(cfg, logger)
		},
	}
	cmd.Flags().StringVar(&requeueVisit, "requeue-visit", "", "revive dead outbox events of this visit id and exit")
	return cmd
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
