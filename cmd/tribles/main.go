package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

func main() {
	log := logger.New(logger.DefaultConfig)
	ctx := logger.WithLogger(context.Background(), log)

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tribles",
		Short:         "Embeddable triple store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newBenchCommand())
	return cmd
}
