package main

import (
	"github.com/spf13/cobra"

	"github.com/outofforest/tribles/internal/bench"
)

func newBenchCommand() *cobra.Command {
	config := bench.DefaultConfig
	var profile string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Builds synthetic knowledge base and queries it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile != "" {
				if err := bench.LoadConfig(profile, &config); err != nil {
					return err
				}
			}
			_, err := bench.Run(cmd.Context(), config)
			return err
		},
	}

	cmd.Flags().IntVar(&config.People, "people", config.People, "number of generated people")
	cmd.Flags().IntVar(&config.Workers, "workers", config.Workers, "number of generating workers")
	cmd.Flags().StringVar(&profile, "profile", "", "YAML file with benchmark profile")
	return cmd
}
