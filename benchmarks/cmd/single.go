package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeu5/rollout-sampler/benchmarks/pointmass"
)

func SingleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "single",
		Short: "Run the single agent point mass benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComparison(pointmass.PrepareComparison)
		},
	}
}
