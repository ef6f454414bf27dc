package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeu5/rollout-sampler/benchmarks/matrixgame"
)

func MultiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "multi",
		Short: "Run the multi agent coordination game benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComparison(matrixgame.PrepareComparison)
		},
	}
}
