package cmd

import "github.com/spf13/cobra"

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollout-sampler",
		Short: "Sample rollouts from benchmark environments into replay buffers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			return flags.Record()
		},
		SilenceUsage: true,
	}
	AddFlags(cmd)

	cmd.AddCommand(
		SingleCommand(),
		MultiCommand(),
	)

	return cmd
}
