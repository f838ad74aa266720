package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aiklyra",
		Short:         "Aiklyra conversation-flow-analysis CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyseCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
