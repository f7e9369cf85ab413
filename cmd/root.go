package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "dexshare",
	Short:         "Dexcom Share client for glucose readings",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
