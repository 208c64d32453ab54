// Package commands holds the lapis command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "lapis",
		Short:         "LAPIS Visuals site and back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		newServeCommand(&configFile),
		newSeedCommand(&configFile),
		newOptimizeImagesCommand(&configFile),
		newVersionCommand(),
	)

	return rootCmd
}
