package main

import (
	"github.com/spf13/cobra"

	"github.com/decibelcooper/ckstar/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration fill would use, the defaults merged with the
file given with --config, as YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		return cfg.Write(cmd.OutOrStdout())
	},
}
