package main

import (
	"github.com/spf13/cobra"

	"adniclean/internal/config"
	"adniclean/pkg/contracts"
)

var rootFlags struct {
	configFile string
}

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Clean the ADNI1 baseline cohort out of an ADNIMERGE table",
	Long: "adniclean selects the ADNI1 baseline visits from an ADNIMERGE export,\n" +
		"normalizes missing values, prunes sparse and leakage-prone columns,\n" +
		"encodes the diagnosis and categorical columns and writes a complete-case table.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configFile, "config", "", "YAML configuration file (default: ./adniclean.yaml if present)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(missingnessCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = contracts.Version
	rootCmd.SetVersionTemplate(contracts.GetFullVersionString() + "\n")
}

// loadConfig reads the configuration named by --config, falling back to the
// default locations and ADNI_* environment variables.
func loadConfig() (*config.Config, error) {
	return config.Load(rootFlags.configFile)
}
