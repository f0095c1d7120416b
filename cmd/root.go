package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/config"
)

var Version = "dev"

var (
	// jsonOutput controls whether output is formatted as JSON
	jsonOutput bool
	// configFile overrides the default config location
	configFile string
)

var rootCmd = &cobra.Command{
	Use:     "folio",
	Short:   "Terminal portfolio dashboard",
	Long:    `Track a stock portfolio held by a folio backend: list holdings, search symbols, add and remove positions and edit quantities.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/folio/config.yaml)")
}

// GetJSONMode returns whether JSON output mode is enabled.
func GetJSONMode() bool {
	return jsonOutput
}

// configPath returns the --config value or the default location.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.ConfigPath()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
