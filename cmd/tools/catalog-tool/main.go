// cmd/tools/catalog-tool/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"placement-directory/internal/common/config"
	"placement-directory/internal/common/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "catalog-tool",
	Short:         "Validate, convert, seed, index and query the company catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: configs/config.yaml merged with the environment overlay)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newValidateCmd(),
		newConvertCmd(),
		newSeedCmd(),
		newIndexCmd(),
		newQueryCmd(),
		newFacetsCmd(),
		newStatsCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func newLogger() logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewStructured(level, "console", "stderr")
}
