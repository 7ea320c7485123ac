// Package cmd implements the assetctl command tree.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetforge/assetctl/internal/logging"
)

var (
	configPaths []string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "assetctl",
	Short:         "Build packaged content archives from declarative bundle configuration",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&configPaths, "config", "c", []string{"assetctl.yaml"},
		"configuration file or directory (repeatable; files merge)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.LevelInfo,
		"log level (debug, info, warn, error)")
}

func newLogger() *logging.Logger {
	return logging.NewLogger(logLevel, os.Stderr)
}

func Execute() error {
	return rootCmd.Execute()
}
