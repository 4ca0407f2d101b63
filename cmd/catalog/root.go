package main

import (
	"fmt"
	"os"

	"github.com/modulargunworks/catalog/config"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Turn a vendor order-form export into a brand-keyed product catalog",
	Long: `catalog reads a distributor's order-form export (CSV, or an HTML table saved
as .xls), attaches product images found on disk, and writes one JSON document
keyed by brand.

Usage:
  catalog ingest [flags]
  catalog serve [flags]`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: config.yaml in ., ./config or /etc/catalog)")
}

// Execute runs the root command and exits 1 on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
