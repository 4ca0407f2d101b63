package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modulargunworks/catalog/internal/delivery/console"
	"github.com/spf13/cobra"
)

var (
	flagInput  string
	flagOutput string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run the export through the pipeline once and write the catalog",
	Long: `Ingest locates the header row of the export, classifies every row, attaches
images and writes the brand-keyed catalog document. A summary with the product
count and the SKUs that have no images is printed to stdout.

Examples:
  catalog ingest
  catalog ingest --input exports/order-form.xls --output Data/optics-data.json`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&flagInput, "input", "", "Vendor export to read (overrides input.path)")
	ingestCmd.Flags().StringVar(&flagOutput, "output", "", "Catalog document to write (overrides output.path)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagInput != "" {
		cfg.Input.Path = flagInput
	}
	if flagOutput != "" {
		cfg.Output.Path = flagOutput
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := a.service.Run(ctx)
	if err != nil {
		return err
	}

	return console.PrintSummary(cmd.OutOrStdout(), report)
}
