package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"catalog_query/internal/adapters/dummyjson"
	"catalog_query/internal/adapters/observability"
	"catalog_query/internal/app"
	"catalog_query/internal/report"
	"catalog_query/internal/shared"
)

var errReportFailed = errors.New("one or more catalog queries failed")

func main() {
	if err := newRootCmd(shared.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg shared.Config) *cobra.Command {
	var (
		productID int64
		workers   int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Run every catalog query once and print the results as JSON",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
			if verbose {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dummyjson.New(cfg.CatalogBase, cfg.CatalogRPS, cfg.CatalogTimeout)
			if err != nil {
				return err
			}
			log.Debug().
				Str("base", cfg.CatalogBase).
				Int64("product_id", productID).
				Int("workers", workers).
				Msg("report starting")

			rep := report.Run(cmd.Context(), app.NewCatalogService(client), productID, workers)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
			if rep.Failed() {
				log.Warn().Msg("report completed with failures")
				return errReportFailed
			}
			log.Debug().Msg("report completed")
			return nil
		},
	}

	cmd.Flags().Int64Var(&productID, "product-id", 1, "product whose reviewer emails are listed")
	cmd.Flags().IntVar(&workers, "workers", cfg.ReportWorkers, "maximum queries in flight")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
