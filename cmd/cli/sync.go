package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChenyqThu/UIStoreMonitor/internal/database"
	"github.com/ChenyqThu/UIStoreMonitor/internal/http/ratelimit"
	"github.com/ChenyqThu/UIStoreMonitor/internal/pipeline"
	"github.com/ChenyqThu/UIStoreMonitor/internal/telemetry"
	"github.com/ChenyqThu/UIStoreMonitor/internal/uistore"
)

var (
	syncCategories  []string
	syncMetricsAddr string
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full catalog synchronization pass",
	Long: `Run the complete synchronization pipeline: resolve the storefront build
token, fetch every configured category listing, normalize the products and
apply them to the database in dependency order (products, variants, history,
tags/options/specs, links).

A category that fails to fetch contributes zero products but does not abort
the run; a bootstrap or database failure does.`,
	Example: `  uistore-monitor sync
  uistore-monitor sync --categories all-switching,all-wifi`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceVar(&syncCategories, "categories", nil, "Override the configured category list")
	syncCmd.Flags().StringVar(&syncMetricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address while the run executes (e.g. :9090)")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	categories := cfg.Store.Categories
	if len(syncCategories) > 0 {
		categories = syncCategories
	}

	if syncMetricsAddr != "" {
		telemetry.StartServer(syncMetricsAddr)
	}

	source := uistore.NewClient(uistore.ClientConfig{
		BaseURL:  cfg.Store.BaseURL,
		Region:   cfg.Store.Region,
		Language: cfg.Store.Language,
		RateLimit: ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			MaxRetries:        cfg.RateLimit.MaxRetries,
			InitialBackoffMs:  cfg.RateLimit.InitialBackoffMs,
			MaxBackoffMs:      cfg.RateLimit.MaxBackoffMs,
		},
		RequestTimeout: cfg.Store.RequestTimeout,
	})

	store := database.NewStore(database.Pool())

	result, err := pipeline.Run(ctx, source, store, pipeline.Options{
		Categories:       categories,
		FetchConcurrency: cfg.Store.FetchConcurrency,
	})

	displayRunResult(result)

	if err != nil {
		logger.Error().Err(err).Str("run_id", result.RunID).Msg("Sync run failed")
		return err
	}
	return nil
}

func displayRunResult(result *pipeline.RunResult) {
	if result == nil {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tPRODUCTS\tSKIPPED\tFETCH")
	fmt.Fprintln(w, "--------\t--------\t-------\t-----")
	for _, c := range result.Categories {
		fetch := "ok"
		if c.FetchFailed {
			fetch = "FAILED"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", c.Category, c.Products, c.Skipped, fetch)
	}
	w.Flush()

	fmt.Printf("\nRun %s finished with status %s in %s\n",
		result.RunID, result.Status, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	fmt.Printf("  products: %d  variants: %d  tags: %d  options: %d  specs: %d  history: %d  links: %d\n",
		result.Products, result.Variants, result.Tags, result.Options, result.Specs, result.History, result.Links)
}
