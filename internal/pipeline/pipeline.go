package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ChenyqThu/UIStoreMonitor/internal/catalog"
	"github.com/ChenyqThu/UIStoreMonitor/internal/persist"
	"github.com/ChenyqThu/UIStoreMonitor/internal/telemetry"
	"github.com/ChenyqThu/UIStoreMonitor/internal/uistore"
)

// Status is the terminal outcome of a run
type Status string

const (
	StatusSuccess Status = "success"
	StatusNoop    Status = "noop"
	StatusFailed  Status = "failed"
)

// Source is the upstream catalog the pipeline reads from
type Source interface {
	BuildID(ctx context.Context) (string, error)
	FetchCategory(ctx context.Context, buildID, categorySlug string) ([]uistore.SubCategory, error)
	ProductURL(categorySlug, productSlug string) string
}

// Options configures a run
type Options struct {
	// Categories to crawl, in priority order. The order decides which
	// category a multi-category product is attributed to.
	Categories []string
	// FetchConcurrency bounds parallel category fetches; <=1 fetches sequentially
	FetchConcurrency int
	// Now overrides the run timestamp, used by tests
	Now func() time.Time
}

// CategoryResult reports what one category contributed to the run
type CategoryResult struct {
	Category    string
	Products    int
	Skipped     int
	FetchFailed bool
}

// RunResult is the run summary
type RunResult struct {
	RunID      string
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
	Categories []CategoryResult
	Products   int
	Variants   int
	Tags       int
	Options    int
	Specs      int
	History    int
	Links      int
}

// Run executes one full synchronization pass: bootstrap, per-category fetch,
// normalization with cross-category dedup, then the ordered persist steps.
//
// Per-category fetch failures are contained and reported as zero products for
// that category; only a bootstrap failure or a persist step failure terminates
// the run with an error.
func Run(ctx context.Context, source Source, store persist.Store, opts Options) (*RunResult, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	result := &RunResult{
		RunID:     uuid.New().String(),
		StartedAt: now(),
	}
	log.Info().Str("run_id", result.RunID).Int("categories", len(opts.Categories)).Msg("Starting catalog sync run")

	buildID, err := source.BuildID(ctx)
	if err != nil {
		return finish(result, StatusFailed, now), err
	}

	listings := fetchCategories(ctx, source, buildID, opts)

	// Normalization runs sequentially in configured category order so the
	// dedup decision is deterministic even though fetches interleave.
	runStamp := now().UTC()
	batch := catalog.NewBatch()
	seen := newSeenSet()

	for i, categorySlug := range opts.Categories {
		catResult := CategoryResult{Category: categorySlug, FetchFailed: listings[i].err != nil}
		if catResult.FetchFailed {
			log.Warn().Str("category", categorySlug).Err(listings[i].err).
				Msg("Category fetch failed, treating as empty")
			telemetry.RecordCategoryFetchFailure(categorySlug)
			result.Categories = append(result.Categories, catResult)
			continue
		}

		for _, subCat := range listings[i].subCategories {
			for _, raw := range subCat.Products {
				if !seen.Add(raw.ID) {
					continue
				}

				np, err := catalog.Normalize(raw, categorySlug, source.ProductURL(categorySlug, raw.Slug), runStamp)
				if err != nil {
					var skip *catalog.SkipError
					if errors.As(err, &skip) {
						log.Warn().Str("product", skip.Name).Str("id", skip.ProductID).
							Str("reason", skip.Reason).Msg("Skipping product")
						catResult.Skipped++
						continue
					}
					return finish(result, StatusFailed, now), err
				}

				batch.Add(np)
				catResult.Products++
			}
		}
		result.Categories = append(result.Categories, catResult)
	}

	result.Products = len(batch.Products)
	result.Variants = len(batch.Variants)

	log.Info().
		Int("products", len(batch.Products)).
		Int("variants", len(batch.Variants)).
		Int("tags", len(batch.Tags)).
		Int("options", len(batch.Options)).
		Int("specs", len(batch.Specs)).
		Msg("Normalization complete")

	if len(batch.Products) == 0 {
		// Upstream may legitimately have nothing: an empty run is a no-op,
		// not an error.
		log.Info().Str("run_id", result.RunID).Msg("No products discovered, nothing to sync")
		return finish(result, StatusNoop, now), nil
	}

	applied, err := persist.NewEngine(store).Apply(ctx, batch)
	if err != nil {
		return finish(result, StatusFailed, now), err
	}

	result.Tags = applied.Tags
	result.Options = applied.Options
	result.Specs = applied.Specs
	result.History = applied.History
	result.Links = applied.Links
	telemetry.RecordSynced(applied.Products, applied.Variants, applied.History)

	res := finish(result, StatusSuccess, now)
	log.Info().
		Str("run_id", res.RunID).
		Int("products", res.Products).
		Int("variants", res.Variants).
		Int("tags", res.Tags).
		Int("options", res.Options).
		Int("specs", res.Specs).
		Int("history", res.History).
		Int("links", res.Links).
		Dur("elapsed", res.FinishedAt.Sub(res.StartedAt)).
		Msg("Catalog sync run complete")
	return res, nil
}

// categoryListing is one category's fetched payload or its contained error
type categoryListing struct {
	subCategories []uistore.SubCategory
	err           error
}

// fetchCategories retrieves all configured categories through a bounded pool.
// Results are indexed by configured order; failures are captured per slot, never
// returned, since a partial upstream outage must not abort the run.
func fetchCategories(ctx context.Context, source Source, buildID string, opts Options) []categoryListing {
	listings := make([]categoryListing, len(opts.Categories))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := opts.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, categorySlug := range opts.Categories {
		i, categorySlug := i, categorySlug
		g.Go(func() error {
			subCategories, err := source.FetchCategory(gctx, buildID, categorySlug)
			listings[i] = categoryListing{subCategories: subCategories, err: err}
			return nil
		})
	}
	g.Wait() // workers never return errors

	return listings
}

func finish(result *RunResult, status Status, now func() time.Time) *RunResult {
	result.Status = status
	result.FinishedAt = now()
	telemetry.RecordRun(string(status), result.FinishedAt.Sub(result.StartedAt))
	return result
}
