package persist

import (
	"context"
	"fmt"
	"sort"

	"github.com/ChenyqThu/UIStoreMonitor/internal/catalog"
	"github.com/rs/zerolog/log"
)

// linkTypeRelated is the only relationship kind the upstream catalog expresses
const linkTypeRelated = "related"

// Engine applies a normalized batch against the store in dependency order:
//
//  1. upsert products by id
//  2. upsert variants by SKU, then resolve their serial ids
//  3. append one history snapshot per resolved variant
//  4. replace tags, options and specs for every product in the batch
//  5. replace related-product links, restricted to the batch's product set
//
// The five steps are strictly sequential; each depends on the previous
// step's committed state.
type Engine struct {
	store Store
}

// NewEngine creates an engine writing through the given store
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Result reports row counts written by Apply
type Result struct {
	Products int
	Variants int
	History  int
	Tags     int
	Options  int
	Specs    int
	Links    int
}

// Apply makes the store match the batch. Rerunning Apply with an identical
// batch leaves every descriptive table unchanged and appends exactly one new
// history row per variant.
func (e *Engine) Apply(ctx context.Context, batch *catalog.Batch) (*Result, error) {
	result := &Result{}
	if len(batch.Products) == 0 {
		return result, nil
	}

	// Step 1: products
	if err := e.store.UpsertProducts(ctx, batch.Products); err != nil {
		return nil, &StepError{Step: StepProducts, Err: err}
	}
	result.Products = len(batch.Products)
	log.Info().Int("count", result.Products).Msg("Upserted products")

	// Step 2: variants, then re-read their serial ids by SKU. History rows
	// reference the serial id, not the natural key.
	if err := e.store.UpsertVariants(ctx, batch.Variants); err != nil {
		return nil, &StepError{Step: StepVariants, Err: err}
	}
	result.Variants = len(batch.Variants)
	log.Info().Int("count", result.Variants).Msg("Upserted variants")

	skus := make([]string, 0, len(batch.Variants))
	for _, v := range batch.Variants {
		skus = append(skus, v.SKU)
	}
	skuToID, err := e.store.VariantIDsBySKU(ctx, skus)
	if err != nil {
		return nil, &StepError{Step: StepVariants, Err: fmt.Errorf("resolving variant ids: %w", err)}
	}

	// Step 3: history snapshots. A variant whose serial id did not resolve
	// is skipped with a warning, never written with an invented id.
	history := make([]catalog.HistoryRecord, 0, len(batch.Variants))
	for _, v := range batch.Variants {
		variantID, ok := skuToID[v.SKU]
		if !ok {
			log.Warn().Str("sku", v.SKU).Msg("No stored variant id for SKU, skipping history snapshot")
			continue
		}
		history = append(history, catalog.HistoryRecord{
			VariantID:       variantID,
			SKU:             v.SKU,
			Price:           v.CurrentPrice,
			RegularPrice:    v.RegularPrice,
			DiscountPercent: v.DiscountPercent,
			InStock:         v.InStock,
			Status:          v.Status,
			RecordedAt:      v.LastUpdated,
		})
	}
	if err := e.store.AppendHistory(ctx, history); err != nil {
		return nil, &StepError{Step: StepHistory, Err: err}
	}
	result.History = len(history)
	log.Info().Int("count", result.History).Msg("Appended history snapshots")

	// Step 4: child tables, delete-then-insert. The upstream source has no
	// stable identity for removed tags or specs, so a wholesale replace is
	// the only way to make the child set exactly mirror the snapshot.
	productIDs := sortedIDs(batch.ProductIDs())

	tags := dedupeTags(batch.Tags)
	if err := e.store.ReplaceTags(ctx, productIDs, tags); err != nil {
		return nil, &StepError{Step: StepTags, Err: err}
	}
	result.Tags = len(tags)

	options := dedupeOptions(batch.Options)
	if err := e.store.ReplaceOptions(ctx, productIDs, options); err != nil {
		return nil, &StepError{Step: StepOptions, Err: err}
	}
	result.Options = len(options)

	specs := dedupeSpecs(batch.Specs)
	if err := e.store.ReplaceSpecs(ctx, productIDs, specs); err != nil {
		return nil, &StepError{Step: StepSpecs, Err: err}
	}
	result.Specs = len(specs)

	log.Info().
		Int("tags", result.Tags).
		Int("options", result.Options).
		Int("specs", result.Specs).
		Msg("Replaced child tables")

	// Step 5: related-product links, restricted to products synced in this
	// run so a dangling reference is never written.
	links := resolveLinks(batch)
	if err := e.store.ReplaceLinks(ctx, productIDs, links); err != nil {
		return nil, &StepError{Step: StepLinks, Err: err}
	}
	result.Links = len(links)
	log.Info().Int("count", result.Links).Msg("Replaced product links")

	return result, nil
}

// resolveLinks turns the batch's raw linked-id lists into link rows whose
// targets exist in the batch's product set
func resolveLinks(batch *catalog.Batch) []catalog.LinkRecord {
	present := batch.ProductIDs()
	var links []catalog.LinkRecord
	seen := make(map[string]bool)

	for _, p := range batch.Products {
		for _, target := range batch.LinkedIDs[p.ID] {
			if !present[target] {
				continue
			}
			key := p.ID + "\x00" + target
			if seen[key] {
				continue
			}
			seen[key] = true
			links = append(links, catalog.LinkRecord{
				ProductID:       p.ID,
				LinkedProductID: target,
				LinkType:        linkTypeRelated,
			})
		}
	}
	return links
}

// dedupeTags keeps the first tag per (product, tag name)
func dedupeTags(tags []catalog.TagRecord) []catalog.TagRecord {
	seen := make(map[string]bool, len(tags))
	out := make([]catalog.TagRecord, 0, len(tags))
	for _, t := range tags {
		key := t.ProductID + "\x00" + t.TagName
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// dedupeOptions keeps the first option per (product, option title)
func dedupeOptions(options []catalog.OptionRecord) []catalog.OptionRecord {
	seen := make(map[string]bool, len(options))
	out := make([]catalog.OptionRecord, 0, len(options))
	for _, o := range options {
		key := o.ProductID + "\x00" + o.OptionTitle
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

// dedupeSpecs keeps the first spec per (product, section, label)
func dedupeSpecs(specs []catalog.SpecRecord) []catalog.SpecRecord {
	seen := make(map[string]bool, len(specs))
	out := make([]catalog.SpecRecord, 0, len(specs))
	for _, s := range specs {
		key := s.ProductID + "\x00" + s.Section + "\x00" + s.Label
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
