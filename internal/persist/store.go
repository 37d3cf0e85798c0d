package persist

import (
	"context"

	"github.com/ChenyqThu/UIStoreMonitor/internal/catalog"
)

// Store is the persistence contract the engine writes through. All access to
// the backing database goes through these typed operations; the engine never
// issues ad-hoc SQL.
type Store interface {
	// UpsertProducts replaces products by primary key (full-column upsert)
	UpsertProducts(ctx context.Context, products []catalog.ProductRecord) error

	// UpsertVariants replaces variants by SKU (full-column upsert)
	UpsertVariants(ctx context.Context, variants []catalog.VariantRecord) error

	// VariantIDsBySKU resolves the database-assigned serial ids for the
	// given SKUs. SKUs with no stored variant are absent from the result.
	VariantIDsBySKU(ctx context.Context, skus []string) (map[string]int64, error)

	// AppendHistory inserts snapshot rows; existing rows are never touched
	AppendHistory(ctx context.Context, rows []catalog.HistoryRecord) error

	// ReplaceTags deletes all tag rows for productIDs, then inserts tags
	ReplaceTags(ctx context.Context, productIDs []string, tags []catalog.TagRecord) error

	// ReplaceOptions deletes all option rows for productIDs, then inserts options
	ReplaceOptions(ctx context.Context, productIDs []string, options []catalog.OptionRecord) error

	// ReplaceSpecs deletes all spec rows for productIDs, then inserts specs
	ReplaceSpecs(ctx context.Context, productIDs []string, specs []catalog.SpecRecord) error

	// ReplaceLinks deletes all link rows for productIDs, then inserts links
	ReplaceLinks(ctx context.Context, productIDs []string, links []catalog.LinkRecord) error
}
