package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ChenyqThu/UIStoreMonitor/internal/catalog"
)

// PgStore is the Postgres-backed persistence store. Collections:
// products, product_variants (unique on sku), product_tags, product_options,
// product_specs, variant_history (append-only), linked_products.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a store over the given pool
func NewStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// UpsertProducts replaces products by primary key
func (s *PgStore) UpsertProducts(ctx context.Context, products []catalog.ProductRecord) error {
	if len(products) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
			INSERT INTO products (
				id, name, title, short_description, slug, category_slug,
				subcategory_id, collection_slug, image_url, url, status,
				min_price, max_price, currency, has_discount, variant_count,
				last_updated
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
			)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				title = EXCLUDED.title,
				short_description = EXCLUDED.short_description,
				slug = EXCLUDED.slug,
				category_slug = EXCLUDED.category_slug,
				subcategory_id = EXCLUDED.subcategory_id,
				collection_slug = EXCLUDED.collection_slug,
				image_url = EXCLUDED.image_url,
				url = EXCLUDED.url,
				status = EXCLUDED.status,
				min_price = EXCLUDED.min_price,
				max_price = EXCLUDED.max_price,
				currency = EXCLUDED.currency,
				has_discount = EXCLUDED.has_discount,
				variant_count = EXCLUDED.variant_count,
				last_updated = EXCLUDED.last_updated
		`, p.ID, p.Name, p.Title, p.ShortDescription, p.Slug, p.CategorySlug,
			p.SubcategoryID, p.CollectionSlug, p.ImageURL, p.URL, p.Status,
			p.MinPrice, p.MaxPrice, p.Currency, p.HasDiscount, p.VariantCount,
			p.LastUpdated)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting products: %w", err)
	}
	return nil
}

// UpsertVariants replaces variants by SKU
func (s *PgStore) UpsertVariants(ctx context.Context, variants []catalog.VariantRecord) error {
	if len(variants) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, v := range variants {
		batch.Queue(`
			INSERT INTO product_variants (
				product_id, variant_id, sku, display_name, current_price,
				regular_price, discount_percent, currency, in_stock, status,
				is_visible, has_ui_care, last_updated
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
			)
			ON CONFLICT (sku) DO UPDATE SET
				product_id = EXCLUDED.product_id,
				variant_id = EXCLUDED.variant_id,
				display_name = EXCLUDED.display_name,
				current_price = EXCLUDED.current_price,
				regular_price = EXCLUDED.regular_price,
				discount_percent = EXCLUDED.discount_percent,
				currency = EXCLUDED.currency,
				in_stock = EXCLUDED.in_stock,
				status = EXCLUDED.status,
				is_visible = EXCLUDED.is_visible,
				has_ui_care = EXCLUDED.has_ui_care,
				last_updated = EXCLUDED.last_updated
		`, v.ProductID, v.VariantID, v.SKU, v.DisplayName, v.CurrentPrice,
			v.RegularPrice, v.DiscountPercent, v.Currency, v.InStock, v.Status,
			v.IsVisible, v.HasUICare, v.LastUpdated)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting variants: %w", err)
	}
	return nil
}

// VariantIDsBySKU resolves database-assigned variant ids for the given SKUs
func (s *PgStore) VariantIDsBySKU(ctx context.Context, skus []string) (map[string]int64, error) {
	if len(skus) == 0 {
		return map[string]int64{}, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, sku FROM product_variants WHERE sku = ANY($1)
	`, skus)
	if err != nil {
		return nil, fmt.Errorf("selecting variant ids: %w", err)
	}
	defer rows.Close()

	skuToID := make(map[string]int64, len(skus))
	for rows.Next() {
		var id int64
		var sku string
		if err := rows.Scan(&id, &sku); err != nil {
			return nil, fmt.Errorf("scanning variant id row: %w", err)
		}
		skuToID[sku] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading variant id rows: %w", err)
	}
	return skuToID, nil
}

// AppendHistory inserts snapshot rows
func (s *PgStore) AppendHistory(ctx context.Context, history []catalog.HistoryRecord) error {
	if len(history) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, h := range history {
		batch.Queue(`
			INSERT INTO variant_history (
				variant_id, sku, price, regular_price, discount_percent,
				in_stock, status, recorded_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, h.VariantID, h.SKU, h.Price, h.RegularPrice, h.DiscountPercent,
			h.InStock, h.Status, h.RecordedAt)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

// ReplaceTags deletes all tag rows for productIDs, then inserts tags
func (s *PgStore) ReplaceTags(ctx context.Context, productIDs []string, tags []catalog.TagRecord) error {
	if len(productIDs) == 0 {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `
		DELETE FROM product_tags WHERE product_id = ANY($1)
	`, productIDs); err != nil {
		return fmt.Errorf("deleting old tags: %w", err)
	}

	if len(tags) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(`
			INSERT INTO product_tags (product_id, tag_name, tag_type, tag_value)
			VALUES ($1, $2, $3, $4)
		`, t.ProductID, t.TagName, t.TagType, t.TagValue)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting tags: %w", err)
	}
	return nil
}

// ReplaceOptions deletes all option rows for productIDs, then inserts options
func (s *PgStore) ReplaceOptions(ctx context.Context, productIDs []string, options []catalog.OptionRecord) error {
	if len(productIDs) == 0 {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `
		DELETE FROM product_options WHERE product_id = ANY($1)
	`, productIDs); err != nil {
		return fmt.Errorf("deleting old options: %w", err)
	}

	if len(options) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, o := range options {
		batch.Queue(`
			INSERT INTO product_options (product_id, option_title, option_values)
			VALUES ($1, $2, $3)
		`, o.ProductID, o.OptionTitle, o.OptionValues)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting options: %w", err)
	}
	return nil
}

// ReplaceSpecs deletes all spec rows for productIDs, then inserts specs
func (s *PgStore) ReplaceSpecs(ctx context.Context, productIDs []string, specs []catalog.SpecRecord) error {
	if len(productIDs) == 0 {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `
		DELETE FROM product_specs WHERE product_id = ANY($1)
	`, productIDs); err != nil {
		return fmt.Errorf("deleting old specs: %w", err)
	}

	if len(specs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sp := range specs {
		batch.Queue(`
			INSERT INTO product_specs (
				product_id, spec_section, spec_label, spec_value, spec_icon, spec_note
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, sp.ProductID, sp.Section, sp.Label, sp.Value, sp.Icon, sp.Note)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting specs: %w", err)
	}
	return nil
}

// ReplaceLinks deletes all link rows for productIDs, then inserts links
func (s *PgStore) ReplaceLinks(ctx context.Context, productIDs []string, links []catalog.LinkRecord) error {
	if len(productIDs) == 0 {
		return nil
	}

	if _, err := s.pool.Exec(ctx, `
		DELETE FROM linked_products WHERE product_id = ANY($1)
	`, productIDs); err != nil {
		return fmt.Errorf("deleting old links: %w", err)
	}

	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(`
			INSERT INTO linked_products (product_id, linked_product_id, link_type)
			VALUES ($1, $2, $3)
		`, l.ProductID, l.LinkedProductID, l.LinkType)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting links: %w", err)
	}
	return nil
}
