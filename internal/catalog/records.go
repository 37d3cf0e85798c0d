package catalog

import "time"

// ProductRecord is one row of the products table
type ProductRecord struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Title            *string    `json:"title,omitempty"`
	ShortDescription *string    `json:"shortDescription,omitempty"`
	Slug             string     `json:"slug"`
	CategorySlug     string     `json:"categorySlug"`
	SubcategoryID    string     `json:"subcategoryId"`
	CollectionSlug   *string    `json:"collectionSlug,omitempty"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	URL              string     `json:"url"`
	Status           string     `json:"status"`
	MinPrice         *float64   `json:"minPrice,omitempty"`
	MaxPrice         *float64   `json:"maxPrice,omitempty"`
	Currency         string     `json:"currency"`
	HasDiscount      bool       `json:"hasDiscount"`
	VariantCount     int        `json:"variantCount"`
	LastUpdated      time.Time  `json:"lastUpdated"`
}

// VariantRecord is one row of the product_variants table.
// SKU is globally unique and serves as the natural upsert key; the serial id
// assigned by the database is resolved separately for history correlation.
type VariantRecord struct {
	ProductID       string    `json:"productId"`
	VariantID       string    `json:"variantId"`
	SKU             string    `json:"sku"`
	DisplayName     *string   `json:"displayName,omitempty"`
	CurrentPrice    *float64  `json:"currentPrice,omitempty"`
	RegularPrice    *float64  `json:"regularPrice,omitempty"`
	DiscountPercent *int      `json:"discountPercent,omitempty"`
	Currency        string    `json:"currency"`
	InStock         bool      `json:"inStock"`
	Status          string    `json:"status"`
	IsVisible       bool      `json:"isVisible"`
	HasUICare       bool      `json:"hasUiCare"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// TagRecord is one row of the product_tags table
type TagRecord struct {
	ProductID string `json:"productId"`
	TagName   string `json:"tagName"`
	TagType   string `json:"tagType"`
	TagValue  string `json:"tagValue"`
}

// OptionRecord is one row of the product_options table
type OptionRecord struct {
	ProductID    string   `json:"productId"`
	OptionTitle  string   `json:"optionTitle"`
	OptionValues []string `json:"optionValues"`
}

// SpecRecord is one row of the product_specs table
type SpecRecord struct {
	ProductID string  `json:"productId"`
	Section   string  `json:"section"`
	Label     string  `json:"label"`
	Value     string  `json:"value"`
	Icon      string  `json:"icon"`
	Note      *string `json:"note,omitempty"`
}

// LinkRecord is one row of the linked_products table
type LinkRecord struct {
	ProductID       string `json:"productId"`
	LinkedProductID string `json:"linkedProductId"`
	LinkType        string `json:"linkType"`
}

// HistoryRecord is one append-only row of the variant_history table
type HistoryRecord struct {
	VariantID       int64     `json:"variantId"`
	SKU             string    `json:"sku"`
	Price           *float64  `json:"price,omitempty"`
	RegularPrice    *float64  `json:"regularPrice,omitempty"`
	DiscountPercent *int      `json:"discountPercent,omitempty"`
	InStock         bool      `json:"inStock"`
	Status          string    `json:"status"`
	RecordedAt      time.Time `json:"recordedAt"`
}

// NormalizedProduct is the full relational record set derived from one raw
// upstream product
type NormalizedProduct struct {
	Product  ProductRecord
	Variants []VariantRecord
	Tags     []TagRecord
	Options  []OptionRecord
	Specs    []SpecRecord
	// LinkedIDs are upstream ids of related products; they become LinkRecords
	// only for targets present in the run's synced product set
	LinkedIDs []string
}

// Batch accumulates normalized record sets across a run
type Batch struct {
	Products []ProductRecord
	Variants []VariantRecord
	Tags     []TagRecord
	Options  []OptionRecord
	Specs    []SpecRecord
	// Links per source product id, unresolved against the run's product set
	LinkedIDs map[string][]string
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{LinkedIDs: make(map[string][]string)}
}

// Add appends one normalized product to the batch
func (b *Batch) Add(np *NormalizedProduct) {
	b.Products = append(b.Products, np.Product)
	b.Variants = append(b.Variants, np.Variants...)
	b.Tags = append(b.Tags, np.Tags...)
	b.Options = append(b.Options, np.Options...)
	b.Specs = append(b.Specs, np.Specs...)
	if len(np.LinkedIDs) > 0 {
		b.LinkedIDs[np.Product.ID] = append(b.LinkedIDs[np.Product.ID], np.LinkedIDs...)
	}
}

// ProductIDs returns the set of product ids present in the batch
func (b *Batch) ProductIDs() map[string]bool {
	ids := make(map[string]bool, len(b.Products))
	for _, p := range b.Products {
		ids[p.ID] = true
	}
	return ids
}
