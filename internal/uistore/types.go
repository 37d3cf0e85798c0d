package uistore

// Money is a price in minor currency units (cents)
type Money struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// Tag is a raw descriptive label on a product
type Tag struct {
	Name string `json:"name"`
}

// OptionValue is one allowed value of a product option
type OptionValue struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Option is a named selector (e.g. "Color") for multi-variant products
type Option struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Values []OptionValue `json:"values"`
}

// Variant is one purchasable SKU of a product
type Variant struct {
	ID                  string `json:"id"`
	SKU                 string `json:"sku"`
	HasUICare           bool   `json:"hasUiCare"`
	DisplayPrice        *Money `json:"displayPrice"`
	DisplayRegularPrice *Money `json:"displayRegularPrice"`
	IsVisibleInStore    bool   `json:"isVisibleInStore"`
}

// SpecFeatureDef is the feature definition a spec value refers to
type SpecFeatureDef struct {
	ID    string  `json:"id"`
	Icon  string  `json:"icon"`
	Label string  `json:"label"`
	Note  *string `json:"note"`
}

// SpecFeature is one technical attribute value
type SpecFeature struct {
	ID      string         `json:"id"`
	Value   string         `json:"value"`
	Note    *string        `json:"note"`
	Feature SpecFeatureDef `json:"feature"`
}

// SpecSectionDef labels a group of spec features
type SpecSectionDef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Type  string `json:"type"`
}

// SpecSection is a labeled group of technical attributes
type SpecSection struct {
	ID       string         `json:"id"`
	Section  SpecSectionDef `json:"section"`
	Features []SpecFeature  `json:"features"`
}

// TechnicalSpec is the full technical specification of a product
type TechnicalSpec struct {
	ID       string        `json:"id"`
	Sections []SpecSection `json:"sections"`
}

// LinkedProduct is a reference to a related product
type LinkedProduct struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Product is one raw catalog entry as returned by the data API
type Product struct {
	ID                     string         `json:"id"`
	Slug                   string         `json:"slug"`
	Name                   string         `json:"name"`
	Title                  string         `json:"title"`
	ShortDescription       *string        `json:"shortDescription"`
	CollectionSlug         *string        `json:"collectionSlug"`
	SubcategoryID          string         `json:"subcategoryId"`
	Status                 string         `json:"status"`
	MinDisplayPrice        *Money         `json:"minDisplayPrice"`
	MinDisplayRegularPrice *Money         `json:"minDisplayRegularPrice"`
	Thumbnail              *Thumbnail     `json:"thumbnail"`
	Tags                   []Tag          `json:"tags"`
	Variants               []Variant      `json:"variants"`
	Options                []Option       `json:"options"`
	TechnicalSpecification *TechnicalSpec `json:"technicalSpecification"`
	LinkedProducts         []LinkedProduct `json:"linkedProducts"`
}

// Thumbnail is a product image reference
type Thumbnail struct {
	URL string `json:"url"`
}

// SubCategory groups products within a category listing
type SubCategory struct {
	ID       string    `json:"id"`
	Products []Product `json:"products"`
}

// categoryResponse is the Next.js data envelope around a category listing
type categoryResponse struct {
	PageProps struct {
		SubCategories []SubCategory `json:"subCategories"`
	} `json:"pageProps"`
}
