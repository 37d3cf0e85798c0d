package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/ChenyqThu/UIStoreMonitor/internal/uistore"
)

// statusAvailable is the storefront status meaning a product is purchasable
const statusAvailable = "Available"

// defaultCurrency is assumed when the upstream payload omits one
const defaultCurrency = "USD"

// SkipError signals a product that cannot be normalized. It is recoverable:
// the product is logged and excluded from the batch, the run continues.
type SkipError struct {
	ProductID string
	Name      string
	Reason    string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping product %s (%s): %s", e.Name, e.ProductID, e.Reason)
}

// Normalize transforms one raw upstream product plus its category context into
// the relational record set. productURL is the public storefront URL for the
// product within categorySlug; now stamps every record of the run.
//
// Products without variants are rejected with a SkipError: a product with no
// purchasable SKU cannot be priced or tracked.
func Normalize(p uistore.Product, categorySlug, productURL string, now time.Time) (*NormalizedProduct, error) {
	if len(p.Variants) == 0 {
		return nil, &SkipError{ProductID: p.ID, Name: p.Name, Reason: "no variants"}
	}

	status := p.Status
	if status == "" {
		status = "Unknown"
	}
	inStock := p.Status == statusAvailable

	currency := defaultCurrency
	if p.MinDisplayPrice != nil && p.MinDisplayPrice.Currency != "" {
		currency = p.MinDisplayPrice.Currency
	}

	variants := make([]VariantRecord, 0, len(p.Variants))
	var minPrice, maxPrice *float64
	hasDiscount := false

	for _, v := range p.Variants {
		current := toMajorUnits(v.DisplayPrice)
		regular := toMajorUnits(v.DisplayRegularPrice)
		if v.DisplayRegularPrice != nil {
			hasDiscount = true
		}

		if current != nil {
			if minPrice == nil || *current < *minPrice {
				minPrice = current
			}
			if maxPrice == nil || *current > *maxPrice {
				maxPrice = current
			}
		}

		variantCurrency := defaultCurrency
		if v.DisplayPrice != nil && v.DisplayPrice.Currency != "" {
			variantCurrency = v.DisplayPrice.Currency
		}

		variants = append(variants, VariantRecord{
			ProductID:       p.ID,
			VariantID:       v.ID,
			SKU:             v.SKU,
			CurrentPrice:    current,
			RegularPrice:    regular,
			DiscountPercent: DiscountPercent(current, regular),
			Currency:        variantCurrency,
			InStock:         inStock,
			Status:          status,
			IsVisible:       v.IsVisibleInStore,
			HasUICare:       v.HasUICare,
			LastUpdated:     now,
		})
	}

	product := ProductRecord{
		ID:               p.ID,
		Name:             p.Name,
		Title:            strOrNil(p.Title),
		ShortDescription: emptyToNil(p.ShortDescription),
		Slug:             p.Slug,
		CategorySlug:     categorySlug,
		SubcategoryID:    p.SubcategoryID,
		CollectionSlug:   emptyToNil(p.CollectionSlug),
		URL:              productURL,
		Status:           status,
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
		Currency:         currency,
		HasDiscount:      hasDiscount,
		VariantCount:     len(p.Variants),
		LastUpdated:      now,
	}
	if p.Thumbnail != nil && p.Thumbnail.URL != "" {
		product.ImageURL = &p.Thumbnail.URL
	}

	tags := make([]TagRecord, 0, len(p.Tags))
	for _, t := range p.Tags {
		class := ClassifyTag(t.Name)
		tags = append(tags, TagRecord{
			ProductID: p.ID,
			TagName:   t.Name,
			TagType:   class.Type,
			TagValue:  class.Value,
		})
	}

	options := make([]OptionRecord, 0, len(p.Options))
	for _, o := range p.Options {
		values := make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			values = append(values, v.Title)
		}
		options = append(options, OptionRecord{
			ProductID:    p.ID,
			OptionTitle:  o.Title,
			OptionValues: values,
		})
	}

	var specs []SpecRecord
	if p.TechnicalSpecification != nil {
		for _, section := range p.TechnicalSpecification.Sections {
			for _, feature := range section.Features {
				note := feature.Note
				if note == nil {
					note = feature.Feature.Note
				}
				specs = append(specs, SpecRecord{
					ProductID: p.ID,
					Section:   section.Section.Label,
					Label:     feature.Feature.Label,
					Value:     feature.Value,
					Icon:      feature.Feature.Icon,
					Note:      note,
				})
			}
		}
	}

	linkedIDs := make([]string, 0, len(p.LinkedProducts))
	for _, lp := range p.LinkedProducts {
		linkedIDs = append(linkedIDs, lp.ID)
	}

	return &NormalizedProduct{
		Product:   product,
		Variants:  variants,
		Tags:      tags,
		Options:   options,
		Specs:     specs,
		LinkedIDs: linkedIDs,
	}, nil
}

// toMajorUnits converts an upstream minor-unit amount (cents) to a
// major-unit decimal value
func toMajorUnits(m *uistore.Money) *float64 {
	if m == nil {
		return nil
	}
	v := float64(m.Amount) / 100
	return &v
}

// DiscountPercent computes round((1 - current/regular) * 100) when both
// prices are present and regular is positive, nil otherwise. A discount is
// never derived from a lone price.
func DiscountPercent(current, regular *float64) *int {
	if current == nil || regular == nil || *regular <= 0 {
		return nil
	}
	pct := int(math.Round((1 - *current / *regular) * 100))
	return &pct
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
