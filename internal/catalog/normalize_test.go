package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChenyqThu/UIStoreMonitor/internal/uistore"
)

var testStamp = time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)

func money(amount int) *uistore.Money {
	return &uistore.Money{Amount: amount, Currency: "USD"}
}

func sampleProduct() uistore.Product {
	note := "PoE adapter included"
	return uistore.Product{
		ID:            "prod-1",
		Slug:          "dream-router",
		Name:          "Dream Router",
		Title:         "UniFi Dream Router",
		SubcategoryID: "subcat-1",
		Status:        "Available",
		MinDisplayPrice: money(7900),
		Thumbnail:     &uistore.Thumbnail{URL: "https://img.example/udr.png"},
		Tags: []uistore.Tag{
			{Name: "feature:10g-sfp-plus"},
			{Name: "black-friday"},
		},
		Variants: []uistore.Variant{
			{
				ID:                  "var-1",
				SKU:                 "UDR-US",
				DisplayPrice:        money(7900),
				DisplayRegularPrice: money(9900),
				IsVisibleInStore:    true,
			},
			{
				ID:           "var-2",
				SKU:          "UDR-EU",
				DisplayPrice: money(12900),
				HasUICare:    true,
			},
		},
		Options: []uistore.Option{
			{Title: "Color", Values: []uistore.OptionValue{{Title: "White"}, {Title: "Black"}}},
		},
		TechnicalSpecification: &uistore.TechnicalSpec{
			Sections: []uistore.SpecSection{
				{
					Section: uistore.SpecSectionDef{Label: "Networking"},
					Features: []uistore.SpecFeature{
						{Value: "1 Gbps", Feature: uistore.SpecFeatureDef{Label: "Throughput", Icon: "speed"}},
						{Value: "4", Feature: uistore.SpecFeatureDef{Label: "Ports", Icon: "ports", Note: &note}},
					},
				},
			},
		},
		LinkedProducts: []uistore.LinkedProduct{{ID: "prod-2"}},
	}
}

func TestNormalizeProduct(t *testing.T) {
	np, err := Normalize(sampleProduct(), "all-cloud-gateways", "https://store.example/p/dream-router", testStamp)
	require.NoError(t, err)

	p := np.Product
	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, "all-cloud-gateways", p.CategorySlug)
	assert.Equal(t, "https://store.example/p/dream-router", p.URL)
	assert.Equal(t, "Available", p.Status)
	assert.Equal(t, 2, p.VariantCount)
	assert.True(t, p.HasDiscount)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, testStamp, p.LastUpdated)

	// Min/max derived from current variant prices, in major units
	require.NotNil(t, p.MinPrice)
	require.NotNil(t, p.MaxPrice)
	assert.Equal(t, 79.0, *p.MinPrice)
	assert.Equal(t, 129.0, *p.MaxPrice)
}

func TestNormalizeVariants(t *testing.T) {
	np, err := Normalize(sampleProduct(), "all-cloud-gateways", "", testStamp)
	require.NoError(t, err)
	require.Len(t, np.Variants, 2)

	discounted := np.Variants[0]
	assert.Equal(t, "UDR-US", discounted.SKU)
	require.NotNil(t, discounted.CurrentPrice)
	assert.Equal(t, 79.0, *discounted.CurrentPrice)
	require.NotNil(t, discounted.RegularPrice)
	assert.Equal(t, 99.0, *discounted.RegularPrice)
	require.NotNil(t, discounted.DiscountPercent)
	assert.Equal(t, 20, *discounted.DiscountPercent)
	assert.True(t, discounted.InStock)
	assert.True(t, discounted.IsVisible)
	assert.False(t, discounted.HasUICare)

	fullPrice := np.Variants[1]
	assert.Nil(t, fullPrice.RegularPrice)
	assert.Nil(t, fullPrice.DiscountPercent, "discount is never derived from a lone price")
	assert.True(t, fullPrice.HasUICare)
}

func TestNormalizeChildren(t *testing.T) {
	np, err := Normalize(sampleProduct(), "all-cloud-gateways", "", testStamp)
	require.NoError(t, err)

	require.Len(t, np.Tags, 2)
	assert.Equal(t, TagRecord{ProductID: "prod-1", TagName: "feature:10g-sfp-plus", TagType: "feature", TagValue: "10g-sfp-plus"}, np.Tags[0])
	assert.Equal(t, "promo", np.Tags[1].TagType)

	require.Len(t, np.Options, 1)
	assert.Equal(t, "Color", np.Options[0].OptionTitle)
	assert.Equal(t, []string{"White", "Black"}, np.Options[0].OptionValues)

	require.Len(t, np.Specs, 2)
	assert.Equal(t, "Networking", np.Specs[0].Section)
	assert.Equal(t, "Throughput", np.Specs[0].Label)
	assert.Nil(t, np.Specs[0].Note)
	require.NotNil(t, np.Specs[1].Note, "feature definition note is the fallback")
	assert.Equal(t, "PoE adapter included", *np.Specs[1].Note)

	assert.Equal(t, []string{"prod-2"}, np.LinkedIDs)
}

func TestNormalizeSkipsProductWithoutVariants(t *testing.T) {
	p := sampleProduct()
	p.Variants = nil

	np, err := Normalize(p, "all-cloud-gateways", "", testStamp)
	assert.Nil(t, np)

	var skip *SkipError
	require.True(t, errors.As(err, &skip))
	assert.Equal(t, "prod-1", skip.ProductID)
}

func TestNormalizeUnavailableProduct(t *testing.T) {
	p := sampleProduct()
	p.Status = "Sold Out"

	np, err := Normalize(p, "all-cloud-gateways", "", testStamp)
	require.NoError(t, err)
	assert.False(t, np.Variants[0].InStock)
	assert.Equal(t, "Sold Out", np.Product.Status)
}

func TestNormalizeDefaults(t *testing.T) {
	p := sampleProduct()
	p.Status = ""
	p.Title = ""
	p.MinDisplayPrice = nil
	p.Thumbnail = nil

	np, err := Normalize(p, "all-cloud-gateways", "", testStamp)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", np.Product.Status)
	assert.Nil(t, np.Product.Title)
	assert.Equal(t, "USD", np.Product.Currency)
	assert.Nil(t, np.Product.ImageURL)
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  *float64
		regular  *float64
		expected *int
	}{
		{"Twenty percent", f(79), f(99), i(20)},
		{"Half price", f(50), f(100), i(50)},
		{"No regular price", f(79), nil, nil},
		{"No current price", nil, f(99), nil},
		{"Zero regular price", f(79), f(0), nil},
		{"Rounds to nearest", f(66.5), f(100), i(34)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountPercent(tt.current, tt.regular)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestMinorUnitConversion(t *testing.T) {
	np, err := Normalize(uistore.Product{
		ID:   "p",
		Slug: "p",
		Name: "P",
		Variants: []uistore.Variant{
			{ID: "v", SKU: "SKU-1", DisplayPrice: money(9900)},
		},
	}, "cat", "", testStamp)
	require.NoError(t, err)
	require.NotNil(t, np.Variants[0].CurrentPrice)
	assert.Equal(t, 99.0, *np.Variants[0].CurrentPrice)
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
