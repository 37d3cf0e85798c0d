package catalog

import (
	"testing"
)

func TestClassifyTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TagClass
	}{
		{"Feature prefix", "feature:10g-sfp-plus", TagClass{Type: "feature", Value: "10g-sfp-plus"}},
		{"PoE prefix", "poe:af", TagClass{Type: "poe", Value: "af"}},
		{"Sort weight prefix", "pro-sort-weight:5020", TagClass{Type: "sort", Value: "5020"}},
		{"Plain sort prefix", "sort:100", TagClass{Type: "sort", Value: "100"}},
		{"Unknown prefix becomes type", "wifi:6e", TagClass{Type: "wifi", Value: "6e"}},
		{"Promo keyword", "black-friday", TagClass{Type: "promo", Value: "black-friday"}},
		{"Promo keyword substring", "Holiday-Offer-2024", TagClass{Type: "promo", Value: "Holiday-Offer-2024"}},
		{"Cyber monday", "cyber-monday", TagClass{Type: "promo", Value: "cyber-monday"}},
		{"UI keyword", "support-banner", TagClass{Type: "ui", Value: "support-banner"}},
		{"Badge keyword", "top-badge", TagClass{Type: "ui", Value: "top-badge"}},
		{"Fallback", "random-label", TagClass{Type: "other", Value: "random-label"}},
		{"Empty string", "", TagClass{Type: "other", Value: ""}},
		{"Colon with empty suffix", "feature:", TagClass{Type: "feature", Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyTag(tt.input)
			if result != tt.expected {
				t.Errorf("ClassifyTag(%q) = %+v, want %+v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClassifyTagColonBeatsKeywords(t *testing.T) {
	// The colon rule runs first: a namespaced tag containing a promo word
	// still classifies by its prefix.
	result := ClassifyTag("feature:new-gen")
	if result.Type != "feature" || result.Value != "new-gen" {
		t.Errorf("ClassifyTag(\"feature:new-gen\") = %+v, want prefix rule to win", result)
	}
}
