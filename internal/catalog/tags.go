package catalog

import "strings"

// Tag types produced by ClassifyTag
const (
	TagTypeFeature = "feature"
	TagTypePoE     = "poe"
	TagTypeSort    = "sort"
	TagTypePromo   = "promo"
	TagTypeUI      = "ui"
	TagTypeOther   = "other"
)

// TagClass is the (type, value) pair derived from a raw tag string
type TagClass struct {
	Type  string
	Value string
}

// tagRule is one ordered classification heuristic. Rules are evaluated in
// order and the first match wins; new upstream tag conventions are added as
// additional rules without touching call sites.
type tagRule struct {
	name     string
	classify func(raw string) (TagClass, bool)
}

var promoKeywords = []string{"black-friday", "holiday-offer", "cyber-monday", "sale", "new", "limited"}

var uiKeywords = []string{"support-banner", "banner", "badge"}

var tagRules = []tagRule{
	{name: "prefixed", classify: classifyPrefixed},
	{name: "promo", classify: keywordRule(promoKeywords, TagTypePromo)},
	{name: "ui", classify: keywordRule(uiKeywords, TagTypeUI)},
}

// ClassifyTag maps a raw tag string to a (type, value) pair.
// Examples:
//
//	"feature:10g-sfp-plus" -> (feature, "10g-sfp-plus")
//	"black-friday"         -> (promo, "black-friday")
//	"pro-sort-weight:5020" -> (sort, "5020")
//
// Pure and deterministic; unrecognized tags fall through to (other, raw).
func ClassifyTag(raw string) TagClass {
	for _, rule := range tagRules {
		if class, ok := rule.classify(raw); ok {
			return class
		}
	}
	return TagClass{Type: TagTypeOther, Value: raw}
}

// classifyPrefixed handles colon-separated namespace tags
func classifyPrefixed(raw string) (TagClass, bool) {
	idx := strings.Index(raw, ":")
	if idx < 0 {
		return TagClass{}, false
	}
	prefix := raw[:idx]
	suffix := raw[idx+1:]

	switch {
	case prefix == "feature":
		return TagClass{Type: TagTypeFeature, Value: suffix}, true
	case prefix == "poe":
		return TagClass{Type: TagTypePoE, Value: suffix}, true
	case strings.Contains(prefix, "sort"):
		return TagClass{Type: TagTypeSort, Value: suffix}, true
	}

	// Unknown namespace: the prefix itself becomes the type
	return TagClass{Type: prefix, Value: suffix}, true
}

// keywordRule builds a rule matching any keyword as a case-insensitive substring
func keywordRule(keywords []string, tagType string) func(string) (TagClass, bool) {
	return func(raw string) (TagClass, bool) {
		lower := strings.ToLower(raw)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return TagClass{Type: tagType, Value: raw}, true
			}
		}
		return TagClass{}, false
	}
}
