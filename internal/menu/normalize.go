package menu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defaults carries document-level values filled in for fields the
// backend left unset.
type Defaults struct {
	Currency         string
	Language         string
	ExtractionMethod string
}

// nonPriceChars matches everything that is not a digit or decimal point.
var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Normalize converts the loosely-typed document decoded from the
// backend response into the canonical structure. It assigns stable
// positional identifiers, coerces prices, fills safe defaults, and
// recomputes aggregate metadata from the actual slices.
//
// Identifiers are positional (cat_1, cat_1_item_2) rather than
// time-based so concurrent calls cannot collide and tests are
// reproducible.
func Normalize(doc map[string]any, d Defaults) *ParsedMenuStructure {
	rawCategories, _ := doc["categories"].([]any)

	categories := make([]Category, 0, len(rawCategories))
	totalItems := 0

	for i, rc := range rawCategories {
		rawCat, _ := rc.(map[string]any)
		cat := Category{
			ID:          fmt.Sprintf("cat_%d", i+1),
			Name:        stringOr(rawCat["name"], fmt.Sprintf("Category %d", i+1)),
			Description: stringOr(rawCat["description"], ""),
		}

		rawItems, _ := rawCat["items"].([]any)
		cat.Items = make([]Item, 0, len(rawItems))
		for j, ri := range rawItems {
			rawItem, _ := ri.(map[string]any)
			item := normalizeItem(rawItem, cat.ID, j, d)
			cat.Items = append(cat.Items, item)
		}
		totalItems += len(cat.Items)
		categories = append(categories, cat)
	}

	return &ParsedMenuStructure{
		Categories: categories,
		Metadata: Metadata{
			TotalItems:       totalItems,
			TotalCategories:  len(categories),
			Currency:         d.Currency,
			Language:         d.Language,
			ExtractionMethod: d.ExtractionMethod,
			Confidence:       advisoryConfidence(doc),
		},
	}
}

func normalizeItem(raw map[string]any, catID string, index int, d Defaults) Item {
	price, original := NormalizePrice(raw["price"])
	if op := stringOr(raw["originalPrice"], ""); op != "" {
		original = op
	}

	item := Item{
		ID:            fmt.Sprintf("%s_item_%d", catID, index+1),
		Name:          stringOr(raw["name"], fmt.Sprintf("Item %d", index+1)),
		Description:   stringOr(raw["description"], ""),
		Price:         price,
		OriginalPrice: original,
		Currency:      stringOr(raw["currency"], d.Currency),
		Available:     boolOr(raw["available"], true),
		TasteTags:     stringSlice(raw["tasteTags"]),
		PromoTags:     stringSlice(raw["promoTags"]),
		Allergens:     stringSlice(raw["allergens"]),
	}

	// spiceLevel passes through only when numeric; absent means
	// unknown, not zero.
	if f, ok := asFloat(raw["spiceLevel"]); ok {
		level := int(f)
		item.SpiceLevel = &level
	}

	return item
}

// NormalizePrice coerces a backend price value to a non-negative number
// and returns the original textual form alongside it.
//
// Numeric values pass through. Strings are reduced to digits and
// decimal points before parsing, so "₹299.99" yields 299.99. The
// stripping is deliberately locale-blind: "12,50" becomes 1250, the
// comma treated as a separator, never as a decimal mark. Anything
// unparseable yields 0.
func NormalizePrice(v any) (price float64, original string) {
	switch val := v.(type) {
	case nil:
		return 0, ""
	case float64:
		original = strconv.FormatFloat(val, 'f', -1, 64)
		if val < 0 {
			return 0, original
		}
		return val, original
	case int:
		original = strconv.Itoa(val)
		if val < 0 {
			return 0, original
		}
		return float64(val), original
	case string:
		original = val
		cleaned := nonPriceChars.ReplaceAllString(val, "")
		if cleaned == "" {
			return 0, original
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || parsed < 0 {
			return 0, original
		}
		return parsed, original
	default:
		return 0, fmt.Sprintf("%v", val)
	}
}

// advisoryConfidence reads the backend's confidence claim when it is a
// sane number in [0,1]. Unlike the totals, this field has no local
// source of truth, so the advisory value is the best available.
func advisoryConfidence(doc map[string]any) float64 {
	meta, _ := doc["metadata"].(map[string]any)
	if f, ok := asFloat(meta["confidence"]); ok && f >= 0 && f <= 1 {
		return f
	}
	return 0.5
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func boolOr(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
