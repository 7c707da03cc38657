package menu

import "testing"

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name         string
		input        any
		wantPrice    float64
		wantOriginal string
	}{
		{"plain number", float64(200), 200, "200"},
		{"decimal number", 12.5, 12.5, "12.5"},
		{"currency prefix string", "₹299.99", 299.99, "₹299.99"},
		{"dollar string", "$8.50", 8.5, "$8.50"},
		{"thousands separator", "$1,299.00", 1299, "$1,299.00"},
		{"comma decimal treated as separator", "12,50", 1250, "12,50"},
		{"no digits", "abc", 0, "abc"},
		{"empty string", "", 0, ""},
		{"negative number clamps", float64(-5), 0, "-5"},
		{"minus sign stripped", "-10.00", 10, "-10.00"},
		{"nil", nil, 0, ""},
		{"bool falls through", true, 0, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, original := NormalizePrice(tt.input)
			if price != tt.wantPrice {
				t.Errorf("NormalizePrice(%v) price = %v, want %v", tt.input, price, tt.wantPrice)
			}
			if original != tt.wantOriginal {
				t.Errorf("NormalizePrice(%v) original = %q, want %q", tt.input, original, tt.wantOriginal)
			}
		})
	}
}

func TestNormalizeAssignsPositionalIDs(t *testing.T) {
	doc := map[string]any{
		"categories": []any{
			map[string]any{
				"name": "Starters",
				"items": []any{
					map[string]any{"name": "Samosa", "price": "₹120"},
					map[string]any{"name": "Pakora", "price": "₹90"},
				},
			},
			map[string]any{
				"name": "Mains",
				"items": []any{
					map[string]any{"name": "Butter Chicken", "price": float64(350)},
				},
			},
		},
	}

	s := Normalize(doc, Defaults{Currency: "INR", Language: "en", ExtractionMethod: "llm/mock"})

	if len(s.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(s.Categories))
	}
	if s.Categories[0].ID != "cat_1" || s.Categories[1].ID != "cat_2" {
		t.Errorf("category IDs = %q, %q; want cat_1, cat_2", s.Categories[0].ID, s.Categories[1].ID)
	}
	if got := s.Categories[0].Items[1].ID; got != "cat_1_item_2" {
		t.Errorf("item ID = %q, want cat_1_item_2", got)
	}
	if got := s.Categories[1].Items[0].ID; got != "cat_2_item_1" {
		t.Errorf("item ID = %q, want cat_2_item_1", got)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	doc := map[string]any{
		"categories": []any{
			map[string]any{
				"name": "Starters",
				"items": []any{
					map[string]any{"name": "Samosa", "price": "₹120"},
				},
			},
		},
	}

	s := Normalize(doc, Defaults{Currency: "INR", Language: "hi", ExtractionMethod: "llm/mock"})
	item := s.Categories[0].Items[0]

	if item.Currency != "INR" {
		t.Errorf("item currency = %q, want INR from defaults", item.Currency)
	}
	if !item.Available {
		t.Error("availability should default to true")
	}
	if item.Price != 120 {
		t.Errorf("price = %v, want 120", item.Price)
	}
	if item.OriginalPrice != "₹120" {
		t.Errorf("original price = %q, want ₹120", item.OriginalPrice)
	}
	if item.TasteTags == nil || item.PromoTags == nil || item.Allergens == nil {
		t.Error("tag slices should be empty, not nil")
	}
	if item.SpiceLevel != nil {
		t.Error("spice level should stay nil when absent")
	}
	if s.Metadata.Language != "hi" {
		t.Errorf("metadata language = %q, want hi", s.Metadata.Language)
	}
	if s.Metadata.ExtractionMethod != "llm/mock" {
		t.Errorf("extraction method = %q, want llm/mock", s.Metadata.ExtractionMethod)
	}
}

func TestNormalizeRecomputesTotals(t *testing.T) {
	// The backend's own totals are lies; they must be recomputed from
	// the actual slices.
	doc := map[string]any{
		"categories": []any{
			map[string]any{
				"name": "Starters",
				"items": []any{
					map[string]any{"name": "Samosa", "price": float64(120)},
					map[string]any{"name": "Pakora", "price": float64(90)},
				},
			},
		},
		"metadata": map[string]any{
			"totalItems":      float64(99),
			"totalCategories": float64(42),
			"confidence":      0.85,
		},
	}

	s := Normalize(doc, Defaults{Currency: "INR", Language: "en"})

	if s.Metadata.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", s.Metadata.TotalItems)
	}
	if s.Metadata.TotalCategories != 1 {
		t.Errorf("TotalCategories = %d, want 1", s.Metadata.TotalCategories)
	}
	if s.Metadata.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85 from backend", s.Metadata.Confidence)
	}
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		name string
		meta any
		want float64
	}{
		{"valid confidence", map[string]any{"confidence": 0.92}, 0.92},
		{"out of range high", map[string]any{"confidence": 3.2}, 0.5},
		{"negative", map[string]any{"confidence": -0.1}, 0.5},
		{"non numeric", map[string]any{"confidence": "high"}, 0.5},
		{"missing metadata", nil, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{"categories": []any{}}
			if tt.meta != nil {
				doc["metadata"] = tt.meta
			}
			s := Normalize(doc, Defaults{})
			if s.Metadata.Confidence != tt.want {
				t.Errorf("Confidence = %v, want %v", s.Metadata.Confidence, tt.want)
			}
		})
	}
}

func TestNormalizeSpiceLevelAndTags(t *testing.T) {
	doc := map[string]any{
		"categories": []any{
			map[string]any{
				"name": "Mains",
				"items": []any{
					map[string]any{
						"name":       "Vindaloo",
						"price":      float64(320),
						"spiceLevel": float64(4),
						"tasteTags":  []any{"spicy", "tangy"},
						"allergens":  []any{"dairy", ""},
						"available":  false,
					},
				},
			},
		},
	}

	s := Normalize(doc, Defaults{Currency: "INR"})
	item := s.Categories[0].Items[0]

	if item.SpiceLevel == nil || *item.SpiceLevel != 4 {
		t.Errorf("SpiceLevel = %v, want 4", item.SpiceLevel)
	}
	if len(item.TasteTags) != 2 {
		t.Errorf("TasteTags = %v, want 2 entries", item.TasteTags)
	}
	if len(item.Allergens) != 1 {
		t.Errorf("Allergens = %v, empty strings should be dropped", item.Allergens)
	}
	if item.Available {
		t.Error("explicit available=false must be preserved")
	}
}
