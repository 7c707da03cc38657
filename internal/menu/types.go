// Package menu defines the canonical menu graph produced by the
// ingestion pipeline, plus the normalization and validation stages that
// turn an untrusted backend document into that graph.
package menu

// Options are the recognized parsing options. All default to false;
// each one is threaded into prompt construction.
type Options struct {
	// PreserveOriginalFormat keeps source wording verbatim.
	PreserveOriginalFormat bool `json:"preserve_original_format"`
	// GenerateDescriptions synthesizes descriptions for items that lack one.
	GenerateDescriptions bool `json:"generate_descriptions"`
	// InferCategories allows category invention when none are explicit.
	InferCategories bool `json:"infer_categories"`
	// DetectCurrency makes the detected currency authoritative per item.
	DetectCurrency bool `json:"detect_currency"`
	// HandleMultipleLanguages tolerates mixed-language content without
	// forcing translation.
	HandleMultipleLanguages bool `json:"handle_multiple_languages"`
}

// Item is a single menu entry.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Price is the normalized numeric price, always >= 0.
	// OriginalPrice retains the backend's raw value for audit/display.
	Price         float64 `json:"price"`
	OriginalPrice string  `json:"original_price,omitempty"`
	Currency      string  `json:"currency"`

	Available bool     `json:"available"`
	TasteTags []string `json:"taste_tags"`
	PromoTags []string `json:"promo_tags"`
	Allergens []string `json:"allergens"`

	// SpiceLevel is nil when unknown; zero is a real value.
	SpiceLevel *int `json:"spice_level,omitempty"`
}

// Category groups items in source order.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

// Metadata describes the extraction as a whole. TotalItems and
// TotalCategories are recomputed from the actual slices during
// normalization and never taken from the backend's own claim.
type Metadata struct {
	TotalItems       int     `json:"total_items"`
	TotalCategories  int     `json:"total_categories"`
	Currency         string  `json:"currency"`
	Language         string  `json:"language"`
	ExtractionMethod string  `json:"extraction_method"`
	Confidence       float64 `json:"confidence"`
}

// ParsedMenuStructure is the canonical output of the pipeline. It is
// built fresh on every call and never mutated after validation.
type ParsedMenuStructure struct {
	Categories []Category `json:"categories"`
	Metadata   Metadata   `json:"metadata"`
}
