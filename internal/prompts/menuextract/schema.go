package menuextract

import "encoding/json"

// ExtractionSchema is the JSON schema for menu extraction output. It is
// sent as a structured-output response format to providers that support
// one, and used locally for advisory validation of whatever comes back.
var ExtractionSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "menu_extraction",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"categories": map[string]any{
					"type":        "array",
					"description": "Menu sections in order of appearance",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":        map[string]any{"type": "string"},
							"description": map[string]any{"type": []string{"string", "null"}},
							"items": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"name":        map[string]any{"type": "string"},
										"description": map[string]any{"type": []string{"string", "null"}},
										"price": map[string]any{
											"type":        []string{"number", "string"},
											"description": "Price as a number, or as written when ambiguous",
										},
										"originalPrice": map[string]any{
											"type":        []string{"string", "null"},
											"description": "Price exactly as written in the source",
										},
										"currency":  map[string]any{"type": []string{"string", "null"}},
										"available": map[string]any{"type": []string{"boolean", "null"}},
										"tasteTags": map[string]any{
											"type":  "array",
											"items": map[string]any{"type": "string"},
										},
										"promoTags": map[string]any{
											"type":  "array",
											"items": map[string]any{"type": "string"},
										},
										"allergens": map[string]any{
											"type":  "array",
											"items": map[string]any{"type": "string"},
										},
										"spiceLevel": map[string]any{
											"type":        []string{"integer", "null"},
											"description": "0-5, omit when unknown",
										},
									},
									"required":             []string{"name", "price"},
									"additionalProperties": false,
								},
							},
						},
						"required":             []string{"name", "items"},
						"additionalProperties": false,
					},
				},
				"metadata": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"totalItems":      map[string]any{"type": "integer"},
						"totalCategories": map[string]any{"type": "integer"},
						"currency":        map[string]any{"type": "string"},
						"language":        map[string]any{"type": "string"},
						"confidence": map[string]any{
							"type":        "number",
							"description": "Extraction confidence 0.0-1.0",
						},
					},
					"additionalProperties": false,
				},
			},
			"required":             []string{"categories"},
			"additionalProperties": false,
		},
	},
}

// SchemaJSON returns the {name, strict, schema} block serialized for a
// request response format. The outer type wrapper stays local; the wire
// contract wants only the inner block under the json_schema key.
func SchemaJSON() json.RawMessage {
	b, err := json.Marshal(ExtractionSchema["json_schema"])
	if err != nil {
		// The schema is a static literal; this cannot happen.
		panic(err)
	}
	return b
}
