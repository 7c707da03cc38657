package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/platewise/menugraph/internal/menu"
	"github.com/platewise/menugraph/internal/prompts/menuextract"
)

// snippetLen bounds the raw-text prefix carried on malformed-response
// errors.
const snippetLen = 256

// DecodeResponse turns raw completion text into a loosely-typed
// document. It tolerates markdown fences and prose around the JSON but
// fails closed when no object can be parsed or the required categories
// array is missing. Deeper checks happen after normalization.
func DecodeResponse(raw string) (map[string]any, error) {
	candidate, ok := extractJSONObject(raw)
	if !ok {
		return nil, &menu.MalformedResponseError{Snippet: truncate(raw, snippetLen)}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, &menu.MalformedResponseError{Snippet: truncate(raw, snippetLen)}
	}

	categories, present := doc["categories"]
	if !present {
		return nil, &menu.SchemaError{Reason: "missing categories array"}
	}
	if _, isArray := categories.([]any); !isArray {
		return nil, &menu.SchemaError{Reason: "categories is not an array"}
	}

	return doc, nil
}

// extractJSONObject locates the JSON object embedded in completion
// text: trim, strip any code fence, then slice from the first "{" to
// the last "}". The slice defends against leading or trailing
// commentary the backend added despite instructions.
func extractJSONObject(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if stripped := stripCodeFences(trimmed); stripped != "" {
		trimmed = stripped
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end < start {
		return "", false
	}
	return trimmed[start : end+1], true
}

// stripCodeFences removes a surrounding markdown fence, returning ""
// when the text is not fenced.
func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence line (possibly "```json").
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// truncate bounds s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var (
	extractionSchemaOnce sync.Once
	extractionSchema     *jsonschema.Schema
	extractionSchemaErr  error
)

// compiledExtractionSchema compiles the inner extraction schema once.
func compiledExtractionSchema() (*jsonschema.Schema, error) {
	extractionSchemaOnce.Do(func() {
		wrapper, _ := menuextract.ExtractionSchema["json_schema"].(map[string]any)
		inner, ok := wrapper["schema"]
		if !ok {
			extractionSchemaErr = fmt.Errorf("extraction schema has no inner schema")
			return
		}
		raw, err := json.Marshal(inner)
		if err != nil {
			extractionSchemaErr = fmt.Errorf("failed to serialize extraction schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("menu_extraction.json", bytes.NewReader(raw)); err != nil {
			extractionSchemaErr = fmt.Errorf("failed to load extraction schema: %w", err)
			return
		}
		extractionSchema, extractionSchemaErr = compiler.Compile("menu_extraction.json")
	})
	return extractionSchema, extractionSchemaErr
}

// validateAdvisory checks the decoded document against the extraction
// schema. Violations are logged, never fatal: normalization fills in
// the defaults the strict schema would reject, and the validator gates
// the result afterwards.
func validateAdvisory(doc map[string]any, logger *slog.Logger) {
	schema, err := compiledExtractionSchema()
	if err != nil {
		logger.Warn("extraction schema unavailable", "error", err)
		return
	}
	if err := schema.Validate(doc); err != nil {
		logger.Warn("backend response deviates from extraction schema", "error", err)
	}
}
