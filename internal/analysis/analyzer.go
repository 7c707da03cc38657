// Package analysis provides a heuristic pre-scan of raw menu text.
//
// The analyzer never fails: unknown input degrades to conservative
// defaults (zero counts, "en", freeform layout, USD). Its output feeds
// prompt construction and supplies document-level defaults for
// normalization, so every detection here is deterministic and
// priority-ordered.
package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// Layout classifies the dominant structure of the source text.
type Layout string

const (
	LayoutTable    Layout = "table"
	LayoutDotted   Layout = "dotted"
	LayoutNumbered Layout = "numbered"
	LayoutBulleted Layout = "bulleted"
	LayoutFreeform Layout = "freeform"
)

// DefaultCurrency is used when no currency signal is found.
const DefaultCurrency = "USD"

// DefaultLanguage is used when no script signal is found.
const DefaultLanguage = "en"

// Analysis is the result of scanning raw menu content.
type Analysis struct {
	TotalLines    int    `json:"total_lines"`
	CategoryLines int    `json:"category_lines"`
	PricedLines   int    `json:"priced_lines"`
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Layout        Layout `json:"layout"`
}

// currencyPattern maps a detection pattern to a currency code. Patterns
// are checked in order against the whole document; the first match wins.
type currencyPattern struct {
	re   *regexp.Regexp
	code string
}

var currencyPatterns = []currencyPattern{
	{regexp.MustCompile(`₹`), "INR"},
	{regexp.MustCompile(`€`), "EUR"},
	{regexp.MustCompile(`£`), "GBP"},
	{regexp.MustCompile(`[¥円]`), "JPY"},
	{regexp.MustCompile(`\$`), "USD"},
	{regexp.MustCompile(`(?i)\b(?:rs\.?|inr|rupees?)\s*\d`), "INR"},
	{regexp.MustCompile(`(?i)\beur\s*\d`), "EUR"},
	{regexp.MustCompile(`(?i)\bgbp\s*\d`), "GBP"},
	{regexp.MustCompile(`(?i)\b(?:jpy|yen)\s*\d`), "JPY"},
	{regexp.MustCompile(`(?i)\busd\s*\d`), "USD"},
}

// languagePattern maps a script-range pattern to a locale tag. Kana is
// checked before Han so mixed Japanese text resolves to "ja".
type languagePattern struct {
	re  *regexp.Regexp
	tag string
}

var languagePatterns = []languagePattern{
	{regexp.MustCompile(`[\x{3040}-\x{30FF}]`), "ja"}, // hiragana + katakana
	{regexp.MustCompile(`[\x{AC00}-\x{D7AF}]`), "ko"}, // hangul
	{regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`), "zh"}, // han
	{regexp.MustCompile(`[\x{0900}-\x{097F}]`), "hi"}, // devanagari
	{regexp.MustCompile(`[\x{0600}-\x{06FF}]`), "ar"},
	{regexp.MustCompile(`[\x{0400}-\x{04FF}]`), "ru"},
	{regexp.MustCompile(`[\x{0E00}-\x{0E7F}]`), "th"},
	{regexp.MustCompile(`[ñ¿¡]|á.*í|í.*ó`), "es"},
	{regexp.MustCompile(`[àâêëîôûœ]|ç`), "fr"},
}

// categoryKeywords match section headers across the languages the
// surrounding product ships menus in. Compared lowercase.
var categoryKeywords = []string{
	"starters", "appetizers", "appetisers", "mains", "main course",
	"entrees", "entrées", "desserts", "beverages", "drinks", "sides",
	"soups", "salads", "breads", "specials", "combos", "thali",
	"entradas", "platos principales", "postres", "bebidas",
	"entrées", "plats", "boissons",
	"vorspeisen", "hauptgerichte", "getränke",
	"前菜", "主菜", "饮料", "甜点",
	"स्टार्टर", "मुख्य", "मिठाई",
}

var (
	pricedLineRe = regexp.MustCompile(`(?i)(?:[₹$€£¥]\s*\d|\d+[.,]\d{2}\b|\b(?:rs\.?|inr|usd|eur|gbp)\s*\d)`)
	dottedRunRe  = regexp.MustCompile(`(?:\.{2,}|_{2,})`)
	numberedRe   = regexp.MustCompile(`^\s*\d+[.)]\s`)
	bulletedRe   = regexp.MustCompile(`^\s*[-•*]\s`)
	headerDecoRe = regexp.MustCompile(`^[=\-*~\s]*[[:alpha:]].*:$`)
)

// Analyze scans raw menu content and returns its structural profile.
// It is a pure function of the text and cannot fail.
func Analyze(content string) Analysis {
	a := Analysis{
		Currency: DefaultCurrency,
		Language: DefaultLanguage,
		Layout:   LayoutFreeform,
	}

	lines := nonBlankLines(content)
	a.TotalLines = len(lines)

	for _, line := range lines {
		if isCategoryLine(line) {
			a.CategoryLines++
		}
		if pricedLineRe.MatchString(line) {
			a.PricedLines++
		}
	}

	for _, p := range currencyPatterns {
		if p.re.MatchString(content) {
			a.Currency = p.code
			break
		}
	}

	for _, p := range languagePatterns {
		if p.re.MatchString(content) {
			a.Language = p.tag
			break
		}
	}

	a.Layout = detectLayout(content, lines)
	return a
}

func nonBlankLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// isCategoryLine reports whether a line looks like a section header.
// A line counts once regardless of how many patterns it matches.
func isCategoryLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	// Short all-caps lines without prices are almost always headers.
	if isAllCapsHeader(trimmed) && !pricedLineRe.MatchString(trimmed) {
		return true
	}

	if headerDecoRe.MatchString(trimmed) {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw) && !pricedLineRe.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func isAllCapsHeader(line string) bool {
	if len(line) > 40 {
		return false
	}
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return letters >= 3
}

// detectLayout classifies content structure. The checks are not mutually
// exclusive in general text, so the order is fixed and first-match-wins:
// table, dotted, numbered, bulleted, freeform.
func detectLayout(content string, lines []string) Layout {
	if strings.ContainsAny(content, "\t|") {
		return LayoutTable
	}
	if dottedRunRe.MatchString(content) {
		return LayoutDotted
	}
	for _, line := range lines {
		if numberedRe.MatchString(line) {
			return LayoutNumbered
		}
	}
	for _, line := range lines {
		if bulletedRe.MatchString(line) {
			return LayoutBulleted
		}
	}
	return LayoutFreeform
}
