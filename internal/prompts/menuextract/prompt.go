// Package menuextract holds the prompt pair and output schema for the
// menu extraction call. The embedded .tmpl files are the source of
// truth; the user template restates the content analysis, the
// extraction rules, and the literal output schema the parser expects,
// so prompt and parser stay in lockstep.
package menuextract

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/platewise/menugraph/internal/analysis"
	"github.com/platewise/menugraph/internal/menu"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// Prompt keys for call log traceability.
const (
	SystemPromptKey = "menuextract.system"
	UserPromptKey   = "menuextract.user"
)

// SystemPrompt returns the fixed role instruction for menu extraction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt renders the extraction instruction for one document. It
// cannot fail: a template execution error falls back to the raw
// template text, which still carries the schema contract.
func UserPrompt(content string, a analysis.Analysis, opts menu.Options) string {
	var buf bytes.Buffer
	data := struct {
		Content  string
		Analysis analysis.Analysis
		Options  menu.Options
	}{Content: content, Analysis: a, Options: opts}

	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}
