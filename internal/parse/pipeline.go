// Package parse implements the menu ingestion pipeline: analyze raw
// content, build a constrained extraction prompt, call the generative
// backend, decode its reply, normalize, and validate. Each call runs
// the stages strictly in that order; any failure aborts the whole call
// and no partial structure is ever returned.
package parse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/menugraph/internal/analysis"
	"github.com/platewise/menugraph/internal/llmcall"
	"github.com/platewise/menugraph/internal/menu"
	"github.com/platewise/menugraph/internal/prompts/menuextract"
	"github.com/platewise/menugraph/internal/providers"
)

const (
	// Low fixed temperature keeps extraction as deterministic as the
	// backend allows.
	defaultTemperature = 0.1
	// Generous ceiling so long menus are not truncated mid-object.
	defaultMaxTokens = 8192
	defaultTimeout   = 120 * time.Second
)

// Config configures a Parser.
type Config struct {
	// Client is the generative backend. Required.
	Client providers.LLMClient

	// Model overrides the client's default model when set.
	Model string

	Temperature float64
	MaxTokens   int

	// Timeout bounds the backend call per parse invocation.
	Timeout time.Duration

	// StructuredOutput sends the extraction schema as a response
	// format to backends that support constrained generation. The
	// prompt carries the schema either way.
	StructuredOutput bool

	Logger   *slog.Logger
	Recorder *llmcall.Recorder
}

// Parser is the menu ingestion pipeline. It holds only immutable
// configuration, so concurrent Parse calls are safe without locking.
type Parser struct {
	client           providers.LLMClient
	model            string
	temperature      float64
	maxTokens        int
	timeout          time.Duration
	structuredOutput bool
	logger           *slog.Logger
	recorder         *llmcall.Recorder
}

// New creates a Parser. The backend client is the one fatal
// precondition: without it no call could ever succeed, so construction
// fails with a ConfigurationError before any network attempt is
// observable.
func New(cfg Config) (*Parser, error) {
	if cfg.Client == nil {
		return nil, &menu.ConfigurationError{Reason: "no generative backend configured"}
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Parser{
		client:           cfg.Client,
		model:            cfg.Model,
		temperature:      cfg.Temperature,
		maxTokens:        cfg.MaxTokens,
		timeout:          cfg.Timeout,
		structuredOutput: cfg.StructuredOutput,
		logger:           cfg.Logger,
		recorder:         cfg.Recorder,
	}, nil
}

// Parse runs the full pipeline over one document. sourceLabel names the
// document for call logs only; it does not influence extraction.
//
// On success the returned structure is owned entirely by the caller.
// On failure the error is one of the typed kinds in the menu package
// (or a context error when the call was cancelled) and no structure is
// returned.
func (p *Parser) Parse(ctx context.Context, content, sourceLabel string, opts menu.Options) (*menu.ParsedMenuStructure, error) {
	a := analysis.Analyze(content)
	p.logger.Debug("analyzed menu content",
		"source", sourceLabel,
		"lines", a.TotalLines,
		"category_lines", a.CategoryLines,
		"priced_lines", a.PricedLines,
		"currency", a.Currency,
		"language", a.Language,
		"layout", a.Layout)

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: menuextract.SystemPrompt()},
			{Role: "user", Content: menuextract.UserPrompt(content, a, opts)},
		},
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Timeout:     p.timeout,
		RequestID:   uuid.New().String(),
	}
	if p.structuredOutput {
		req.ResponseFormat = &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: menuextract.SchemaJSON(),
		}
	}

	result, err := p.client.Chat(ctx, req)

	temp := p.temperature
	p.recorder.Record(result, llmcall.RecordOptions{
		Source:      sourceLabel,
		PromptKey:   menuextract.UserPromptKey,
		Temperature: &temp,
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("backend call aborted: %w", ctxErr)
		}
		be := &menu.BackendError{Err: err}
		if result != nil {
			be.Status = result.StatusCode
			be.Body = result.ErrorMessage
		}
		return nil, be
	}

	if strings.TrimSpace(result.Content) == "" {
		return nil, &menu.EmptyResponseError{}
	}

	doc, err := DecodeResponse(result.Content)
	if err != nil {
		return nil, err
	}
	validateAdvisory(doc, p.logger)

	structure := menu.Normalize(doc, menu.Defaults{
		Currency:         a.Currency,
		Language:         a.Language,
		ExtractionMethod: "llm/" + p.client.Name(),
	})

	if err := menu.Validate(structure, p.logger); err != nil {
		return nil, err
	}

	p.logger.Info("parsed menu",
		"source", sourceLabel,
		"categories", structure.Metadata.TotalCategories,
		"items", structure.Metadata.TotalItems,
		"currency", structure.Metadata.Currency,
		"model", result.ModelUsed,
		"tokens", result.TotalTokens)

	return structure, nil
}
