package parse

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/platewise/menugraph/internal/config"
	"github.com/platewise/menugraph/internal/llmcall"
	"github.com/platewise/menugraph/internal/menu"
	"github.com/platewise/menugraph/internal/providers"
)

// NewFromConfig builds a Parser for the configured default provider.
// A missing or unresolved credential surfaces as a ConfigurationError
// here, before any client exists that could reach the network.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, recorder *llmcall.Recorder) (*Parser, error) {
	name := cfg.Defaults.LLMProvider
	pc, ok := cfg.GetLLMProvider(name)
	if !ok {
		return nil, &menu.ConfigurationError{Reason: fmt.Sprintf("unknown LLM provider %q", name)}
	}
	if !pc.Enabled {
		return nil, &menu.ConfigurationError{Reason: fmt.Sprintf("LLM provider %q is disabled", name)}
	}

	client, err := providers.NewClient(providers.LLMProviderConfig{
		Type:           pc.Type,
		Model:          pc.Model,
		APIKey:         config.ResolveEnvVars(pc.APIKey),
		TimeoutSeconds: pc.TimeoutSeconds,
		MaxRetries:     pc.MaxRetries,
		Enabled:        true,
	})
	if err != nil {
		if errors.Is(err, providers.ErrMissingAPIKey) {
			return nil, &menu.ConfigurationError{Reason: fmt.Sprintf("no API key configured for provider %q", name)}
		}
		return nil, fmt.Errorf("failed to build LLM client: %w", err)
	}

	return New(Config{
		Client:           client,
		Model:            pc.Model,
		Temperature:      cfg.Pipeline.Temperature,
		MaxTokens:        cfg.Pipeline.MaxTokens,
		Timeout:          time.Duration(cfg.Pipeline.TimeoutSeconds) * time.Second,
		StructuredOutput: cfg.Pipeline.StructuredOutput,
		Logger:           logger,
		Recorder:         recorder,
	})
}
