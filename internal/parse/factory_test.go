package parse

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/platewise/menugraph/internal/config"
	"github.com/platewise/menugraph/internal/menu"
)

func testConfig(provider string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Defaults.LLMProvider = provider
	return cfg
}

func TestNewFromConfigMissingCredential(t *testing.T) {
	// The credential reference resolves to nothing, so construction
	// must fail before any client exists that could reach the network.
	t.Setenv("OPENROUTER_API_KEY", "")

	_, err := NewFromConfig(testConfig("openrouter"), slog.New(slog.DiscardHandler), nil)

	var configErr *menu.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("NewFromConfig() error = %v, want ConfigurationError", err)
	}
}

func TestNewFromConfigUnknownProvider(t *testing.T) {
	_, err := NewFromConfig(testConfig("nonexistent"), slog.New(slog.DiscardHandler), nil)

	var configErr *menu.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("NewFromConfig() error = %v, want ConfigurationError", err)
	}
}

func TestNewFromConfigDisabledProvider(t *testing.T) {
	cfg := testConfig("openai") // disabled by default

	_, err := NewFromConfig(cfg, slog.New(slog.DiscardHandler), nil)

	var configErr *menu.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("NewFromConfig() error = %v, want ConfigurationError", err)
	}
}

func TestNewFromConfigMockProvider(t *testing.T) {
	cfg := testConfig("mock")
	cfg.LLMProviders["mock"] = config.LLMProviderCfg{
		Type:    "mock",
		Model:   "test-model",
		Enabled: true,
	}

	p, err := NewFromConfig(cfg, slog.New(slog.DiscardHandler), nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if p == nil {
		t.Fatal("NewFromConfig() returned nil parser")
	}
}
