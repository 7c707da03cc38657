package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// LLMProviderConfig describes one configured backend.
type LLMProviderConfig struct {
	Type           string // "openrouter", "openai", "mock"
	Model          string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	Enabled        bool
}

// RegistryConfig is the provider section of the application config with
// all credential references already resolved.
type RegistryConfig struct {
	LLMProviders map[string]LLMProviderConfig
}

// Registry holds constructed LLM clients with thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]LLMClient
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]LLMClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers an LLM client by name.
func (r *Registry) Register(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// Get returns an LLM client by name.
func (r *Registry) Get(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// BuildRegistry constructs clients for every enabled provider in the
// config. Construction fails on the first provider with a missing
// credential, before any network traffic.
func BuildRegistry(cfg RegistryConfig, logger *slog.Logger) (*Registry, error) {
	r := NewRegistry()
	if logger != nil {
		r.SetLogger(logger)
	}

	for name, pc := range cfg.LLMProviders {
		if !pc.Enabled {
			continue
		}
		client, err := NewClient(pc)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", name, err)
		}
		r.Register(name, client)
	}
	return r, nil
}

// NewClient constructs a single client from its config.
func NewClient(pc LLMProviderConfig) (LLMClient, error) {
	timeout := time.Duration(pc.TimeoutSeconds) * time.Second
	switch pc.Type {
	case "openrouter":
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:       pc.APIKey,
			DefaultModel: pc.Model,
			Timeout:      timeout,
			MaxRetries:   pc.MaxRetries,
		})
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:       pc.APIKey,
			DefaultModel: pc.Model,
			Timeout:      timeout,
			MaxRetries:   pc.MaxRetries,
		})
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", pc.Type)
	}
}
