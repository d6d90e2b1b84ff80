package provider

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// NewClient builds the adapter for one provider config.
func NewClient(cfg Config, timeout time.Duration) (Client, error) {
	switch cfg.Shape {
	case ShapeChatCompletions:
		return NewOpenAICompatibleClient(cfg, timeout), nil
	case ShapeGenerativeContent:
		return NewGeminiClient(cfg, timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider shape: %s", cfg.Shape)
	}
}

// Entry pairs a provider config with its built adapter.
type Entry struct {
	Config Config
	Client Client
}

// Registry holds an ordered, non-empty provider list and the rotation
// cursor. The cursor advances only on failure, so a provider that just
// succeeded stays preferred on the next call.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
	cursor  int
}

// NewRegistry builds a registry from provider configs, resolving API keys
// from the environment where api_key_env is set.
func NewRegistry(configs []Config, timeout time.Duration) (*Registry, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	entries := make([]Entry, 0, len(configs))
	for _, cfg := range configs {
		if cfg.APIKey == "" && cfg.APIKeyEnv != "" {
			cfg.APIKey = os.Getenv(cfg.APIKeyEnv)
		}
		client, err := NewClient(cfg, timeout)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", cfg.ID, err)
		}
		entries = append(entries, Entry{Config: cfg, Client: client})
	}
	return &Registry{entries: entries}, nil
}

// NewRegistryFromEntries builds a registry from pre-built entries.
// Intended for tests that inject fake clients.
func NewRegistryFromEntries(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	return &Registry{entries: entries}, nil
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Current returns the entry at the cursor without advancing it.
func (r *Registry) Current() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[r.cursor]
}

// Advance moves the cursor to the next entry, wrapping at the end, and
// returns the new current entry. Called only after a failure.
func (r *Registry) Advance() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = (r.cursor + 1) % len(r.entries)
	return r.entries[r.cursor]
}
