// Package provider implements the upstream language-model adapters and the
// ordered registry the response pipeline rotates through on failure.
//
// Two wire shapes are supported: the chat-completions shape (bearer token,
// choices[0].message.content) and the generative-content shape (API key as
// a query parameter, candidates[0].content.parts[0].text). Adapters are
// stateless over a config and a prompt pair; they never retry locally —
// rate limits and transport failures surface as typed errors so the
// pipeline can rotate providers instead.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds one provider round-trip. A call past the deadline
// is a transport failure and escalates to provider rotation.
const DefaultTimeout = 12 * time.Second

// Shape identifies the request/response wire format of a provider.
type Shape string

const (
	ShapeChatCompletions   Shape = "chat-completions"
	ShapeGenerativeContent Shape = "generative-content"
)

// Message is one turn of a provider-agnostic conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client is the adapter interface every provider implements.
type Client interface {
	// Complete sends a bare prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteWithSystem sends a prompt under a system instruction.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Chat sends a full conversation history under a system instruction.
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}

// Config describes one provider entry in the registry.
type Config struct {
	ID          string  `yaml:"id"`
	Shape       Shape   `yaml:"shape"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// RateLimitError signals an HTTP 429. The pipeline treats it as a
// distinguished failure warranting immediate provider rotation.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider %s: rate limit exceeded (429)", e.Provider)
}

// TransportError covers network failures and non-2xx responses other than
// rate limits.
type TransportError struct {
	Provider string
	Status   int // 0 when the request never completed
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider %s: request failed with status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("provider %s: request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err is (or wraps) a rate-limit failure.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// requiresJSONOutput detects system prompts that demand a structured JSON
// reply, so chat-completions providers can pin response_format.
func requiresJSONOutput(systemPrompt string) bool {
	return strings.Contains(systemPrompt, "JSON ONLY") ||
		strings.Contains(systemPrompt, "json_object")
}
