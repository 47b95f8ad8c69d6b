// Package ai wraps the model backends that synthesize commands and answer
// questions. Providers are resolved through a per-invocation table; there is
// no process-wide registry.
package ai

import (
	"context"
	"fmt"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Backend generates text for a conversation. Structured reports whether the
// provider can constrain its output to JSON natively; when it cannot, the
// schema is enforced through the prompt instead.
type Backend interface {
	Name() string
	Structured() bool
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Options carries the credentials and model selection for one backend.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Factory builds a backend from resolved options.
type Factory func(Options) Backend

// Factories returns the provider table. Built fresh per call so callers hold
// no shared mutable state.
func Factories() map[string]Factory {
	return map[string]Factory{
		"openai": NewStructuredBackend,
		"compat": NewPromptBackend,
	}
}

// Resolve looks up provider and constructs its backend.
func Resolve(provider string, opts Options) (Backend, error) {
	factory, ok := Factories()[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	return factory(opts), nil
}

// Complete sends a single system+user exchange and returns the reply text.
func Complete(ctx context.Context, b Backend, system, user string) (string, error) {
	return b.Chat(ctx, []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	})
}
