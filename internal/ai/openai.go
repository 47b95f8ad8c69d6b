package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"
)

// deterministicTemperature requests temperature 0 for reproducible
// synthesis. The request field is marshalled with omitempty, so a literal 0
// would vanish from the wire and the provider would fall back to its
// default; the library's documented workaround is the smallest positive
// float32, which serializes explicitly and is indistinguishable from 0 to
// the sampler.
const deterministicTemperature = math.SmallestNonzeroFloat32

// openaiBackend talks to OpenAI or any OpenAI-compatible endpoint. The
// structured flag decides whether JSON-object response format is requested.
type openaiBackend struct {
	client     *openai.Client
	model      string
	structured bool
}

// NewStructuredBackend returns a backend for providers with native
// structured-output support.
func NewStructuredBackend(opts Options) Backend {
	return newOpenAIBackend(opts, true)
}

// NewPromptBackend returns a backend for OpenAI-compatible providers without
// structured-output support; the schema is enforced in the prompt.
func NewPromptBackend(opts Options) Backend {
	return newOpenAIBackend(opts, false)
}

func newOpenAIBackend(opts Options, structured bool) Backend {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &openaiBackend{
		client:     openai.NewClientWithConfig(cfg),
		model:      opts.Model,
		structured: structured,
	}
}

func (b *openaiBackend) Name() string {
	if b.structured {
		return "openai"
	}
	return "compat"
}

func (b *openaiBackend) Structured() bool { return b.structured }

func (b *openaiBackend) buildRequest(messages []Message) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: deterministicTemperature,
		Messages:    toOpenAIMessages(messages),
	}
	if b.structured {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return req
}

func (b *openaiBackend) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.buildRequest(messages))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
