package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_When_KnownProvider(t *testing.T) {
	t.Parallel()

	b, err := Resolve("openai", Options{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.True(t, b.Structured())
	assert.Equal(t, "openai", b.Name())

	b, err = Resolve("compat", Options{APIKey: "k", Model: "local"})
	require.NoError(t, err)
	assert.False(t, b.Structured())
	assert.Equal(t, "compat", b.Name())
}

func TestResolve_When_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := Resolve("mystery", Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestSynthesisPrompt_ContainsSchemaAndGuidance(t *testing.T) {
	t.Parallel()

	p := synthesisPrompt("Linux 6.1 (amd64)", true)
	assert.Contains(t, p, "Linux 6.1 (amd64)")
	assert.Contains(t, p, `"command"`)
	assert.Contains(t, p, `"dangerLevel"`)
	assert.Contains(t, p, "dry-run")
	assert.Contains(t, p, "block devices")
}

func TestSynthesisPrompt_When_PromptStructuredMode(t *testing.T) {
	t.Parallel()

	native := synthesisPrompt("Linux", true)
	prompted := synthesisPrompt("Linux", false)

	assert.NotContains(t, native, "ONLY the JSON object")
	assert.Contains(t, prompted, "ONLY the JSON object")
}

type fakeBackend struct {
	structured bool
	lastMsgs   []Message
	reply      string
}

func (f *fakeBackend) Name() string     { return "fake" }
func (f *fakeBackend) Structured() bool { return f.structured }
func (f *fakeBackend) Chat(_ context.Context, msgs []Message) (string, error) {
	f.lastMsgs = msgs
	return f.reply, nil
}

func TestSynthesizer_SendsSystemAndUserMessages(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{structured: false, reply: `{"command":"ls"}`}
	s := NewSynthesizer(fb)

	raw, err := s.Synthesize(context.Background(), "list files", "Linux")
	require.NoError(t, err)
	assert.Equal(t, `{"command":"ls"}`, raw)

	require.Len(t, fb.lastMsgs, 2)
	assert.Equal(t, RoleSystem, fb.lastMsgs[0].Role)
	assert.True(t, strings.Contains(fb.lastMsgs[0].Content, "ONLY the JSON object"))
	assert.Equal(t, RoleUser, fb.lastMsgs[1].Role)
	assert.Equal(t, "list files", fb.lastMsgs[1].Content)
}
