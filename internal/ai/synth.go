package ai

import (
	"context"
	"fmt"
)

// Synthesizer turns a natural-language intent plus a system descriptor into
// raw model text. Whether the structured contract is enforced natively or
// through the prompt depends on the backend, not the caller.
type Synthesizer struct {
	backend Backend
}

func NewSynthesizer(b Backend) *Synthesizer {
	return &Synthesizer{backend: b}
}

func (s *Synthesizer) Synthesize(ctx context.Context, intent, sysDesc string) (string, error) {
	system := synthesisPrompt(sysDesc, s.backend.Structured())
	raw, err := Complete(ctx, s.backend, system, intent)
	if err != nil {
		return "", fmt.Errorf("synthesize command: %w", err)
	}
	return raw, nil
}
