// Package proposal defines the structured command proposal the model must
// return and the strict parser that turns raw model text into one.
package proposal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ArgumentNote explains one token of the proposed command.
type ArgumentNote struct {
	Arg    string `json:"arg"`
	Reason string `json:"reason"`
}

// Proposal is the model's structured reply. Either the whole record parses
// or the invocation fails; no partial proposal is ever acted on.
type Proposal struct {
	Command     string         `json:"command"`
	Explanation string         `json:"explanation"`
	Arguments   []ArgumentNote `json:"arguments"`
	DangerLevel int            `json:"dangerLevel"`
}

// ParseError reports model output that did not decode into a proposal.
// Raw preserves the original text verbatim for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model reply is not a command proposal: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrEmptyCommand marks a reply that decoded fine but proposes nothing.
var ErrEmptyCommand = errors.New("model returned an empty command")

// Parse decodes raw model text into a Proposal. Surrounding code fences are
// tolerated; anything else that is not a JSON object with the proposal shape
// yields a *ParseError carrying the raw text.
func Parse(raw string) (*Proposal, error) {
	text := stripFences(strings.TrimSpace(raw))

	// json.Unmarshal accepts a top-level null as the zero struct; only an
	// object is a valid proposal.
	if len(text) == 0 || text[0] != '{' {
		return nil, &ParseError{Raw: raw, Err: errors.New("top-level value is not a JSON object")}
	}

	var p Proposal
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if strings.TrimSpace(p.Command) == "" {
		return nil, ErrEmptyCommand
	}
	return &p, nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
