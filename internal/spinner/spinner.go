// Package spinner provides busy feedback for long-running pipeline stages.
// The one hard contract: no exit path may leave the terminal cursor hidden.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	clearLine  = "\r\x1b[2K"
)

// waveRamp is the grayscale ramp for the traveling brightness wave, darkest
// to brightest. Purely cosmetic.
var waveRamp = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
}

// Spinner animates a label with a traveling brightness wave at a fixed rate.
type Spinner struct {
	label    string
	interval time.Duration
	writer   io.Writer

	mu      sync.Mutex
	running bool
	frame   int
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New returns a spinner writing to w (stderr when nil).
func New(label string, w io.Writer) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	return &Spinner{
		label:    label,
		interval: 80 * time.Millisecond,
		writer:   w,
	}
}

// Start hides the cursor and begins the repaint loop. Starting a running
// spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.frame = 0
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	track(s)
	fmt.Fprint(s.writer, hideCursor)
	go s.run()
}

// Stop cancels the repaint loop, clears the line and restores the cursor.
// Idempotent: stopping a stopped spinner is a no-op.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
	untrack(s)
	// Cursor restore is the last write on every stop path.
	fmt.Fprint(s.writer, clearLine+showCursor)
}

func (s *Spinner) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame++
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	frame := s.frame
	s.mu.Unlock()

	runes := []rune(s.label)
	if len(runes) == 0 {
		return
	}

	crest := frame % len(runes)
	var b strings.Builder
	b.WriteString(clearLine)
	for i, r := range runes {
		b.WriteString(waveRamp[rampIndex(i, crest, len(runes))].Render(string(r)))
	}
	fmt.Fprint(s.writer, b.String())
}

// rampIndex maps a rune's wrapped distance from the wave crest onto the
// brightness ramp, brightest at the crest.
func rampIndex(i, crest, n int) int {
	d := i - crest
	if d < 0 {
		d = -d
	}
	if wrapped := n - d; wrapped < d {
		d = wrapped
	}
	idx := len(waveRamp) - 1 - d
	if idx < 0 {
		idx = 0
	}
	return idx
}
