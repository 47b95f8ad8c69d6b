package spinner

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	liveMu   sync.Mutex
	live     = map[*Spinner]struct{}{}
	hookOnce sync.Once
)

func track(s *Spinner) {
	liveMu.Lock()
	live[s] = struct{}{}
	liveMu.Unlock()
}

func untrack(s *Spinner) {
	liveMu.Lock()
	delete(live, s)
	liveMu.Unlock()
}

// StopAll stops every running spinner. Used by the signal hook so an
// interrupted process never exits with the cursor hidden.
func StopAll() {
	liveMu.Lock()
	spinners := make([]*Spinner, 0, len(live))
	for s := range live {
		spinners = append(spinners, s)
	}
	liveMu.Unlock()

	for _, s := range spinners {
		s.Stop()
	}
}

// HandleSignals installs a one-time handler that restores terminal state and
// exits on interrupt or termination. Call once at process start.
func HandleSignals() {
	hookOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-ch
			StopAll()
			os.Exit(exitCode(sig))
		}()
	})
}

// exitCode follows the shell convention of 128 plus the signal number, so
// SIGINT exits 130 and SIGTERM exits 143.
func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 130
}
