// Package execx runs the approved command, either headless with captured
// output or attached to the controlling terminal for interactive programs.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// Mode selects how a command is run.
type Mode int

const (
	// Headless captures stdout and stderr and waits for completion.
	Headless Mode = iota
	// InteractiveTTY inherits the parent's terminal streams.
	InteractiveTTY
)

func (m Mode) String() string {
	if m == InteractiveTTY {
		return "interactive"
	}
	return "headless"
}

// interactivePrograms is a fixed, best-effort set of programs that need a
// real terminal. Not a general interactivity detector.
var interactivePrograms = map[string]struct{}{
	"vim": {}, "vi": {}, "nvim": {}, "nano": {}, "emacs": {},
	"less": {}, "more": {}, "man": {},
	"top": {}, "htop": {}, "btop": {},
	"ssh": {}, "telnet": {},
	"tmux": {}, "screen": {},
	"mc": {}, "watch": {},
}

// Classify decides the execution mode by token-matching the command against
// the interactive program set.
func Classify(command string) Mode {
	for _, tok := range strings.Fields(command) {
		if _, ok := interactivePrograms[filepath.Base(tok)]; ok {
			return InteractiveTTY
		}
	}
	return Headless
}

// NeedsInput reports whether the command is likely to prompt on the terminal
// (elevation or credential handling) even when it is not TTY-classified. Any
// busy animation must be stopped before such a command starts.
func NeedsInput(command string) bool {
	lower := strings.ToLower(command)
	for _, kw := range []string{"sudo", "passwd", "password"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Result is the outcome of one dispatch. Stdout and Stderr are only
// populated for headless runs.
type Result struct {
	Mode     Mode
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool { return r.Err == nil }

// Run classifies command and dispatches it through the matching strategy.
func Run(ctx context.Context, command string) Result {
	if Classify(command) == InteractiveTTY {
		return runInteractive(ctx, command)
	}
	return runHeadless(ctx, command)
}

func runHeadless(ctx context.Context, command string) Result {
	cmd := shellCommand(ctx, command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Mode:   Headless,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	fillExit(&res, err)
	return res
}

func runInteractive(ctx context.Context, command string) Result {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Result{
			Mode:     InteractiveTTY,
			ExitCode: -1,
			Err:      errors.New("stdin is not a terminal; cannot run an interactive command"),
		}
	}

	cmd := shellCommand(ctx, command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	res := Result{Mode: InteractiveTTY}
	fillExit(&res, err)
	return res
}

func fillExit(res *Result, err error) {
	if err == nil {
		return
	}
	res.Err = err
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else {
		res.ExitCode = -1
	}
}
