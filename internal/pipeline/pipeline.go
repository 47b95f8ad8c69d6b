// Package pipeline wires intent synthesis, risk assessment, confirmation and
// dispatch into one linear invocation. Every collaborator is injected so the
// gating order can be verified in tests.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rorical/RoriShell/internal/execx"
	"github.com/Rorical/RoriShell/internal/proposal"
	"github.com/Rorical/RoriShell/internal/risk"
	"github.com/Rorical/RoriShell/internal/sysinfo"
	"github.com/Rorical/RoriShell/internal/utils"
)

// Synthesizer produces raw model text for an intent.
type Synthesizer interface {
	Synthesize(ctx context.Context, intent, sysDesc string) (string, error)
}

// Confirmer gates execution on explicit user consent.
type Confirmer interface {
	Confirm(p *proposal.Proposal, v risk.Verdict) (bool, error)
}

// Runner dispatches the approved command.
type Runner interface {
	Run(ctx context.Context, command string) execx.Result
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, command string) execx.Result

func (f RunnerFunc) Run(ctx context.Context, command string) execx.Result {
	return f(ctx, command)
}

// Animator is the busy-feedback contract. It must be stopped before any
// prompt is shown and before any terminal-inheriting subprocess starts.
type Animator interface {
	Start()
	Stop()
}

type nopAnimator struct{}

func (nopAnimator) Start() {}
func (nopAnimator) Stop()  {}

// Outcome classifies how an invocation ended, for exit-code mapping.
type Outcome int

const (
	Done Outcome = iota
	Failed
	Blocked
	Declined
)

// Pipeline runs one intent end to end.
type Pipeline struct {
	Synth       Synthesizer
	Gate        Confirmer
	Exec        Runner
	Spin        func(label string) Animator
	Out         io.Writer
	Describe    func(ctx context.Context) string
	AutoApprove bool
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Pipeline) spin(label string) Animator {
	if p.Spin == nil {
		return nopAnimator{}
	}
	return p.Spin(label)
}

func (p *Pipeline) describe(ctx context.Context) string {
	if p.Describe == nil {
		return sysinfo.Describe(ctx)
	}
	return p.Describe(ctx)
}

// Run executes the full pipeline for one intent.
func (p *Pipeline) Run(ctx context.Context, intent string) (Outcome, error) {
	sysDesc := p.describe(ctx)

	spin := p.spin("Synthesizing command")
	spin.Start()
	raw, err := p.Synth.Synthesize(ctx, intent, sysDesc)
	spin.Stop()
	if err != nil {
		return Failed, err
	}

	prop, err := proposal.Parse(raw)
	if err != nil {
		var perr *proposal.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(p.out(), utils.ErrorStyle().Render("The model reply could not be parsed. Raw reply:"))
			fmt.Fprintln(p.out(), perr.Raw)
		}
		return Failed, err
	}

	verdict := risk.Merge(prop.Command, prop.DangerLevel)
	if verdict.Blocked() {
		fmt.Fprintln(p.out(), utils.RiskHighStyle().Render(
			fmt.Sprintf("Blocked: danger level %d/%d. This command will not be run.", verdict.FinalLevel, risk.MaxLevel)))
		fmt.Fprintln(p.out(), utils.CommandStyle().Render("  "+prop.Command))
		return Blocked, nil
	}

	if p.AutoApprove {
		fmt.Fprintln(p.out(), utils.StatusStyle().Render("> "+prop.Command))
	} else {
		ok, err := p.Gate.Confirm(prop, verdict)
		if err != nil {
			return Failed, err
		}
		if !ok {
			fmt.Fprintln(p.out(), utils.StatusStyle().Render("Cancelled."))
			return Declined, nil
		}
	}

	return p.execute(ctx, prop.Command)
}

func (p *Pipeline) execute(ctx context.Context, command string) (Outcome, error) {
	// Interactive and credential-prompting commands own the terminal; the
	// animation never overlaps them.
	animate := execx.Classify(command) == execx.Headless && !execx.NeedsInput(command)

	var spin Animator = nopAnimator{}
	if animate {
		spin = p.spin("Running " + firstToken(command))
		spin.Start()
	}
	res := p.Exec.Run(ctx, command)
	spin.Stop()

	if res.Mode == execx.Headless {
		if res.Stdout != "" {
			fmt.Fprint(p.out(), res.Stdout)
		}
		if res.Stderr != "" {
			fmt.Fprint(p.out(), res.Stderr)
		}
	}

	if !res.Ok() {
		return Failed, fmt.Errorf("command failed (exit code %d): %w", res.ExitCode, res.Err)
	}
	return Done, nil
}

func firstToken(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return command
}
