package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriShell/internal/execx"
	"github.com/Rorical/RoriShell/internal/proposal"
	"github.com/Rorical/RoriShell/internal/risk"
)

type fakeSynth struct {
	raw   string
	err   error
	calls int
}

func (f *fakeSynth) Synthesize(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.raw, f.err
}

type fakeGate struct {
	approve bool
	calls   int
}

func (f *fakeGate) Confirm(_ *proposal.Proposal, _ risk.Verdict) (bool, error) {
	f.calls++
	return f.approve, nil
}

type fakeExec struct {
	res   execx.Result
	calls int
	last  string
}

func (f *fakeExec) Run(_ context.Context, command string) execx.Result {
	f.calls++
	f.last = command
	return f.res
}

type countingAnimator struct {
	starts, stops int
}

func (c *countingAnimator) Start() { c.starts++ }
func (c *countingAnimator) Stop()  { c.stops++ }

func newTestPipeline(synth *fakeSynth, gate *fakeGate, exec *fakeExec, out *bytes.Buffer) (*Pipeline, *countingAnimator) {
	anim := &countingAnimator{}
	return &Pipeline{
		Synth:    synth,
		Gate:     gate,
		Exec:     exec,
		Spin:     func(string) Animator { return anim },
		Out:      out,
		Describe: func(context.Context) string { return "Linux test (amd64)" },
	}, anim
}

func TestRun_When_SafeCommandApproved(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"ls -la","explanation":"lists all files","arguments":[],"dangerLevel":1}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{res: execx.Result{Mode: execx.Headless, Stdout: "file1\nfile2\n"}}
	var out bytes.Buffer

	p, anim := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "list files")

	require.NoError(t, err)
	assert.Equal(t, Done, outcome)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, 1, gate.calls)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "ls -la", exec.last)
	assert.Contains(t, out.String(), "file1")
	assert.Equal(t, anim.starts, anim.stops, "every started animation is stopped")
}

func TestRun_When_PatternBlocked(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"dd if=/dev/zero of=/dev/sda","explanation":"wipes the disk","arguments":[],"dangerLevel":5}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{}
	var out bytes.Buffer

	p, _ := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "wipe disk")

	require.NoError(t, err)
	assert.Equal(t, Blocked, outcome)
	assert.Equal(t, 0, gate.calls, "blocked commands never reach the gate")
	assert.Equal(t, 0, exec.calls, "blocked commands never execute")
	assert.Contains(t, out.String(), "Blocked")
}

func TestRun_When_ModelLevelBlocks(t *testing.T) {
	t.Parallel()

	for _, lvl := range []int{4, 5} {
		synth := &fakeSynth{raw: fmt.Sprintf(`{"command":"ls","dangerLevel":%d}`, lvl)}
		gate := &fakeGate{approve: true}
		exec := &fakeExec{}
		var out bytes.Buffer

		p, _ := newTestPipeline(synth, gate, exec, &out)
		p.AutoApprove = true

		outcome, err := p.Run(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, Blocked, outcome, "level %d", lvl)
		assert.Equal(t, 0, gate.calls)
		assert.Equal(t, 0, exec.calls, "auto-approve must not bypass the ceiling")
	}
}

func TestRun_When_ParseFailure(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: "I refuse to answer in JSON"}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{}
	var out bytes.Buffer

	p, anim := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "list files")

	assert.Equal(t, Failed, outcome)
	var perr *proposal.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, out.String(), "I refuse to answer in JSON",
		"raw model text is preserved verbatim in the diagnostic")
	assert.Equal(t, 0, exec.calls)
	assert.Equal(t, anim.starts, anim.stops)
}

func TestRun_When_EmptyCommand(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"","dangerLevel":1}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{}
	var out bytes.Buffer

	p, _ := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "do nothing")

	assert.Equal(t, Failed, outcome)
	assert.ErrorIs(t, err, proposal.ErrEmptyCommand)
	assert.Equal(t, 0, exec.calls)
}

func TestRun_When_SynthesisFails(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{err: errors.New("rate limited")}
	gate := &fakeGate{}
	exec := &fakeExec{}
	var out bytes.Buffer

	p, anim := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "list files")

	assert.Equal(t, Failed, outcome)
	assert.Error(t, err)
	assert.Equal(t, 0, gate.calls)
	assert.Equal(t, 0, exec.calls)
	assert.Equal(t, anim.starts, anim.stops, "animation stopped before surfacing the error")
}

func TestRun_When_UserDeclines(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"ls -la","dangerLevel":1}`}
	gate := &fakeGate{approve: false}
	exec := &fakeExec{}
	var out bytes.Buffer

	p, _ := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "list files")

	require.NoError(t, err)
	assert.Equal(t, Declined, outcome)
	assert.Equal(t, 1, gate.calls)
	assert.Equal(t, 0, exec.calls)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestRun_When_AutoApproved(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"ls -la","dangerLevel":2}`}
	gate := &fakeGate{approve: false}
	exec := &fakeExec{res: execx.Result{Mode: execx.Headless}}
	var out bytes.Buffer

	p, _ := newTestPipeline(synth, gate, exec, &out)
	p.AutoApprove = true

	outcome, err := p.Run(context.Background(), "list files")
	require.NoError(t, err)
	assert.Equal(t, Done, outcome)
	assert.Equal(t, 0, gate.calls, "auto-approve skips the gate below the ceiling")
	assert.Equal(t, 1, exec.calls)
}

func TestRun_When_ExecutionFails(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"ls /nope","dangerLevel":1}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{res: execx.Result{
		Mode:     execx.Headless,
		Stderr:   "ls: /nope: no such file\n",
		ExitCode: 2,
		Err:      errors.New("exit status 2"),
	}}
	var out bytes.Buffer

	p, _ := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "list missing dir")

	assert.Equal(t, Failed, outcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 2")
	assert.Contains(t, out.String(), "no such file")
}

func TestRun_When_InteractiveCommand(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"top","explanation":"process monitor","dangerLevel":1}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{res: execx.Result{Mode: execx.InteractiveTTY}}
	var out bytes.Buffer

	p, anim := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "show processes")

	require.NoError(t, err)
	assert.Equal(t, Done, outcome)
	assert.Equal(t, 1, exec.calls)
	// Only the synthesis stage animates; the TTY-inheriting child owns the
	// terminal during execution.
	assert.Equal(t, 1, anim.starts)
	assert.Equal(t, anim.starts, anim.stops)
}

func TestRun_When_CredentialCommandSkipsAnimation(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{raw: `{"command":"sudo apt-get update","dangerLevel":2}`}
	gate := &fakeGate{approve: true}
	exec := &fakeExec{res: execx.Result{Mode: execx.Headless}}
	var out bytes.Buffer

	p, anim := newTestPipeline(synth, gate, exec, &out)
	outcome, err := p.Run(context.Background(), "update packages")

	require.NoError(t, err)
	assert.Equal(t, Done, outcome)
	assert.Equal(t, 1, anim.starts, "synthesis only; sudo gets a plain prompt")
}
