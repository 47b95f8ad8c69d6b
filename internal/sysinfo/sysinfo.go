// Package sysinfo produces a one-line descriptor of the host so the model
// can tailor commands to the platform it will run on.
package sysinfo

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// probeTimeout bounds the diagnostic spawn so a wedged command cannot hang
// the invocation.
const probeTimeout = 3 * time.Second

// runProbe is replaced in tests to exercise the fallback path.
var runProbe = func(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// Describe returns the host descriptor. It never fails: if the platform
// diagnostic command is missing, times out, or exits non-zero, the locally
// known platform and architecture are returned instead.
func Describe(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	name, args := probeCommand()
	out, err := runProbe(ctx, name, args...)
	desc := strings.TrimSpace(out)
	if err != nil || desc == "" {
		return fallback()
	}
	// ver/uname output can span lines on some shells; keep the first.
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		desc = strings.TrimSpace(desc[:i])
	}
	return desc + " (" + runtime.GOARCH + ")"
}

func fallback() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
