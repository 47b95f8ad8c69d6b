//go:build windows

package sysinfo

func probeCommand() (string, []string) {
	return "cmd", []string{"/c", "ver"}
}
