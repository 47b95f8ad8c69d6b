//go:build !windows

package sysinfo

func probeCommand() (string, []string) {
	return "uname", []string{"-sr"}
}
