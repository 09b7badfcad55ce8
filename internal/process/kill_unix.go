//go:build !windows

// Package process terminates the headless browser with its helper processes.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU helpers with it.
func KillProcessGroup(pid int) {
	// Errors ignored: the launcher's own Kill runs right after.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
