//go:build !windows

package claude

import "syscall"

// sessionAttr detaches the CLI from our controlling terminal.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
