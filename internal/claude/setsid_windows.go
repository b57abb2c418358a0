//go:build windows

package claude

import "syscall"

func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}
