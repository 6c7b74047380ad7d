//go:build !windows

package proc

import (
	"os/exec"
	"syscall"
)

// setDetached puts the child in its own process group so terminal signals
// aimed at the CLI do not reach it.
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
