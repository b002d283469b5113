//go:build unix

package filter

import (
	"os/exec"
	"syscall"
)

// setProcessGroup runs the filter in its own process group so cancellation
// also stops anything the wrapper spawned.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
}
