//go:build !unix

package filter

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}
