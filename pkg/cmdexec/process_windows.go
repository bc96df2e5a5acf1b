//go:build windows

package cmdexec

import (
	"os/exec"
)

// setProcGroup is a no-op on Windows; killing the parent is enough there.
func setProcGroup(cmd *exec.Cmd) {}

// killProcGroup kills the command's process.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
