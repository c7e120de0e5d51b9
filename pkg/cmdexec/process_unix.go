//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup starts the command in a new process group so that a timeout
// can take down pnpm together with the node processes it spawns.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup sends SIGKILL to the process group of cmd.
//
// Parameters:
//   - cmd: A started command configured with setProcGroup
//
// Returns:
//   - error: Error from kill(2); nil when the process never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative PID addresses the whole group
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
