//go:build unix

package dispatch

import (
	"os/exec"
	"syscall"
)

// setProcessGroup runs the tool in its own process group and kills the whole
// group on cancellation. exec.CommandContext alone only kills the direct
// child, leaving its children running after a timeout.
func setProcessGroup(proc *exec.Cmd) {
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	proc.Cancel = func() error {
		return syscall.Kill(-proc.Process.Pid, syscall.SIGKILL)
	}
}
