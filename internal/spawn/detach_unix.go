//go:build unix

package spawn

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session so it outlives the launcher and
// does not share its terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
