//go:build !windows

package process

import (
	"os/exec"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

func newCmd(program string, c Command) *exec.Cmd {
	args := c.Args
	if c.Arguments != "" {
		args = strings.Fields(c.Arguments)
	}
	return exec.Command(program, args...)
}

// There is no elevation prompt outside Windows; the process is started as is.
func (r *runner) startElevated(c Command) (Process, error) {
	r.logger.Warn("elevation is not supported on this platform, starting without it",
		zap.String("program", c.Program))
	c.Elevated = false
	return r.Start(c)
}

func isElevationRequired(syscall.Errno) bool {
	return false
}
