//go:build windows

package process

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// commandLine is passed to CreateProcess verbatim, as the settings file has
// always expected.
func commandLine(c Command) string {
	if c.Arguments != "" {
		return c.Arguments
	}
	escaped := make([]string, len(c.Args))
	for i, arg := range c.Args {
		escaped[i] = windows.EscapeArg(arg)
	}
	return strings.Join(escaped, " ")
}

func newCmd(program string, c Command) *exec.Cmd {
	cmd := exec.Command(program)
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: commandLine(c)}
	return cmd
}

// startElevated goes through ShellExecuteEx with the runas verb so the user
// gets the UAC prompt.
func (r *runner) startElevated(c Command) (Process, error) {
	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return nil, newStartError(c.Program, err)
	}
	file, err := windows.UTF16PtrFromString(c.Program)
	if err != nil {
		return nil, newStartError(c.Program, err)
	}
	params, err := windows.UTF16PtrFromString(commandLine(c))
	if err != nil {
		return nil, newStartError(c.Program, err)
	}

	info := newShellExecuteInfo()
	info.fMask = seeMaskNoCloseProcess
	info.lpVerb = verb
	info.lpFile = file
	info.lpParameters = params
	info.nShow = windows.SW_SHOWNORMAL
	if c.Dir != "" {
		if info.lpDirectory, err = windows.UTF16PtrFromString(c.Dir); err != nil {
			return nil, newStartError(c.Program, err)
		}
	}

	if err := shellExecuteEx(info); err != nil {
		return nil, newStartError(c.Program, err)
	}

	r.logger.Debug("started elevated process", zap.String("program", c.Program))

	return &handleProcess{handle: info.hProcess}, nil
}

// handleProcess tracks a process known only by its handle.
type handleProcess struct {
	mu     sync.Mutex
	handle windows.Handle
}

func (p *handleProcess) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return 0
	}
	pid, err := windows.GetProcessId(p.handle)
	if err != nil {
		return 0
	}
	return int(pid)
}

func (p *handleProcess) Wait(ctx context.Context) (int, error) {
	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return -1, fmt.Errorf("process handle is closed")
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		event, err := windows.WaitForSingleObject(handle, 0)
		if err != nil {
			return -1, fmt.Errorf("failed to wait for process: %w", err)
		}
		if event == windows.WAIT_OBJECT_0 {
			var code uint32
			if err := windows.GetExitCodeProcess(handle, &code); err != nil {
				return -1, fmt.Errorf("failed to read exit code: %w", err)
			}
			p.close()
			return int(code), nil
		}

		select {
		case <-ctx.Done():
			return -1, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *handleProcess) Stop() error {
	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()
	if handle == 0 {
		return nil
	}

	defer p.close()
	if err := windows.TerminateProcess(handle, 1); err != nil {
		return fmt.Errorf("failed to terminate process: %w", err)
	}
	return nil
}

func (p *handleProcess) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle != 0 {
		_ = windows.CloseHandle(p.handle)
		p.handle = 0
	}
}

func isElevationRequired(code syscall.Errno) bool {
	return code == windows.ERROR_ELEVATION_REQUIRED
}
