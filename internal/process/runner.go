package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Command describes a process to spawn. Arguments is a raw command-line tail
// and wins over Args when both are set.
type Command struct {
	Program   string
	Arguments string
	Args      []string
	Dir       string
	Elevated  bool
}

// Runner interface defines the contract for spawning external processes
type Runner interface {
	Start(cmd Command) (Process, error)
}

type Process interface {
	Pid() int
	// Wait blocks until the process exits and returns its exit code.
	Wait(ctx context.Context) (int, error)
	Stop() error
}

type runner struct {
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) Runner {
	return &runner{logger: logger}
}

func (r *runner) Start(c Command) (Process, error) {
	if c.Program == "" {
		return nil, newStartError(c.Program, ErrExecutableNotFound)
	}

	if c.Elevated {
		return r.startElevated(c)
	}

	cmd := newCmd(resolveProgram(c), c)
	cmd.Dir = c.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, newStartError(c.Program, err)
	}

	r.logger.Debug("started process",
		zap.Int("pid", cmd.Process.Pid),
		zap.String("program", c.Program))

	p := &execProcess{
		cmd:      cmd,
		logger:   r.logger,
		waitDone: make(chan struct{}),
	}

	var outputs sync.WaitGroup
	outputs.Add(2)
	go p.monitorOutput(&outputs, stdout, "stdout")
	go p.monitorOutput(&outputs, stderr, "stderr")

	// Pipes must be drained before Wait closes them.
	go func() {
		defer close(p.waitDone)
		outputs.Wait()
		p.waitErr = cmd.Wait()
	}()

	return p, nil
}

// resolveProgram anchors a bare program name to the working directory the way
// CreateProcess does, instead of searching PATH.
func resolveProgram(c Command) string {
	if filepath.IsAbs(c.Program) || strings.ContainsAny(c.Program, `/\`) {
		return c.Program
	}

	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	candidate := filepath.Join(dir, c.Program)
	if _, err := os.Stat(candidate); err != nil {
		return c.Program
	}
	if !strings.ContainsAny(candidate, `/\`) {
		candidate = "." + string(filepath.Separator) + candidate
	}
	return candidate
}

type execProcess struct {
	cmd      *exec.Cmd
	logger   *zap.Logger
	waitDone chan struct{}
	waitErr  error
	stopped  bool
	mu       sync.Mutex
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Wait(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return -1, ctx.Err()
	case <-p.waitDone:
	}

	if p.waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(p.waitErr, &exitErr) {
			return -1, fmt.Errorf("failed to wait for process: %w", p.waitErr)
		}
	}

	return p.cmd.ProcessState.ExitCode(), nil
}

func (p *execProcess) Stop() error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.mu.Unlock()

	select {
	case <-p.waitDone:
		return nil
	default:
	}

	// Try graceful shutdown first
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		p.logger.Debug("failed to send SIGTERM, killing process", zap.Error(err))
		if err := p.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// Wait for process to exit with timeout
	select {
	case <-p.waitDone:
		return nil
	case <-time.After(5 * time.Second):
		if err := p.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to force kill process: %w", err)
		}
		<-p.waitDone
	}

	return nil
}

func (p *execProcess) monitorOutput(wg *sync.WaitGroup, pipe io.ReadCloser, name string) {
	defer wg.Done()

	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			p.logger.Debug("process output",
				zap.String("pipe", name),
				zap.String("message", line))
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		p.logger.Error("error reading process output",
			zap.String("pipe", name),
			zap.Error(err))
	}
}
