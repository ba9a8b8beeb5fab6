package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
)

var (
	ErrElevationRequired  = errors.New("elevation is required")
	ErrExecutableNotFound = errors.New("executable not found")
)

// StartError is returned when a process could not be spawned. Code holds the
// platform error code; Error passes the platform message through unchanged.
type StartError struct {
	Program string
	Code    syscall.Errno
	Err     error
}

func newStartError(program string, err error) *StartError {
	se := &StartError{Program: program, Err: err}
	errors.As(err, &se.Code)
	return se
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Program, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

func (e *StartError) Is(target error) bool {
	switch target {
	case ErrElevationRequired:
		return e.Code != 0 && isElevationRequired(e.Code)
	case ErrExecutableNotFound:
		return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist)
	default:
		return false
	}
}
