package webinfo

import (
	"errors"
	"fmt"
	"syscall"

	"alicia-launcher/internal/domain"
)

type ErrorKind int

const (
	BackingStoreFailed ErrorKind = iota + 1
	InvalidBackingStore
	MappingFailed
)

var (
	ErrBackingStoreFailed  = errors.New("couldn't create the web info backing store")
	ErrInvalidBackingStore = errors.New("backing store is invalid for mapping")
	ErrMappingFailed       = errors.New("couldn't create a named file mapping")
	ErrInvalidRegionName   = domain.ErrInvalidRegionName
	ErrNotPublished        = errors.New("no web info is published")
)

func (k ErrorKind) String() string {
	switch k {
	case BackingStoreFailed:
		return "backing store failed"
	case InvalidBackingStore:
		return "invalid backing store"
	case MappingFailed:
		return "mapping failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case BackingStoreFailed:
		return ErrBackingStoreFailed
	case InvalidBackingStore:
		return ErrInvalidBackingStore
	case MappingFailed:
		return ErrMappingFailed
	default:
		return nil
	}
}

// PublishError is returned by Host.Publish. Code carries the native OS error
// code when one is available.
type PublishError struct {
	Kind ErrorKind
	Code syscall.Errno
	Err  error
}

func newPublishError(kind ErrorKind, err error) *PublishError {
	pe := &PublishError{Kind: kind, Err: err}
	errors.As(err, &pe.Code)
	return pe
}

func (e *PublishError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%v: os error 0x%x: %v", e.Kind.sentinel(), uintptr(e.Code), e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind.sentinel(), e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the failure kind.
func (e *PublishError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
