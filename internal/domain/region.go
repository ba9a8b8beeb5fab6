package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRegionName = errors.New("invalid region name")

// ValidateRegionName checks that id can be used both as a file name and as
// an OS object name.
func ValidateRegionName(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidRegionName)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidRegionName, id)
	case strings.ContainsAny(id, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidRegionName, id)
	}
	return nil
}
