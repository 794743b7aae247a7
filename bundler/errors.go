package bundler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModuleNotFound is wrapped by ResolutionError
var ErrModuleNotFound = errors.New("module not found")

// ResolutionError reports a module stub whose source file could not be located
type ResolutionError struct {
	Module     string
	Candidates []string // locations tried, in lookup order
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("mod %s not found, tried: %s", e.Module, strings.Join(e.Candidates, ", "))
}

func (e *ResolutionError) Unwrap() error {
	return ErrModuleNotFound
}

// FormatError reports a formatter rejecting the merged output
type FormatError struct {
	Code   int
	Stderr string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("rustfmt failed, code=%d\nstderr: %s", e.Code, e.Stderr)
}
