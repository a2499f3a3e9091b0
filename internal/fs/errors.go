package fs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions every backend must preserve.
// Callers classify with errors.Is; messages stay human-readable.
var (
	ErrNotFound       = errors.New("path not found")
	ErrNotADirectory  = errors.New("not a directory")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrTooLarge       = errors.New("file exceeds size limit")
)

// NotFound wraps ErrNotFound with the offending path.
func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// NotADirectory wraps ErrNotADirectory with the offending path.
func NotADirectory(path string) error {
	return fmt.Errorf("%w: %s", ErrNotADirectory, path)
}

// AlreadyExists wraps ErrAlreadyExists with the conflicting name.
func AlreadyExists(name string) error {
	return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
}
