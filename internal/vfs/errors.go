package vfs

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrNotADirectory     = errors.New("not a directory")
	ErrConflict          = errors.New("path conflicts with an existing node")
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	ErrInvalidPath       = errors.New("invalid path")
)

// SkipDir may be returned by a WalkFunc to skip a directory's children.
var SkipDir = errors.New("skip directory")

// PathError records a failed operation. Its message is the user-facing text shown by
// terminals and dialogs.
type PathError struct {
	Op   string
	Path string
	Err  error

	message string
}

func (e *PathError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func pathError(op, path string, kind error, message string) *PathError {
	return &PathError{Op: op, Path: path, Err: kind, message: message}
}
