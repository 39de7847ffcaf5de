package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// userRW is file mode of the written output
const userRW = 0o600

// OutputKind classifies output write failures; each kind maps to its own exit
// status.
type OutputKind int

const (
	// OutputIsDirectory - the target path is an existing directory.
	OutputIsDirectory OutputKind = iota
	// OutputDirNotFound - the target's parent directory does not exist.
	OutputDirNotFound
	// OutputPermissionDenied - no permission to write the target.
	OutputPermissionDenied
)

// OutputError is a classified failure to write the rendered diagram.
type OutputError struct {
	Path string
	Kind OutputKind
	Err  error
}

// Error implements error
func (e *OutputError) Error() string {
	switch e.Kind {
	case OutputIsDirectory:
		return fmt.Sprintf("is a directory: %s", e.Path)
	case OutputDirNotFound:
		return fmt.Sprintf("output directory not found: %s", e.Path)
	default:
		return fmt.Sprintf("permission denied when writing to: %s", e.Path)
	}
}

// Unwrap exposes the underlying file system error
func (e *OutputError) Unwrap() error {
	return e.Err
}

// writeOutput writes the rendered text to path, classifying the failure modes
// which have dedicated exit statuses. Nothing is written when the target turns
// out to be a directory.
func writeOutput(path, text string) error {
	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		return &OutputError{Path: path, Kind: OutputIsDirectory}
	}

	err := os.WriteFile(path, []byte(text), userRW)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return &OutputError{Path: path, Kind: OutputDirNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &OutputError{Path: path, Kind: OutputPermissionDenied, Err: err}
	default:
		return fmt.Errorf("writing output file: %s, %w", path, err)
	}
}
