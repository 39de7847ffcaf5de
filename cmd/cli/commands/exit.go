package commands

import (
	"errors"
	"io"

	"github.com/fatih/color"

	"go.interactor.dev/cfndep/decode"
)

// Exit statuses of the cfndep binary. Internal routines return errors instead
// of terminating the process; only main maps them to statuses via [ExitCode].
const (
	ExitOK                     = 0
	ExitFailure                = 1
	ExitOutputIsDirectory      = 2
	ExitOutputDirNotFound      = 3
	ExitOutputPermissionDenied = 4
)

// ExitCode maps an error returned by the command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var outErr *OutputError
	if errors.As(err, &outErr) {
		switch outErr.Kind {
		case OutputIsDirectory:
			return ExitOutputIsDirectory
		case OutputDirNotFound:
			return ExitOutputDirNotFound
		case OutputPermissionDenied:
			return ExitOutputPermissionDenied
		}
	}

	return ExitFailure
}

// Report prints the diagnostic for a fatal error to the diagnostic stream.
func Report(w io.Writer, err error) {
	var parseErr *decode.ParseError
	if errors.As(err, &parseErr) {
		errorf(w, "[ERROR] Failed to parse YAML in %s : %v", parseErr.Path, parseErr.Err)
		return
	}

	var outErr *OutputError
	if errors.As(err, &outErr) {
		switch outErr.Kind {
		case OutputIsDirectory:
			errorf(w, "[ERROR] Is a directory: %s", outErr.Path)
		case OutputDirNotFound:
			errorf(w, "[ERROR] Output directory not found: %s", outErr.Path)
		case OutputPermissionDenied:
			errorf(w, "[ERROR] Permission denied when writing to: %s", outErr.Path)
		}
		return
	}

	errorf(w, "[ERROR] %v", err)
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
)

func errorf(w io.Writer, format string, args ...any) {
	errorColor.Fprintf(w, format+"\n", args...)
}

func warnf(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}
