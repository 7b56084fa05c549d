package cli

import (
	"errors"

	"github.com/yaklabco/seevg/internal/configloader"
	"github.com/yaklabco/seevg/pkg/runner"
)

// Exit codes for seevg.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChanges indicates --check found files that need formatting.
	ExitChanges = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read or written.
	ExitIOError = 74
)

var (
	// ErrFormatChanges is returned by format --check when a file would change.
	ErrFormatChanges = errors.New("files need formatting")

	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")

	errInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a format run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitIOError
	case check && result.HasChanges():
		return ExitChanges
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFormatChanges):
		return ExitChanges
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	case errors.Is(err, errInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// errorFromExitCode turns a run's exit code into the command error.
func errorFromExitCode(code int) error {
	switch code {
	case ExitChanges:
		return ErrFormatChanges
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}
