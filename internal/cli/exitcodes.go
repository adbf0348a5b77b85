package cli

import (
	"errors"
	"io/fs"

	"github.com/robert-malhotra/go-gdsii/gdsii"
	"github.com/robert-malhotra/go-gdsii/internal/config"
)

// Exit codes for gdsinspect.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic failure, such as an unknown structure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage or configuration.
	ExitInvalidUsage = 64

	// ExitDataError indicates a malformed or inconsistent stream file.
	ExitDataError = 65

	// ExitNoInput indicates an input file that does not exist.
	ExitNoInput = 66

	// ExitIOError indicates other file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var pathErr *fs.PathError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitInvalidUsage
	case errors.Is(err, gdsii.ErrMalformedStream),
		errors.Is(err, gdsii.ErrInconsistentGrammar),
		errors.Is(err, gdsii.ErrDuplicateName),
		errors.Is(err, gdsii.ErrCycle),
		errors.Is(err, gdsii.ErrHierarchyDepth):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist):
		return ExitNoInput
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
