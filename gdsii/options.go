package gdsii

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// FileOption configures Open and Create.
type FileOption func(*fileOptions)

type fileOptions struct {
	logger *log.Logger
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		logger: discardLogger(),
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// WithLogger sets the logger used for debug output about header reads,
// index builds and skipped records. Output is discarded by default.
func WithLogger(logger *log.Logger) FileOption {
	return func(o *fileOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// StructOption configures WriteStruct.
type StructOption func(*structOptions)

type structOptions struct {
	creationTime time.Time
	modTime      time.Time
}

func defaultStructOptions() *structOptions {
	return &structOptions{
		creationTime: DefaultTime,
		modTime:      DefaultTime,
	}
}

// WithCreationTime sets the creation timestamp stored in BGNSTR.
func WithCreationTime(t time.Time) StructOption {
	return func(o *structOptions) {
		o.creationTime = t
	}
}

// WithModTime sets the modification timestamp stored in BGNSTR.
func WithModTime(t time.Time) StructOption {
	return func(o *structOptions) {
		o.modTime = t
	}
}
