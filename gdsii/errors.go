// Package gdsii provides a pure Go implementation for reading and writing GDSII stream files.
package gdsii

import (
	"errors"

	"github.com/robert-malhotra/go-gdsii/internal/record"
)

// Common errors
var (
	// ErrMalformedStream reports a missing record, a premature end of stream
	// or an undecodable record. It matches errors from the record layer.
	ErrMalformedStream = record.ErrMalformed

	// ErrDuplicateName reports a structure name that occurs twice in one library.
	ErrDuplicateName = errors.New("duplicate structure name")

	// ErrInconsistentGrammar reports records that appear in an order the
	// format does not allow, such as a reference element without SNAME.
	ErrInconsistentGrammar = errors.New("inconsistent record grammar")

	ErrInvalidHeader  = errors.New("invalid file header")
	ErrNotFound       = errors.New("structure not found")
	ErrClosed         = errors.New("file is closed")
	ErrCycle          = errors.New("structure hierarchy contains a cycle")
	ErrHierarchyDepth = errors.New("maximum hierarchy depth exceeded")
)

// MaxHierarchyDepth is the deepest reference chain Walk and Flatten follow
// before giving up with ErrHierarchyDepth.
const MaxHierarchyDepth = 100
