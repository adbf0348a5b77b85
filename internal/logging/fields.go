package logging

// Field names for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Library fields.
	FieldLibrary    = "library"
	FieldStructure  = "structure"
	FieldStructures = "structures"
	FieldElements   = "elements"
	FieldBytes      = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
