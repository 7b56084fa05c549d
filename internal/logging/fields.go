package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Formatting.
	FieldWidth   = "width"
	FieldJobs    = "jobs"
	FieldWrite   = "write"
	FieldCheck   = "check"
	FieldBlocks  = "blocks"
	FieldChanged = "changed"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Inspector server.
	FieldAddr    = "addr"
	FieldSession = "session"
	FieldMessage = "message"
	FieldElement = "element"
	FieldSpan    = "span"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
