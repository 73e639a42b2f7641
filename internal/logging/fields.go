package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldFormat     = "format"

	// Configuration fields.
	FieldTargetJDK = "target_jdk"
	FieldDryRun    = "dry_run"
	FieldMode      = "mode"
	FieldBackups   = "backups"

	// Change fields.
	FieldKind      = "kind"
	FieldStartLine = "start_line"
	FieldEndLine   = "end_line"
	FieldFoundLine = "found_line"
	FieldStage     = "stage"
	FieldLanguage  = "language"
	FieldBlocks    = "blocks"

	// Result fields.
	FieldApplied = "applied"
	FieldBackup  = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesModified   = "files_modified"
	FieldChangesTotal    = "changes_total"
	FieldChangesApplied  = "changes_applied"
	FieldChangesFailed   = "changes_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
