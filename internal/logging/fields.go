// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"
	FieldBackup     = "backup"

	// Configuration fields.
	FieldBaseRef = "base_ref"
	FieldFlavor  = "flavor"
	FieldJobs    = "jobs"
	FieldTimeout = "timeout"
	FieldFormat  = "format"

	// Link fields.
	FieldLink       = "link"
	FieldStatus     = "status"
	FieldStatusCode = "status_code"
	FieldBaseURL    = "base_url"

	// Statistics fields.
	FieldFilesChecked      = "files_checked"
	FieldFilesWithDead     = "files_with_dead_links"
	FieldLinksTotal        = "links_total"
	FieldDeadLinks         = "dead_links"
	FieldExcusedLinks      = "excused_links"
	FieldAddedFiles        = "added_files"
	FieldAddedCount        = "added_count"
	FieldWhitelistPatterns = "whitelist_patterns"
	FieldWhitelistRules    = "whitelist_rules"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
