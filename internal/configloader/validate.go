package configloader

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/gomdlinks/pkg/config"
	"github.com/yaklabco/gomdlinks/pkg/whitelist"
)

// longTimeout is the probe timeout above which Validate warns.
const longTimeout = 2 * time.Minute

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "whitelist[0]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:  true,
	config.FormatJSON:  true,
	config.FormatTable: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, table", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means no limit)",
		})
	}

	if cfg.LinkConcurrency < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "link_concurrency",
			Value:   cfg.LinkConcurrency,
			Message: "link_concurrency must be >= 0 (0 means the default)",
		})
	}

	if cfg.Timeout < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "timeout",
			Value:   cfg.Timeout,
			Message: "timeout must be positive",
		})
	} else if cfg.Timeout > longTimeout {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "timeout",
			Value:   cfg.Timeout,
			Message: fmt.Sprintf("timeout %s is long; a single unresponsive host can hold up the run", cfg.Timeout),
		})
	}

	if strings.ContainsAny(cfg.BaseRef, " \t\n") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "base_ref",
			Value:   cfg.BaseRef,
			Message: fmt.Sprintf("invalid base ref %q; must not contain whitespace", cfg.BaseRef),
		})
	}

	if strings.HasPrefix(cfg.BaseRef, "-") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "base_ref",
			Value:   cfg.BaseRef,
			Message: fmt.Sprintf("invalid base ref %q; must not start with '-'", cfg.BaseRef),
		})
	}

	validateWhitelist(cfg, result)

	return result
}

// validateWhitelist checks that every extra pattern compiles.
func validateWhitelist(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Whitelist {
		if err := whitelist.Validate(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("whitelist[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
