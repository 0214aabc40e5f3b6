package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdlinks/pkg/config"
)

// envVarPrefix is the prefix for all gomdlinks environment variables.
const envVarPrefix = "GOMDLINKS_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
	envTypeLines
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"BASE_REF":         {field: "base_ref", typ: envTypeString},
	"FLAVOR":           {field: "flavor", typ: envTypeString},
	"FORMAT":           {field: "format", typ: envTypeString},
	"USER_AGENT":       {field: "user_agent", typ: envTypeString},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"LINK_CONCURRENCY": {field: "link_concurrency", typ: envTypeInt},
	"TIMEOUT":          {field: "timeout", typ: envTypeDuration},
	"IGNORE_ADDED":     {field: "ignore_added", typ: envTypeBool},
	"FILES":            {field: "files", typ: envTypeSlice},
	// Patterns may contain commas, so they are newline separated.
	"WHITELIST": {field: "whitelist", typ: envTypeLines},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDLINKS_ (e.g., GOMDLINKS_BASE_REF).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q (e.g. 10s, 1m)", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value, ","))
	case envTypeLines:
		return setSliceField(cfg, mapping.field, parseSliceValue(value, "\n"))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits value on sep. Each element is trimmed of whitespace
// and empty elements are dropped.
func parseSliceValue(value, sep string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "base_ref":
		cfg.BaseRef = value
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "user_agent":
		cfg.UserAgent = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "ignore_added":
		cfg.IgnoreAdded = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "link_concurrency":
		cfg.LinkConcurrency = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setDurationField sets a duration field on the config by field path.
func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "timeout":
		cfg.Timeout = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "files":
		cfg.Files = value
	case "whitelist":
		cfg.Whitelist = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOMDLINKS_BASE_REF":         "Revision new files are diffed against (default master)",
		"GOMDLINKS_FLAVOR":           "Markdown flavor: gfm or commonmark",
		"GOMDLINKS_FORMAT":           "Output format: text, json or table",
		"GOMDLINKS_USER_AGENT":       "User-Agent header for HTTP probes",
		"GOMDLINKS_JOBS":             "Maximum files checked at once (0 = no limit)",
		"GOMDLINKS_LINK_CONCURRENCY": "Maximum links probed at once per file",
		"GOMDLINKS_TIMEOUT":          "Timeout for a single HTTP probe (e.g. 10s)",
		"GOMDLINKS_IGNORE_ADDED":     "Excuse dead links to files added in this change: true or false",
		"GOMDLINKS_FILES":            "Comma-separated list of Markdown files to check",
		"GOMDLINKS_WHITELIST":        "Newline-separated extra whitelist patterns",
	}
}
