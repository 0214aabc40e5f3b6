// Package config defines core configuration types for gomdlinks.
// These types are pure data structures with no dependency on how they are loaded.
package config

import "time"

// OutputFormat specifies how a check report is rendered.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// Flavor specifies the Markdown flavor used to extract links.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults applied by NewConfig.
const (
	DefaultBaseRef         = "master"
	DefaultFlavor          = FlavorGFM
	DefaultTimeout         = 10 * time.Second
	DefaultLinkConcurrency = 4
	DefaultUserAgent       = "gomdlinks/1.0 (+https://github.com/yaklabco/gomdlinks)"
)

// Config is the root configuration structure for gomdlinks.
type Config struct {
	// BaseRef is the revision new files are diffed against ("<base>...HEAD").
	BaseRef string `yaml:"base_ref"`

	// Jobs caps how many files are checked at once. 0 means no cap.
	Jobs int `yaml:"jobs"`

	// Timeout bounds a single HTTP probe.
	Timeout time.Duration `yaml:"timeout"`

	// LinkConcurrency caps concurrent probes inside one file.
	LinkConcurrency int `yaml:"link_concurrency"`

	// Flavor selects the Markdown dialect used for link extraction.
	Flavor Flavor `yaml:"flavor"`

	// Whitelist holds extra patterns stripped from Markdown before checking.
	// They run after the built-in patterns.
	Whitelist []string `yaml:"whitelist"`

	// UserAgent is sent with every HTTP probe.
	UserAgent string `yaml:"user_agent"`

	// IgnoreAdded excuses dead links that name a file added in this change.
	// Nil means "use the default" (true).
	IgnoreAdded *bool `yaml:"ignore_added"`

	// CLI-level options (not persisted to config files).

	// Files is the list of Markdown files to check.
	Files []string `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	ignoreAdded := true
	return &Config{
		BaseRef:         DefaultBaseRef,
		Jobs:            0,
		Timeout:         DefaultTimeout,
		LinkConcurrency: DefaultLinkConcurrency,
		Flavor:          DefaultFlavor,
		UserAgent:       DefaultUserAgent,
		IgnoreAdded:     &ignoreAdded,
		Format:          FormatText,
	}
}

// ExcusesAddedFiles reports whether dead links to newly added files are excused.
func (c *Config) ExcusesAddedFiles() bool {
	if c == nil || c.IgnoreAdded == nil {
		return true
	}
	return *c.IgnoreAdded
}
