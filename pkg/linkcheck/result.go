package linkcheck

import (
	"time"

	"github.com/yaklabco/gomdlinks/pkg/parser/goldmark"
)

// Status classifies a checked link.
type Status string

const (
	// StatusAlive means the target resolved.
	StatusAlive Status = "alive"

	// StatusDead means the target could not be resolved or reached.
	StatusDead Status = "dead"

	// StatusIgnored means the link was not checked (fragment-only link or a
	// scheme such as mailto: that cannot be probed).
	StatusIgnored Status = "ignored"
)

// Result is the outcome for a single link.
type Result struct {
	// Link is the raw link text as written in the Markdown source.
	Link string

	// Kind says where in the document the link was found.
	Kind goldmark.LinkKind

	// Target is the absolute URL that was probed, if any.
	Target string

	// Status is the classification.
	Status Status

	// StatusCode is the final HTTP status for http(s) targets.
	StatusCode int

	// Err explains a dead link when the probe failed before a status was known.
	Err error

	// Elapsed is how long the probe took.
	Elapsed time.Duration
}

// IsDead reports whether the checker classified the link as dead.
func (r Result) IsDead() bool {
	return r.Status == StatusDead
}
