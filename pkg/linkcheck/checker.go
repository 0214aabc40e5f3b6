// Package linkcheck validates the links of a Markdown document.
//
// Relative links are resolved against a base URL, normally the file:// URL of
// the directory holding the document. file: targets are alive when the path
// exists; http(s) targets are probed over the network.
package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/parser/goldmark"
)

// Defaults used by NewChecker.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 4
	DefaultUserAgent   = "gomdlinks/1.0"

	// maxBodyRead caps how much of a GET body is drained.
	maxBodyRead = 1 << 20
)

// ErrInvalidBaseURL is returned when Options.BaseURL cannot be parsed.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// Options controls a single CheckMarkdown call.
type Options struct {
	// BaseURL resolves relative links. It should end with "/" when it names
	// a directory. Empty means relative links are resolved against nothing
	// and will be reported dead.
	BaseURL string

	// Concurrency caps simultaneous probes for this document.
	// 0 uses the checker's default.
	Concurrency int
}

// Checker extracts and validates links.
type Checker struct {
	// Parser extracts links from Markdown.
	Parser *goldmark.Parser

	// Client performs HTTP probes.
	Client *http.Client

	// Timeout bounds a single probe, HEAD and GET fallback included.
	Timeout time.Duration

	// Concurrency is the default per-document probe limit.
	Concurrency int

	// UserAgent is sent with every HTTP request.
	UserAgent string
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the per-link timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithConcurrency sets the default per-document probe limit.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.Concurrency = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Checker) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

// NewChecker creates a Checker that extracts links with parser.
func NewChecker(parser *goldmark.Parser, opts ...Option) *Checker {
	c := &Checker{
		Parser:      parser,
		Client:      &http.Client{},
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		UserAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Parser == nil {
		c.Parser = goldmark.New(goldmark.FlavorGFM)
	}
	return c
}

// CheckMarkdown checks every link in markdown and returns one Result per
// distinct link, in document order.
//
// Dead links are data, not errors. An error means the check itself could not
// run: the base URL is malformed or ctx was cancelled.
func (c *Checker) CheckMarkdown(ctx context.Context, markdown string, opts Options) ([]Result, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidBaseURL, opts.BaseURL, err)
	}

	links, err := c.Parser.Links(ctx, []byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("extract links: %w", err)
	}

	logging.FromContext(ctx).Debug("extracted links",
		logging.FieldFlavor, c.Parser.Flavor(),
		logging.FieldLinksTotal, len(links),
	)

	results := make([]Result, len(links))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = c.Concurrency
	}

	var group errgroup.Group
	if limit > 0 {
		group.SetLimit(limit)
	}

	// A dead link is a result, not an error; only cancellation stops the group.
	for i, link := range links {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := c.CheckLink(ctx, base, link.URL)
			res.Kind = link.Kind
			results[i] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("check links: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check links: %w", err)
	}

	return results, nil
}

// CheckLink resolves link against base and classifies it.
func (c *Checker) CheckLink(ctx context.Context, base *url.URL, link string) Result {
	res := Result{Link: link}

	trimmed := strings.TrimSpace(link)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		res.Status = StatusIgnored
		return res
	}

	ref, err := url.Parse(trimmed)
	if err != nil {
		res.Status = StatusDead
		res.Err = fmt.Errorf("parse link: %w", err)
		return res
	}

	target := ref
	if !ref.IsAbs() && base != nil {
		target = base.ResolveReference(ref)
	}
	res.Target = target.String()

	start := time.Now()
	switch strings.ToLower(target.Scheme) {
	case "http", "https":
		res = c.probeHTTP(ctx, res, target)
	case "file":
		res = probeFile(res, target)
	case "":
		res.Status = StatusDead
		res.Err = errors.New("relative link without a base URL")
	default:
		res.Status = StatusIgnored
	}
	res.Elapsed = time.Since(start)

	logging.FromContext(ctx).Debug("checked link",
		logging.FieldLink, link,
		logging.FieldStatus, res.Status,
		logging.FieldStatusCode, res.StatusCode,
	)

	return res
}

// probeFile checks that a file: target exists. Query and fragment are ignored.
func probeFile(res Result, target *url.URL) Result {
	path := filepath.FromSlash(target.Path)
	if path == "" {
		res.Status = StatusDead
		res.Err = errors.New("empty file path")
		return res
	}

	if _, err := os.Stat(path); err != nil {
		res.Status = StatusDead
		res.Err = err
		return res
	}

	res.Status = StatusAlive
	return res
}

// probeHTTP tries HEAD first and falls back to GET when HEAD fails or does not
// return a 2xx status; plenty of servers mishandle HEAD.
func (c *Checker) probeHTTP(ctx context.Context, res Result, target *url.URL) Result {
	probeCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// The fragment is never sent to the server.
	clean := *target
	clean.Fragment = ""
	link := clean.String()

	code, err := c.do(probeCtx, http.MethodHead, link)
	if err != nil || !isSuccess(code) {
		code, err = c.do(probeCtx, http.MethodGet, link)
	}

	res.StatusCode = code
	if err != nil {
		res.Status = StatusDead
		res.Err = err
		return res
	}

	if isSuccess(code) {
		res.Status = StatusAlive
	} else {
		res.Status = StatusDead
		res.Err = fmt.Errorf("HTTP %d", code)
	}
	return res
}

func (c *Checker) do(ctx context.Context, method, link string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, link, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	// Drain a little body on GET so the connection can be reused.
	if method == http.MethodGet {
		_, _ = io.CopyN(io.Discard, resp.Body, maxBodyRead)
	}

	return resp.StatusCode, nil
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
