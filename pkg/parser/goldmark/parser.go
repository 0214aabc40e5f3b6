// Package goldmark extracts hyperlinks from Markdown using the goldmark library.
package goldmark

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// LinkKind says where in the document a link was found.
type LinkKind string

const (
	KindInline LinkKind = "inline"
	KindImage  LinkKind = "image"
	KindAuto   LinkKind = "auto"
	KindHTML   LinkKind = "html"
)

// Link is a single link destination as written in the source.
type Link struct {
	URL  string
	Kind LinkKind
}

// Parser finds links in Markdown documents.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Links returns every distinct link destination in content, in document order.
//
// Inline links, images, reference-style links and autolinks come from the
// goldmark AST. href and src attributes in raw HTML (inline or block) are
// extracted as well. Links inside code spans and code blocks are not links.
func (p *Parser) Links(ctx context.Context, content []byte) ([]Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	collector := newLinkCollector()

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Link:
			collector.add(string(n.Destination), KindInline)
		case *ast.Image:
			collector.add(string(n.Destination), KindImage)
		case *ast.AutoLink:
			url := string(n.URL(content))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			collector.add(url, KindAuto)
		case *ast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < n.Segments.Len(); i++ {
				segment := n.Segments.At(i)
				buf.Write(segment.Value(content))
			}
			collector.addHTML(buf.Bytes())
		case *ast.HTMLBlock:
			var buf bytes.Buffer
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(content))
			}
			if n.HasClosure() {
				buf.Write(n.ClosureLine.Value(content))
			}
			collector.addHTML(buf.Bytes())
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return collector.links, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	// GFM adds tables, strikethrough and, relevant here, bare-URL linkify.
	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
