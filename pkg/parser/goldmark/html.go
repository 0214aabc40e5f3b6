package goldmark

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// linkAttrs maps lower-case tag names to the attribute holding their target.
//
//nolint:gochecknoglobals // Read-only lookup table.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"area":   "href",
	"img":    "src",
	"script": "src",
	"source": "src",
	"iframe": "src",
	"video":  "src",
	"audio":  "src",
}

type linkCollector struct {
	seen  map[string]struct{}
	links []Link
}

func newLinkCollector() *linkCollector {
	return &linkCollector{seen: make(map[string]struct{})}
}

func (c *linkCollector) add(url string, kind LinkKind) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	if _, dup := c.seen[url]; dup {
		return
	}
	c.seen[url] = struct{}{}
	c.links = append(c.links, Link{URL: url, Kind: kind})
}

// addHTML tokenizes an HTML fragment and collects link attributes.
// The tokenizer is lenient: fragments such as a lone "<a href=...>" are fine.
func (c *linkCollector) addHTML(fragment []byte) {
	tokenizer := html.NewTokenizer(bytes.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			want, ok := linkAttrs[strings.ToLower(token.Data)]
			if !ok {
				continue
			}
			for _, attr := range token.Attr {
				if strings.EqualFold(attr.Key, want) {
					c.add(attr.Val, KindHTML)
				}
			}
		default:
		}
	}
}
