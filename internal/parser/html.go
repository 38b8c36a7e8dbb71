package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser extracts the body text of an EDGAR filing document. Filings
// use presentational markup heavily (styled <div>/<p> soup, nested tables),
// so the walker flattens everything to text and only preserves block
// boundaries as paragraph breaks.
type HTMLParser struct{}

// blockTags are elements that delimit a text run with a paragraph break.
var blockTags = map[string]bool{
	"p": true, "div": true, "table": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "center": true,
}

// skipTags are non-content elements excluded from extraction.
var skipTags = map[string]bool{
	"script": true, "style": true, "head": true, "title": true,
	"nav": true, "footer": true, "noscript": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				buf.WriteString("\n")
				return
			}
			if blockTags[n.Data] {
				buf.WriteString("\n\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteString("\n\n")
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return strings.TrimSpace(buf.String()), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
