package edgar

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IndexParser locates the primary document filename in a filing index page.
// The SEC's index HTML is not a stable contract, so the scraping strategy
// lives behind this interface and can be swapped without touching callers.
type IndexParser interface {
	PrimaryDocument(r io.Reader) (string, error)
}

// GoqueryIndexParser scans the index page's links for the first prospectus
// document. EDGAR index pages list documents as anchors inside a table.
type GoqueryIndexParser struct{}

func (p *GoqueryIndexParser) PrimaryDocument(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse index html: %w", err)
	}

	var htm, txt string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		name := path.Base(href)
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "-index"):
			return true
		case strings.HasSuffix(lower, ".htm"), strings.HasSuffix(lower, ".html"):
			htm = name
			return false
		case strings.HasSuffix(lower, ".txt") && txt == "":
			txt = name
		}
		return true
	})

	if htm != "" {
		return htm, nil
	}
	if txt != "" {
		return txt, nil
	}
	return "", fmt.Errorf("no document link found in filing index")
}
