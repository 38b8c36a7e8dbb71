package analysis

import (
	"regexp"
	"strings"
)

var (
	crlfRe      = regexp.MustCompile(`\r\n?`)
	spaceRunRe  = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankLineRe = regexp.MustCompile(`\n[ \t]*\n[\s]*\n+`)
	lineEdgeRe  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// NormalizeText canonicalizes whitespace in tag-stripped filing text:
// CRLF becomes LF, runs of spaces collapse to one, and runs of three or
// more newlines collapse to a paragraph break.
func NormalizeText(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = lineEdgeRe.ReplaceAllString(text, "\n")
	text = blankLineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// wordCount counts whitespace-separated tokens.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
