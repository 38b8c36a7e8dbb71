package analysis

import (
	"regexp"
	"strings"
)

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// Ellipsis marks a hard truncation in an excerpt. It is the only character
// sequence an excerpt may contain that is not a verbatim substring of the
// source content.
const Ellipsis = "..."

// ExtractExcerpt finds the first substantive paragraph of a section span and
// truncates it near a sentence boundary around ExcerptMaxLen characters.
//
// Paragraphs are blank-line delimited. A paragraph qualifies when, after
// collapsing internal whitespace, it is at least MinParagraphChars long and
// matches no boilerplate pattern. If no paragraph qualifies, the whole
// content is flattened to one line and cut at the first period after
// FallbackPeriodPos. The empty string is returned only when the flattened
// text is shorter than MinFlattenedChars.
func ExtractExcerpt(content string, th Thresholds) string {
	maxLen := th.ExcerptMaxLen

	for _, para := range paragraphSplitRe.Split(content, -1) {
		flat := strings.Join(strings.Fields(para), " ")
		if len(flat) < th.MinParagraphChars {
			continue
		}
		if isBoilerplateLine(flat) {
			continue
		}
		return truncateAtSentence(flat, maxLen)
	}

	// Fallback: flatten everything and cut after the first late period.
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) < th.MinFlattenedChars {
		return ""
	}
	if len(flat) > th.FallbackPeriodPos {
		if i := strings.IndexByte(flat[th.FallbackPeriodPos:], '.'); i >= 0 {
			end := th.FallbackPeriodPos + i + 1
			if end <= 2*maxLen {
				return flat[:end]
			}
		}
	}
	if len(flat) <= maxLen {
		return flat
	}
	return flat[:maxLen] + Ellipsis
}

// truncateAtSentence returns text verbatim when it fits, otherwise cuts at
// the last period in the upper half of the length budget, or hard-truncates
// with an ellipsis marker when no such period exists.
func truncateAtSentence(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if idx := strings.LastIndexByte(text[:maxLen], '.'); idx >= maxLen/2 {
		return text[:idx+1]
	}
	return text[:maxLen] + Ellipsis
}
