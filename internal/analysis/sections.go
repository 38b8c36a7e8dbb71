package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// headingPattern pairs a detector regexp with the capture group that yields
// the section label. Patterns are ordered: when two detectors fire within
// the dedup window of each other, the earlier pattern in this list wins.
type headingPattern struct {
	re *regexp.Regexp
}

// item is the optional "Item N." prefix some registration statements put in
// front of section headings.
const item = `(?:item\s+\d+[a-z]?\.?\s*)?`

var headingPatterns = []headingPattern{
	{regexp.MustCompile(`(?mi)^` + item + `(prospectus\s+summary)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(risk\s+factors)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(use\s+of\s+proceeds)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `((?:our\s+)?business)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(management'?s\s+discussion(?:\s+and\s+analysis)?|selected\s+(?:consolidated\s+)?financial\s+data)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(capitalization|dilution)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(description\s+of\s+(?:capital\s+stock|securities|share\s+capital))\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(underwriting)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(legal\s+matters|experts)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(where\s+you\s+can\s+find(?:\s+more\s+information)?)\b`)},
	{regexp.MustCompile(`(?mi)^` + item + `(the\s+offering|offering)\b`)},
	// Uppercase-only variants for headings that appear without an Item prefix.
	{regexp.MustCompile(`(?m)^(RISK\s+FACTORS)\b`)},
	{regexp.MustCompile(`(?m)^(USE\s+OF\s+PROCEEDS)\b`)},
}

// normalizeHeading canonicalizes a matched heading label.
func normalizeHeading(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	upper := strings.ToUpper(name)
	switch upper {
	case "RISK FACTORS":
		return "Risk Factors"
	case "USE OF PROCEEDS":
		return "Use of Proceeds"
	}
	if strings.Contains(upper, "BUSINESS") {
		return "Our Business"
	}
	return name
}

type headingMatch struct {
	offset int
	name   string
}

// ExtractSections slices the document into labeled section spans. The text
// is boilerplate-stripped first, then every heading detector runs over the
// full cleaned text. Matches landing within DedupWindow characters of an
// already-recorded match are dropped (overlapping detectors firing on the
// same heading). Surviving matches are sorted by offset; each span runs to
// the next match or end of document, with the heading's own line trimmed
// off the front and undersized spans discarded.
//
// Malformed input never raises: the worst case is the synthetic fallback
// span or an empty result.
func ExtractSections(text string, th Thresholds) []SectionSpan {
	cleaned := StripBoilerplate(text, th)

	var matches []headingMatch
	for _, hp := range headingPatterns {
		for _, loc := range hp.re.FindAllStringSubmatchIndex(cleaned, -1) {
			off := loc[0]
			if nearExisting(matches, off, th.DedupWindow) {
				continue
			}
			label := cleaned[loc[2]:loc[3]]
			matches = append(matches, headingMatch{offset: off, name: normalizeHeading(label)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].offset < matches[j].offset })

	var spans []SectionSpan
	for i, m := range matches {
		end := len(cleaned)
		if i+1 < len(matches) {
			end = matches[i+1].offset
		}
		content := cleaned[m.offset:end]

		// Trim the heading's own line off the span content.
		if nl := strings.IndexByte(content, '\n'); nl >= 0 && nl < th.HeadingLineSpan {
			content = content[nl+1:]
		}
		content = strings.TrimSpace(content)
		if len(content) < th.MinSectionChars {
			continue
		}
		spans = append(spans, SectionSpan{Name: m.name, Content: content, Start: m.offset})
	}

	if len(spans) == 0 && len(cleaned) > th.FallbackMinChars {
		content := cleaned
		if len(content) > th.FallbackSpanLen {
			content = content[:th.FallbackSpanLen]
		}
		spans = []SectionSpan{{Name: "Summary", Content: strings.TrimSpace(content), Start: 0}}
	}

	return spans
}

func nearExisting(matches []headingMatch, off, window int) bool {
	for _, m := range matches {
		d := off - m.offset
		if d < 0 {
			d = -d
		}
		if d <= window {
			return true
		}
	}
	return false
}
