package analysis

import (
	"regexp"
	"strings"
)

// boilerplatePatterns recognize the SEC filer cover-page noise that precedes
// the actual prospectus text: document index artifacts, registration
// numbers, page markers and the like. The excerpt extractor reuses them to
// reject non-substantive paragraphs.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[\w-]+\.(?:htm|html|txt)\b`),             // document index filename
	regexp.MustCompile(`(?i)^prospectus\s+prospectus`),                // cover duplication artifact
	regexp.MustCompile(`(?i)filed\s+pursuant\s+to\s+rule\s+424`),      //
	regexp.MustCompile(`(?i)^registration\s+(?:statement\s+)?no\b`),   //
	regexp.MustCompile(`(?i)^(?:file|commission)\s+(?:file\s+)?no\b`), //
	regexp.MustCompile(`^333-\d+`),                                    // bare registration number
	regexp.MustCompile(`^\$[\d,.]+\s*$`),                              // bare dollar amount
	regexp.MustCompile(`(?i)^table\s+of\s+contents$`),                 //
	regexp.MustCompile(`(?i)^[ivxlcdm]+\.?\s*$`),                      // roman-numeral list marker
	regexp.MustCompile(`^\[\d+\]$`),                                   // bracketed page number
	regexp.MustCompile(`(?i)^-?\s*page\s+\d+\s*-?$`),                  //
}

// metadataSignatureRe loosely identifies cover metadata within the first few
// lines: date-like digit runs, index filenames, registration prefixes.
var metadataSignatureRe = regexp.MustCompile(`(?i)\d{4}|\.htm|333-|rule\s+424`)

var nonSubstantiveRe = regexp.MustCompile(`^[\d\s$.,%()\[\]-]+$`)

// isBoilerplateLine reports whether a single line matches any cover-page
// noise pattern.
func isBoilerplateLine(line string) bool {
	for _, re := range boilerplatePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// isSubstantiveLine reports whether a line looks like running prose rather
// than cover noise: long enough, contains a lowercase letter, and is not
// purely numeric/currency/punctuation.
func isSubstantiveLine(line string, th Thresholds) bool {
	if len(line) < th.SubstantiveLineLen {
		return false
	}
	if !strings.ContainsFunc(line, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return false
	}
	return !nonSubstantiveRe.MatchString(line)
}

// StripBoilerplate removes the filer cover-page noise from the start of the
// extracted text stream. It scans at most the first BoilerplateScanLines
// lines, accumulating a skip offset over empty and boilerplate-classified
// lines, and stops at the first substantive line. If no substantive line is
// found within the scan window, the text is returned unchanged (trimmed).
//
// This is a best-effort heuristic filter, not a parser. False positives and
// negatives are expected; the goal is "mostly clean" input for the
// segmenter.
func StripBoilerplate(text string, th Thresholds) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	skip := 0
	skipping := true // skip region must stay contiguous from the start
	offset := 0
	scanned := 0

	for offset < len(text) && scanned < th.BoilerplateScanLines {
		end := strings.IndexByte(text[offset:], '\n')
		var line string
		if end < 0 {
			line = text[offset:]
			end = len(text)
		} else {
			end = offset + end + 1
			line = text[offset : end-1]
		}
		trimmed := strings.TrimSpace(line)

		if trimmed != "" {
			scanned++
			if isSubstantiveLine(trimmed, th) {
				return strings.TrimSpace(text[skip:])
			}

			noise := isBoilerplateLine(trimmed)
			if !noise && scanned <= th.MetadataHeadLines &&
				len(trimmed) < th.MetadataMaxLineLen &&
				metadataSignatureRe.MatchString(trimmed) {
				noise = true
			}
			if !noise {
				// Possibly a title or company-name line worth keeping;
				// stop growing the skip region but keep looking for prose.
				skipping = false
			}
		}

		if skipping {
			skip = end
		}
		offset = end
	}

	// No substantive line in the scan window: skip nothing.
	return text
}
