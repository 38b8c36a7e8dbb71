package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// sectionPriority orders sections by relevance for the briefing. Sections
// not in this list keep their relative document order after the prioritized
// ones.
var sectionPriority = []string{
	"Use of Proceeds",
	"Risk Factors",
	"Prospectus Summary",
	"Offering",
	"Our Business",
	"Underwriting",
	"Capitalization",
	"Dilution",
}

var (
	offeringSizeRe   = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?(?:\s*(?:million|billion))?`)
	allocationRe     = regexp.MustCompile(`(?i)%|percent|allocation|\$\d`)
	summarySectionRe = regexp.MustCompile(`(?i)summary|offering`)
)

// BuildBriefing runs the full pipeline over tag-stripped filing text: it
// normalizes whitespace, strips cover boilerplate, segments the document
// into sections, computes document-wide metrics, extracts one verbatim
// excerpt per prioritized section, and assembles the result into a
// self-contained briefing. It is pure except for the GeneratedAt timestamp:
// identical input yields identical sections, metrics and overview.
func BuildBriefing(text string, meta FilingMeta, th Thresholds) Briefing {
	normalized := NormalizeText(text)
	cleaned := StripBoilerplate(normalized, th)
	spans := ExtractSections(normalized, th)

	counts := ComputeCounts(cleaned, th)
	totalWords := wordCount(cleaned)
	wordCounts, flags := SectionWordStats(spans, totalWords, th)

	avgWords := 0
	if len(spans) > 0 {
		sum := 0
		for _, wc := range wordCounts {
			sum += wc.Words
		}
		avgWords = sum / len(spans)
	}

	ordered := prioritizeSections(spans)
	if len(ordered) > th.MaxBriefingSections {
		ordered = ordered[:th.MaxBriefingSections]
	}

	sections := make([]BriefingSection, 0, len(ordered))
	for _, span := range ordered {
		quote := ExtractExcerpt(span.Content, th)
		sections = append(sections, BriefingSection{
			Heading: span.Name,
			Excerpts: []Excerpt{{
				Quote:       quote,
				Observation: observe(span, avgWords, th),
			}},
		})
	}

	summary := summaryExcerpt(spans, th)
	offering := firstOfferingSize(normalized)

	return Briefing{
		Meta:            meta,
		Overview:        buildOverview(meta, offering, summary),
		Summary:         summary,
		OfferingDetails: offering,
		Sections:        sections,
		Metrics: Metrics{
			ConditionalPhrases:    counts.ConditionalPhrases,
			ConditionalTotal:      counts.ConditionalTotal,
			DefinitiveTotal:       counts.DefinitiveTotal,
			ConditionalRatio:      counts.ConditionalRatio,
			SectionWordCounts:     wordCounts,
			NotablyUnderdeveloped: flags,
		},
		GeneratedAt: time.Now().UTC(),
	}
}

// observe derives a rule-based observation for a section. The rules are
// fixed and checked in order; the first trigger wins.
func observe(span SectionSpan, avgWords int, th Thresholds) string {
	lower := strings.ToLower(span.Name)
	words := wordCount(span.Content)

	if strings.Contains(lower, "risk factor") {
		n := CountConditional(span.Content)
		if n > th.HeavyConditional {
			return fmt.Sprintf("Heavy use of conditional phrasing. %d hedging constructions appear in this section.", n)
		}
		if n >= th.ModerateConditional {
			return fmt.Sprintf("Moderate use of conditional phrasing. %d hedging constructions appear in this section.", n)
		}
	}

	if strings.Contains(lower, "use of proceeds") {
		if allocationRe.MatchString(span.Content) {
			return "Specific dollar amounts or allocation described."
		}
		return "No specific allocation percentages quoted. The section describes intended proceeds in general terms."
	}

	if words < th.BriefSectionWords && avgWords > th.AvgSectionWords {
		return "Unusually brief relative to other sections."
	}
	if words > th.ExtensiveWords {
		return "Extensive disclosure in this section."
	}
	return fmt.Sprintf("Verbatim excerpt from the %s section of the filing.", span.Name)
}

// prioritizeSections reorders spans so the most decision-relevant sections
// come first. The sort is stable within each bucket.
func prioritizeSections(spans []SectionSpan) []SectionSpan {
	rank := func(name string) int {
		lower := strings.ToLower(name)
		for i, p := range sectionPriority {
			if strings.Contains(lower, strings.ToLower(p)) {
				return i
			}
		}
		return len(sectionPriority)
	}

	ordered := make([]SectionSpan, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].Name) < rank(ordered[j].Name)
	})
	return ordered
}

// summaryExcerpt returns the first excerpt from whichever section reads like
// the prospectus summary or offering overview.
func summaryExcerpt(spans []SectionSpan, th Thresholds) string {
	for _, span := range spans {
		if summarySectionRe.MatchString(span.Name) {
			if quote := ExtractExcerpt(span.Content, th); quote != "" {
				return quote
			}
		}
	}
	return ""
}

// firstOfferingSize pulls the first dollar amount (with optional
// million/billion suffix) out of the raw text as an approximation of the
// offering size.
func firstOfferingSize(text string) string {
	return offeringSizeRe.FindString(text)
}

// buildOverview synthesizes the briefing's opening paragraph from the
// filing metadata, the approximate offering size, and the summary excerpt.
func buildOverview(meta FilingMeta, offering, summary string) string {
	var b strings.Builder

	subject := meta.CompanyName
	if subject == "" {
		subject = "The issuer"
	}
	if meta.FormType != "" {
		fmt.Fprintf(&b, "%s filed a %s with the SEC", subject, meta.FormType)
	} else {
		fmt.Fprintf(&b, "%s filed a registration statement with the SEC", subject)
	}
	if meta.FilingDate != "" {
		fmt.Fprintf(&b, " on %s", meta.FilingDate)
	}
	b.WriteString(".")

	if offering != "" {
		fmt.Fprintf(&b, " The filing references an offering of approximately %s.", offering)
	}
	if summary != "" {
		b.WriteString(" ")
		b.WriteString(summary)
	}
	return b.String()
}
