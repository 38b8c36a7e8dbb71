package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Two fixed lexical classes serve as crude proxies for tentative versus
// stated-as-fact language. The phrase lists are closed and the matching is
// plain case-insensitive word matching.
var (
	conditionalRe = regexp.MustCompile(`(?i)\b(?:we\s+)?(?:may|might|could|would|should|intend|expect|believe|anticipate|seek|plan|aim)\b`)
	definitiveRe  = regexp.MustCompile(`(?i)\b(?:we\s+)?(?:have|has|had|do|does|did|generated?|operates?|provides?)\b`)
)

// expectedSections are the sections a complete prospectus is expected to
// carry as distinct headings.
var expectedSections = []string{
	"Risk Factors",
	"Use of Proceeds",
	"Business",
	"Capitalization",
	"Dilution",
	"Underwriting",
}

// DocumentCounts holds the raw document-wide phrase tallies.
type DocumentCounts struct {
	ConditionalPhrases []PhraseCount
	ConditionalTotal   int
	DefinitiveTotal    int
	ConditionalRatio   float64
}

// CountConditional tallies conditional-class matches in text.
func CountConditional(text string) int {
	return len(conditionalRe.FindAllStringIndex(text, -1))
}

// ComputeCounts tallies both phrase classes across the whole document.
// Conditional matches are counted per distinct lower-cased phrase; the top
// TopPhrases by count are reported, ties broken by first encounter in
// document order. The ratio is 0 when no definitive matches exist; callers
// must not read that as "no hedging language".
func ComputeCounts(text string, th Thresholds) DocumentCounts {
	type tally struct {
		count int
		first int
	}
	freq := make(map[string]*tally)
	order := 0
	total := 0
	for _, m := range conditionalRe.FindAllString(text, -1) {
		phrase := strings.Join(strings.Fields(strings.ToLower(m)), " ")
		t, ok := freq[phrase]
		if !ok {
			t = &tally{first: order}
			order++
			freq[phrase] = t
		}
		t.count++
		total++
	}

	ranked := make([]PhraseCount, 0, len(freq))
	firsts := make(map[string]int, len(freq))
	for phrase, t := range freq {
		ranked = append(ranked, PhraseCount{Phrase: phrase, Count: t.count})
		firsts[phrase] = t.first
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firsts[ranked[i].Phrase] < firsts[ranked[j].Phrase]
	})
	if len(ranked) > th.TopPhrases {
		ranked = ranked[:th.TopPhrases]
	}

	definitive := len(definitiveRe.FindAllStringIndex(text, -1))

	ratio := 0.0
	if definitive > 0 {
		ratio = float64(total) / float64(definitive)
	}

	return DocumentCounts{
		ConditionalPhrases: ranked,
		ConditionalTotal:   total,
		DefinitiveTotal:    definitive,
		ConditionalRatio:   ratio,
	}
}

// SectionWordStats computes per-section word counts with outlier notes, and
// flags expected sections that are missing or notably underdeveloped.
// totalWords is the whole cleaned document's word count.
func SectionWordStats(spans []SectionSpan, totalWords int, th Thresholds) ([]SectionWordCount, []SectionFlag) {
	counts := make([]SectionWordCount, 0, len(spans))
	for _, span := range spans {
		words := wordCount(span.Content)
		entry := SectionWordCount{Name: span.Name, Words: words}
		if isRiskFactors(span.Name) && totalWords > 0 {
			share := float64(words) / float64(totalWords)
			if share < th.RiskBriefShare {
				entry.Note = "Unusually brief"
			} else if share > th.RiskExtensiveShare {
				entry.Note = "Extensive"
			}
		}
		counts = append(counts, entry)
	}

	var flags []SectionFlag
	for _, expected := range expectedSections {
		words, found := findSectionWords(counts, expected)
		if !found {
			flags = append(flags, SectionFlag{
				Section: expected,
				Note:    "Not located as a distinct section in the filing",
			})
			continue
		}
		if words < th.ExpectedSectionWords {
			flags = append(flags, SectionFlag{
				Section: expected,
				Note:    fmt.Sprintf("Only %d words in this section", words),
			})
		}
	}

	return counts, flags
}

// findSectionWords locates a discovered section by case-insensitive
// substring match against the expected name.
func findSectionWords(counts []SectionWordCount, expected string) (int, bool) {
	needle := strings.ToLower(expected)
	for _, c := range counts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c.Words, true
		}
	}
	return 0, false
}

func isRiskFactors(name string) bool {
	return strings.Contains(strings.ToLower(name), "risk factor")
}
