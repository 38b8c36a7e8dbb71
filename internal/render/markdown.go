package render

import (
	"fmt"
	"strings"

	"github.com/OatyQuinoa/horizon/internal/analysis"
)

// Markdown renders a briefing as a markdown report. The report is the
// intermediate form for HTML rendering and is deterministic for a given
// briefing apart from the generation timestamp.
func Markdown(b *analysis.Briefing) string {
	var sb strings.Builder

	title := b.Meta.CompanyName
	if title == "" {
		title = "Prospectus Briefing"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if b.Meta.FormType != "" || b.Meta.FilingDate != "" {
		fmt.Fprintf(&sb, "**Form:** %s  \n", orDash(b.Meta.FormType))
		fmt.Fprintf(&sb, "**Filed:** %s  \n", orDash(b.Meta.FilingDate))
		fmt.Fprintf(&sb, "**Accession:** %s  \n", orDash(b.Meta.AccessionNumber))
		fmt.Fprintf(&sb, "**CIK:** %s\n\n", orDash(b.Meta.CIK))
	}

	if b.Overview != "" {
		sb.WriteString("## Overview\n\n")
		sb.WriteString(b.Overview)
		sb.WriteString("\n\n")
	}
	if b.OfferingDetails != "" {
		sb.WriteString("## Offering Details\n\n")
		sb.WriteString(b.OfferingDetails)
		sb.WriteString("\n\n")
	}

	for _, section := range b.Sections {
		fmt.Fprintf(&sb, "## %s\n\n", section.Heading)
		for _, ex := range section.Excerpts {
			fmt.Fprintf(&sb, "> %s\n\n", escapeMarkdown(ex.Quote))
			if ex.Observation != "" {
				fmt.Fprintf(&sb, "*%s*\n\n", ex.Observation)
			}
		}
	}

	sb.WriteString("## Language Metrics\n\n")
	fmt.Fprintf(&sb, "- Conditional phrases: %d\n", b.Metrics.ConditionalTotal)
	fmt.Fprintf(&sb, "- Definitive phrases: %d\n", b.Metrics.DefinitiveTotal)
	fmt.Fprintf(&sb, "- Conditional ratio: %.2f\n\n", b.Metrics.ConditionalRatio)

	if len(b.Metrics.ConditionalPhrases) > 0 {
		sb.WriteString("| Phrase | Count |\n|---|---|\n")
		for _, pc := range b.Metrics.ConditionalPhrases {
			fmt.Fprintf(&sb, "| %s | %d |\n", escapeMarkdown(pc.Phrase), pc.Count)
		}
		sb.WriteString("\n")
	}

	if len(b.Metrics.SectionWordCounts) > 0 {
		sb.WriteString("### Section Word Counts\n\n")
		sb.WriteString("| Section | Words | Note |\n|---|---|---|\n")
		for _, wc := range b.Metrics.SectionWordCounts {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", escapeMarkdown(wc.Name), wc.Words, wc.Note)
		}
		sb.WriteString("\n")
	}

	if len(b.Metrics.NotablyUnderdeveloped) > 0 {
		sb.WriteString("### Coverage Notes\n\n")
		for _, flag := range b.Metrics.NotablyUnderdeveloped {
			fmt.Fprintf(&sb, "- **%s**: %s\n", escapeMarkdown(flag.Section), flag.Note)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "---\n\nGenerated %s\n", b.GeneratedAt.Format("2006-01-02 15:04 MST"))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var markdownEscaper = strings.NewReplacer(
	"|", "\\|",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
	"`", "\\`",
	"#", "\\#",
)

// escapeMarkdown neutralizes markdown syntax inside verbatim filing text so
// quoted excerpts render literally.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
