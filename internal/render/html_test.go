package render

import (
	"strings"
	"testing"
	"time"

	"github.com/OatyQuinoa/horizon/internal/analysis"
)

func testBriefing() *analysis.Briefing {
	return &analysis.Briefing{
		Meta: analysis.FilingMeta{
			CompanyName:     "Acme Robotics Holdings, Inc.",
			CIK:             "0001318605",
			AccessionNumber: "0001193125-24-000123",
			FilingDate:      "2024-04-12",
			FormType:        "424B4",
			ProspectusURL:   "https://www.sec.gov/Archives/edgar/data/1318605/000119312524000123/d424b4.htm",
		},
		Overview: "Acme Robotics Holdings, Inc. filed a 424B4 with the SEC on 2024-04-12.",
		Summary:  "We design and manufacture autonomous warehouse robots.",
		Sections: []analysis.BriefingSection{
			{
				Heading: "Risk Factors",
				Excerpts: []analysis.Excerpt{
					{
						Quote:       "Our quarterly results may fluctuate significantly.",
						Observation: "Moderate use of conditional phrasing. 25 hedging constructions appear in this section.",
					},
				},
			},
		},
		Metrics: analysis.Metrics{
			ConditionalPhrases: []analysis.PhraseCount{{Phrase: "may", Count: 12}},
			ConditionalTotal:   25,
			DefinitiveTotal:    40,
			ConditionalRatio:   0.62,
			SectionWordCounts: []analysis.SectionWordCount{
				{Name: "Risk Factors", Words: 1200},
			},
		},
		GeneratedAt: time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestMarkdown_ContainsBriefingContent(t *testing.T) {
	got := Markdown(testBriefing())

	for _, want := range []string{
		"# Acme Robotics Holdings, Inc.",
		"## Overview",
		"## Risk Factors",
		"> Our quarterly results may fluctuate significantly.",
		"Moderate use of conditional phrasing.",
		"- Conditional ratio: 0.62",
		"| Risk Factors | 1200 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestMarkdown_EscapesQuotedText(t *testing.T) {
	b := testBriefing()
	b.Sections[0].Excerpts[0].Quote = "returns of *100%* are [not] guaranteed"
	got := Markdown(b)
	if !strings.Contains(got, `\*100%\*`) {
		t.Errorf("expected asterisks escaped, got %q", got)
	}
	if !strings.Contains(got, `\[not\]`) {
		t.Errorf("expected brackets escaped, got %q", got)
	}
}

func TestHTML_StandalonePage(t *testing.T) {
	got, err := HTML(testBriefing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Error("expected a standalone document")
	}
	for _, want := range []string{
		"<title>Acme Robotics Holdings, Inc.</title>",
		"<style>",
		"Risk Factors",
		"fluctuate significantly",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
}

func TestHTML_QuotedMarkupDoesNotInject(t *testing.T) {
	b := testBriefing()
	b.Sections[0].Excerpts[0].Quote = "risk <script>alert(1)</script> factors"
	got, err := HTML(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<script>alert(1)</script>") {
		t.Error("expected quoted markup to be neutralized")
	}
}

func TestHTML_Deterministic(t *testing.T) {
	b := testBriefing()
	first, err := HTML(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HTML(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected identical output for identical briefing")
	}
}
