package analysis

import (
	"strings"
	"testing"
)

// filler produces n copies of a neutral prose sentence on a single line.
func filler(n int) string {
	return strings.TrimSpace(strings.Repeat("the issuer operates a network of distribution centers across several regions and relies on third party carriers. ", n))
}

func TestExtractSections_BasicSegmentation(t *testing.T) {
	text := "RISK FACTORS\n" + filler(3) + "\n\nUSE OF PROCEEDS\n" + filler(3)

	spans := ExtractSections(text, DefaultThresholds())
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "Risk Factors" {
		t.Errorf("expected first span %q, got %q", "Risk Factors", spans[0].Name)
	}
	if spans[1].Name != "Use of Proceeds" {
		t.Errorf("expected second span %q, got %q", "Use of Proceeds", spans[1].Name)
	}
	if spans[0].Start >= spans[1].Start {
		t.Errorf("expected spans in document order, got starts %d and %d", spans[0].Start, spans[1].Start)
	}
	for _, s := range spans {
		if strings.Contains(s.Content, "USE OF PROCEEDS") {
			t.Errorf("span %q content leaks the next heading", s.Name)
		}
		if strings.HasPrefix(s.Content, "RISK FACTORS") || strings.HasPrefix(s.Content, "USE OF PROCEEDS") {
			t.Errorf("span %q content retains its own heading line", s.Name)
		}
		if len(s.Content) < 150 {
			t.Errorf("span %q shorter than minimum: %d chars", s.Name, len(s.Content))
		}
	}
}

func TestExtractSections_FallbackSummarySpan(t *testing.T) {
	text := filler(6) // >500 chars, no recognizable headings

	spans := ExtractSections(text, DefaultThresholds())
	if len(spans) != 1 {
		t.Fatalf("expected exactly 1 fallback span, got %d", len(spans))
	}
	if spans[0].Name != "Summary" {
		t.Errorf("expected fallback span named %q, got %q", "Summary", spans[0].Name)
	}
	if spans[0].Start != 0 {
		t.Errorf("expected fallback span start 0, got %d", spans[0].Start)
	}
}

func TestExtractSections_ShortInputNoSpans(t *testing.T) {
	spans := ExtractSections("too short to matter", DefaultThresholds())
	if len(spans) != 0 {
		t.Errorf("expected no spans for short heading-free input, got %d", len(spans))
	}
}

func TestExtractSections_DiscardsDegenerateSection(t *testing.T) {
	// A heading followed by almost no content is a false positive.
	text := "USE OF PROCEEDS\nshort.\n\nRISK FACTORS\n" + filler(3)

	spans := ExtractSections(text, DefaultThresholds())
	if len(spans) != 1 {
		t.Fatalf("expected 1 surviving span, got %d", len(spans))
	}
	if spans[0].Name != "Risk Factors" {
		t.Errorf("expected surviving span %q, got %q", "Risk Factors", spans[0].Name)
	}
}

func TestExtractSections_OverlappingDetectorsDedup(t *testing.T) {
	// "RISK FACTORS" fires both the case-insensitive and the
	// uppercase-only detectors at the same offset; only one span may
	// survive and the earlier pattern's label wins.
	text := "RISK FACTORS\n" + filler(3)

	spans := ExtractSections(text, DefaultThresholds())
	if len(spans) != 1 {
		t.Fatalf("expected 1 deduplicated span, got %d", len(spans))
	}
	if spans[0].Name != "Risk Factors" {
		t.Errorf("expected %q, got %q", "Risk Factors", spans[0].Name)
	}
}

func TestExtractSections_ItemPrefixAndBusinessNormalization(t *testing.T) {
	text := "Item 1. Our Business\n" + filler(3) + "\n\nItem 3. Use of Proceeds\n" + filler(3)

	spans := ExtractSections(text, DefaultThresholds())
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "Our Business" {
		t.Errorf("expected %q, got %q", "Our Business", spans[0].Name)
	}
	if spans[1].Name != "Use of Proceeds" {
		t.Errorf("expected %q, got %q", "Use of Proceeds", spans[1].Name)
	}
}

func TestNormalizeHeading(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"RISK FACTORS", "Risk Factors"},
		{"USE OF PROCEEDS", "Use of Proceeds"},
		{"BUSINESS", "Our Business"},
		{"Description of  Capital Stock", "Description of Capital Stock"},
	}
	for _, c := range cases {
		if got := normalizeHeading(c.in); got != c.want {
			t.Errorf("normalizeHeading(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
