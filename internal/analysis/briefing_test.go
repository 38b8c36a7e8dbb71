package analysis

import (
	"encoding/json"
	"strings"
	"testing"
)

func testMeta() FilingMeta {
	return FilingMeta{
		CompanyName:     "Acme Robotics Holdings, Inc.",
		CIK:             "0001234567",
		AccessionNumber: "0001234567-24-000042",
		FilingDate:      "2024-04-12",
		FormType:        "424B4",
	}
}

func conditionalHeavyProse(n int) string {
	return strings.TrimSpace(strings.Repeat("Our quarterly results may fluctuate significantly and we could fail to sustain recent growth rates in future periods. ", n))
}

func TestBuildBriefing_HeavyConditionalObservation(t *testing.T) {
	// 30 repetitions yield 60 conditional matches in the section.
	text := "PROSPECTUS SUMMARY\n" + filler(3) + "\n\nRISK FACTORS\n" + conditionalHeavyProse(30)

	b := BuildBriefing(text, testMeta(), DefaultThresholds())

	var risk *BriefingSection
	for i := range b.Sections {
		if b.Sections[i].Heading == "Risk Factors" {
			risk = &b.Sections[i]
		}
	}
	if risk == nil {
		t.Fatal("expected a Risk Factors briefing section")
	}
	obs := risk.Excerpts[0].Observation
	if !strings.Contains(obs, "Heavy use of conditional phrasing.") {
		t.Errorf("expected heavy-conditional observation, got %q", obs)
	}
}

func TestBuildBriefing_UseOfProceedsWithoutAllocation(t *testing.T) {
	proceeds := strings.TrimSpace(strings.Repeat("We intend to use the net proceeds for general corporate purposes and working capital needs of the combined group. ", 3))
	text := "USE OF PROCEEDS\n" + proceeds

	b := BuildBriefing(text, testMeta(), DefaultThresholds())
	if len(b.Sections) == 0 {
		t.Fatal("expected at least one briefing section")
	}
	obs := b.Sections[0].Excerpts[0].Observation
	if !strings.Contains(obs, "No specific allocation percentages quoted.") {
		t.Errorf("expected no-allocation observation, got %q", obs)
	}
}

func TestBuildBriefing_UseOfProceedsWithAllocation(t *testing.T) {
	proceeds := strings.TrimSpace(strings.Repeat("We intend to allocate approximately forty percent of the net proceeds to research and development efforts over the coming years. ", 3))
	text := "USE OF PROCEEDS\n" + proceeds

	b := BuildBriefing(text, testMeta(), DefaultThresholds())
	obs := b.Sections[0].Excerpts[0].Observation
	if obs != "Specific dollar amounts or allocation described." {
		t.Errorf("expected allocation observation, got %q", obs)
	}
}

func TestBuildBriefing_SectionPriorityOrder(t *testing.T) {
	text := "RISK FACTORS\n" + filler(3) + "\n\nUSE OF PROCEEDS\n" + filler(3)

	b := BuildBriefing(text, testMeta(), DefaultThresholds())
	if len(b.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(b.Sections))
	}
	if b.Sections[0].Heading != "Use of Proceeds" {
		t.Errorf("expected Use of Proceeds prioritized first, got %q", b.Sections[0].Heading)
	}
	if b.Sections[1].Heading != "Risk Factors" {
		t.Errorf("expected Risk Factors second, got %q", b.Sections[1].Heading)
	}
}

func TestBuildBriefing_OverviewMentionsOfferingSize(t *testing.T) {
	text := "PROSPECTUS SUMMARY\nWe are offering 5,750,000 shares of our common stock at an assumed public offering price for aggregate gross proceeds of $86.3 million before underwriting discounts. " + filler(2)

	b := BuildBriefing(text, testMeta(), DefaultThresholds())
	if b.OfferingDetails != "$86.3 million" {
		t.Errorf("expected offering size %q, got %q", "$86.3 million", b.OfferingDetails)
	}
	if !strings.Contains(b.Overview, "$86.3 million") {
		t.Errorf("expected overview to mention the offering size, got %q", b.Overview)
	}
	if !strings.Contains(b.Overview, "Acme Robotics Holdings, Inc.") {
		t.Errorf("expected overview to name the company, got %q", b.Overview)
	}
	if b.Summary == "" {
		t.Error("expected non-empty summary excerpt")
	}
}

func TestBuildBriefing_Idempotent(t *testing.T) {
	text := "RISK FACTORS\n" + conditionalHeavyProse(10) + "\n\nUSE OF PROCEEDS\n" + filler(3)
	meta := testMeta()
	th := DefaultThresholds()

	b1 := BuildBriefing(text, meta, th)
	b2 := BuildBriefing(text, meta, th)

	b1.GeneratedAt = b2.GeneratedAt
	j1, err := json.Marshal(b1)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	j2, err := json.Marshal(b2)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(j1) != string(j2) {
		t.Errorf("expected identical briefings for identical input")
	}
}

func TestBuildBriefing_MissingProspectusURLDefaultsEmpty(t *testing.T) {
	b := BuildBriefing(filler(6), testMeta(), DefaultThresholds())
	if b.Meta.ProspectusURL != "" {
		t.Errorf("expected empty prospectus URL, got %q", b.Meta.ProspectusURL)
	}

	var decoded map[string]any
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	meta, ok := decoded["meta"].(map[string]any)
	if !ok {
		t.Fatal("expected meta object in serialized briefing")
	}
	if v, ok := meta["prospectusUrl"]; !ok || v != "" {
		t.Errorf("expected serialized prospectusUrl to be the empty string, got %v", v)
	}
}

func TestBuildBriefing_ExcerptsAreVerbatim(t *testing.T) {
	text := "RISK FACTORS\n" + conditionalHeavyProse(10)
	b := BuildBriefing(text, testMeta(), DefaultThresholds())

	for _, sec := range b.Sections {
		for _, ex := range sec.Excerpts {
			quote := strings.TrimSuffix(ex.Quote, Ellipsis)
			if quote == "" {
				continue
			}
			flat := strings.Join(strings.Fields(text), " ")
			if !strings.Contains(flat, quote) {
				t.Errorf("excerpt is not a verbatim substring: %q", quote)
			}
		}
	}
}
