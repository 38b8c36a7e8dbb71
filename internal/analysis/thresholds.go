package analysis

// Thresholds collects the tuning constants of the analysis pipeline. The
// defaults were hand-tuned against a sample of S-1 and 424B4 filings and can
// be overridden from a YAML file via the config package.
type Thresholds struct {
	// Boilerplate stripper.
	BoilerplateScanLines int `yaml:"boilerplate_scan_lines"` // lines examined at document start
	MetadataHeadLines    int `yaml:"metadata_head_lines"`    // lines eligible for the loose metadata check
	MetadataMaxLineLen   int `yaml:"metadata_max_line_len"`  // short-line cutoff for the metadata check
	SubstantiveLineLen   int `yaml:"substantive_line_len"`   // minimum length of a substantive line

	// Section segmenter.
	MinSectionChars  int `yaml:"min_section_chars"`  // spans shorter than this are discarded
	HeadingLineSpan  int `yaml:"heading_line_span"`  // max chars before the heading's own newline
	DedupWindow      int `yaml:"dedup_window"`       // offset window for duplicate heading matches
	FallbackMinChars int `yaml:"fallback_min_chars"` // cleaned-text minimum for the synthetic span
	FallbackSpanLen  int `yaml:"fallback_span_len"`  // length of the synthetic Summary span

	// Excerpt extractor.
	ExcerptMaxLen     int `yaml:"excerpt_max_len"`
	MinParagraphChars int `yaml:"min_paragraph_chars"`
	MinFlattenedChars int `yaml:"min_flattened_chars"`
	FallbackPeriodPos int `yaml:"fallback_period_pos"` // offset after which the fallback looks for a period

	// Metrics engine.
	TopPhrases           int     `yaml:"top_phrases"`
	RiskBriefShare       float64 `yaml:"risk_brief_share"`       // Risk Factors share below this is "Unusually brief"
	RiskExtensiveShare   float64 `yaml:"risk_extensive_share"`   // ...above this is "Extensive"
	ExpectedSectionWords int     `yaml:"expected_section_words"` // expected sections under this are flagged

	// Observation rules.
	HeavyConditional    int `yaml:"heavy_conditional"`
	ModerateConditional int `yaml:"moderate_conditional"`
	BriefSectionWords   int `yaml:"brief_section_words"`
	AvgSectionWords     int `yaml:"avg_section_words"`
	ExtensiveWords      int `yaml:"extensive_words"`

	// Assembler.
	MaxBriefingSections int `yaml:"max_briefing_sections"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BoilerplateScanLines: 50,
		MetadataHeadLines:    5,
		MetadataMaxLineLen:   60,
		SubstantiveLineLen:   80,

		MinSectionChars:  150,
		HeadingLineSpan:  120,
		DedupWindow:      30,
		FallbackMinChars: 500,
		FallbackSpanLen:  20000,

		ExcerptMaxLen:     280,
		MinParagraphChars: 60,
		MinFlattenedChars: 80,
		FallbackPeriodPos: 200,

		TopPhrases:           10,
		RiskBriefShare:       0.03,
		RiskExtensiveShare:   0.25,
		ExpectedSectionWords: 150,

		HeavyConditional:    50,
		ModerateConditional: 20,
		BriefSectionWords:   200,
		AvgSectionWords:     500,
		ExtensiveWords:      3000,

		MaxBriefingSections: 8,
	}
}
