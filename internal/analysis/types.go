package analysis

import "time"

// FilingMeta identifies the filing a briefing was built from. It is supplied
// by the caller (EDGAR client or CLI flags) and copied into the briefing
// unchanged. ProspectusURL may be empty when the source document was a local
// file.
type FilingMeta struct {
	CompanyName     string `json:"companyName"`
	CIK             string `json:"cik"`
	AccessionNumber string `json:"accessionNumber"`
	FilingDate      string `json:"filingDate"`
	FormType        string `json:"formType"`
	ProspectusURL   string `json:"prospectusUrl"`
}

// SectionSpan is a labeled slice of the cleaned document text, from one
// detected heading to the next.
type SectionSpan struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Start   int    `json:"start"`
}

// Excerpt pairs a verbatim quote from the filing with a derived observation.
type Excerpt struct {
	Quote       string `json:"quote"`
	Observation string `json:"observation"`
}

// BriefingSection is one rendered section of the briefing. The excerpt list
// structurally allows more than one entry; the current assembler emits one.
type BriefingSection struct {
	Heading  string    `json:"heading"`
	Excerpts []Excerpt `json:"excerpts"`
}

// PhraseCount is a conditional phrase and how often it occurred.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// SectionWordCount reports the size of a discovered section, with an
// optional note for outliers.
type SectionWordCount struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
	Note  string `json:"note,omitempty"`
}

// SectionFlag marks an expected section that is missing or thin.
type SectionFlag struct {
	Section string `json:"section"`
	Note    string `json:"note"`
}

// Metrics holds the document-wide linguistic measurements.
//
// ConditionalRatio is floored to 0 when DefinitiveTotal is 0. Callers must
// not read a 0 ratio as "no hedging language detected"; check the totals.
type Metrics struct {
	ConditionalPhrases    []PhraseCount      `json:"conditionalPhrases"`
	ConditionalTotal      int                `json:"conditionalTotal"`
	DefinitiveTotal       int                `json:"definitiveTotal"`
	ConditionalRatio      float64            `json:"conditionalRatio"`
	SectionWordCounts     []SectionWordCount `json:"sectionWordCounts"`
	NotablyUnderdeveloped []SectionFlag      `json:"notablyUnderdeveloped"`
}

// Briefing is the root output of the analysis pipeline: a pure,
// self-contained value with no references back into the source HTML.
// It is never mutated after construction and never persisted.
type Briefing struct {
	Meta            FilingMeta        `json:"meta"`
	Overview        string            `json:"overview"`
	Summary         string            `json:"summary"`
	OfferingDetails string            `json:"offeringDetails"`
	Sections        []BriefingSection `json:"sections"`
	Metrics         Metrics           `json:"metrics"`
	GeneratedAt     time.Time         `json:"generatedAt"`
}
