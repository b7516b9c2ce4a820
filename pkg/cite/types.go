// Package cite parses, validates, and formats legal citations for
// Luxembourg legislation: French statute forms ("Loi du 11 avril 1799,
// art. I.er") and English section forms ("Section 5(1)(a), Data Protection
// Act 2018").
package cite

// Citation type classifications.
const (
	TypeLuxembourg = "luxembourg"
	TypeEnglish    = "english"
	TypeUnknown    = "unknown"
)

// ParsedCitation is the structured result of parsing one citation string.
// Exactly one of {Valid with Section populated, !Valid with Err populated}
// holds for every parse.
type ParsedCitation struct {
	Valid bool   `json:"valid"`
	Type  string `json:"type"`

	Title string `json:"title,omitempty"`
	Year  int    `json:"year,omitempty"`

	// Section is the article or section token. For refs that do not
	// decompose numerically (Roman numerals, "I.er") it carries the
	// opaque token unchanged.
	Section    string `json:"section,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Paragraph  string `json:"paragraph,omitempty"`

	Err string `json:"error,omitempty"`
}

// Document is the minimal document view the validator needs from the
// store.
type Document struct {
	ID         string
	Title      string
	Status     string
	IssuedDate string
}

// ProvisionKey identifies one stored provision by its normalized ref and
// its human section label; the validator matches candidates against both.
type ProvisionKey struct {
	Ref     string
	Section string
}

// Validation is the result of resolving a citation against the corpus.
type Validation struct {
	Valid           bool           `json:"valid"`
	Citation        ParsedCitation `json:"citation"`
	DocumentExists  bool           `json:"document_exists"`
	ProvisionExists bool           `json:"provision_exists"`
	DocumentID      string         `json:"document_id,omitempty"`
	Warnings        []string       `json:"warnings,omitempty"`
}
