// Package eureg extracts EU directive and regulation citations from French
// legislative free text and normalizes them to canonical identifiers.
package eureg

import "fmt"

// Document types for extracted EU references.
const (
	TypeDirective  = "directive"
	TypeRegulation = "regulation"
)

// Year bounds for plausible EU legislation (Treaty of Rome to a safe
// future cap). Matches outside this range are discarded.
const (
	MinYear = 1957
	MaxYear = 2100
)

// Reference is one normalized EU citation found in free text.
type Reference struct {
	// EUDocumentID is the synthetic key "{type}:{year}/{number}".
	EUDocumentID string

	// Type is TypeDirective or TypeRegulation.
	Type string

	Year   int
	Number int

	// Community is the normalized community label (EU, CE, CEE, EG,
	// EEG, Euratom).
	Community string

	// Article is the pinpointed article number when the citation
	// carried one ("directive 2016/1148, article 5").
	Article string

	// FullCitation is the raw matched text.
	FullCitation string
}

// DocumentID formats the synthetic EU document key.
func DocumentID(documentType string, year int, number int) string {
	return fmt.Sprintf("%s:%d/%d", documentType, year, number)
}

// GenericTitle renders a displayable title for an EU document that has no
// known short name.
func GenericTitle(documentType string, year int, number int, community string) string {
	if documentType == TypeRegulation {
		return fmt.Sprintf("Règlement (%s) %d/%d", community, year, number)
	}
	return fmt.Sprintf("Directive %d/%d/%s", year, number, community)
}
