package cite

import (
	"fmt"
	"strings"
)

// Output styles accepted by Format. An unrecognized style falls back to
// StyleFull.
const (
	StyleFull     = "full"
	StyleShort    = "short"
	StylePinpoint = "pinpoint"
)

// luxembourgTitlePrefixes detect French-style instrument titles. Matching
// is case-insensitive and tolerates missing diacritics on the first
// letter's word ("reglement", "arrete").
var luxembourgTitlePrefixes = []string{"loi", "règlement", "reglement", "arrêté", "arrete"}

// Format renders a parsed citation back to canonical text. An invalid
// citation or one without a section renders as the empty string.
func Format(citation ParsedCitation, style string) string {
	if !citation.Valid || citation.Section == "" {
		return ""
	}

	pinpoint := buildPinpoint(citation)

	switch style {
	case StyleShort:
		return strings.TrimSpace(fmt.Sprintf("art. %s %s %s", pinpoint, citation.Title, yearString(citation)))
	case StylePinpoint:
		return "art. " + pinpoint
	default:
		// StyleFull and anything unrecognized.
		if isLuxembourgTitle(citation.Title) {
			return fmt.Sprintf("%s, art. %s", citation.Title, pinpoint)
		}
		return strings.TrimSpace(fmt.Sprintf("Section %s, %s %s", pinpoint, citation.Title, yearString(citation)))
	}
}

// buildPinpoint renders the section with subsection and paragraph each in
// their own parentheses: "5(1)(a)".
func buildPinpoint(citation ParsedCitation) string {
	pinpoint := citation.Section
	if citation.Subsection != "" {
		pinpoint += "(" + citation.Subsection + ")"
	}
	if citation.Paragraph != "" {
		pinpoint += "(" + citation.Paragraph + ")"
	}
	return pinpoint
}

func isLuxembourgTitle(title string) bool {
	lowered := strings.ToLower(strings.TrimSpace(title))
	for _, prefix := range luxembourgTitlePrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

func yearString(citation ParsedCitation) string {
	if citation.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%d", citation.Year)
}
