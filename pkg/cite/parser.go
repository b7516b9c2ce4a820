package cite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Citation grammar, first match wins. The Luxembourg pattern is tried
// first because its title can itself contain "Section"-like words.
var (
	// "<title>, art. <ref>" / "<title>, article <ref>". The greedy
	// title consumes everything up to the last article marker.
	luxembourgPattern = regexp.MustCompile(`(?i)^(.+),\s*art(?:icle)?\.?\s+([A-Za-z0-9().\-]+)\s*$`)

	// "Section 5(1)(a), Data Protection Act 2018".
	fullEnglishPattern = regexp.MustCompile(`(?i)^section\s+(\d+)(?:\((\d+)\))?(?:\(([a-z])\))?\s*,\s*(.+?)\s+(\d{4})\s*$`)

	// "s. 5(1)(a) DPA 2018".
	shortEnglishPattern = regexp.MustCompile(`^[sS]\.?\s*(\d+)(?:\((\d+)\))?(?:\(([a-z])\))?\s+([A-Z][A-Za-z0-9]*[A-Z][A-Za-z0-9]*)\s+(\d{4})\s*$`)

	// Numeric section decomposition: "5", "5(1)", "5(1)(a)".
	sectionShapePattern = regexp.MustCompile(`^(\d+)(?:\((\d+)\))?(?:\(([a-z])\))?$`)

	bareYearPattern  = regexp.MustCompile(`\b(\d{4})\b`)
	articleRefPrefix = regexp.MustCompile(`(?i)^art(?:icle)?\.?\s*`)
)

// Parse converts a free-text legal citation into a structured reference.
// It is a pure function; the same input always yields the same output.
func Parse(text string) ParsedCitation {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return invalidCitation("empty citation")
	}

	if match := luxembourgPattern.FindStringSubmatch(trimmed); match != nil {
		return parseLuxembourg(match[1], match[2])
	}
	if match := fullEnglishPattern.FindStringSubmatch(trimmed); match != nil {
		return parseEnglish(match[4], match[5], match[1], match[2], match[3])
	}
	if match := shortEnglishPattern.FindStringSubmatch(trimmed); match != nil {
		return parseEnglish(match[4], match[5], match[1], match[2], match[3])
	}

	return invalidCitation(fmt.Sprintf("unrecognized citation format: %q", trimmed))
}

func parseLuxembourg(title string, rawRef string) ParsedCitation {
	citation := ParsedCitation{
		Valid: true,
		Type:  TypeLuxembourg,
		Title: strings.TrimSpace(title),
	}

	// A year inside the title ("Loi du 11 avril 1799") is opportunistic;
	// its absence is not an error.
	if yearMatch := bareYearPattern.FindString(citation.Title); yearMatch != "" {
		citation.Year, _ = strconv.Atoi(yearMatch)
	}

	// The regex already consumed the article marker, but strip a stray
	// prefix from the token anyway.
	ref := articleRefPrefix.ReplaceAllString(strings.TrimSpace(rawRef), "")
	citation.Section, citation.Subsection, citation.Paragraph = decomposeSection(ref)
	return citation
}

func parseEnglish(title string, year string, section string, subsection string, paragraph string) ParsedCitation {
	citation := ParsedCitation{
		Valid:      true,
		Type:       TypeEnglish,
		Title:      strings.TrimSpace(title),
		Section:    section,
		Subsection: subsection,
		Paragraph:  paragraph,
	}
	citation.Year, _ = strconv.Atoi(year)
	return citation
}

// decomposeSection splits a numeric section token into section, subsection,
// and paragraph. Tokens that do not match the numeric shape (Roman
// numerals, "I.er", "10bis") stay opaque in Section.
func decomposeSection(token string) (section string, subsection string, paragraph string) {
	if match := sectionShapePattern.FindStringSubmatch(token); match != nil {
		return match[1], match[2], match[3]
	}
	return token, "", ""
}

func invalidCitation(message string) ParsedCitation {
	return ParsedCitation{
		Valid: false,
		Type:  TypeUnknown,
		Err:   message,
	}
}
