package cite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Resolver is the read-only corpus view the validator queries. All lookups
// are local reads; implementations must never mutate state.
type Resolver interface {
	// DocumentsByTitle returns documents whose title contains the given
	// text, case-insensitively.
	DocumentsByTitle(ctx context.Context, title string) ([]Document, error)

	// DocumentsByYear returns documents whose issued date starts with
	// the year or whose title mentions it.
	DocumentsByYear(ctx context.Context, year int) ([]Document, error)

	// DocumentByProvision returns a document from the given year that
	// stores a provision whose ref or section matches one of the
	// candidates, or nil when none does.
	DocumentByProvision(ctx context.Context, year int, candidates []string) (*Document, error)

	// ProvisionKeys returns the ref/section pairs stored for a document.
	ProvisionKeys(ctx context.Context, documentID string) ([]ProvisionKey, error)
}

// Validate parses a citation string and resolves it against the stored
// corpus. Malformed input never produces an error return; it yields an
// invalid Validation whose sole warning is the parse error.
func Validate(ctx context.Context, resolver Resolver, text string) (Validation, error) {
	citation := Parse(text)
	result := Validation{Valid: citation.Valid, Citation: citation}

	if !citation.Valid {
		result.Warnings = append(result.Warnings, citation.Err)
		return result, nil
	}

	document, err := resolveDocument(ctx, resolver, citation)
	if err != nil {
		return Validation{}, err
	}
	if document == nil {
		result.Warnings = append(result.Warnings, unresolvedWarning(citation))
		return result, nil
	}

	result.DocumentExists = true
	result.DocumentID = document.ID
	if document.Status == "repealed" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("document %q is repealed", document.Title))
	}

	if citation.Section == "" {
		return result, nil
	}

	keys, err := resolver.ProvisionKeys(ctx, document.ID)
	if err != nil {
		return Validation{}, err
	}
	candidates := CandidateRefs(citation.Section)
	result.ProvisionExists = provisionMatches(keys, candidates)
	if !result.ProvisionExists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("provision %q not found in %q", citation.Section, document.Title))
	}

	return result, nil
}

// resolveDocument finds the cited document: title substring match first
// (exact equality preferred, shortest title on ties), year match second,
// provision-join match last.
func resolveDocument(ctx context.Context, resolver Resolver, citation ParsedCitation) (*Document, error) {
	if citation.Title != "" {
		matches, err := resolver.DocumentsByTitle(ctx, citation.Title)
		if err != nil {
			return nil, err
		}
		if best := pickBestTitleMatch(matches, citation.Title); best != nil {
			return best, nil
		}
	}

	if citation.Year != 0 {
		matches, err := resolver.DocumentsByYear(ctx, citation.Year)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return &matches[0], nil
		}
	}

	if citation.Section != "" && citation.Year != 0 {
		return resolver.DocumentByProvision(ctx, citation.Year, CandidateRefs(citation.Section))
	}

	return nil, nil
}

func pickBestTitleMatch(matches []Document, title string) *Document {
	if len(matches) == 0 {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(title))
	best := 0
	for i := range matches {
		if strings.ToLower(strings.TrimSpace(matches[i].Title)) == lowered {
			return &matches[i]
		}
		if len(matches[i].Title) < len(matches[best].Title) {
			best = i
		}
	}
	return &matches[best]
}

// CandidateRefs generates the provision-reference candidate set for a raw
// section token: the cleaned token, an art-prefixed version, the decimal
// equivalent when the token is a Roman numeral, and the leading digit run
// when the token starts with digits.
func CandidateRefs(section string) []string {
	token := strings.ToLower(strings.TrimSpace(section))
	token = strings.ReplaceAll(token, " ", "")
	token = articleRefPrefix.ReplaceAllString(token, "")
	token = strings.TrimRight(token, ".,;:")
	if token == "" {
		return nil
	}

	var candidates []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		if candidate == "" || seen[candidate] {
			return
		}
		seen[candidate] = true
		candidates = append(candidates, candidate)
	}

	add(token)
	add("art" + token)

	if value, ok := romanRefToInt(token); ok {
		decimal := strconv.Itoa(value)
		add(decimal)
		add("art" + decimal)
	}

	if digits := leadingDigits(token); digits != "" {
		add(digits)
		add("art" + digits)
	}

	return candidates
}

func leadingDigits(token string) string {
	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	return token[:end]
}

func provisionMatches(keys []ProvisionKey, candidates []string) bool {
	for _, key := range keys {
		ref := strings.ToLower(strings.TrimSpace(key.Ref))
		section := strings.ToLower(strings.TrimSpace(key.Section))
		for _, candidate := range candidates {
			if candidate == ref || (section != "" && candidate == section) {
				return true
			}
		}
	}
	return false
}

func unresolvedWarning(citation ParsedCitation) string {
	switch {
	case citation.Title != "" && citation.Year != 0:
		return fmt.Sprintf("no document matching %q (%d)", citation.Title, citation.Year)
	case citation.Title != "":
		return fmt.Sprintf("no document matching %q", citation.Title)
	case citation.Year != 0:
		return fmt.Sprintf("no document from %d", citation.Year)
	default:
		return "citation names no document"
	}
}
