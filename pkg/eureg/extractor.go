package eureg

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Citation patterns. Both tolerate up to 48 non-digit characters between
// the keyword and the numeric citation so intervening words ("directive
// modifiée du Parlement européen … 2016/1148") do not break the match, and
// both accept accented and un-accented spellings.
var (
	// "directive … 2016/1148/UE", community suffix optional.
	directivePattern = regexp.MustCompile(
		`(?i)directives?[^0-9]{0,48}?(\d{2,4})/(\d{1,4})(?:/(UE|EU|CE|CEE|EG|EEG|Euratom))?` +
			`(?:[^0-9a-zA-Z]{0,10}articles?\s+(\d+))?`)

	// "règlement (UE) 2016/679" / "reglement (CE) n° 45/2001".
	regulationPattern = regexp.MustCompile(
		`(?i)r[èe]glements?[^0-9(]{0,48}?\(\s*(UE|EU|CE|CEE|EG|EEG|Euratom)\s*\)\s*(?:n[°o]\.?\s*)?(\d{1,4})/(\d{1,4})` +
			`(?:[^0-9a-zA-Z]{0,10}articles?\s+(\d+))?`)
)

// communityAliases normalizes spelling variants to the closed label set.
var communityAliases = map[string]string{
	"UE":      "EU",
	"EU":      "EU",
	"CE":      "CE",
	"CEE":     "CEE",
	"EG":      "EG",
	"EEG":     "EEG",
	"EURATOM": "Euratom",
}

// numberFirstCommunities is the decision table for regulation token order.
// Legacy community labels used number/year numbering ("n° 45/2001"); the
// modern EU label uses year/number ("2016/679"). The table only breaks
// ties when neither or both tokens plausibly parse as a year.
var numberFirstCommunities = map[string]bool{
	"CE":      true,
	"CEE":     true,
	"EG":      true,
	"EEG":     true,
	"Euratom": true,
	"EU":      false,
}

// Extract scans free text for directive and regulation citations and
// returns them normalized and deduplicated by synthetic id, in document
// order. Citations that do not resolve to a valid year/number pair are
// silently dropped.
func Extract(text string) []Reference {
	var references []Reference
	seen := make(map[string]bool)

	appendReference := func(ref Reference, ok bool) {
		if !ok || seen[ref.EUDocumentID] {
			return
		}
		seen[ref.EUDocumentID] = true
		references = append(references, ref)
	}

	type positioned struct {
		offset int
		ref    Reference
		ok     bool
	}
	var matches []positioned

	for _, match := range directivePattern.FindAllStringSubmatchIndex(text, -1) {
		ref, ok := parseDirectiveMatch(text, match)
		matches = append(matches, positioned{offset: match[0], ref: ref, ok: ok})
	}
	for _, match := range regulationPattern.FindAllStringSubmatchIndex(text, -1) {
		ref, ok := parseRegulationMatch(text, match)
		matches = append(matches, positioned{offset: match[0], ref: ref, ok: ok})
	}

	// Keep document order across both scans.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})
	for _, match := range matches {
		appendReference(match.ref, match.ok)
	}

	return references
}

func parseDirectiveMatch(text string, match []int) (Reference, bool) {
	group := func(i int) string {
		if match[2*i] < 0 {
			return ""
		}
		return text[match[2*i]:match[2*i+1]]
	}

	year, ok := expandYear(group(1))
	if !ok {
		return Reference{}, false
	}
	number, err := strconv.Atoi(group(2))
	if err != nil || number <= 0 {
		return Reference{}, false
	}
	community := normalizeCommunity(group(3))
	if community == "" {
		community = "EU"
	}

	return Reference{
		EUDocumentID: DocumentID(TypeDirective, year, number),
		Type:         TypeDirective,
		Year:         year,
		Number:       number,
		Community:    community,
		Article:      group(4),
		FullCitation: text[match[0]:match[1]],
	}, true
}

func parseRegulationMatch(text string, match []int) (Reference, bool) {
	group := func(i int) string {
		if match[2*i] < 0 {
			return ""
		}
		return text[match[2*i]:match[2*i+1]]
	}

	community := normalizeCommunity(group(1))
	if community == "" {
		return Reference{}, false
	}

	year, number, ok := resolveYearNumber(group(2), group(3), community)
	if !ok {
		return Reference{}, false
	}

	return Reference{
		EUDocumentID: DocumentID(TypeRegulation, year, number),
		Type:         TypeRegulation,
		Year:         year,
		Number:       number,
		Community:    community,
		Article:      group(4),
		FullCitation: text[match[0]:match[1]],
	}, true
}

// resolveYearNumber disambiguates the two numeric tokens of a regulation
// citation. Whichever token plausibly parses as a valid year is the year;
// when both or neither do, the community-era decision table supplies the
// default order.
func resolveYearNumber(first string, second string, community string) (year int, number int, ok bool) {
	firstYear, firstIsYear := expandYear(first)
	secondYear, secondIsYear := expandYear(second)

	switch {
	case firstIsYear && !secondIsYear:
		year = firstYear
		number, ok = parseNumber(second)
	case secondIsYear && !firstIsYear:
		year = secondYear
		number, ok = parseNumber(first)
	default:
		// Ambiguous: apply the community default.
		if numberFirstCommunities[community] {
			if !secondIsYear {
				return 0, 0, false
			}
			year = secondYear
			number, ok = parseNumber(first)
		} else {
			if !firstIsYear {
				return 0, 0, false
			}
			year = firstYear
			number, ok = parseNumber(second)
		}
	}
	if !ok {
		return 0, 0, false
	}
	return year, number, true
}

func parseNumber(token string) (int, bool) {
	number, err := strconv.Atoi(token)
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

// expandYear resolves a 2- or 4-digit year token. Two-digit years pivot at
// 57: 57 and above mean 19xx, below 57 mean 20xx. The resolved year must
// fall within [MinYear, MaxYear].
func expandYear(token string) (int, bool) {
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	switch len(token) {
	case 2:
		if value >= 57 {
			value += 1900
		} else {
			value += 2000
		}
	case 4:
		// Already absolute.
	default:
		return 0, false
	}
	if value < MinYear || value > MaxYear {
		return 0, false
	}
	return value, true
}

func normalizeCommunity(raw string) string {
	return communityAliases[strings.ToUpper(raw)]
}
