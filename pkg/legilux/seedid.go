package legilux

import (
	"regexp"
	"strings"
)

// seedIDPattern matches the five fixed path segments of a Legilux ELI URI:
// type, year, month, day, and reference, e.g.
// ".../eli/etat/leg/loi/2016/07/23/n1/jo".
var seedIDPattern = regexp.MustCompile(`/([a-z]+)/(\d{4})/(\d{2})/(\d{2})/([a-z0-9]+)`)

// SeedID derives the stable content-addressed slug for a source URI:
// "type-year-month-day-ref". A URI that does not match the expected shape
// falls back to joining its last four path segments.
func SeedID(sourceURI string) string {
	if match := seedIDPattern.FindStringSubmatch(strings.ToLower(sourceURI)); match != nil {
		return strings.Join(match[1:], "-")
	}

	trimmed := strings.Trim(strings.ToLower(sourceURI), "/")
	segments := strings.Split(trimmed, "/")
	var tail []string
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		tail = append(tail, segment)
	}
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return strings.Join(tail, "-")
}
