package cite

import "strings"

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// romanToInt parses a Roman numeral in standard subtractive notation.
// Input is expected lower-cased; returns (0, false) for anything that is
// not a well-formed numeral.
func romanToInt(numeral string) (int, bool) {
	if numeral == "" {
		return 0, false
	}
	total := 0
	for i := 0; i < len(numeral); i++ {
		value, ok := romanValues[numeral[i]]
		if !ok {
			return 0, false
		}
		// A letter followed by a strictly larger value subtracts.
		if i+1 < len(numeral) {
			if next, nextOK := romanValues[numeral[i+1]]; nextOK && next > value {
				total -= value
				continue
			}
		}
		total += value
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// romanRefToInt interprets an article token as a Roman numeral after
// stripping internal periods and a trailing "er" ordinal, so "I.er" and
// "Ier" both resolve to 1.
func romanRefToInt(token string) (int, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(token))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.TrimSuffix(cleaned, "er")
	return romanToInt(cleaned)
}
