package akn

import (
	"regexp"
	"strconv"
	"strings"
)

// inlineElements are element names whose text glues directly onto the
// preceding segment instead of being joined with a space. This reproduces
// ordinal article numbers like "1er" where "er" is a superscript.
var inlineElements = map[string]bool{
	"sup":    true,
	"sub":    true,
	"b":      true,
	"i":      true,
	"em":     true,
	"strong": true,
	"span":   true,
}

// ExtractText flattens an arbitrary node into plain text. Strings and
// numbers pass through, booleans yield empty text, lists recurse
// element-wise (joined with a space, or concatenated directly when noSpace
// is set), and element maps process "#text" first, glue inline-element text
// onto the preceding segment, and append other children as new segments.
// Attribute keys are ignored. ExtractText never fails; unrecognized input
// yields an empty string.
func ExtractText(node Node, noSpace bool) string {
	switch value := node.(type) {
	case nil:
		return ""
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return ""
	case []Node:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if text := ExtractText(item, noSpace); text != "" {
				parts = append(parts, text)
			}
		}
		if noSpace {
			return strings.Join(parts, "")
		}
		return strings.Join(parts, " ")
	case *Map:
		return extractFromMap(value, noSpace)
	default:
		return ""
	}
}

func extractFromMap(element *Map, noSpace bool) string {
	if element == nil {
		return ""
	}

	var segments []string

	// "#text" first so that mixed content keeps reading order.
	if text, ok := element.Values[TextKey]; ok {
		if extracted := ExtractText(text, noSpace); extracted != "" {
			segments = append(segments, extracted)
		}
	}

	for _, key := range element.Keys {
		if key == TextKey || strings.HasPrefix(key, AttrPrefix) {
			continue
		}
		child := element.Values[key]
		if inlineElements[key] {
			// Glue onto the previous segment: "1" + "er" -> "1er".
			inlineText := ExtractText(child, true)
			if inlineText == "" {
				continue
			}
			if len(segments) > 0 {
				segments[len(segments)-1] += inlineText
			} else {
				segments = append(segments, inlineText)
			}
			continue
		}
		if extracted := ExtractText(child, noSpace); extracted != "" {
			segments = append(segments, extracted)
		}
	}

	if noSpace {
		return strings.Join(segments, "")
	}
	return strings.Join(segments, " ")
}

var (
	reRunsOfSpace      = regexp.MustCompile(`\s+`)
	reSpaceBeforePunct = regexp.MustCompile(`\s+([.,;:!?])`)
	reSpaceAfterOpen   = regexp.MustCompile(`\(\s+`)
	reSpaceBeforeClose = regexp.MustCompile(`\s+\)`)
)

// CleanText normalizes extracted text: collapses whitespace runs to one
// space, removes whitespace before punctuation and just inside
// parentheses, and trims the result.
func CleanText(text string) string {
	text = reRunsOfSpace.ReplaceAllString(text, " ")
	text = reSpaceBeforePunct.ReplaceAllString(text, "$1")
	text = reSpaceAfterOpen.ReplaceAllString(text, "(")
	text = reSpaceBeforeClose.ReplaceAllString(text, ")")
	return strings.TrimSpace(text)
}
