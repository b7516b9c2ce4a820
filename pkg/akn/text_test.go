package akn

import "testing"

func mapOf(pairs ...[2]any) *Map {
	m := NewMap()
	for _, pair := range pairs {
		m.Set(pair[0].(string), pair[1])
	}
	return m
}

func TestExtractTextScalars(t *testing.T) {
	cases := []struct {
		name     string
		node     Node
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"float", float64(3), "3"},
		{"bool", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(tc.node, false); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractTextGluesInlineElements(t *testing.T) {
	// <num>Art. 1<sup>er</sup></num>
	node := mapOf([2]any{TextKey, "Art. 1"}, [2]any{"sup", "er"})
	if got := ExtractText(node, false); got != "Art. 1er" {
		t.Errorf("Expected %q, got %q", "Art. 1er", got)
	}
}

func TestExtractTextInlineWithoutPrecedingText(t *testing.T) {
	node := mapOf([2]any{"sup", "bis"})
	if got := ExtractText(node, false); got != "bis" {
		t.Errorf("Expected %q, got %q", "bis", got)
	}
}

func TestExtractTextBlockChildrenJoinWithSpace(t *testing.T) {
	node := mapOf(
		[2]any{TextKey, "first"},
		[2]any{"p", []Node{"second", "third"}},
	)
	if got := ExtractText(node, false); got != "first second third" {
		t.Errorf("Expected %q, got %q", "first second third", got)
	}
}

func TestExtractTextIgnoresAttributes(t *testing.T) {
	node := mapOf(
		[2]any{"@class", "ordinal"},
		[2]any{TextKey, "texte"},
	)
	if got := ExtractText(node, false); got != "texte" {
		t.Errorf("Expected %q, got %q", "texte", got)
	}
}

func TestExtractTextNoSpaceConcatenates(t *testing.T) {
	list := []Node{"ab", "cd"}
	if got := ExtractText(list, true); got != "abcd" {
		t.Errorf("Expected %q, got %q", "abcd", got)
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs", "a  b\n\tc", "a b c"},
		{"space before punctuation", "fin .", "fin."},
		{"space inside parens", "( 1 )", "(1)"},
		{"trims", "  bord  ", "bord"},
		{"mixed", "Art. 1 , alinéa ( 2 ) ;", "Art. 1, alinéa (2);"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanText(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
