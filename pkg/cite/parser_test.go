package cite

import (
	"strings"
	"testing"
)

func TestParseLuxembourgCitations(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		title   string
		year    int
		section string
	}{
		{
			"loi with roman ordinal article",
			"Loi du 11 avril 1799, art. I.er",
			"Loi du 11 avril 1799", 1799, "I.er",
		},
		{
			"loi with plain article",
			"Loi du 8 janvier 2016, art. 3",
			"Loi du 8 janvier 2016", 2016, "3",
		},
		{
			"article spelled out without year",
			"Code civil, article 1134",
			"Code civil", 0, "1134",
		},
		{
			"ordinal suffix article",
			"Loi du 1er août 2018, art. 1er",
			"Loi du 1er août 2018", 2018, "1er",
		},
		{
			"title containing section word",
			"Loi sur la Section 5 du cadastre, art. 3",
			"Loi sur la Section 5 du cadastre", 0, "3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			citation := Parse(tc.text)
			if !citation.Valid {
				t.Fatalf("Expected a valid citation, got error %q", citation.Err)
			}
			if citation.Type != TypeLuxembourg {
				t.Errorf("Expected type %q, got %q", TypeLuxembourg, citation.Type)
			}
			if citation.Title != tc.title {
				t.Errorf("Expected title %q, got %q", tc.title, citation.Title)
			}
			if citation.Year != tc.year {
				t.Errorf("Expected year %d, got %d", tc.year, citation.Year)
			}
			if citation.Section != tc.section {
				t.Errorf("Expected section %q, got %q", tc.section, citation.Section)
			}
		})
	}
}

func TestParseEnglishCitations(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		title      string
		year       int
		section    string
		subsection string
		paragraph  string
	}{
		{
			"full form with subsection and paragraph",
			"Section 5(1)(a), Data Protection Act 2018",
			"Data Protection Act", 2018, "5", "1", "a",
		},
		{
			"full form bare section",
			"Section 12, Companies Act 2006",
			"Companies Act", 2006, "12", "", "",
		},
		{
			"short form with acronym",
			"s. 5(1)(a) DPA 2018",
			"DPA", 2018, "5", "1", "a",
		},
		{
			"short form without period",
			"s 7(2) GDPR 2016",
			"GDPR", 2016, "7", "2", "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			citation := Parse(tc.text)
			if !citation.Valid {
				t.Fatalf("Expected a valid citation, got error %q", citation.Err)
			}
			if citation.Type != TypeEnglish {
				t.Errorf("Expected type %q, got %q", TypeEnglish, citation.Type)
			}
			if citation.Title != tc.title {
				t.Errorf("Expected title %q, got %q", tc.title, citation.Title)
			}
			if citation.Year != tc.year {
				t.Errorf("Expected year %d, got %d", tc.year, citation.Year)
			}
			if citation.Section != tc.section || citation.Subsection != tc.subsection || citation.Paragraph != tc.paragraph {
				t.Errorf("Expected %s(%s)(%s), got %s(%s)(%s)",
					tc.section, tc.subsection, tc.paragraph,
					citation.Section, citation.Subsection, citation.Paragraph)
			}
		})
	}
}

func TestParseInvalidCitations(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no article marker", "Loi du 11 avril 1799"},
		{"free text", "n'importe quoi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			citation := Parse(tc.text)
			if citation.Valid {
				t.Fatalf("Expected an invalid citation, got %+v", citation)
			}
			if citation.Type != TypeUnknown {
				t.Errorf("Expected type %q, got %q", TypeUnknown, citation.Type)
			}
			if citation.Err == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := "Loi du 11 avril 1799, art. I.er"
	first := Parse(text)
	second := Parse(text)
	if first != second {
		t.Errorf("Expected identical results, got %+v vs %+v", first, second)
	}
}

func TestParseErrorMentionsInput(t *testing.T) {
	citation := Parse("texte libre")
	if !strings.Contains(citation.Err, "texte libre") {
		t.Errorf("Expected the error to quote the input, got %q", citation.Err)
	}
}
