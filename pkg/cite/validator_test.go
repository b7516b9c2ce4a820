package cite

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// fakeResolver serves a tiny in-memory corpus for validator tests.
type fakeResolver struct {
	documents  []Document
	provisions map[string][]ProvisionKey
}

func (f *fakeResolver) DocumentsByTitle(ctx context.Context, title string) ([]Document, error) {
	var matches []Document
	needle := strings.ToLower(title)
	for _, document := range f.documents {
		if strings.Contains(strings.ToLower(document.Title), needle) {
			matches = append(matches, document)
		}
	}
	return matches, nil
}

func (f *fakeResolver) DocumentsByYear(ctx context.Context, year int) ([]Document, error) {
	var matches []Document
	for _, document := range f.documents {
		if strings.Contains(document.Title, itoa(year)) || strings.HasPrefix(document.IssuedDate, itoa(year)) {
			matches = append(matches, document)
		}
	}
	return matches, nil
}

func (f *fakeResolver) DocumentByProvision(ctx context.Context, year int, candidates []string) (*Document, error) {
	for _, document := range f.documents {
		if !strings.HasPrefix(document.IssuedDate, itoa(year)) {
			continue
		}
		if provisionMatches(f.provisions[document.ID], candidates) {
			match := document
			return &match, nil
		}
	}
	return nil, nil
}

func (f *fakeResolver) ProvisionKeys(ctx context.Context, documentID string) ([]ProvisionKey, error) {
	return f.provisions[documentID], nil
}

func itoa(year int) string {
	return strconv.Itoa(year)
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		documents: []Document{
			{
				ID:         "loi-1799-04-11-n1",
				Title:      "Loi du 11 avril 1799",
				Status:     "in_force",
				IssuedDate: "1799-04-11",
			},
			{
				ID:         "loi-2016-01-08-n2",
				Title:      "Loi du 8 janvier 2016 sur la protection des données",
				Status:     "repealed",
				IssuedDate: "2016-01-08",
			},
		},
		provisions: map[string][]ProvisionKey{
			"loi-1799-04-11-n1": {
				{Ref: "art1", Section: "1"},
				{Ref: "art2", Section: "1"},
			},
			"loi-2016-01-08-n2": {
				{Ref: "art5", Section: "2"},
			},
		},
	}
}

func TestValidateRomanArticleResolvesAgainstNormalizedRef(t *testing.T) {
	resolver := newFakeResolver()
	result, err := Validate(context.Background(), resolver, "Loi du 11 avril 1799, art. I.er")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid || !result.DocumentExists || !result.ProvisionExists {
		t.Errorf("Expected a fully resolved citation, got %+v", result)
	}
	if result.DocumentID != "loi-1799-04-11-n1" {
		t.Errorf("Expected document id %q, got %q", "loi-1799-04-11-n1", result.DocumentID)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateEquivalentSpellingsAgree(t *testing.T) {
	resolver := newFakeResolver()
	spellings := []string{
		"Loi du 11 avril 1799, art. I.er",
		"Loi du 11 avril 1799, art. 1er",
		"Loi du 11 avril 1799, art. 1",
	}
	for _, spelling := range spellings {
		result, err := Validate(context.Background(), resolver, spelling)
		if err != nil {
			t.Fatalf("Validate(%q) failed: %v", spelling, err)
		}
		if !result.DocumentExists || !result.ProvisionExists {
			t.Errorf("Expected %q to resolve, got %+v", spelling, result)
		}
	}
}

func TestValidateParseFailureIsAWarningNotAnError(t *testing.T) {
	resolver := newFakeResolver()
	result, err := Validate(context.Background(), resolver, "texte libre")
	if err != nil {
		t.Fatalf("Expected no error for malformed input, got %v", err)
	}
	if result.Valid || result.DocumentExists {
		t.Errorf("Expected an unresolved invalid result, got %+v", result)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Expected one warning, got %v", result.Warnings)
	}
}

func TestValidateUnknownDocument(t *testing.T) {
	resolver := newFakeResolver()
	result, err := Validate(context.Background(), resolver, "Loi du 25 décembre 1850, art. 3")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Error("Expected the citation itself to stay valid")
	}
	if result.DocumentExists {
		t.Errorf("Expected no document match, got %+v", result)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "no document") {
		t.Errorf("Expected an unresolved-document warning, got %v", result.Warnings)
	}
}

func TestValidateMissingProvision(t *testing.T) {
	resolver := newFakeResolver()
	result, err := Validate(context.Background(), resolver, "Loi du 11 avril 1799, art. 99")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.DocumentExists {
		t.Fatal("Expected the document to resolve")
	}
	if result.ProvisionExists {
		t.Error("Expected provision art. 99 to be absent")
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "not found") {
		t.Errorf("Expected a missing-provision warning, got %v", result.Warnings)
	}
}

func TestValidateRepealedDocumentWarns(t *testing.T) {
	resolver := newFakeResolver()
	result, err := Validate(context.Background(), resolver, "Loi du 8 janvier 2016 sur la protection des données, art. 5")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.DocumentExists || !result.ProvisionExists {
		t.Fatalf("Expected a resolved citation, got %+v", result)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "repealed") {
		t.Errorf("Expected a repealed warning, got %v", result.Warnings)
	}
}

func TestCandidateRefs(t *testing.T) {
	cases := []struct {
		section  string
		expected []string
	}{
		{"I.er", []string{"i.er", "arti.er", "1", "art1"}},
		{"1er", []string{"1er", "art1er", "1", "art1"}},
		{"5(1)", []string{"5(1)", "art5(1)", "5", "art5"}},
		{"art. 7", []string{"7", "art7"}},
		{"10bis", []string{"10bis", "art10bis", "10", "art10"}},
		{"", nil},
	}

	for _, tc := range cases {
		t.Run(tc.section, func(t *testing.T) {
			if got := CandidateRefs(tc.section); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}
