package legilux

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"
)

var offsetPattern = regexp.MustCompile(`OFFSET (\d+)`)

func sparqlBinding(uri string, date string, title string, xmlURL string) string {
	return fmt.Sprintf(`{"act":{"value":%q},"date":{"value":%q},"title":{"value":%q},"manifestation":{"value":%q}}`,
		uri, date, title, xmlURL)
}

func sparqlPage(bindings ...string) string {
	page := `{"results":{"bindings":[`
	for i, binding := range bindings {
		if i > 0 {
			page += ","
		}
		page += binding
	}
	return page + `]}}`
}

func TestDiscoverPaginatesUntilShortPage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		query := r.URL.Query().Get("query")
		match := offsetPattern.FindStringSubmatch(query)
		if match == nil {
			t.Errorf("Query without OFFSET clause: %q", query)
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		offset, _ := strconv.Atoi(match[1])
		w.Header().Set("Content-Type", "application/sparql-results+json")
		switch offset {
		case 0:
			fmt.Fprint(w, sparqlPage(
				sparqlBinding("http://lu/eli/a", "2020-01-01", "Loi A", ""),
				sparqlBinding("http://lu/eli/b", "2020-02-02", "Loi B", "http://lu/b.xml"),
			))
		case 2:
			fmt.Fprint(w, sparqlPage(
				sparqlBinding("http://lu/eli/c", "2020-03-03", "Loi C", ""),
			))
		default:
			t.Errorf("Unexpected offset %d", offset)
			fmt.Fprint(w, sparqlPage())
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 2, NewPacer(time.Millisecond), nil)
	entries, err := client.Discover(context.Background(), []string{"LOI"})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if requests != 2 {
		t.Errorf("Expected 2 page requests, got %d", requests)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].URI != "http://lu/eli/a" || entries[2].URI != "http://lu/eli/c" {
		t.Errorf("Expected document order preserved, got %+v", entries)
	}
	if entries[1].XMLURL != "http://lu/b.xml" {
		t.Errorf("Expected manifestation URL carried through, got %+v", entries[1])
	}
	if entries[0].TypeDocument != "LOI" {
		t.Errorf("Expected category stamped on entries, got %q", entries[0].TypeDocument)
	}
}

func TestDiscoverDeduplicatesByURIKeepingGreatestDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/sparql-results+json")
		fmt.Fprint(w, sparqlPage(
			sparqlBinding("http://lu/eli/a", "2020-01-01", "Loi A", ""),
			sparqlBinding("http://lu/eli/b", "2019-06-06", "Loi B", ""),
			sparqlBinding("http://lu/eli/a", "2021-05-05", "Loi A consolidée", ""),
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, 10, NewPacer(time.Millisecond), nil)
	entries, err := client.Discover(context.Background(), []string{"LOI"})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].URI != "http://lu/eli/a" {
		t.Errorf("Expected first-seen position kept, got %+v", entries[0])
	}
	if entries[0].Date != "2021-05-05" {
		t.Errorf("Expected the greatest date to win, got %q", entries[0].Date)
	}
	if entries[1].URI != "http://lu/eli/b" {
		t.Errorf("Unexpected second entry %+v", entries[1])
	}
}

func TestDiscoverPropagatesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10, NewPacer(time.Millisecond), nil)
	if _, err := client.Discover(context.Background(), []string{"LOI"}); err == nil {
		t.Error("Expected an error on HTTP 500")
	}
}

func TestDiscoverQueriesEachCategory(t *testing.T) {
	seen := make(map[string]bool)
	categoryPattern := regexp.MustCompile(`resource-type/([A-Z]+)>`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if match := categoryPattern.FindStringSubmatch(r.URL.Query().Get("query")); match != nil {
			seen[match[1]] = true
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		fmt.Fprint(w, sparqlPage())
	}))
	defer server.Close()

	client := NewClient(server.URL, 10, NewPacer(time.Millisecond), nil)
	if _, err := client.Discover(context.Background(), nil); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	for _, category := range DefaultCategories {
		if !seen[category] {
			t.Errorf("Expected a query for category %s", category)
		}
	}
}
