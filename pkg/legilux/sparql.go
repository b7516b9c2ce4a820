package legilux

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is the public Legilux SPARQL endpoint.
const DefaultEndpoint = "https://data.legilux.public.lu/sparqlendpoint"

// DefaultPageSize is the discovery page size.
const DefaultPageSize = 1000

// discoveryQueryTemplate selects acts of one document-type category with
// their publication date, title, and XML manifestation URL.
const discoveryQueryTemplate = `
PREFIX jolux: <http://data.legilux.public.lu/resource/ontology/jolux#>
SELECT ?act ?date ?title ?manifestation WHERE {
  ?act jolux:typeDocument <http://data.legilux.public.lu/resource/authority/resource-type/%s> .
  ?act jolux:dateDocument ?date .
  OPTIONAL { ?act jolux:title ?title . }
  OPTIONAL { ?act jolux:isRealizedBy/jolux:isEmbodiedBy ?manifestation . }
}
ORDER BY ?act
LIMIT %d OFFSET %d`

// Client queries the discovery endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	pageSize   int
	pacer      *Pacer
	logger     *zap.Logger
}

// NewClient creates a discovery client. The pacer is shared with the
// fetcher so all traffic to the upstream host is serialized together.
func NewClient(endpoint string, pageSize int, pacer *Pacer, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		pageSize:   pageSize,
		pacer:      pacer,
		logger:     logger,
	}
}

// sparqlResponse mirrors the SPARQL JSON results format.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// Discover pages through every document-type category and returns the
// deduplicated act index. Pagination stops when a page returns fewer rows
// than the page size. Entries sharing a source URI collapse to the one
// with the lexicographically greatest date string.
func (c *Client) Discover(ctx context.Context, categories []string) ([]LawIndexEntry, error) {
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	byURI := make(map[string]LawIndexEntry)
	var order []string

	for _, category := range categories {
		offset := 0
		for {
			page, err := c.queryPage(ctx, category, offset)
			if err != nil {
				return nil, fmt.Errorf("discovery query for %s at offset %d: %w", category, offset, err)
			}
			for _, entry := range page {
				existing, seen := byURI[entry.URI]
				if !seen {
					order = append(order, entry.URI)
					byURI[entry.URI] = entry
					continue
				}
				if entry.Date > existing.Date {
					byURI[entry.URI] = entry
				}
			}
			if len(page) < c.pageSize {
				break
			}
			offset += c.pageSize
		}
	}

	entries := make([]LawIndexEntry, 0, len(order))
	for _, uri := range order {
		entries = append(entries, byURI[uri])
	}
	c.logger.Info("discovery complete",
		zap.Int("categories", len(categories)),
		zap.Int("acts", len(entries)))
	return entries, nil
}

func (c *Client) queryPage(ctx context.Context, category string, offset int) ([]LawIndexEntry, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := fmt.Sprintf(discoveryQueryTemplate, category, c.pageSize, offset)
	requestURL := c.endpoint + "?" + url.Values{
		"query":  {query},
		"format": {"application/sparql-results+json"},
	}.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/sparql-results+json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from discovery endpoint", response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, 64*1024*1024))
	if err != nil {
		return nil, err
	}

	var parsed sparqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed SPARQL response: %w", err)
	}

	entries := make([]LawIndexEntry, 0, len(parsed.Results.Bindings))
	for _, binding := range parsed.Results.Bindings {
		entry := LawIndexEntry{
			URI:          binding["act"].Value,
			Date:         binding["date"].Value,
			Title:        strings.TrimSpace(binding["title"].Value),
			TypeDocument: category,
			XMLURL:       binding["manifestation"].Value,
		}
		if entry.URI == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
