package legilux

import (
	"context"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const fetchUserAgent = "luxlex/1.0 (legislation toolkit)"

// maxDocumentBytes bounds one fetched XML body.
const maxDocumentBytes = 32 * 1024 * 1024

// Fetcher retrieves act XML bodies, paced by the shared Pacer.
type Fetcher struct {
	httpClient *http.Client
	pacer      *Pacer
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher sharing the given pacer with discovery.
func NewFetcher(pacer *Pacer, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		httpClient: &http.Client{},
		pacer:      pacer,
		logger:     logger,
	}
}

// FetchXML retrieves the XML body for one discovered act: the supplied
// manifestation URL first, then a fallback URL derived from the source
// URI. Both attempts failing yields nil; FetchXML never returns an error
// for a missing document, only for context cancellation.
func (f *Fetcher) FetchXML(ctx context.Context, entry LawIndexEntry) ([]byte, error) {
	urls := make([]string, 0, 2)
	if entry.XMLURL != "" {
		urls = append(urls, entry.XMLURL)
	}
	if fallback := FallbackXMLURL(entry.URI); fallback != "" && fallback != entry.XMLURL {
		urls = append(urls, fallback)
	}
	return f.fetchSequence(ctx, urls)
}

// fetchSequence tries each URL in order and returns the first usable body.
func (f *Fetcher) fetchSequence(ctx context.Context, urls []string) ([]byte, error) {
	for _, fetchURL := range urls {
		body, err := f.fetchOne(ctx, fetchURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			f.logger.Debug("fetch attempt failed",
				zap.String("url", fetchURL), zap.Error(err))
			continue
		}
		if body != nil {
			return body, nil
		}
	}
	return nil, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, fetchURL string) ([]byte, error) {
	if f.pacer != nil {
		if err := f.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", fetchUserAgent)
	request.Header.Set("Accept", "application/xml, text/xml")

	response, err := f.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxDocumentBytes))
	if err != nil {
		return nil, err
	}

	// The upstream store serves HTML error pages with a 200 status for
	// some missing manifestations; sniff and reject them.
	if LooksLikeHTML(body) {
		return nil, nil
	}
	return body, nil
}

// FallbackXMLURL builds the alternate manifestation URL for a source URI
// by pattern substitution: the ELI path is re-rooted under the filestore
// host with a trailing French-XML segment.
func FallbackXMLURL(sourceURI string) string {
	const eliMarker = "/eli/"
	idx := strings.Index(sourceURI, eliMarker)
	if idx < 0 {
		return ""
	}
	path := strings.TrimSuffix(sourceURI[idx+len(eliMarker):], "/")
	if path == "" {
		return ""
	}
	return "https://legilux.public.lu/filestore/eli/" + path + "/fr/xml/eli-content.xml"
}

// LooksLikeHTML reports whether a body is an HTML page rather than XML
// data, by DOCTYPE or root-tag prefix after leading whitespace.
func LooksLikeHTML(body []byte) bool {
	head := strings.TrimLeft(string(body[:min(len(body), 512)]), " \t\r\n\uFEFF")
	lowered := strings.ToLower(head)
	return strings.HasPrefix(lowered, "<!doctype") || strings.HasPrefix(lowered, "<html")
}
