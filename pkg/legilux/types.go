// Package legilux discovers and fetches Luxembourg legislative acts from
// the public Legilux SPARQL endpoint and document store.
package legilux

import "time"

// Document-type categories queried during discovery. The codes follow the
// JOLUX resource-type vocabulary used by the upstream endpoint.
var DefaultCategories = []string{"LOI", "RGD", "AMIN"}

// LawIndexEntry is one discovered act, used only to drive the fetch phase.
// The index is safe to regenerate at any time.
type LawIndexEntry struct {
	// URI is the canonical ELI source URI of the act.
	URI string `json:"uri"`

	// Date is the publication date string as returned by the endpoint.
	Date string `json:"date"`

	Title string `json:"title"`

	// TypeDocument is the document-type code the entry was discovered
	// under.
	TypeDocument string `json:"type_document"`

	// XMLURL is the XML manifestation URL supplied by discovery.
	XMLURL string `json:"xml_url"`
}

// Seed is the on-disk artifact for one fetched act: the index entry plus
// the raw XML body. Presence of a seed is the resumability signal for the
// fetch phase.
type Seed struct {
	ID        string        `json:"id"`
	Entry     LawIndexEntry `json:"entry"`
	XML       string        `json:"xml"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// FetchReport summarizes one fetch run for operator review.
type FetchReport struct {
	Attempted int `json:"attempted"`
	Fetched   int `json:"fetched"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	// FailedIDs is a capped sample of failing seed IDs; the counts are
	// authoritative.
	FailedIDs []string `json:"failed_ids,omitempty"`
}

// maxFailedSamples caps the failing-ID sample in reports so a broken run
// does not flood logs.
const maxFailedSamples = 20
