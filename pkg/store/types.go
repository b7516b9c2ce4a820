package store

// Document statuses. Upstream does not expose legislative status, so
// ingestion always records StatusInForce; treat it as unverified rather
// than authoritative.
const (
	StatusInForce     = "in_force"
	StatusAmended     = "amended"
	StatusRepealed    = "repealed"
	StatusNotYetForce = "not_yet_in_force"
)

// Document types.
const (
	DocTypeStatute = "statute"
	DocTypeBill    = "bill"
	DocTypeCaseLaw = "case_law"
)

// Document is one legislative act.
type Document struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	TitleEN     string `json:"title_en,omitempty"`
	Status      string `json:"status"`
	IssuedDate  string `json:"issued_date,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Provision is one stored article of a document.
type Provision struct {
	DocumentID string `json:"document_id"`
	Ref        string `json:"provision_ref"`
	Section    string `json:"section,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content"`
	Metadata   string `json:"metadata,omitempty"`
}

// Definition is one legal-term gloss within a document.
type Definition struct {
	DocumentID   string `json:"document_id"`
	Term         string `json:"term"`
	Definition   string `json:"definition"`
	ProvisionRef string `json:"provision_ref,omitempty"`
}

// EUDocument is one referenced EU act, keyed by its synthetic id.
type EUDocument struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Year      int    `json:"year"`
	Number    int    `json:"number"`
	Community string `json:"community"`
	ShortName string `json:"short_name,omitempty"`
	Title     string `json:"title"`
}

// EUReference links a national source to an EU document.
type EUReference struct {
	SourceID                string `json:"source_id"`
	SourceKind              string `json:"source_kind"`
	EUDocumentID            string `json:"eu_document_id"`
	EUArticle               string `json:"eu_article,omitempty"`
	ReferenceType           string `json:"reference_type"`
	IsPrimaryImplementation bool   `json:"is_primary_implementation"`
	ImplementationStatus    string `json:"implementation_status,omitempty"`
	CitationText            string `json:"citation_text,omitempty"`
}

// DocumentBundle groups everything inserted for one document in the first
// population batch.
type DocumentBundle struct {
	Document    Document
	Provisions  []Provision
	Definitions []Definition
}

// SearchResult is one ranked full-text hit.
type SearchResult struct {
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	ProvisionRef  string  `json:"provision_ref"`
	Title         string  `json:"title,omitempty"`
	Snippet       string  `json:"snippet"`
	Rank          float64 `json:"rank"`
}

// BuildRecord captures one completed corpus build.
type BuildRecord struct {
	ID           string `json:"id"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at"`
	Documents    int    `json:"documents"`
	Provisions   int    `json:"provisions"`
	EUReferences int    `json:"eu_references"`
}
