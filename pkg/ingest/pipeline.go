// Package ingest builds the normalized corpus from seed artifacts: parse
// Akoma Ntoso XML, deduplicate provisions, extract definitions and EU
// references, and populate the store in two atomic batches.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coolbeans/luxlex/pkg/akn"
	"github.com/coolbeans/luxlex/pkg/eureg"
	"github.com/coolbeans/luxlex/pkg/legilux"
	"github.com/coolbeans/luxlex/pkg/store"
)

// maxFailedSamples caps the failing-ID sample in run reports.
const maxFailedSamples = 20

// Report summarizes one build run for operator review. Counts are
// authoritative; FailedIDs is a capped sample.
type Report struct {
	BuildID        string   `json:"build_id"`
	SeedsProcessed int      `json:"seeds_processed"`
	ParseFailures  int      `json:"parse_failures"`
	NoContent      int      `json:"no_content"`
	Documents      int      `json:"documents"`
	Provisions     int      `json:"provisions"`
	Definitions    int      `json:"definitions"`
	DuplicateRefs  int      `json:"duplicate_refs"`
	Conflicts      int      `json:"conflicting_duplicates"`
	EUDocuments    int      `json:"eu_documents"`
	EUReferences   int      `json:"eu_references"`
	FailedIDs      []string `json:"failed_ids,omitempty"`
}

// Pipeline reads seeds and populates the store. Runs are sequential batch
// processes; the only shared mutable state in the wider system is the
// request pacer, which this phase does not touch.
type Pipeline struct {
	seeds  *legilux.SeedStore
	db     *store.Store
	logger *zap.Logger
}

// New creates a Pipeline.
func New(seeds *legilux.SeedStore, db *store.Store, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{seeds: seeds, db: db, logger: logger}
}

// Run executes one full build. Batch one inserts documents, provisions,
// and definitions; batch two inserts EU documents and references. Each
// batch commits as a single unit, so a failure partway leaves the store
// unchanged rather than partially populated.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	startedAt := time.Now()
	report := &Report{BuildID: uuid.New().String()}

	seedIDs, err := p.seeds.List()
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}

	var bundles []store.DocumentBundle
	var euDocuments []store.EUDocument
	var euReferences []store.EUReference
	seenEUDocuments := make(map[string]bool)

	for _, seedID := range seedIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.SeedsProcessed++

		seed, err := p.seeds.Read(seedID)
		if err != nil {
			p.recordFailure(report, seedID)
			report.ParseFailures++
			continue
		}

		bundle, ok := p.buildBundle(seed, report)
		if !ok {
			continue
		}
		bundles = append(bundles, bundle)
		report.Documents++
		report.Provisions += len(bundle.Provisions)
		report.Definitions += len(bundle.Definitions)

		p.extractEUReferences(bundle.Document, &euDocuments, &euReferences, seenEUDocuments)
	}

	if err := p.db.PopulateDocuments(ctx, bundles); err != nil {
		return nil, fmt.Errorf("populate documents: %w", err)
	}
	if err := p.db.PopulateEUReferences(ctx, euDocuments, euReferences); err != nil {
		return nil, fmt.Errorf("populate EU references: %w", err)
	}
	report.EUDocuments = len(euDocuments)
	report.EUReferences = len(euReferences)

	record := store.BuildRecord{
		ID:           report.BuildID,
		StartedAt:    store.FormatBuildTime(startedAt),
		FinishedAt:   store.FormatBuildTime(time.Now()),
		Documents:    report.Documents,
		Provisions:   report.Provisions,
		EUReferences: report.EUReferences,
	}
	if err := p.db.RecordBuild(ctx, record); err != nil {
		return nil, fmt.Errorf("record build: %w", err)
	}

	p.logger.Info("build complete",
		zap.String("build_id", report.BuildID),
		zap.Int("seeds", report.SeedsProcessed),
		zap.Int("documents", report.Documents),
		zap.Int("provisions", report.Provisions),
		zap.Int("parse_failures", report.ParseFailures),
		zap.Int("eu_references", report.EUReferences))
	return report, nil
}

// buildBundle parses one seed into a document bundle. A nil parse result
// or an act without provisions is counted and skipped, never fatal.
func (p *Pipeline) buildBundle(seed *legilux.Seed, report *Report) (store.DocumentBundle, bool) {
	act := akn.ParseAct([]byte(seed.XML))
	if act == nil {
		report.ParseFailures++
		p.recordFailure(report, seed.ID)
		return store.DocumentBundle{}, false
	}

	deduplicated, stats := akn.DeduplicateProvisions(act.Provisions)
	report.DuplicateRefs += stats.DuplicateRefs
	report.Conflicts += stats.ConflictingDuplicates
	if len(deduplicated) == 0 {
		report.NoContent++
		p.recordFailure(report, seed.ID)
		return store.DocumentBundle{}, false
	}

	title := act.Title
	if title == "" {
		title = seed.Entry.Title
	}
	if title == "" {
		title = seed.ID
	}

	document := store.Document{
		ID:    seed.ID,
		Type:  documentType(act.TypeDocument, seed.Entry.TypeDocument),
		Title: title,
		// Upstream does not expose legislative status; in_force here
		// means unverified, not confirmed.
		Status:      store.StatusInForce,
		IssuedDate:  firstNonEmpty(act.DateDocument, seed.Entry.Date),
		URL:         seed.Entry.URI,
		Description: seed.Entry.Title,
	}

	provisions := make([]store.Provision, 0, len(deduplicated))
	for _, provision := range deduplicated {
		provisions = append(provisions, store.Provision{
			DocumentID: document.ID,
			Ref:        provision.Ref,
			Section:    provision.Section,
			Chapter:    provision.Chapter,
			Title:      provision.Title,
			Content:    provision.Content,
		})
	}

	return store.DocumentBundle{
		Document:    document,
		Provisions:  provisions,
		Definitions: extractDefinitions(document.ID, provisions),
	}, true
}

// extractEUReferences scans a document's title and description for EU
// citations and accumulates insert-if-absent rows for batch two.
func (p *Pipeline) extractEUReferences(document store.Document, euDocuments *[]store.EUDocument, euReferences *[]store.EUReference, seen map[string]bool) {
	text := document.Title
	if document.Description != "" && document.Description != document.Title {
		text += " " + document.Description
	}

	for _, reference := range eureg.Extract(text) {
		if !seen[reference.EUDocumentID] {
			seen[reference.EUDocumentID] = true
			*euDocuments = append(*euDocuments, store.EUDocument{
				ID:        reference.EUDocumentID,
				Type:      reference.Type,
				Year:      reference.Year,
				Number:    reference.Number,
				Community: reference.Community,
				ShortName: eureg.ShortName(reference.EUDocumentID),
				Title:     eureg.GenericTitle(reference.Type, reference.Year, reference.Number, reference.Community),
			})
		}

		*euReferences = append(*euReferences, store.EUReference{
			SourceID:                document.ID,
			SourceKind:              sourceKind(document.Type),
			EUDocumentID:            reference.EUDocumentID,
			EUArticle:               reference.Article,
			ReferenceType:           referenceType(reference),
			IsPrimaryImplementation: reference.Type == eureg.TypeDirective,
			ImplementationStatus:    implementationStatus(reference),
			CitationText:            reference.FullCitation,
		})
	}
}

// referenceType classifies the link: a directive cited by a national act
// is a transposition (implements); a regulation applies directly; a
// pinpointed article is a direct article citation.
func referenceType(reference eureg.Reference) string {
	if reference.Article != "" {
		return "cites_article"
	}
	if reference.Type == eureg.TypeDirective {
		return "implements"
	}
	return "applies"
}

func implementationStatus(reference eureg.Reference) string {
	if reference.Type == eureg.TypeDirective {
		return "transposed"
	}
	return ""
}

func sourceKind(documentType string) string {
	if documentType == store.DocTypeCaseLaw {
		return "case_law"
	}
	return "document"
}

func documentType(aknType string, discoveryType string) string {
	code := firstNonEmpty(aknType, discoveryType)
	switch code {
	case "PROJET", "PPL":
		return store.DocTypeBill
	case "JURIS":
		return store.DocTypeCaseLaw
	default:
		return store.DocTypeStatute
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func (p *Pipeline) recordFailure(report *Report, seedID string) {
	if len(report.FailedIDs) < maxFailedSamples {
		report.FailedIDs = append(report.FailedIDs, seedID)
	}
}
