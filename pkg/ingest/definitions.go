package ingest

import (
	"regexp"
	"strings"

	"github.com/coolbeans/luxlex/pkg/store"
)

// French definition patterns. Luxembourg statutes introduce defined terms
// either as a guillemet-quoted term followed by a colon and its gloss, or
// with the "on entend par" formula.
var (
	reQuotedDefinition = regexp.MustCompile(`«\s*([^»]{1,80}?)\s*»\s*:\s*([^;\n]{3,400})`)
	reEntendDefinition = regexp.MustCompile(`(?i)on entend par\s*«\s*([^»]{1,80}?)\s*»\s*,?\s*([^;\n]{3,400})`)
)

// extractDefinitions scans provision content for defined legal terms. The
// same term defined twice in one document keeps the first gloss.
func extractDefinitions(documentID string, provisions []store.Provision) []store.Definition {
	var definitions []store.Definition
	seen := make(map[string]bool)

	add := func(term string, gloss string, provisionRef string) {
		term = strings.TrimSpace(term)
		gloss = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(gloss), "."))
		key := strings.ToLower(term)
		if term == "" || gloss == "" || seen[key] {
			return
		}
		seen[key] = true
		definitions = append(definitions, store.Definition{
			DocumentID:   documentID,
			Term:         term,
			Definition:   gloss,
			ProvisionRef: provisionRef,
		})
	}

	for _, provision := range provisions {
		// The "on entend par" formula is the stronger signal; run it
		// first so its glosses win over the generic quoted form.
		for _, match := range reEntendDefinition.FindAllStringSubmatch(provision.Content, -1) {
			add(match[1], match[2], provision.Ref)
		}
		for _, match := range reQuotedDefinition.FindAllStringSubmatch(provision.Content, -1) {
			add(match[1], match[2], provision.Ref)
		}
	}

	return definitions
}
