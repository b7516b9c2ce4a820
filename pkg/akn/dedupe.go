package akn

import "strings"

// DedupeStats reports what DeduplicateProvisions found.
type DedupeStats struct {
	// DuplicateRefs counts repeated provision refs, one per repeat.
	DuplicateRefs int

	// ConflictingDuplicates counts repeats whose normalized content
	// differed from the already-kept entry.
	ConflictingDuplicates int
}

// DeduplicateProvisions collapses provisions sharing a ref within one
// document. First-seen order of first occurrence is preserved. On a
// collision the provision with strictly longer whitespace-normalized
// content wins; the loser may still donate its title when the winner has
// none. Running the function on its own output is a no-op.
func DeduplicateProvisions(provisions []Provision) ([]Provision, DedupeStats) {
	var stats DedupeStats
	order := make([]string, 0, len(provisions))
	kept := make(map[string]Provision, len(provisions))

	for _, incoming := range provisions {
		ref := strings.TrimSpace(incoming.Ref)
		existing, seen := kept[ref]
		if !seen {
			order = append(order, ref)
			kept[ref] = incoming
			continue
		}

		stats.DuplicateRefs++
		existingContent := normalizeContent(existing.Content)
		incomingContent := normalizeContent(incoming.Content)
		if existingContent != incomingContent {
			stats.ConflictingDuplicates++
		}

		if len(incomingContent) > len(existingContent) {
			// Richer content wins; carry the old title over only
			// when the incoming side has none.
			if incoming.Title == "" {
				incoming.Title = existing.Title
			}
			kept[ref] = incoming
			continue
		}

		if existing.Title == "" && incoming.Title != "" {
			existing.Title = incoming.Title
			kept[ref] = existing
		}
	}

	deduplicated := make([]Provision, 0, len(order))
	for _, ref := range order {
		deduplicated = append(deduplicated, kept[ref])
	}
	return deduplicated, stats
}

// normalizeContent collapses all whitespace runs so that formatting-only
// differences do not count as conflicts.
func normalizeContent(content string) string {
	return strings.Join(strings.Fields(content), " ")
}
