package ingest

import (
	"testing"

	"github.com/coolbeans/luxlex/pkg/store"
)

func TestExtractDefinitions(t *testing.T) {
	provisions := []store.Provision{
		{
			DocumentID: "doc",
			Ref:        "art2",
			Content: "On entend par « données », toute information relative à une personne.\n\n" +
				"« fichier » : tout ensemble structuré de données accessibles.",
		},
		{
			DocumentID: "doc",
			Ref:        "art3",
			Content:    "« données » : une redéfinition qui ne doit pas gagner.",
		},
	}

	definitions := extractDefinitions("doc", provisions)
	if len(definitions) != 2 {
		t.Fatalf("Expected 2 definitions, got %+v", definitions)
	}

	first := definitions[0]
	if first.Term != "données" || first.ProvisionRef != "art2" {
		t.Errorf("Unexpected first definition %+v", first)
	}
	if first.Definition != "toute information relative à une personne" {
		t.Errorf("Expected the gloss trimmed of its period, got %q", first.Definition)
	}

	second := definitions[1]
	if second.Term != "fichier" || second.Definition != "tout ensemble structuré de données accessibles" {
		t.Errorf("Unexpected second definition %+v", second)
	}
}

func TestExtractDefinitionsSkipsEmptyAndShortGlosses(t *testing.T) {
	provisions := []store.Provision{
		{DocumentID: "doc", Ref: "art1", Content: "Aucune définition ici, seulement du texte courant."},
	}
	if definitions := extractDefinitions("doc", provisions); len(definitions) != 0 {
		t.Errorf("Expected no definitions, got %+v", definitions)
	}
}
