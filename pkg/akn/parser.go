package akn

import (
	"fmt"
	"regexp"
	"strings"
)

// Provision is one addressable unit of an act, normally an article.
type Provision struct {
	// Ref is the normalized lookup key, e.g. "art3".
	Ref string

	// Section is the human container label ("2", "2.3") used as a
	// fallback lookup key.
	Section string

	// Chapter is the enclosing chapter label when known.
	Chapter string

	// Title is the display label, e.g. "Article 3".
	Title string

	// Content is the concatenated alinea/paragraph text.
	Content string
}

// Act is the parsed result for one legislative document.
type Act struct {
	Title        string
	DateDocument string
	TypeDocument string
	Provisions   []Provision
}

var (
	reArtPrefix     = regexp.MustCompile(`(?i)^art\.?\s*`)
	reGluedOrdinal  = regexp.MustCompile(`(\d)\.([A-Za-zÀ-ÿ]+)$`)
	reOrdinalSuffix = regexp.MustCompile(`^(\d+)er$`)
)

// ParseAct parses a full Akoma Ntoso XML document into an Act. It returns
// nil when the document does not contain the expected akomaNtoso/act root
// or when decoding fails entirely; callers must treat nil as "skip this
// document". Metadata extraction is best-effort and degrades to empty
// fields.
func ParseAct(data []byte) (act *Act) {
	defer func() {
		if recover() != nil {
			act = nil
		}
	}()

	root, err := DecodeXML(data)
	if err != nil {
		return nil
	}

	actNode, ok := LookupMap(root, "akomaNtoso.act")
	if !ok {
		return nil
	}

	parsed := &Act{}
	parsed.Title = extractActTitle(actNode)
	parsed.DateDocument, parsed.TypeDocument = extractJoluxMetadata(actNode)

	if body, hasBody := LookupMap(actNode, "body"); hasBody {
		collectProvisions(body, "", "", &parsed.Provisions)
	}

	return parsed
}

// extractActTitle resolves the document title: the preface long title
// first, falling back to the expression-level identification alias named
// "title".
func extractActTitle(actNode *Map) string {
	if longTitle, ok := Lookup(actNode, "preface.longTitle"); ok {
		if title := CleanText(ExtractText(longTitle, false)); title != "" {
			return title
		}
	}

	expression, ok := LookupMap(actNode, "meta.identification.FRBRExpression")
	if !ok {
		return ""
	}
	aliases, _ := expression.Get("FRBRalias")
	for _, aliasNode := range asList(aliases) {
		alias, isMap := aliasNode.(*Map)
		if !isMap {
			continue
		}
		name, _ := alias.Get("@name")
		if nameText, isString := name.(string); !isString || nameText != "title" {
			continue
		}
		if value, hasValue := alias.Get("@value"); hasValue {
			if valueText, isString := value.(string); isString {
				return CleanText(valueText)
			}
		}
	}
	return ""
}

// extractJoluxMetadata pulls dateDocument and typeDocument out of the
// work-level legalResource entry list. Any structural mismatch yields
// empty fields rather than an error.
func extractJoluxMetadata(actNode *Map) (dateDocument string, typeDocument string) {
	entries, ok := Lookup(actNode, "meta.identification.FRBRWork.legalResource.jolux")
	if !ok {
		return "", ""
	}
	for _, entryNode := range asList(entries) {
		entry, isMap := entryNode.(*Map)
		if !isMap {
			continue
		}
		nameNode, _ := entry.Get("@name")
		name, _ := nameNode.(string)
		valueNode, _ := entry.Get("@value")
		value, isString := valueNode.(string)
		if !isString || value == "" {
			if text, hasText := entry.Get(TextKey); hasText {
				value, _ = text.(string)
			}
		}
		switch name {
		case "dateDocument":
			dateDocument = value
		case "typeDocument":
			typeDocument = shortenTypeDocument(value)
		}
	}
	return dateDocument, typeDocument
}

// shortenTypeDocument reduces a JOLUX resource-type URI to its trailing
// path segment ("…/resource-type/LOI" -> "LOI").
func shortenTypeDocument(value string) string {
	if idx := strings.LastIndex(value, "resource-type/"); idx >= 0 {
		return value[idx+len("resource-type/"):]
	}
	return value
}

// containerElements are the hierarchical containers recursed into while
// hunting for articles.
var containerElements = []string{"chapter", "section", "part"}

// collectProvisions walks the body container hierarchy depth-first,
// carrying forward the section label of the enclosing container.
func collectProvisions(container *Map, sectionLabel string, chapterLabel string, out *[]Provision) {
	if articles, ok := container.Get("article"); ok {
		for _, articleNode := range asList(articles) {
			article, isMap := articleNode.(*Map)
			if !isMap {
				continue
			}
			if provision, parsed := parseArticle(article, sectionLabel, chapterLabel); parsed {
				*out = append(*out, provision)
			}
		}
	}

	for _, containerName := range containerElements {
		children, ok := container.Get(containerName)
		if !ok {
			continue
		}
		for position, childNode := range asList(children) {
			child, isMap := childNode.(*Map)
			if !isMap {
				continue
			}
			childLabel := containerLabel(child, position, sectionLabel)
			childChapter := chapterLabel
			if containerName == "chapter" {
				childChapter = childLabel
			}
			collectProvisions(child, childLabel, childChapter, out)
		}
	}
}

// containerLabel computes a container's section label: its own num text if
// present, otherwise a 1-based positional fallback dotted under the parent
// label when nested under an unlabeled context.
func containerLabel(container *Map, position int, parentLabel string) string {
	if num, ok := container.Get("num"); ok {
		if label := CleanText(ExtractText(num, false)); label != "" {
			return label
		}
	}
	positional := fmt.Sprintf("%d", position+1)
	if parentLabel != "" {
		return parentLabel + "." + positional
	}
	return positional
}

// contentElements lists the per-article content categories in strict
// priority order; the first category with any non-empty block wins.
var contentElements = []string{"alinea", "paragraph", "content", "p"}

// parseArticle extracts one provision from an article element. Articles
// without an extractable number or without any non-empty content block are
// dropped.
func parseArticle(article *Map, sectionLabel string, chapterLabel string) (Provision, bool) {
	numNode, ok := article.Get("num")
	if !ok {
		return Provision{}, false
	}
	articleNumber := cleanArticleNumber(ExtractText(numNode, false))
	if articleNumber == "" {
		return Provision{}, false
	}

	content := extractArticleContent(article)
	if content == "" {
		return Provision{}, false
	}

	return Provision{
		Ref:     NormalizeRef(articleNumber),
		Section: sectionLabel,
		Chapter: chapterLabel,
		Title:   "Article " + articleNumber,
		Content: content,
	}, true
}

// cleanArticleNumber strips the "Art." prefix and trailing period from an
// article num, repairs the decoder artifact where a period lands directly
// before a glued ordinal suffix ("1.er" -> "1er"), and collapses
// whitespace.
func cleanArticleNumber(raw string) string {
	number := CleanText(raw)
	number = reArtPrefix.ReplaceAllString(number, "")
	number = strings.TrimSuffix(number, ".")
	number = reGluedOrdinal.ReplaceAllString(number, "$1$2")
	return strings.TrimSpace(number)
}

// NormalizeRef converts a cleaned article number to its reference key:
// lower-cased, ordinal "er" stripped ("1er" -> "1"), prefixed with "art".
// Other suffixes such as "bis" are preserved ("10bis" -> "art10bis").
func NormalizeRef(articleNumber string) string {
	ref := strings.ToLower(strings.TrimSpace(articleNumber))
	ref = reArtPrefix.ReplaceAllString(ref, "")
	ref = strings.TrimSuffix(ref, ".")
	ref = reOrdinalSuffix.ReplaceAllString(ref, "$1")
	return "art" + ref
}

// extractArticleContent assembles the article text: the first matching
// content category provides the blocks, blocks are cleaned individually
// and joined with a blank line.
func extractArticleContent(article *Map) string {
	for _, elementName := range contentElements {
		children, ok := article.Get(elementName)
		if !ok {
			continue
		}
		var blocks []string
		for _, childNode := range asList(children) {
			if block := CleanText(ExtractText(childNode, false)); block != "" {
				blocks = append(blocks, block)
			}
		}
		if len(blocks) > 0 {
			return strings.Join(blocks, "\n\n")
		}
	}
	return ""
}
