// Package akn parses Akoma Ntoso legislative XML as published by the
// Luxembourg Legilux service and extracts flat provision lists from the
// nested container structure (parts, chapters, sections, articles).
package akn

import (
	"encoding/xml"
	"io"
	"strings"
)

// Reserved keys in a decoded element map.
const (
	// TextKey holds the concatenated character data of an element.
	TextKey = "#text"

	// AttrPrefix marks attribute keys (e.g. "@name").
	AttrPrefix = "@"
)

// Node is one node of a decoded XML tree. A Node is either a string
// (text-only element or character data), a []Node (repeated sibling
// elements), or a *Map (element with attributes or child elements).
type Node any

// Map is a decoded XML element. Keys preserves the order in which keys
// first appeared in the source document, which matters for mixed content
// such as "Art. 1<sup>er</sup>".
type Map struct {
	Keys   []string
	Values map[string]Node
}

// NewMap creates an empty element map.
func NewMap() *Map {
	return &Map{Values: make(map[string]Node)}
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.Values[key]
	return value, ok
}

// Set stores a value under key, recording first-seen key order.
func (m *Map) Set(key string, value Node) {
	if _, exists := m.Values[key]; !exists {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

// append adds a child element value under key. A repeated key is promoted
// to a []Node in document order.
func (m *Map) append(key string, value Node) {
	existing, exists := m.Values[key]
	if !exists {
		m.Set(key, value)
		return
	}
	if list, ok := existing.([]Node); ok {
		m.Values[key] = append(list, value)
		return
	}
	m.Values[key] = []Node{existing, value}
}

// DecodeXML decodes an XML document into a generic node tree. Element
// attributes become "@name" keys, character data accumulates under "#text",
// and elements whose only content is text collapse to a plain string.
// Namespace prefixes are dropped; only local names are kept.
func DecodeXML(data []byte) (*Map, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	decoder.Strict = false

	root := NewMap()
	stack := []*Map{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			element := NewMap()
			for _, attr := range tok.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				element.Set(AttrPrefix+attr.Name.Local, attr.Value)
			}
			parent := stack[len(stack)-1]
			parent.append(tok.Name.Local, element)
			stack = append(stack, element)

		case xml.EndElement:
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			collapseIfTextOnly(parent, finished)

		case xml.CharData:
			text := strings.TrimSpace(string(tok))
			if text == "" {
				continue
			}
			current := stack[len(stack)-1]
			if existing, ok := current.Values[TextKey]; ok {
				if existingText, isString := existing.(string); isString {
					current.Values[TextKey] = existingText + " " + text
					continue
				}
			}
			current.Set(TextKey, text)
		}
	}

	return root, nil
}

// collapseIfTextOnly replaces a just-closed child element by its bare text
// when it carries no attributes and no child elements.
func collapseIfTextOnly(parent *Map, finished *Map) {
	if len(finished.Keys) != 1 || finished.Keys[0] != TextKey {
		return
	}
	text, ok := finished.Values[TextKey].(string)
	if !ok {
		return
	}
	for _, key := range parent.Keys {
		replaceNode(parent, key, finished, text)
	}
}

func replaceNode(parent *Map, key string, target *Map, replacement Node) {
	switch value := parent.Values[key].(type) {
	case *Map:
		if value == target {
			parent.Values[key] = replacement
		}
	case []Node:
		for i, item := range value {
			if element, ok := item.(*Map); ok && element == target {
				value[i] = replacement
			}
		}
	}
}

// Lookup walks a dotted path through the tree and returns the node at the
// end of it. Each segment selects a child element by name; when a segment
// resolves to a list, the first element is taken. Lookup never panics on
// absent structure; a missing segment yields (nil, false).
func Lookup(node Node, path string) (Node, bool) {
	current := node
	for _, segment := range strings.Split(path, ".") {
		element, ok := current.(*Map)
		if !ok {
			if list, isList := current.([]Node); isList && len(list) > 0 {
				element, ok = list[0].(*Map)
			}
			if !ok {
				return nil, false
			}
		}
		next, found := element.Get(segment)
		if !found {
			return nil, false
		}
		current = next
	}
	if list, ok := current.([]Node); ok && len(list) > 0 {
		return current, true
	}
	return current, current != nil
}

// LookupMap is Lookup constrained to element results. A list resolves to
// its first element.
func LookupMap(node Node, path string) (*Map, bool) {
	found, ok := Lookup(node, path)
	if !ok {
		return nil, false
	}
	switch value := found.(type) {
	case *Map:
		return value, true
	case []Node:
		if len(value) > 0 {
			if element, isMap := value[0].(*Map); isMap {
				return element, true
			}
		}
	}
	return nil, false
}

// LookupString is Lookup constrained to text results, extracting text from
// an element node when needed.
func LookupString(node Node, path string) (string, bool) {
	found, ok := Lookup(node, path)
	if !ok {
		return "", false
	}
	text := ExtractText(found, false)
	if text == "" {
		return "", false
	}
	return text, true
}

// asList normalizes a node that may be a single element or a repeated list
// into a slice, which simplifies walking containers that appear once or
// many times.
func asList(node Node) []Node {
	switch value := node.(type) {
	case nil:
		return nil
	case []Node:
		return value
	default:
		return []Node{value}
	}
}
