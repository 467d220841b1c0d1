package mdhtml

import (
	"strings"

	"golang.org/x/text/cases"
)

// LinkTable maps reference labels to destinations for one document scope.
// Nested scopes (blockquotes, list items) chain to their enclosing table,
// and Lookup falls back through that chain: a reference inside a quote or
// list item resolves against definitions anywhere in the enclosing
// document, not only against those in its own sub-document.
type LinkTable struct {
	parent *LinkTable
	refs   map[string]string
}

// NewLinkTable returns an empty table chained to parent, which may be nil.
func NewLinkTable(parent *LinkTable) *LinkTable {
	return &LinkTable{parent: parent}
}

// Define records label -> href. The first definition of a label in a scope
// wins; it reports whether the definition was stored.
func (lt *LinkTable) Define(label, href string) bool {
	key := normalizeLabel(label)
	if key == "" {
		return false
	}
	if lt.refs == nil {
		lt.refs = make(map[string]string)
	}
	if _, ok := lt.refs[key]; ok {
		return false
	}
	lt.refs[key] = href
	return true
}

// Lookup resolves label in this scope, then in each enclosing scope.
func (lt *LinkTable) Lookup(label string) (string, bool) {
	key := normalizeLabel(label)
	if key == "" {
		return "", false
	}
	for t := lt; t != nil; t = t.parent {
		if href, ok := t.refs[key]; ok {
			return href, true
		}
	}
	return "", false
}

// Len returns the number of labels defined directly in this scope.
func (lt *LinkTable) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.refs)
}

func normalizeLabel(label string) string {
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}
