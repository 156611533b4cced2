// Package linter implements semlint's model validators. The only
// validator today is the non-inclusive terms linter, which scans every
// text instance of a model against a configured term table.
package linter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidConfig marks configuration-author mistakes detected while
// building a term table. The model is never scanned when construction
// fails.
var ErrInvalidConfig = errors.New("invalid linter configuration")

// builtInTerms is the default term table. Package-level constant data;
// never mutated. NewTermTable copies it before overlaying user terms.
var builtInTerms = map[string][]string{
	"master":    {"primary", "parent", "main"},
	"slave":     {"secondary", "replica", "clone", "child"},
	"blacklist": {"denyList"},
	"whitelist": {"allowList"},
}

// BuiltInTerms returns a copy of the built-in term table.
func BuiltInTerms() map[string][]string {
	return copyTerms(builtInTerms)
}

// TermTable is a resolved, immutable mapping from lowercase
// non-inclusive term to its suggested replacements. Term iteration
// order is the sorted key order, so scans are deterministic.
type TermTable struct {
	terms map[string][]string
	keys  []string
}

// NewTermTable resolves the final table from builtins and the two
// user maps. replaceMap, when non-empty, is used verbatim and the
// builtins are discarded; otherwise appendMap is overlaid on builtins
// with appendMap winning on key collisions. Specifying both maps, or
// an empty-string term in either, is a configuration error wrapping
// ErrInvalidConfig.
func NewTermTable(builtins, appendMap, replaceMap map[string][]string) (*TermTable, error) {
	if len(appendMap) > 0 && len(replaceMap) > 0 {
		return nil, fmt.Errorf("%w: cannot specify both terms to append and terms to replace built-ins", ErrInvalidConfig)
	}

	var resolved map[string][]string
	if len(replaceMap) > 0 {
		resolved = copyTerms(replaceMap)
	} else {
		resolved = copyTerms(builtins)
		for term, suggestions := range appendMap {
			resolved[strings.ToLower(term)] = append([]string(nil), suggestions...)
		}
	}

	if _, ok := resolved[""]; ok {
		return nil, fmt.Errorf("%w: empty string is not a valid non-inclusive term", ErrInvalidConfig)
	}

	keys := make([]string, 0, len(resolved))
	for term := range resolved {
		keys = append(keys, term)
	}
	sort.Strings(keys)

	return &TermTable{terms: resolved, keys: keys}, nil
}

// Suggestions returns the replacement suggestions for a term, or nil
// when the term is not in the table.
func (t *TermTable) Suggestions(term string) []string {
	return t.terms[strings.ToLower(term)]
}

// Terms returns the table's terms in sorted order.
func (t *TermTable) Terms() []string { return t.keys }

// Len returns the number of terms.
func (t *TermTable) Len() int { return len(t.keys) }

func copyTerms(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for term, suggestions := range src {
		dst[strings.ToLower(term)] = append([]string(nil), suggestions...)
	}
	return dst
}
