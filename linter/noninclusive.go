package linter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/c360studio/semlint/model"
	"github.com/c360studio/semlint/model/text"
	"github.com/c360studio/semlint/validate"
)

// NoninclusiveTermsID is the event ID of the non-inclusive terms
// validator.
const NoninclusiveTermsID = "NoninclusiveTerms"

// TermsConfig is the user-facing configuration of the non-inclusive
// terms validator. The two maps are mutually exclusive.
type TermsConfig struct {
	// AppendNoninclusiveTerms adds terms on top of the built-in table.
	AppendNoninclusiveTerms map[string][]string `yaml:"appendNoninclusiveTerms,omitempty" json:"appendNoninclusiveTerms,omitempty"`

	// ReplaceNoninclusiveTerms is used verbatim instead of the
	// built-in table.
	ReplaceNoninclusiveTerms map[string][]string `yaml:"replaceNoninclusiveTerms,omitempty" json:"replaceNoninclusiveTerms,omitempty"`
}

// NoninclusiveTerms scans every text instance of a model for
// configured non-inclusive terms and reports a WARNING event per term
// match with a context-aware remediation message.
type NoninclusiveTerms struct {
	table *TermTable
}

// NewNoninclusiveTerms resolves the term table from cfg. It fails,
// wrapping ErrInvalidConfig, when both term maps are set or when
// either contains an empty term.
func NewNoninclusiveTerms(cfg TermsConfig) (*NoninclusiveTerms, error) {
	table, err := NewTermTable(builtInTerms, cfg.AppendNoninclusiveTerms, cfg.ReplaceNoninclusiveTerms)
	if err != nil {
		return nil, err
	}
	return &NoninclusiveTerms{table: table}, nil
}

// ID implements validate.Validator.
func (v *NoninclusiveTerms) ID() string { return NoninclusiveTermsID }

// Validate implements validate.Validator. Event order follows text
// index order, then term table order within an instance.
func (v *NoninclusiveTerms) Validate(m *model.Model) []validate.Event {
	var events []validate.Event
	for _, instance := range text.NewIndex(m).Instances() {
		for _, match := range v.scan(instance) {
			events = append(events, validate.Event{
				ID:       NoninclusiveTermsID,
				Severity: validate.SeverityWarning,
				Source:   eventSource(instance),
				Message:  formatTermMessage(v.table.Suggestions(match.term), match.matched, instance),
			})
		}
	}
	return events
}

// termMatch is one term hit inside a text instance.
type termMatch struct {
	term    string
	matched string
}

// scan tests every configured term as a case-insensitive substring of
// the instance text. Only the first occurrence of each term is
// recorded; the matched substring keeps the original casing. Matching
// folds rune by rune against the original text rather than lowering
// the whole text up front: lowering can change byte lengths (e.g.
// "Ⱥ" is 2 bytes, "ⱥ" is 3), so indices into a lowered copy do not
// address the original.
func (v *NoninclusiveTerms) scan(instance text.Instance) []termMatch {
	var matches []termMatch
	for _, term := range v.table.Terms() {
		for start := range instance.Text {
			n, ok := foldedPrefixLen(instance.Text[start:], term)
			if !ok {
				continue
			}
			matches = append(matches, termMatch{
				term:    term,
				matched: instance.Text[start : start+n],
			})
			break
		}
	}
	return matches
}

// foldedPrefixLen reports whether s starts with term under
// case-insensitive rune comparison, returning the byte length of the
// matching prefix of s.
func foldedPrefixLen(s, term string) (int, bool) {
	n := 0
	for _, tr := range term {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || (r == utf8.RuneError && size == 1) {
			return 0, false
		}
		if unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// eventSource picks the source location for a finding: none for
// namespaces, the applying trait's location for trait values, the
// shape's own location otherwise.
func eventSource(instance text.Instance) model.SourceLocation {
	switch instance.Kind {
	case text.KindNamespace:
		return model.NoLocation
	case text.KindAppliedTrait:
		return instance.Trait.Source
	case text.KindShape:
		return instance.Shape.Source
	default:
		panic(fmt.Sprintf("unknown text location kind %d", instance.Kind))
	}
}

// formatTermMessage renders the finding message. The wording depends
// on where the text lives; suggestions are case-matched to the first
// rune of the matched substring.
func formatTermMessage(suggestions []string, matched string, instance text.Instance) string {
	adjusted := make([]string, len(suggestions))
	first, _ := utf8.DecodeRuneInString(matched)
	for i, s := range suggestions {
		if unicode.IsUpper(first) {
			adjusted[i] = validate.Capitalize(s)
		} else {
			adjusted[i] = validate.Uncapitalize(s)
		}
	}

	addendum := ""
	if len(adjusted) > 0 {
		addendum = fmt.Sprintf(" Consider using one of the following terms instead: %s.", validate.QuotedList(adjusted))
	}

	switch instance.Kind {
	case text.KindShape:
		return fmt.Sprintf("%s shape uses a non-inclusive term '%s'.%s",
			validate.Capitalize(instance.Shape.Type.String()), matched, addendum)
	case text.KindNamespace:
		return fmt.Sprintf("%s namespace uses a non-inclusive term '%s'.%s",
			instance.Text, matched, addendum)
	case text.KindAppliedTrait:
		if len(instance.PropertyPath) == 0 {
			return fmt.Sprintf("'%s' trait has a value that contains a non-inclusive term '%s'.%s",
				instance.Trait.IdiomaticName(), matched, addendum)
		}
		return fmt.Sprintf("'%s' trait value at path {%s} contains a non-inclusive term '%s'.%s",
			instance.Trait.IdiomaticName(), strings.Join(instance.PropertyPath, "/"), matched, addendum)
	default:
		panic(fmt.Sprintf("unknown text location kind %d", instance.Kind))
	}
}
