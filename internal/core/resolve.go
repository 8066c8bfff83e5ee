package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Resolver maps arbitrary source column headers to the target schema using
// a synonym table. It is a pure function of its inputs: resolving the same
// header list always yields the same mapping.
type Resolver struct {
	synonyms map[string]string
}

// NewResolver creates a resolver backed by the given synonym table.
// The table is not copied; callers must not mutate it afterwards.
func NewResolver(synonyms map[string]string) *Resolver {
	return &Resolver{synonyms: synonyms}
}

// DefaultResolver returns a resolver using the built-in synonym table.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultSynonyms)
}

// ColumnMapping is the per-file binding of target columns to source columns.
type ColumnMapping struct {
	// Bound maps a target column name to the index of the source column it
	// was resolved from. Absent means the target column stays empty.
	Bound map[string]int

	// Unmapped lists source column indexes, in original order, that resolved
	// to no target column (or to one that was already bound). Their values
	// are folded into the Notes column during transformation.
	Unmapped []int
}

// Map resolves source headers into a ColumnMapping. The first header that
// resolves to a target column wins; later headers resolving to the same
// column are recorded as unmapped rather than overwriting the binding.
func (r *Resolver) Map(headers []string) ColumnMapping {
	m := ColumnMapping{Bound: make(map[string]int, len(TargetColumns))}

	for i, h := range headers {
		key := NormalizeHeader(h)
		target, ok := r.synonyms[key]
		if !ok || key == "" {
			m.Unmapped = append(m.Unmapped, i)
			continue
		}
		if _, taken := m.Bound[target]; taken {
			m.Unmapped = append(m.Unmapped, i)
			continue
		}
		m.Bound[target] = i
	}

	return m
}

// diacriticStripper removes combining marks after NFD decomposition, so
// "Razão" and "Razao" compare equal.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader canonicalizes a source header for synonym lookup:
// trim, lowercase, collapse internal whitespace runs, strip diacritics.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}
	return s
}
