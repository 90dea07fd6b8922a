package search

import "github.com/glosshub/glossd/internal/glossary"

// Thresholds shared by the degraded paths: a failed exact lookup and an
// unavailable language capability both fall back to fuzzy search at a low
// similarity floor, keeping the top few candidates.
const (
	fallbackThreshold = 60
	fallbackLimit     = 3
)

// Exact performs case-insensitive direct lookups, delegating to the fuzzy
// matcher for near-miss suggestions when the term is unknown.
type Exact struct {
	store *glossary.Store
	fuzzy *Fuzzy
}

func NewExact(store *glossary.Store, fuzzy *Fuzzy) *Exact {
	return &Exact{store: store, fuzzy: fuzzy}
}

// Lookup resolves term through the normalized map (so see-also names hit
// their owning term) and returns a single exact result at confidence 1.0.
// On a miss it returns up to three fuzzy candidates retagged as suggestions,
// possibly none.
func (e *Exact) Lookup(term string) []glossary.TermResult {
	canonical := e.store.ResolveNormalized(term)
	if t, ok := e.store.Get(canonical); ok {
		return []glossary.TermResult{{
			Term:        canonical,
			Definitions: t.Definitions,
			Confidence:  1.0,
			MatchType:   glossary.MatchExact,
		}}
	}

	suggestions := e.fuzzy.Search(term, fallbackThreshold)
	if len(suggestions) > fallbackLimit {
		suggestions = suggestions[:fallbackLimit]
	}
	for i := range suggestions {
		suggestions[i].MatchType = glossary.MatchSuggestion
	}
	return suggestions
}
