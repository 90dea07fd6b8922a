package search

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/glosshub/glossd/internal/glossary"
)

// rawCandidateLimit caps how many scored names survive extraction before
// canonicalization; several names can collapse onto one term, so we extract
// more than we intend to return.
const rawCandidateLimit = 10

// Fuzzy matches a query approximately against every searchable name
// (canonical terms and see-also references) using a weighted similarity
// ratio, which tolerates word-order variation, differing lengths, and
// partial overlap rather than just character-level typos.
type Fuzzy struct {
	store *glossary.Store
}

func NewFuzzy(store *glossary.Store) *Fuzzy {
	return &Fuzzy{store: store}
}

type scoredName struct {
	name  string
	score int
}

// extract scores the query against every candidate name and returns at most
// limit names at or above threshold, sorted by score descending. The sort is
// stable so ties keep candidate-pool order; dedup downstream relies on this
// being score-ordered.
func (f *Fuzzy) extract(query string, threshold, limit int) []scoredName {
	var matches []scoredName
	for _, name := range f.store.SearchableNames() {
		if score := fuzzy.WRatio(query, name); score >= threshold {
			matches = append(matches, scoredName{name: name, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Search returns fuzzy matches scoring at or above threshold (0-100),
// deduplicated by canonical term and sorted by descending confidence.
func (f *Fuzzy) Search(query string, threshold int) []glossary.TermResult {
	var results []glossary.TermResult
	seen := map[string]bool{}

	for _, m := range f.extract(query, threshold, rawCandidateLimit) {
		canonical := f.store.ResolveNormalized(m.name)
		if seen[canonical] {
			continue // first occurrence is the highest-scoring one
		}
		seen[canonical] = true

		term, ok := f.store.Get(canonical)
		if !ok {
			continue // stale index entry, dropped defensively
		}
		results = append(results, glossary.TermResult{
			Term:        canonical,
			Definitions: term.Definitions,
			Confidence:  float64(m.score) / 100.0,
			MatchType:   glossary.MatchFuzzy,
		})
	}
	return results
}

// Suggestions runs the same scoring and dedup pipeline but returns only
// canonical term names, bounded to maxSuggestions.
func (f *Fuzzy) Suggestions(query string, threshold, maxSuggestions int) []string {
	var suggestions []string
	seen := map[string]bool{}

	for _, m := range f.extract(query, threshold, maxSuggestions) {
		canonical := f.store.ResolveNormalized(m.name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		suggestions = append(suggestions, canonical)
	}
	return suggestions
}
