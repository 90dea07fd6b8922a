package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glosshub/glossd/internal/glossary"
	"github.com/glosshub/glossd/internal/llm"
)

// capabilityTimeout bounds the external language-model call so one
// unresponsive request cannot stall forever. Expiry takes the fallback path.
const capabilityTimeout = 30 * time.Second

// Agentic answers natural-language queries through an external language
// capability, grounding it on the full corpus text and resolving its answers
// against the store. The capability handle is fixed at construction: nil
// means initialization failed and every query takes the fuzzy fallback.
// Agentic never returns an error; every failure degrades to a best-effort
// result list.
type Agentic struct {
	store      *glossary.Store
	fuzzy      *Fuzzy
	capability llm.Capability // nil when unavailable
	logger     *slog.Logger
}

func NewAgentic(store *glossary.Store, fuzzy *Fuzzy, capability llm.Capability, logger *slog.Logger) *Agentic {
	return &Agentic{store: store, fuzzy: fuzzy, capability: capability, logger: logger}
}

// Search asks the language capability for the glossary terms most relevant
// to query, with contextHint appended when given. Names the capability
// returns that do not resolve to an existing term are silently skipped.
func (a *Agentic) Search(ctx context.Context, query, contextHint string) []glossary.TermResult {
	if a.capability == nil {
		a.logger.Info("Language capability unavailable, falling back to fuzzy search", "query", query)
		return a.fallback(query)
	}

	request := query
	if contextHint != "" {
		request = fmt.Sprintf("%s (Context: %s)", query, contextHint)
	}

	ctx, cancel := context.WithTimeout(ctx, capabilityTimeout)
	defer cancel()

	names, err := a.capability.RelevantTerms(ctx, request, a.store.CorpusText())
	if err != nil {
		a.logger.Warn("Language capability failed, falling back to fuzzy search", "query", query, "error", err)
		return a.fallback(query)
	}

	var results []glossary.TermResult
	for _, name := range names {
		term, ok := a.store.Get(name)
		if !ok {
			a.logger.Debug("Capability returned unknown term, skipping", "term", name)
			continue
		}
		results = append(results, glossary.TermResult{
			Term:        name,
			Definitions: term.Definitions,
			Confidence:  1.0,
			MatchType:   glossary.MatchAgentic,
		})
	}
	return results
}

func (a *Agentic) fallback(query string) []glossary.TermResult {
	results := a.fuzzy.Search(query, fallbackThreshold)
	if len(results) > fallbackLimit {
		results = results[:fallbackLimit]
	}
	for i := range results {
		results[i].MatchType = glossary.MatchAgenticFallback
	}
	return results
}
