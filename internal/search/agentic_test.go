package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glosshub/glossd/internal/glossary"
)

// stubCapability is a canned llm.Capability for dispatcher tests.
type stubCapability struct {
	names []string
	err   error

	gotRequest string
	gotCorpus  string
}

func (c *stubCapability) RelevantTerms(ctx context.Context, request, corpusText string) ([]string, error) {
	c.gotRequest = request
	c.gotCorpus = corpusText
	return c.names, c.err
}

func TestAgenticSearchResolvesCapabilityOutput(t *testing.T) {
	store := newTestStore(t, sampleCorpus)
	stub := &stubCapability{names: []string{"REST", "HTTP"}}
	agentic := NewAgentic(store, NewFuzzy(store), stub, testLogger())

	results := agentic.Search(context.Background(), "how do services talk over the web", "")
	require.Equal(t, []string{"REST", "HTTP"}, terms(results))
	for _, r := range results {
		require.Equal(t, 1.0, r.Confidence)
		require.Equal(t, glossary.MatchAgentic, r.MatchType)
	}

	// The capability is grounded on the full corpus text.
	require.Equal(t, store.CorpusText(), stub.gotCorpus)
	require.Equal(t, "how do services talk over the web", stub.gotRequest)
}

func TestAgenticSearchAppendsContextHint(t *testing.T) {
	store := newTestStore(t, sampleCorpus)
	stub := &stubCapability{names: []string{"API"}}
	agentic := NewAgentic(store, NewFuzzy(store), stub, testLogger())

	agentic.Search(context.Background(), "interface", "writing a client library")
	require.Equal(t, "interface (Context: writing a client library)", stub.gotRequest)
}

func TestAgenticSearchSkipsUnknownNames(t *testing.T) {
	store := newTestStore(t, sampleCorpus)
	stub := &stubCapability{names: []string{"HTTP", "Hallucinated Term", "TCP"}}
	agentic := NewAgentic(store, NewFuzzy(store), stub, testLogger())

	results := agentic.Search(context.Background(), "networking", "")
	require.Equal(t, []string{"HTTP", "TCP"}, terms(results))
}

func TestAgenticSearchNilCapabilityFallsBack(t *testing.T) {
	store := newTestStore(t, sampleCorpus)
	fuzzy := NewFuzzy(store)
	agentic := NewAgentic(store, fuzzy, nil, testLogger())

	results := agentic.Search(context.Background(), "HTTO", "")
	require.NotEmpty(t, results)
	require.LessOrEqual(t, len(results), 3)

	// Fallback results are a prefix of what plain fuzzy search at the
	// fallback threshold would return, retagged.
	expected := fuzzy.Search("HTTO", fallbackThreshold)
	for i, r := range results {
		require.Equal(t, glossary.MatchAgenticFallback, r.MatchType)
		require.Equal(t, expected[i].Term, r.Term)
		require.Equal(t, expected[i].Confidence, r.Confidence)
	}
}

func TestAgenticSearchCapabilityErrorFallsBack(t *testing.T) {
	store := newTestStore(t, sampleCorpus)
	stub := &stubCapability{err: errors.New("model unreachable")}
	agentic := NewAgentic(store, NewFuzzy(store), stub, testLogger())

	results := agentic.Search(context.Background(), "HTTO", "")
	require.NotEmpty(t, results)
	for _, r := range results {
		require.Equal(t, glossary.MatchAgenticFallback, r.MatchType)
	}
}

func TestAgenticSearchNeverErrorsOnEmptyFallback(t *testing.T) {
	store := emptyStore(t)
	agentic := NewAgentic(store, NewFuzzy(store), nil, testLogger())

	require.Empty(t, agentic.Search(context.Background(), "anything", ""))
}
