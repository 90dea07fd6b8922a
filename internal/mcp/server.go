package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/glosshub/glossd/internal/glossary"
	"github.com/glosshub/glossd/internal/llm"
	"github.com/glosshub/glossd/internal/search"
)

// defaultFuzzyThreshold is used when a fuzzy_search_terms call leaves the
// threshold unset.
const defaultFuzzyThreshold = 80

// GlossaryServer exposes the glossary search operations as MCP tools.
type GlossaryServer struct {
	server  *mcp.Server
	logger  *slog.Logger
	store   *glossary.Store
	exact   *search.Exact
	fuzzy   *search.Fuzzy
	agentic *search.Agentic
}

// NewGlossaryServer wires the store, the three matchers, and the optional
// language capability (nil when unavailable) into an MCP server.
func NewGlossaryServer(name, version string, store *glossary.Store, capability llm.Capability, logger *slog.Logger) *GlossaryServer {
	fuzzy := search.NewFuzzy(store)

	s := &GlossaryServer{
		logger:  logger,
		store:   store,
		exact:   search.NewExact(store, fuzzy),
		fuzzy:   fuzzy,
		agentic: search.NewAgentic(store, fuzzy, capability, logger),
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		},
		nil,
	)
	s.registerTools(server)
	s.server = server

	return s
}

// Run starts the MCP server with the given transport.
func (s *GlossaryServer) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func (s *GlossaryServer) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_term",
		Description: "Look up a specific term in the glossary with exact, case-insensitive matching. Returns one exact match, or up to 3 close suggestions when the term is unknown.",
	}, s.handleLookupTerm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_lookup_terms",
		Description: "Look up multiple terms at once to reduce round trips. Returns a mapping from each input term to its lookup results.",
	}, s.handleBatchLookupTerms)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fuzzy_search_terms",
		Description: "Search for terms using fuzzy matching, tolerant of typos, word-order variation, and partial matches. Returns matches with similarity-based confidence scores.",
	}, s.handleFuzzySearchTerms)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "smart_query",
		Description: "AI-powered contextual search across the glossary using natural language. Falls back to fuzzy matching when the language model is unavailable.",
	}, s.handleSmartQuery)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_terms",
		Description: "List available glossary terms, optionally filtered by a case-insensitive prefix, sorted alphabetically.",
	}, s.handleListTerms)
}

// textResult marshals v as JSON into a single text content block, the
// payload convention shared by every tool here.
func textResult(v any) *mcp.CallToolResult {
	data, _ := json.Marshal(v)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

// nonNil keeps empty result lists serializing as [] rather than null.
func nonNil(results []glossary.TermResult) []glossary.TermResult {
	if results == nil {
		return []glossary.TermResult{}
	}
	return results
}

// LookupTermInput defines the input for lookup_term.
type LookupTermInput struct {
	Term string `json:"term" jsonschema:"The term to look up"`
}

func (s *GlossaryServer) handleLookupTerm(ctx context.Context, req *mcp.CallToolRequest, input LookupTermInput) (*mcp.CallToolResult, any, error) {
	results := s.exact.Lookup(input.Term)

	if len(results) > 0 && results[0].MatchType == glossary.MatchExact {
		s.logger.Info("Exact match found", "term", input.Term, "match", results[0].Term)
	} else {
		s.logger.Info("No exact match, returning suggestions", "term", input.Term, "suggestions", len(results))
	}

	return textResult(nonNil(results)), nil, nil
}

// BatchLookupTermsInput defines the input for batch_lookup_terms.
type BatchLookupTermsInput struct {
	Terms []string `json:"terms" jsonschema:"The terms to look up"`
}

func (s *GlossaryServer) handleBatchLookupTerms(ctx context.Context, req *mcp.CallToolRequest, input BatchLookupTermsInput) (*mcp.CallToolResult, any, error) {
	results := make(map[string][]glossary.TermResult, len(input.Terms))
	exactMatches := 0
	for _, term := range input.Terms {
		found := s.exact.Lookup(term)
		if len(found) > 0 && found[0].MatchType == glossary.MatchExact {
			exactMatches++
		}
		results[term] = nonNil(found)
	}

	s.logger.Info("Batch lookup completed", "terms", len(input.Terms), "exact_matches", exactMatches)
	return textResult(results), nil, nil
}

// FuzzySearchTermsInput defines the input for fuzzy_search_terms.
type FuzzySearchTermsInput struct {
	Query     string `json:"query" jsonschema:"The search query"`
	Threshold int    `json:"threshold,omitempty" jsonschema:"Similarity threshold (1-100). Default: 80"`
}

func (s *GlossaryServer) handleFuzzySearchTerms(ctx context.Context, req *mcp.CallToolRequest, input FuzzySearchTermsInput) (*mcp.CallToolResult, any, error) {
	threshold := input.Threshold
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}

	results := s.fuzzy.Search(input.Query, threshold)
	s.logger.Info("Fuzzy search completed", "query", input.Query, "threshold", threshold, "matches", len(results))

	return textResult(nonNil(results)), nil, nil
}

// SmartQueryInput defines the input for smart_query.
type SmartQueryInput struct {
	Query   string `json:"query" jsonschema:"Natural language query describing what you're looking for"`
	Context string `json:"context,omitempty" jsonschema:"Optional additional context to help with the search"`
}

func (s *GlossaryServer) handleSmartQuery(ctx context.Context, req *mcp.CallToolRequest, input SmartQueryInput) (*mcp.CallToolResult, any, error) {
	results := s.agentic.Search(ctx, input.Query, input.Context)
	s.logger.Info("Smart query completed", "query", input.Query, "matches", len(results))

	return textResult(nonNil(results)), nil, nil
}

// ListTermsInput defines the input for list_terms.
type ListTermsInput struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"Optional prefix to filter terms (case-insensitive)"`
}

func (s *GlossaryServer) handleListTerms(ctx context.Context, req *mcp.CallToolRequest, input ListTermsInput) (*mcp.CallToolResult, any, error) {
	terms := s.store.ListTerms(input.Prefix)
	s.logger.Info("Listed terms", "prefix", input.Prefix, "count", len(terms))

	return textResult(terms), nil, nil
}
