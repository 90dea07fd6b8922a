package llm

import "context"

// Capability maps a natural-language request plus the full glossary text to
// an ordered list of term names, most relevant first. Implementations must
// return exact canonical names from the supplied corpus; the caller drops
// anything it cannot resolve. Any provider satisfying this signature is
// substitutable.
type Capability interface {
	RelevantTerms(ctx context.Context, request, corpusText string) ([]string, error)
}
