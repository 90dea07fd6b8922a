package glossary

import "gopkg.in/yaml.v3"

// MatchType classifies which search tier produced a result.
type MatchType string

const (
	MatchExact           MatchType = "exact"            // case-insensitive direct hit
	MatchFuzzy           MatchType = "fuzzy"            // weighted similarity match
	MatchSuggestion      MatchType = "suggestion"       // near-miss offered after a failed exact lookup
	MatchAgentic         MatchType = "agentic"          // picked by the language-model capability
	MatchAgenticFallback MatchType = "agentic_fallback" // fuzzy results standing in for an unavailable capability
)

// Definition is a single definition with its own see-also references.
type Definition struct {
	Text    string   `yaml:"text" json:"text"`
	SeeAlso []string `yaml:"see_also,omitempty" json:"see_also"`
}

// UnmarshalYAML coerces non-mapping definition entries (a bare string, a
// number) into a definition whose text is the entry's string form and whose
// see-also list is empty, so a sloppy glossary file degrades predictably.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		d.Text = node.Value
		d.SeeAlso = nil
		return nil
	}
	type plain Definition
	return node.Decode((*plain)(d))
}

// Term is a glossary term in its canonical (original-casing) form together
// with its definitions.
type Term struct {
	Term        string       `yaml:"-" json:"term"`
	Definitions []Definition `yaml:"definitions" json:"definitions"`
}

// TermResult is a Term plus search metadata. Confidence is in [0,1];
// exact and agentic matches report 1.0, fuzzy matches report scaled
// similarity.
type TermResult struct {
	Term        string       `json:"term"`
	Definitions []Definition `json:"definitions"`
	Confidence  float64      `json:"confidence"`
	MatchType   MatchType    `json:"match_type"`
}
