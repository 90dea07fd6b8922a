package glossary

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Store owns the term table and the derived search indexes. Readers get an
// immutable snapshot; reloads build a fresh snapshot off to the side and
// publish it with a single pointer swap, so concurrent searches observe
// either the old state or the new one, never a half-built index.
type Store struct {
	path   string
	logger *slog.Logger

	snap atomic.Pointer[snapshot]

	// loadMu serializes reloads; the read path never takes it.
	loadMu sync.Mutex
}

// snapshot is one fully-built, immutable view of the glossary.
type snapshot struct {
	terms      map[string]Term   // canonical term -> entry
	order      []string          // document order of canonical terms
	normalized map[string]string // lowercase name (canonical or see-also) -> canonical term
	searchable []string          // candidate pool for fuzzy matching
}

func emptySnapshot() *snapshot {
	return &snapshot{
		terms:      map[string]Term{},
		normalized: map[string]string{},
	}
}

// NewStore creates a store backed by the glossary file at path and performs
// the initial load. A missing or malformed file leaves the store empty and
// consistent; it is logged, never fatal.
func NewStore(path string, logger *slog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.snap.Store(emptySnapshot())
	s.Reload()
	return s
}

// Reload replaces the entire table and rebuilds both indexes atomically.
// Any failure resets the store to an empty, consistent state.
func (s *Store) Reload() {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("Glossary file not found, starting with empty glossary", "path", s.path)
		} else {
			s.logger.Error("Failed to read glossary", "path", s.path, "error", err)
		}
		s.snap.Store(emptySnapshot())
		return
	}

	snap, err := parseCorpus(data)
	if err != nil {
		s.logger.Error("Failed to parse glossary", "path", s.path, "error", err)
		s.snap.Store(emptySnapshot())
		return
	}

	s.snap.Store(snap)
	s.logger.Info("Loaded glossary", "path", s.path, "terms", len(snap.terms))
}

// parseCorpus decodes the YAML corpus and builds all indexes. The top level
// must be a mapping from canonical term name to its definitions; document
// order is preserved for corpus text and save output.
func parseCorpus(data []byte) (*snapshot, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	snap := emptySnapshot()
	if root.Kind == 0 || len(root.Content) == 0 {
		return snap, nil // empty document, empty glossary
	}

	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return snap, nil // comments-only file, empty glossary
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("glossary root must be a mapping, got %v", doc.Tag)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		var entry struct {
			Definitions []Definition `yaml:"definitions"`
		}
		if err := doc.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("term %q: %w", name, err)
		}
		if _, dup := snap.terms[name]; !dup {
			snap.order = append(snap.order, name)
		}
		snap.terms[name] = Term{Term: name, Definitions: entry.Definitions}
	}

	for _, name := range snap.order {
		snap.normalized[strings.ToLower(name)] = name
		snap.searchable = append(snap.searchable, name)
		for _, def := range snap.terms[name].Definitions {
			for _, ref := range def.SeeAlso {
				snap.normalized[strings.ToLower(ref)] = name
				snap.searchable = append(snap.searchable, ref)
			}
		}
	}
	return snap, nil
}

// Get returns the term stored under the canonical key.
func (s *Store) Get(term string) (Term, bool) {
	t, ok := s.snap.Load().terms[term]
	return t, ok
}

// Exists reports whether a canonical term is present.
func (s *Store) Exists(term string) bool {
	_, ok := s.snap.Load().terms[term]
	return ok
}

// ResolveNormalized maps any casing of a canonical or see-also name to its
// owning canonical term. Unknown names are returned verbatim, so callers
// must re-check existence before treating the result as found.
func (s *Store) ResolveNormalized(name string) string {
	if canonical, ok := s.snap.Load().normalized[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// ListTerms returns canonical terms sorted lexicographically, filtered by a
// case-insensitive prefix when one is given.
func (s *Store) ListTerms(prefix string) []string {
	snap := s.snap.Load()
	terms := make([]string, 0, len(snap.terms))
	prefix = strings.ToLower(prefix)
	for name := range snap.terms {
		if prefix == "" || strings.HasPrefix(strings.ToLower(name), prefix) {
			terms = append(terms, name)
		}
	}
	sort.Strings(terms)
	return terms
}

// SearchableNames returns the fuzzy-match candidate pool: every canonical
// term plus every see-also name, in document order, duplicates allowed.
func (s *Store) SearchableNames() []string {
	return s.snap.Load().searchable
}

// Len returns the number of canonical terms.
func (s *Store) Len() int {
	return len(s.snap.Load().terms)
}

// CorpusText flattens the whole glossary into the text blob handed to the
// language-model capability: one line per term with its definitions joined
// by "; ", followed by a deduplicated see-also line when any exist.
func (s *Store) CorpusText() string {
	snap := s.snap.Load()
	var b strings.Builder
	for _, name := range snap.order {
		term := snap.terms[name]

		texts := make([]string, len(term.Definitions))
		for i, def := range term.Definitions {
			texts[i] = def.Text
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(texts, "; "))
		b.WriteByte('\n')

		var refs []string
		seen := map[string]bool{}
		for _, def := range term.Definitions {
			for _, ref := range def.SeeAlso {
				if !seen[ref] {
					seen[ref] = true
					refs = append(refs, ref)
				}
			}
		}
		if len(refs) > 0 {
			b.WriteString("  (See also: ")
			b.WriteString(strings.Join(refs, ", "))
			b.WriteString(")\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Save serializes the current table to path in document key order. Failure
// is logged and returned; the in-memory store is unaffected.
func (s *Store) Save(path string) error {
	snap := s.snap.Load()

	var doc yaml.Node
	doc.Kind = yaml.MappingNode
	for _, name := range snap.order {
		var key, value yaml.Node
		key.SetString(name)
		entry := struct {
			Definitions []Definition `yaml:"definitions"`
		}{Definitions: snap.terms[name].Definitions}
		if err := value.Encode(entry); err != nil {
			s.logger.Error("Failed to encode glossary term", "term", name, "error", err)
			return fmt.Errorf("encode term %q: %w", name, err)
		}
		doc.Content = append(doc.Content, &key, &value)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		s.logger.Error("Failed to marshal glossary", "error", err)
		return fmt.Errorf("marshal glossary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		s.logger.Error("Failed to save glossary", "path", path, "error", err)
		return fmt.Errorf("save glossary: %w", err)
	}

	s.logger.Info("Saved glossary", "path", path, "terms", len(snap.terms))
	return nil
}
