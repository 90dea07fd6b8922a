package search

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glosshub/glossd/internal/glossary"
)

const sampleCorpus = `HTTP:
  definitions:
    - text: HyperText Transfer Protocol
      see_also:
        - web protocol
API:
  definitions:
    - text: Application Programming Interface
REST:
  definitions:
    - text: Representational State Transfer
      see_also:
        - RESTful
TCP:
  definitions:
    - text: Transmission Control Protocol
      see_also:
        - transport protocol
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, corpus string) *glossary.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0644))
	return glossary.NewStore(path, testLogger())
}

func emptyStore(t *testing.T) *glossary.Store {
	t.Helper()
	return glossary.NewStore(filepath.Join(t.TempDir(), "missing.yaml"), testLogger())
}

func terms(results []glossary.TermResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Term
	}
	return names
}
