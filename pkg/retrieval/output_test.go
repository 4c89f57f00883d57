package retrieval

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crosslingua/xqa/pkg/corpus"
)

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranked.json")
	results := []QueryResult{
		{
			Question: "Who wrote <i>Hamlet</i>?",
			Documents: []RankedDocument{
				{Score: 9.75, Title: "William Shakespeare", Text: "a playwright & poet", ID: corpus.NumericID(11)},
			},
		},
		{
			Question: "unmatched",
			Documents: []RankedDocument{
				{Score: 1, Title: "A", Text: "t", ID: corpus.StringID("x1")},
				{Score: 0.5, Title: "B", Text: "u", ID: corpus.StringID("x2")},
			},
		},
	}
	require.NoError(t, WriteResultsFile(path, results))

	got, err := ReadResultsFile(path)
	require.NoError(t, err)
	require.Equal(t, results, got)
}

func TestWriteResultsDoesNotEscapeHTML(t *testing.T) {
	var sb strings.Builder
	err := WriteResults(&sb, []QueryResult{{Question: "<Query> & more"}})
	require.NoError(t, err)
	require.Contains(t, sb.String(), "<Query> & more")
	require.NotContains(t, sb.String(), `\u003c`)
}
