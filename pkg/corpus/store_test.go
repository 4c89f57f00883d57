package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCorpus() *Corpus {
	c := NewCorpus()
	c.Add(&Example{
		ID:       NumericID(0),
		Question: "Where is Mount Merapi?",
		Documents: []Document{
			{Text: "Merapi is an active volcano in Indonesia.", ID: StringID("Mount Merapi")},
			{Text: "Indonesia is an archipelago.", ID: NumericID(4021)},
		},
		Gold: []string{"Indonesia"},
	})
	c.Add(&Example{
		ID:       NumericID(1),
		Question: "Who founded Jakarta?",
		Documents: []Document{
			{Text: "Jakarta was founded under the name Jayakarta.", ID: StringID("Jakarta")},
		},
		Gold: []string{"Fatahillah", "Jayakarta"},
	})
	return c
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")

	orig := sampleCorpus()
	require.NoError(t, Save(orig, docPath, goldPath))

	got, err := Load(docPath, goldPath)
	require.NoError(t, err)
	require.Equal(t, orig.Questions(), got.Questions())
	for _, q := range orig.Questions() {
		require.Equal(t, orig.Get(q), got.Get(q), "question %q", q)
	}
}

func TestSaveDoesNotEscapeUnicodeOrHTML(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")

	c := NewCorpus()
	c.Add(&Example{
		ID:        NumericID(0),
		Question:  "Mikä on <Query> & tulivuori?",
		Documents: []Document{{Text: "tulivuori", ID: StringID("T")}},
	})
	require.NoError(t, Save(c, docPath, goldPath))

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "<Query> &")
	require.NotContains(t, string(data), `\u003c`)
}

func TestLoadExampleBoundaryOnOuterIDChange(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")

	// One physical line holding two outer ids still yields two examples.
	docLine := `[{"id": [0, 0], "question": "first?", "document": "doc a", "document_id": "A"},` +
		`{"id": [0, 1], "question": "first?", "document": "doc b", "document_id": "B"},` +
		`{"id": [1, 0], "question": "second?", "document": "doc c", "document_id": "C"}]`
	require.NoError(t, os.WriteFile(docPath, []byte(docLine+"\n"), 0o644))
	gold := `{"answers": ["a"], "question": "first?"}` + "\n" +
		`{"answers": ["c"], "question": "second?"}` + "\n"
	require.NoError(t, os.WriteFile(goldPath, []byte(gold), 0o644))

	c, err := Load(docPath, goldPath)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.Len(t, c.Get("first?").Documents, 2)
	require.Len(t, c.Get("second?").Documents, 1)
	require.Equal(t, []string{"c"}, c.Get("second?").Gold)
}

func TestLoadJoinMismatchIsFatal(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")

	docLine := `[{"id": [0, 0], "question": "the question", "document": "d", "document_id": "A"}]`
	require.NoError(t, os.WriteFile(docPath, []byte(docLine+"\n"), 0o644))
	// Whitespace drift between the files breaks the exact-string join.
	gold := `{"answers": ["x"], "question": "the  question"}` + "\n"
	require.NoError(t, os.WriteFile(goldPath, []byte(gold), 0o644))

	_, err := Load(docPath, goldPath)
	require.Error(t, err)
	require.True(t, IsJoinMismatch(err))
	require.Contains(t, err.Error(), "the  question")
}

func TestLoadTruncatedGoldIsFatal(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")

	docLines := `[{"id": [0, 0], "question": "first?", "document": "d", "document_id": "A"}]` + "\n" +
		`[{"id": [1, 0], "question": "second?", "document": "e", "document_id": "B"}]` + "\n"
	require.NoError(t, os.WriteFile(docPath, []byte(docLines), 0o644))
	// The gold file stops short of the second question.
	gold := `{"answers": ["x"], "question": "first?"}` + "\n"
	require.NoError(t, os.WriteFile(goldPath, []byte(gold), 0o644))

	_, err := Load(docPath, goldPath)
	require.Error(t, err)
	require.True(t, IsJoinMismatch(err))
	require.Contains(t, err.Error(), "second?")
}

func TestLoadMalformedDocLine(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("not json\n"), 0o644))
	require.NoError(t, os.WriteFile(goldPath, []byte(""), 0o644))

	_, err := Load(docPath, goldPath)
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestSaveRedacted(t *testing.T) {
	dir := t.TempDir()
	c := NewCorpus()
	c.Add(&Example{
		ID:        NumericID(0),
		Question:  "three word question",
		Documents: []Document{{Text: "d", ID: StringID("T")}},
		Gold:      []string{"answer"},
	})

	tests := []struct {
		mode RedactMode
		want string
	}{
		{RedactEmpty, ""},
		{RedactDummy, "dummy dummy dummy"},
		{RedactPlaceholder, "xxx xxx xxx xxx xxx"},
	}
	for _, tt := range tests {
		docPath := filepath.Join(dir, "doc.json")
		goldPath := filepath.Join(dir, "gold.txt")
		require.NoError(t, SaveRedacted(c, docPath, goldPath, tt.mode))

		got, err := Load(docPath, goldPath)
		require.NoError(t, err)
		require.Equal(t, 1, got.Len())
		require.Equal(t, tt.want, got.Questions()[0])
		// Answers survive redaction.
		require.Equal(t, []string{"answer"}, got.Get(tt.want).Gold)
	}
}

func TestFilterByIDs(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "dev_doc.json")
	goldPath := filepath.Join(dir, "dev.txt")
	outDoc := filepath.Join(dir, "out_doc.json")
	outGold := filepath.Join(dir, "out.txt")

	c := sampleCorpus()
	c.Add(&Example{
		ID:        NumericID(2),
		Question:  "What is Borobudur?",
		Documents: []Document{{Text: "A temple.", ID: StringID("Borobudur")}},
		Gold:      []string{"temple"},
	})
	require.NoError(t, Save(c, docPath, goldPath))

	kept := IDSet([]OuterID{NumericID(0), NumericID(2)})
	require.NoError(t, FilterByIDs(docPath, goldPath, outDoc, outGold, kept))

	got, err := Load(outDoc, outGold)
	require.NoError(t, err)
	require.Equal(t, []string{"Where is Mount Merapi?", "What is Borobudur?"}, got.Questions())

	// Gold lines are copied verbatim, not re-encoded.
	origGold, err := os.ReadFile(goldPath)
	require.NoError(t, err)
	filteredGold, err := os.ReadFile(outGold)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(filteredGold)), "\n") {
		require.Contains(t, string(origGold), line)
	}
}

func TestSplitAnswerable(t *testing.T) {
	c := sampleCorpus()
	c.Add(&Example{
		ID:        NumericID(5),
		Question:  "unanswerable one",
		Documents: []Document{{Text: "unrelated text", ID: StringID("X")}},
		Gold:      []string{"missing answer"},
	})

	answerable, unanswerable := SplitAnswerable(c)
	require.Equal(t, []OuterID{NumericID(0), NumericID(1)}, answerable)
	require.Equal(t, []OuterID{NumericID(5)}, unanswerable)
}

func TestLoadAllMergesParts(t *testing.T) {
	dir := t.TempDir()

	dev := NewCorpus()
	dev.Add(&Example{
		ID:        NumericID(0),
		Question:  "dev question",
		Documents: []Document{{Text: "d", ID: StringID("A")}},
	})
	require.NoError(t, Save(dev, filepath.Join(dir, "dev_doc.json"), filepath.Join(dir, "dev.txt")))

	test := NewCorpus()
	test.Add(&Example{
		ID:        NumericID(0),
		Question:  "test question",
		Documents: []Document{{Text: "t", ID: StringID("B")}},
	})
	require.NoError(t, Save(test, filepath.Join(dir, "test_doc.json"), filepath.Join(dir, "test.txt")))

	all, err := LoadAll(dir, "all")
	require.NoError(t, err)
	require.Equal(t, 2, all.Len())

	single, err := LoadAll(dir, "dev")
	require.NoError(t, err)
	require.Equal(t, 1, single.Len())
}
