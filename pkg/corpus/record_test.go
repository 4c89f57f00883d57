package corpus

import (
	"encoding/json"
	"testing"
)

func TestOuterIDJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want OuterID
	}{
		{"17", NumericID(17)},
		{"0", NumericID(0)},
		{`"f0c23e1f"`, StringID("f0c23e1f")},
		{`"Mount Merapi"`, StringID("Mount Merapi")},
	}
	for _, tt := range tests {
		var id OuterID
		if err := json.Unmarshal([]byte(tt.raw), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if !id.Equal(tt.want) {
			t.Errorf("unmarshal %s = %+v, want %+v", tt.raw, id, tt.want)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatal(err)
		}
		// Numeric ids stay numbers, string ids stay strings.
		if string(out) != tt.raw {
			t.Errorf("marshal %+v = %s, want %s", id, out, tt.raw)
		}
	}
}

func TestOuterIDJSONInvalid(t *testing.T) {
	var id OuterID
	if err := json.Unmarshal([]byte(`1.5`), &id); err == nil {
		t.Error("fractional id accepted")
	}
	if err := json.Unmarshal([]byte(`null`), &id); err == nil {
		t.Error("null id accepted")
	}
}

func TestHasGoldInDocuments(t *testing.T) {
	e := &Example{
		Question: "q",
		Documents: []Document{
			{Text: "nothing relevant"},
			{Text: "the capital is Jakarta indeed"},
		},
		Gold: []string{"Jakarta"},
	}

	if !e.HasGoldInDocuments(0) {
		t.Error("limit 0 (all docs) should find the answer")
	}
	if e.HasGoldInDocuments(1) {
		t.Error("limit 1 should not reach the second document")
	}
	if !e.HasGoldInDocuments(2) {
		t.Error("limit 2 should find the answer")
	}
	if !e.HasGoldInDocuments(100) {
		t.Error("limit beyond len(docs) means all docs")
	}

	// Case-sensitive, no normalization.
	e.Gold = []string{"jakarta"}
	if e.HasGoldInDocuments(0) {
		t.Error("lowercase answer must not match")
	}

	e.Gold = nil
	if e.HasGoldInDocuments(0) {
		t.Error("empty gold can never match")
	}
}

func TestCorpusOrderAndReplace(t *testing.T) {
	c := NewCorpus()
	c.Add(&Example{ID: NumericID(0), Question: "first"})
	c.Add(&Example{ID: NumericID(1), Question: "second"})
	c.Add(&Example{ID: NumericID(2), Question: "third"})

	// Replacing keeps the original position.
	c.Add(&Example{ID: NumericID(9), Question: "second", Gold: []string{"x"}})

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	qs := c.Questions()
	want := []string{"first", "second", "third"}
	for i := range want {
		if qs[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, qs[i], want[i])
		}
	}
	if got := c.Get("second"); !got.ID.Equal(NumericID(9)) {
		t.Errorf("replacement not applied: %+v", got)
	}
	if c.Get("absent") != nil {
		t.Error("Get on missing question should be nil")
	}
}

func TestCorpusMergeLastWins(t *testing.T) {
	a := NewCorpus()
	a.Add(&Example{ID: NumericID(0), Question: "shared", Gold: []string{"old"}})
	a.Add(&Example{ID: NumericID(1), Question: "only-a"})

	b := NewCorpus()
	b.Add(&Example{ID: NumericID(2), Question: "shared", Gold: []string{"new"}})
	b.Add(&Example{ID: NumericID(3), Question: "only-b"})

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if got := a.Get("shared").Gold[0]; got != "new" {
		t.Errorf("merge collision kept %q, want last merged", got)
	}
}
