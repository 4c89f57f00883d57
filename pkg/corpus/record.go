// Package corpus implements the XQA corpus representation: the in-memory
// QA example model, the two-file on-disk format (documents + gold answers)
// and the adapters that convert MLQA, XQUAD and TyDi QA sources into it.
package corpus

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OuterID identifies a question across the paired XQA files. Generated
// corpora use monotonic integers, while MLQA carries its original hex
// string ids. Both forms must survive a save/load round-trip verbatim,
// so the distinction is kept instead of collapsing everything to int64.
type OuterID struct {
	Num int64
	Str string
}

// NumericID returns an integer outer id.
func NumericID(n int64) OuterID { return OuterID{Num: n} }

// StringID returns a string outer id (e.g. an MLQA question id).
func StringID(s string) OuterID { return OuterID{Str: s} }

// IsString reports whether the id was sourced from a JSON string.
func (id OuterID) IsString() bool { return id.Str != "" }

func (id OuterID) String() string {
	if id.IsString() {
		return id.Str
	}
	return strconv.FormatInt(id.Num, 10)
}

// Equal compares ids in their canonical form.
func (id OuterID) Equal(other OuterID) bool {
	return id.Str == other.Str && id.Num == other.Num
}

func (id OuterID) MarshalJSON() ([]byte, error) {
	if id.IsString() {
		return json.Marshal(id.Str)
	}
	return json.Marshal(id.Num)
}

func (id *OuterID) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return fmt.Errorf("empty outer id")
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &id.Str)
	}
	// Some sources emit float-shaped ids; parse through json.Number to
	// keep 64-bit ids exact.
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("outer id %s: %w", data, err)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("outer id %s: %w", data, err)
	}
	id.Num = v
	return nil
}

// Document is one candidate document attached to a question. ID is the
// document identity (an article title for converted corpora, a numeric
// page id for retrieved Wikipedia articles). Placeholder sentinel text
// such as "page does not exist" is a valid document.
type Document struct {
	Text string
	ID   OuterID
}

// Example is one QA example: a question, its ordered candidate documents
// (index 0 is the primary/gold-linked document) and the accepted gold
// answer strings. Empty Gold means "no gold extracted", not "no answer
// exists".
type Example struct {
	ID        OuterID
	Question  string
	Documents []Document
	Gold      []string

	// GoldStarts holds MLQA answer_start character offsets aligned with
	// Gold. Preserved verbatim for the MLQA inverse writer; empty for
	// every other source.
	GoldStarts []int
}

// HasGoldInDocuments reports whether any gold answer occurs as a literal
// substring of one of the first n documents (all documents when n <= 0).
// The search is case-sensitive with no normalization.
func (e *Example) HasGoldInDocuments(n int) bool {
	docs := e.Documents
	if n > 0 && n < len(docs) {
		docs = docs[:n]
	}
	for _, answer := range e.Gold {
		for _, doc := range docs {
			if strings.Contains(doc.Text, answer) {
				return true
			}
		}
	}
	return false
}

// Corpus is an insertion-ordered mapping from question text to Example.
// The question string is the aggregation key and the join key between the
// two on-disk files, so iteration order must be stable: save order equals
// load order.
type Corpus struct {
	byQuestion map[string]*Example
	order      []string
}

func NewCorpus() *Corpus {
	return &Corpus{byQuestion: make(map[string]*Example)}
}

// Add inserts or replaces the example for its question. Replacing keeps
// the question's original position, matching insertion-ordered map
// semantics that downstream files were produced with.
func (c *Corpus) Add(e *Example) {
	if _, ok := c.byQuestion[e.Question]; !ok {
		c.order = append(c.order, e.Question)
	}
	c.byQuestion[e.Question] = e
}

// Get returns the example for a question, or nil.
func (c *Corpus) Get(question string) *Example {
	return c.byQuestion[question]
}

func (c *Corpus) Len() int { return len(c.order) }

// Questions returns the question keys in insertion order.
func (c *Corpus) Questions() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Examples returns the examples in insertion order.
func (c *Corpus) Examples() []*Example {
	out := make([]*Example, 0, len(c.order))
	for _, q := range c.order {
		out = append(out, c.byQuestion[q])
	}
	return out
}

// Merge copies every example of other into c. Questions colliding across
// corpora overwrite: last merged wins. This is a documented sharp edge of
// part="all" loading, not a guaranteed union.
func (c *Corpus) Merge(other *Corpus) {
	for _, e := range other.Examples() {
		c.Add(e)
	}
}
