// Package assembly fuses a single-document base corpus with retrieved
// candidate documents into the final multi-document examples, and
// carries the surrounding cleanup steps (filtering, paragraph trimming,
// title promotion, sampling).
package assembly

import (
	"html"
	"strings"

	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/retrieval"
)

// Translation artifacts that survive html.UnescapeString because the
// entity text was padded with spaces somewhere upstream.
var spacedEntities = []string{"< i >", "< /i >", "& nbsp ;", "& amp ;"}

// NormalizeQuestionKey reduces a question to an ASCII-letters-only key.
// The base corpus and the ranked file are produced by independent tools
// whose whitespace and entity encoding drift apart; the collapsed key
// still joins them.
func NormalizeQuestionKey(text string) string {
	text = html.UnescapeString(text)
	for _, e := range spacedEntities {
		text = strings.ReplaceAll(text, e, "")
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range []byte(text) {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// AugmentStats summarizes one fusion run.
type AugmentStats struct {
	// Total is the number of base questions indexed.
	Total int
	// SameDoc counts retrieved candidates whose text equals the gold
	// document. Retrieval finding the gold page again is a quality
	// signal, so the duplicates are counted but never removed.
	SameDoc int
	// Short lists questions that ended up with fewer than the target
	// document count.
	Short []string
	// Missing lists ranked questions with no base entry (filtered out
	// earlier, or normalization failed to bridge the drift).
	Missing []string
}

// TargetDocs is the document count every assembled example is truncated to.
const TargetDocs = 10

// Augment joins each ranked result to its base example by normalized
// question key and emits the example with documents
// [gold] ++ candidates in ranker order, truncated to TargetDocs. Output
// follows ranked order. The base question string wins over the ranked
// one, which tends to carry extra whitespace.
func Augment(base *corpus.Corpus, ranked []retrieval.QueryResult) (*corpus.Corpus, AugmentStats) {
	byKey := make(map[string]*corpus.Example, base.Len())
	for _, e := range base.Examples() {
		byKey[NormalizeQuestionKey(e.Question)] = e
	}
	stats := AugmentStats{Total: base.Len()}

	out := corpus.NewCorpus()
	for _, r := range ranked {
		e, ok := byKey[NormalizeQuestionKey(r.Question)]
		if !ok {
			stats.Missing = append(stats.Missing, r.Question)
			continue
		}

		docs := make([]corpus.Document, 0, TargetDocs)
		docs = append(docs, e.Documents...)
		var gold string
		if len(e.Documents) > 0 {
			gold = e.Documents[0].Text
		}
		for _, d := range r.Documents {
			docs = append(docs, corpus.Document{Text: d.Text, ID: d.ID})
			if d.Text == gold {
				stats.SameDoc++
			}
		}
		if len(docs) < TargetDocs {
			stats.Short = append(stats.Short, e.Question)
		}
		if len(docs) > TargetDocs {
			docs = docs[:TargetDocs]
		}

		out.Add(&corpus.Example{
			ID:         e.ID,
			Question:   e.Question,
			Documents:  docs,
			Gold:       e.Gold,
			GoldStarts: e.GoldStarts,
		})
	}
	return out, stats
}
