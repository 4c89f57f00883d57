package assembly

import (
	"strings"

	"github.com/crosslingua/xqa/pkg/corpus"
)

// Sentinels written by the article fetcher for questions it could not
// resolve to a real page.
const (
	placeholderQuestion = "<Query>"
	missingPageText     = "page does not exist"
	disambiguation      = "(disambiguation)"
)

// FilterStats reports the outcome of FilterWithoutDocument.
type FilterStats struct {
	Original  int
	Kept      int
	Discarded int
}

// FilterWithoutDocument drops examples that carry no usable article:
// placeholder questions, missing-page sentinel documents and
// disambiguation pages. The sentinel is expected upstream output, not an
// error.
func FilterWithoutDocument(c *corpus.Corpus) (*corpus.Corpus, FilterStats) {
	stats := FilterStats{Original: c.Len()}
	out := corpus.NewCorpus()
	for _, e := range c.Examples() {
		if e.Question == placeholderQuestion {
			continue
		}
		if len(e.Documents) > 0 {
			if e.Documents[0].Text == missingPageText {
				continue
			}
			if strings.HasSuffix(e.Documents[0].ID.String(), disambiguation) {
				continue
			}
		}
		out.Add(e)
	}
	stats.Kept = out.Len()
	stats.Discarded = stats.Original - stats.Kept
	return out, stats
}

// DropLeadingParagraph removes the first newline-delimited paragraph
// from every document in place. A single-paragraph document becomes
// empty, which is valid.
func DropLeadingParagraph(c *corpus.Corpus) {
	for _, e := range c.Examples() {
		for i := range e.Documents {
			text := e.Documents[i].Text
			if idx := strings.IndexByte(text, '\n'); idx >= 0 {
				e.Documents[i].Text = text[idx+1:]
			} else {
				e.Documents[i].Text = ""
			}
		}
	}
}

// PromoteTitleToAnswer appends each example's article title to its gold
// answers unless already present. Titles frequently are the answer in
// trivia-style questions.
func PromoteTitleToAnswer(c *corpus.Corpus) {
	for _, e := range c.Examples() {
		if len(e.Documents) == 0 {
			continue
		}
		title := e.Documents[0].ID.String()
		found := false
		for _, g := range e.Gold {
			if g == title {
				found = true
				break
			}
		}
		if !found {
			e.Gold = append(e.Gold, title)
		}
	}
}
