package assembly

import "github.com/crosslingua/xqa/pkg/corpus"

// CheckReport summarizes corpus quality checks.
type CheckReport struct {
	Total int
	// AnswerNotInDoc counts examples where no gold answer occurs as a
	// substring of the first document.
	AnswerNotInDoc int
	// AnswerNotInTitle counts examples whose first document title is
	// not among the gold answers.
	AnswerNotInTitle int
}

// Check scans a corpus and reports how often gold answers fail to appear
// in the paired document or title. High miss rates point to a broken
// join or bad upstream extraction.
func Check(c *corpus.Corpus) CheckReport {
	r := CheckReport{Total: c.Len()}
	for _, e := range c.Examples() {
		if !e.HasGoldInDocuments(1) {
			r.AnswerNotInDoc++
		}
		if len(e.Documents) == 0 {
			r.AnswerNotInTitle++
			continue
		}
		title := e.Documents[0].ID.String()
		inTitle := false
		for _, g := range e.Gold {
			if g == title {
				inTitle = true
				break
			}
		}
		if !inTitle {
			r.AnswerNotInTitle++
		}
	}
	return r
}
