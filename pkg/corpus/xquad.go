package corpus

import "strings"

// ReadXQUAD converts an XQUAD corpus file in single-context mode: each
// question is paired with the paragraph that contains it.
func ReadXQUAD(path string) (*Corpus, error) {
	file, err := readSquadFile(path)
	if err != nil {
		return nil, err
	}
	c := NewCorpus()
	for _, article := range file.Data {
		for _, paragraph := range article.Paragraphs {
			for _, qa := range paragraph.QAs {
				e := &Example{
					ID:       StringID(qa.ID),
					Question: qa.Question,
					Documents: []Document{{
						Text: paragraph.Context,
						ID:   StringID(article.Title),
					}},
				}
				for _, answer := range qa.Answers {
					e.Gold = append(e.Gold, answer.Text)
				}
				c.Add(e)
			}
		}
	}
	return c, nil
}

// ReadXQUADContext converts an XQUAD corpus file in full-article mode:
// every question under a title shares one document holding all of that
// title's paragraphs joined by newlines. Needs two passes, since the full
// text is only known once every paragraph of the title has been read.
func ReadXQUADContext(path string) (*Corpus, error) {
	file, err := readSquadFile(path)
	if err != nil {
		return nil, err
	}
	c := NewCorpus()
	fullText := make(map[string]string, len(file.Data))

	for _, article := range file.Data {
		texts := make([]string, 0, len(article.Paragraphs))
		for _, paragraph := range article.Paragraphs {
			texts = append(texts, paragraph.Context)
			for _, qa := range paragraph.QAs {
				e := &Example{
					ID:        StringID(qa.ID),
					Question:  qa.Question,
					Documents: []Document{{ID: StringID(article.Title)}},
				}
				for _, answer := range qa.Answers {
					e.Gold = append(e.Gold, answer.Text)
				}
				c.Add(e)
			}
		}
		fullText[article.Title] = strings.Join(texts, "\n")
	}

	// Backfill the shared article text.
	for _, e := range c.Examples() {
		e.Documents[0].Text = fullText[e.Documents[0].ID.String()]
	}
	return c, nil
}
