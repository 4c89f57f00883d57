package nlp

import prose "github.com/jdkato/prose/v2"

// Sentences splits text into sentences. Tagging and entity extraction
// are disabled so splitting large documents stays cheap.
func Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}
	sents := doc.Sentences()
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Text
	}
	return out, nil
}
