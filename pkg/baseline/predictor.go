package baseline

import (
	"math/rand"
	"strings"

	"github.com/crosslingua/xqa/pkg/nlp"
)

// Predictor guesses an answer from a question's candidate documents.
// An empty prediction is valid and scores zero.
type Predictor interface {
	Name() string
	Predict(question string, documents []string) (string, error)
}

// MostFrequentNoun answers with the noun occurring most often across
// the documents.
type MostFrequentNoun struct {
	Analyzer nlp.Analyzer
}

func (p MostFrequentNoun) Name() string { return "noun" }

func (p MostFrequentNoun) Predict(question string, documents []string) (string, error) {
	spans, err := p.Analyzer.Analyze(strings.Join(documents, ""))
	if err != nil {
		return "", err
	}
	return mostFrequent(nlp.Nouns(spans)), nil
}

// MostFrequentEntity answers with the named entity occurring most often
// across the documents.
type MostFrequentEntity struct {
	Analyzer nlp.Analyzer
}

func (p MostFrequentEntity) Name() string { return "ne" }

func (p MostFrequentEntity) Predict(question string, documents []string) (string, error) {
	spans, err := p.Analyzer.Analyze(strings.Join(documents, ""))
	if err != nil {
		return "", err
	}
	return mostFrequent(nlp.Entities(spans)), nil
}

// RandomEntity answers with a random named entity occurrence. More
// frequent entities are drawn proportionally more often.
type RandomEntity struct {
	Analyzer nlp.Analyzer
	Rand     *rand.Rand
}

func (p RandomEntity) Name() string { return "random-ne" }

func (p RandomEntity) Predict(question string, documents []string) (string, error) {
	spans, err := p.Analyzer.Analyze(strings.Join(documents, ""))
	if err != nil {
		return "", err
	}
	ents := nlp.Entities(spans)
	if len(ents) == 0 {
		return "", nil
	}
	return ents[p.Rand.Intn(len(ents))].Text, nil
}

// FirstEntity answers with the first named entity of the first document.
type FirstEntity struct {
	Analyzer nlp.Analyzer
}

func (p FirstEntity) Name() string { return "first-ne" }

func (p FirstEntity) Predict(question string, documents []string) (string, error) {
	if len(documents) == 0 {
		return "", nil
	}
	spans, err := p.Analyzer.Analyze(documents[0])
	if err != nil {
		return "", err
	}
	ents := nlp.Entities(spans)
	if len(ents) == 0 {
		return "", nil
	}
	return ents[0].Text, nil
}

// OverlapEntity finds the sentence sharing the most words with the
// question and answers with a random entity from it that does not
// already occur in the question.
type OverlapEntity struct {
	Analyzer  nlp.Analyzer
	Tokenizer nlp.Tokenizer
	Rand      *rand.Rand
}

func (p OverlapEntity) Name() string { return "overlap-ne" }

func (p OverlapEntity) Predict(question string, documents []string) (string, error) {
	best, err := bestOverlapSentence(question, documents, p.Tokenizer)
	if err != nil {
		return "", err
	}
	spans, err := p.Analyzer.Analyze(best)
	if err != nil {
		return "", err
	}
	return pickNotInQuestion(nlp.Entities(spans), question, p.Rand), nil
}

// OverlapNoun is OverlapEntity over nouns instead of entities.
type OverlapNoun struct {
	Analyzer  nlp.Analyzer
	Tokenizer nlp.Tokenizer
	Rand      *rand.Rand
}

func (p OverlapNoun) Name() string { return "overlap-noun" }

func (p OverlapNoun) Predict(question string, documents []string) (string, error) {
	best, err := bestOverlapSentence(question, documents, p.Tokenizer)
	if err != nil {
		return "", err
	}
	spans, err := p.Analyzer.Analyze(best)
	if err != nil {
		return "", err
	}
	return pickNotInQuestion(nlp.Nouns(spans), question, p.Rand), nil
}

// mostFrequent returns the text with the highest occurrence count,
// first-seen winning ties.
func mostFrequent(spans []nlp.Span) string {
	counts := make(map[string]int, len(spans))
	var order []string
	for _, s := range spans {
		if counts[s.Text] == 0 {
			order = append(order, s.Text)
		}
		counts[s.Text]++
	}
	best := ""
	bestCount := 0
	for _, text := range order {
		if counts[text] > bestCount {
			best = text
			bestCount = counts[text]
		}
	}
	return best
}

func bestOverlapSentence(question string, documents []string, tok nlp.Tokenizer) (string, error) {
	questionWords := make(map[string]struct{})
	for _, w := range tok.Tokenize(question, "") {
		questionWords[w] = struct{}{}
	}

	best := ""
	bestOverlap := 0
	for _, doc := range documents {
		sentences, err := nlp.Sentences(doc)
		if err != nil {
			return "", err
		}
		for _, sentence := range sentences {
			overlap := 0
			seen := make(map[string]struct{})
			for _, w := range tok.Tokenize(sentence, "") {
				if _, dup := seen[w]; dup {
					continue
				}
				seen[w] = struct{}{}
				if _, ok := questionWords[w]; ok {
					overlap++
				}
			}
			if overlap > bestOverlap {
				bestOverlap = overlap
				best = sentence
			}
		}
	}
	return best, nil
}

func pickNotInQuestion(spans []nlp.Span, question string, rng *rand.Rand) string {
	var candidates []string
	for _, s := range spans {
		if !strings.Contains(question, s.Text) {
			candidates = append(candidates, s.Text)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rng.Intn(len(candidates))]
}
