// Package nlp holds the language-processing collaborators of the
// pipeline: word tokenization, noun/entity analysis and parallel answer
// span detection. Retrieval and baselines consume these through small
// interfaces so taggers can be swapped without touching ranking code.
package nlp

import (
	"regexp"
	"strings"
)

// Tokenizer turns text into an ordered token sequence. Implementations
// must be deterministic: queries and documents are tokenized with the
// same tokenizer, and ranking scores are only meaningful when both sides
// agree on token boundaries.
type Tokenizer interface {
	Tokenize(text, language string) []string
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(text, language string) []string

func (f TokenizerFunc) Tokenize(text, language string) []string {
	return f(text, language)
}

var wordSplitRE = regexp.MustCompile(`[^\pL\pN]+`)

// WordTokenizer splits on any run of non-letter, non-digit runes. It is
// script-agnostic, which keeps one tokenizer usable across the corpus
// languages; the language argument only controls case folding.
type WordTokenizer struct {
	// Lowercase folds tokens for languages where case carries no
	// lexical signal. Off by default: German noun capitalization is
	// load-bearing for substring answer checks.
	Lowercase bool
}

func (t WordTokenizer) Tokenize(text, language string) []string {
	if t.Lowercase {
		text = strings.ToLower(text)
	}
	parts := wordSplitRE.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
