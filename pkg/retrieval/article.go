// Package retrieval implements exact top-K lexical ranking over streamed
// document collections: a BM25 model with batch-local statistics, bounded
// incremental top-K result sets per query, and sources that stream
// articles from a Wikipedia XML dump or an XQA corpus file.
package retrieval

import (
	"errors"
	"fmt"

	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/nlp"
)

var (
	// ErrInsufficientCandidates reports a bulk ranking pool that yields
	// fewer than K scored documents for a query. The bulk variant assumes
	// pools large enough for a full top-K; violating that is a caller
	// contract error, not a recoverable condition.
	ErrInsufficientCandidates = errors.New("candidate pool smaller than requested top-K")
)

// Article is one scorable document. Terms is the tokenized form used for
// scoring, precomputed at stream time so batch scoring never re-tokenizes.
// An Article lives as long as its batch, unless it enters some query's
// top-K survivor set, which then owns it for the rest of the run.
type Article struct {
	Title string
	ID    corpus.OuterID
	Text  string
	Terms []string
}

func (a *Article) String() string {
	return fmt.Sprintf("Article: %s - %s with %d words", a.Title, a.ID, len(a.Terms))
}

// Query is a tokenized ranking query.
type Query struct {
	Text  string
	Terms []string
}

// NewQuery tokenizes text with the shared tokenizer. Documents must use
// the same tokenizer and language for scores to be meaningful.
func NewQuery(text, language string, tokenizer nlp.Tokenizer) Query {
	return Query{Text: text, Terms: tokenizer.Tokenize(text, language)}
}
