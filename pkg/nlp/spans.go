package nlp

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crosslingua/xqa/pkg/corpus"
)

// AnswerSpan locates a gold answer occurrence inside one candidate
// document of an example.
type AnswerSpan struct {
	DocIndex int
	Start    int
	End      int
	Answer   string
}

// SpanDetector finds answer occurrences for one example. Implementations
// must be stateless across calls: detection runs on independent example
// slices in parallel.
type SpanDetector interface {
	Detect(e *corpus.Example) ([]AnswerSpan, error)
}

// SubstringDetector is the naive detector: every literal occurrence of
// every gold answer, per document, in document order.
type SubstringDetector struct{}

func (SubstringDetector) Detect(e *corpus.Example) ([]AnswerSpan, error) {
	var spans []AnswerSpan
	for docIdx, doc := range e.Documents {
		for _, answer := range e.Gold {
			if answer == "" {
				continue
			}
			for from := 0; ; {
				idx := indexFrom(doc.Text, answer, from)
				if idx < 0 {
					break
				}
				spans = append(spans, AnswerSpan{
					DocIndex: docIdx,
					Start:    idx,
					End:      idx + len(answer),
					Answer:   answer,
				})
				from = idx + len(answer)
			}
		}
	}
	return spans, nil
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.Index(s[from:], substr)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// Annotated pairs an example with its detected spans.
type Annotated struct {
	Example *corpus.Example
	Spans   []AnswerSpan
}

// ComputeAnswerSpans runs the detector over the examples with the given
// worker count. Each worker owns a contiguous slice and writes results
// only at its own indices, so no state is shared; the merged result
// preserves input order.
func ComputeAnswerSpans(ctx context.Context, examples []*corpus.Example, detector SpanDetector, workers int) ([]Annotated, error) {
	if len(examples) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(examples) {
		workers = len(examples)
	}
	results := make([]Annotated, len(examples))

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(examples) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(examples) {
			hi = len(examples)
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				spans, err := detector.Detect(examples[i])
				if err != nil {
					return err
				}
				results[i] = Annotated{Example: examples[i], Spans: spans}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
