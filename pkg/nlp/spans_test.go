package nlp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/crosslingua/xqa/pkg/corpus"
)

func TestSubstringDetector(t *testing.T) {
	e := &corpus.Example{
		Question: "where is the ash?",
		Documents: []corpus.Document{
			{Text: "ash fell on the ash field", ID: corpus.NumericID(0)},
			{Text: "no match here", ID: corpus.NumericID(1)},
			{Text: "ash again", ID: corpus.NumericID(2)},
		},
		Gold: []string{"ash", ""},
	}
	spans, err := SubstringDetector{}.Detect(e)
	if err != nil {
		t.Fatal(err)
	}
	want := []AnswerSpan{
		{DocIndex: 0, Start: 0, End: 3, Answer: "ash"},
		{DocIndex: 0, Start: 16, End: 19, Answer: "ash"},
		{DocIndex: 2, Start: 0, End: 3, Answer: "ash"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Detect() = %v, want %v", spans, want)
	}
}

func TestSubstringDetectorNoGold(t *testing.T) {
	e := &corpus.Example{
		Documents: []corpus.Document{{Text: "some text"}},
	}
	spans, err := SubstringDetector{}.Detect(e)
	if err != nil || len(spans) != 0 {
		t.Errorf("Detect() = %v, %v, want empty", spans, err)
	}
}

func spanFixture(n int) []*corpus.Example {
	examples := make([]*corpus.Example, n)
	for i := range examples {
		examples[i] = &corpus.Example{
			ID:        corpus.NumericID(int64(i)),
			Question:  fmt.Sprintf("q%d", i),
			Documents: []corpus.Document{{Text: fmt.Sprintf("answer %d is here", i)}},
			Gold:      []string{fmt.Sprintf("answer %d", i)},
		}
	}
	return examples
}

func TestComputeAnswerSpansPreservesOrder(t *testing.T) {
	examples := spanFixture(17)
	for _, workers := range []int{0, 1, 4, 100} {
		got, err := ComputeAnswerSpans(context.Background(), examples, SubstringDetector{}, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(got) != len(examples) {
			t.Fatalf("workers=%d: got %d results", workers, len(got))
		}
		for i, a := range got {
			if a.Example != examples[i] {
				t.Fatalf("workers=%d: result %d out of order", workers, i)
			}
			if len(a.Spans) != 1 || a.Spans[0].Answer != examples[i].Gold[0] {
				t.Fatalf("workers=%d: wrong spans at %d: %v", workers, i, a.Spans)
			}
		}
	}
}

func TestComputeAnswerSpansEmpty(t *testing.T) {
	got, err := ComputeAnswerSpans(context.Background(), nil, SubstringDetector{}, 4)
	if err != nil || got != nil {
		t.Errorf("got %v, %v, want nil, nil", got, err)
	}
}

type failingDetector struct{ failAt int64 }

func (d failingDetector) Detect(e *corpus.Example) ([]AnswerSpan, error) {
	if e.ID.Num == d.failAt {
		return nil, errors.New("tagger unavailable")
	}
	return nil, nil
}

func TestComputeAnswerSpansDetectorError(t *testing.T) {
	examples := spanFixture(20)
	_, err := ComputeAnswerSpans(context.Background(), examples, failingDetector{failAt: 13}, 4)
	if err == nil || err.Error() != "tagger unavailable" {
		t.Errorf("err = %v, want tagger unavailable", err)
	}
}

func TestComputeAnswerSpansCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ComputeAnswerSpans(ctx, spanFixture(50), SubstringDetector{}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
