package nlp

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// SpanKind distinguishes the two annotation types baselines care about.
type SpanKind int

const (
	KindNoun SpanKind = iota
	KindEntity
)

// Span is one annotated token or entity with its character position in
// the analyzed text.
type Span struct {
	Text  string
	Start int
	End   int
	Kind  SpanKind
	Label string // POS tag or entity label
}

// Analyzer extracts nouns and named entities with positions. The
// heuristic answer baselines are defined purely against this interface.
type Analyzer interface {
	Analyze(text string) ([]Span, error)
}

// ProseAnalyzer backs Analyzer with the prose tagger. Construction is
// per-call-site: the underlying models are stateless after load.
type ProseAnalyzer struct{}

func NewProseAnalyzer() *ProseAnalyzer { return &ProseAnalyzer{} }

// Analyze runs tagging and entity extraction in one pass. Token offsets
// are recovered by forward search, so repeated tokens resolve to distinct
// positions in order of appearance.
func (a *ProseAnalyzer) Analyze(text string) ([]Span, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	var spans []Span
	cursor := 0
	for _, token := range doc.Tokens() {
		idx := strings.Index(text[cursor:], token.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		cursor = start + len(token.Text)
		if !isNounTag(token.Tag) {
			continue
		}
		spans = append(spans, Span{
			Text:  token.Text,
			Start: start,
			End:   cursor,
			Kind:  KindNoun,
			Label: token.Tag,
		})
	}

	cursor = 0
	for _, entity := range doc.Entities() {
		idx := strings.Index(text[cursor:], entity.Text)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		cursor = start + len(entity.Text)
		spans = append(spans, Span{
			Text:  entity.Text,
			Start: start,
			End:   cursor,
			Kind:  KindEntity,
			Label: entity.Label,
		})
	}
	return spans, nil
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// Nouns filters the noun spans of an analysis.
func Nouns(spans []Span) []Span {
	return filterKind(spans, KindNoun)
}

// Entities filters the entity spans of an analysis.
func Entities(spans []Span) []Span {
	return filterKind(spans, KindEntity)
}

func filterKind(spans []Span, kind SpanKind) []Span {
	var out []Span
	for _, s := range spans {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
