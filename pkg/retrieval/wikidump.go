package retrieval

import (
	"bufio"
	"compress/bzip2"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/nlp"
)

// WikiDumpSource streams articles out of a MediaWiki pages-articles XML
// dump, optionally bzip2-compressed. Pages are decoded one at a time;
// the dump is never fully resident.
type WikiDumpSource struct {
	f         io.Closer
	dec       *xml.Decoder
	tokenizer nlp.Tokenizer
	language  string
}

type wikiPage struct {
	Title    string `xml:"title"`
	ID       int64  `xml:"id"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// OpenWikiDump opens the dump at path. Files ending in .bz2 are
// decompressed on the fly. Articles are tokenized with tok for language.
func OpenWikiDump(path, language string, tok nlp.Tokenizer) (*WikiDumpSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = bufio.NewReaderSize(f, 1<<20)
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(r)
	}
	return &WikiDumpSource{
		f:         f,
		dec:       xml.NewDecoder(r),
		tokenizer: tok,
		language:  language,
	}, nil
}

func (s *WikiDumpSource) Close() error {
	return s.f.Close()
}

// Next returns the next page with non-empty text, io.EOF at the end of
// the dump. Redirects and other empty-text pages are skipped. The page
// id is the page-level id, not the revision id.
func (s *WikiDumpSource) Next() (*Article, error) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read dump: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}
		var page wikiPage
		if err := s.dec.DecodeElement(&page, &start); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		if page.Revision.Text == "" {
			continue
		}
		return &Article{
			Title: page.Title,
			ID:    corpus.NumericID(page.ID),
			Text:  page.Revision.Text,
			Terms: s.tokenizer.Tokenize(page.Revision.Text, s.language),
		}, nil
	}
}

// CorpusSource streams the per-question documents of a loaded corpus as
// ranking candidates, in corpus order. The document id doubles as the
// title since the two-file format carries no separate one.
type CorpusSource struct {
	examples  []*corpus.Example
	pos       int
	tokenizer nlp.Tokenizer
	language  string
}

// NewCorpusSource builds a source over every document of every example
// in c.
func NewCorpusSource(c *corpus.Corpus, language string, tok nlp.Tokenizer) *CorpusSource {
	return &CorpusSource{
		examples:  c.Examples(),
		tokenizer: tok,
		language:  language,
	}
}

func (s *CorpusSource) Next() (*Article, error) {
	for s.pos < len(s.examples) {
		e := s.examples[s.pos]
		s.pos++
		if len(e.Documents) == 0 {
			continue
		}
		d := e.Documents[0]
		return &Article{
			Title: d.ID.String(),
			ID:    d.ID,
			Text:  d.Text,
			Terms: s.tokenizer.Tokenize(d.Text, s.language),
		}, nil
	}
	return nil, io.EOF
}

// LoadQueries reads questions from a gold answers file (one JSON object
// per line with a "question" field) and tokenizes them for ranking.
func LoadQueries(path, language string, tok nlp.Tokenizer) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), maxResultLineBytes)
	var out []Query
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec struct {
			Question string `json:"question"`
		}
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("%w: queries line %d: %v", corpus.ErrMalformedRecord, line, err)
		}
		out = append(out, NewQuery(rec.Question, language, tok))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
