package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// NullAnswer is the sentinel gold value written for TyDi annotations
// without a minimal answer span.
const NullAnswer = "NULL"

type tydiRecord struct {
	DocumentPlaintext string `json:"document_plaintext"`
	ExampleID         int64  `json:"example_id"`
	QuestionText      string `json:"question_text"`
	DocumentTitle     string `json:"document_title"`
	Language          string `json:"language"`
	Annotations       []struct {
		MinimalAnswer struct {
			PlaintextStartByte int `json:"plaintext_start_byte"`
			PlaintextEndByte   int `json:"plaintext_end_byte"`
		} `json:"minimal_answer"`
	} `json:"annotations"`
}

// ReadTyDi converts a gzip-compressed TyDi QA jsonl file. Answer spans
// are byte offsets into the UTF-8 plaintext; a span that slices a
// multi-byte character is discarded as unusable rather than failing the
// conversion, and absent spans contribute the literal "NULL" answer.
// When language is non-empty, records in other languages are dropped.
func ReadTyDi(path, language string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer zr.Close()

	c := NewCorpus()
	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var record tydiRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		if language != "" && record.Language != language {
			continue
		}

		text := []byte(record.DocumentPlaintext)
		var gold []string
		for _, annotation := range record.Annotations {
			start := annotation.MinimalAnswer.PlaintextStartByte
			end := annotation.MinimalAnswer.PlaintextEndByte
			if start < 0 || end < 0 {
				gold = append(gold, NullAnswer)
				continue
			}
			answer, ok := decodeSpan(text, start, end)
			if !ok {
				continue
			}
			gold = append(gold, answer)
		}

		c.Add(&Example{
			ID:       NumericID(record.ExampleID),
			Question: record.QuestionText,
			Documents: []Document{{
				Text: record.DocumentPlaintext,
				ID:   StringID(record.DocumentTitle),
			}},
			Gold: gold,
		})
	}
	return c, scanner.Err()
}

// decodeSpan slices [start:end) from the UTF-8 document bytes. Out of
// range offsets and spans that break a multi-byte character report !ok.
func decodeSpan(text []byte, start, end int) (string, bool) {
	if start > end || end > len(text) {
		return "", false
	}
	span := text[start:end]
	if !utf8.Valid(span) {
		return "", false
	}
	return string(span), true
}
