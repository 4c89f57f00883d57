package retrieval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crosslingua/xqa/pkg/corpus"
)

// RankedDocument is one retrieved document with its score.
type RankedDocument struct {
	Score float64       `json:"score"`
	Title string        `json:"title"`
	Text  string        `json:"text"`
	ID    corpus.OuterID `json:"id"`
}

// QueryResult holds the ranked documents for one question, best first.
type QueryResult struct {
	Question  string           `json:"question"`
	Documents []RankedDocument `json:"documents"`
}

// WriteResults writes one JSON object per line, one line per query, in
// query order.
func WriteResults(w io.Writer, results []QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode result %d: %w", i, err)
		}
	}
	return nil
}

// WriteResultsFile writes results to path, creating or truncating it.
func WriteResultsFile(path string, results []QueryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteResults(w, results); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ReadResults reads a ranked results file written by WriteResults.
func ReadResults(r io.Reader) ([]QueryResult, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxResultLineBytes)
	var out []QueryResult
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var qr QueryResult
		if err := json.Unmarshal(sc.Bytes(), &qr); err != nil {
			return nil, fmt.Errorf("results line %d: %w", line, err)
		}
		out = append(out, qr)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadResultsFile reads the ranked results stored at path.
func ReadResultsFile(path string) ([]QueryResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadResults(f)
}

// Ranked lines carry full article texts; Wikipedia articles run long.
const maxResultLineBytes = 64 << 20
