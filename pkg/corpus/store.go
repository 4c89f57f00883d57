package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Corpus lines carry whole documents, so single lines can run to many
// megabytes for article-level contexts.
const maxLineBytes = 64 << 20

// docItem is one element of a doc-file line: one (question, document)
// pair carrying the composite [outer_id, doc_index] id.
type docItem struct {
	ID         docRef  `json:"id"`
	Question   string  `json:"question"`
	Document   string  `json:"document"`
	DocumentID OuterID `json:"document_id"`
}

// docRef is the composite id serialized as a two-element JSON array.
type docRef struct {
	Outer OuterID
	Index int
}

func (r docRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Outer, r.Index})
}

func (r *docRef) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("composite id must have 2 elements, got %d", len(parts))
	}
	if err := r.Outer.UnmarshalJSON(parts[0]); err != nil {
		return err
	}
	return json.Unmarshal(parts[1], &r.Index)
}

// goldLine is one gold-file line.
type goldLine struct {
	Answers  []string `json:"answers"`
	Question string   `json:"question"`
}

// Load reads the paired XQA files and returns the joined corpus. The doc
// file is read line by line; each line is a JSON array of docItems sharing
// one outer id, and a new Example begins whenever the outer id changes
// from the previous item. Gold answers are then joined by exact question
// string; a gold question with no loaded counterpart, or a loaded question
// with no gold line, aborts the load with ErrJoinMismatch.
func Load(docPath, goldPath string) (*Corpus, error) {
	docFile, err := os.Open(docPath)
	if err != nil {
		return nil, err
	}
	defer docFile.Close()

	c, err := loadDocs(docFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}

	goldFile, err := os.Open(goldPath)
	if err != nil {
		return nil, err
	}
	defer goldFile.Close()

	if err := attachGold(c, goldFile); err != nil {
		return nil, fmt.Errorf("%s: %w", goldPath, err)
	}
	return c, nil
}

// LoadDocs reads only the doc file, leaving gold answers empty. Useful
// when the corpus serves as a retrieval pool and answers are not needed.
func LoadDocs(docPath string) (*Corpus, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := loadDocs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	return c, nil
}

func loadDocs(r io.Reader) (*Corpus, error) {
	c := NewCorpus()
	var current *Example

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var items []docItem
		if err := json.Unmarshal(scanner.Bytes(), &items); err != nil {
			return nil, fmt.Errorf("doc line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		for _, item := range items {
			if current == nil || !item.ID.Outer.Equal(current.ID) {
				if current != nil {
					c.Add(current)
				}
				current = &Example{ID: item.ID.Outer}
			}
			// The question repeats on every element; the last write wins,
			// mirroring how the files were produced.
			current.Question = item.Question
			current.Documents = append(current.Documents, Document{
				Text: item.Document,
				ID:   item.DocumentID,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		c.Add(current)
	}
	return c, nil
}

func attachGold(c *Corpus, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	seen := make(map[string]struct{}, c.Len())
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var gold goldLine
		if err := json.Unmarshal(scanner.Bytes(), &gold); err != nil {
			return fmt.Errorf("gold line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		e := c.Get(gold.Question)
		if e == nil {
			return fmt.Errorf("gold line %d: %w: %q", lineNo, ErrJoinMismatch, gold.Question)
		}
		e.Gold = gold.Answers
		seen[gold.Question] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// The join must hold in both directions: a loaded question without a
	// gold line (a truncated gold file) is as corrupt as the reverse.
	if len(seen) != c.Len() {
		for _, e := range c.Examples() {
			if _, ok := seen[e.Question]; !ok {
				return fmt.Errorf("%w: no gold line for %q", ErrJoinMismatch, e.Question)
			}
		}
	}
	return nil
}

// LoadAll loads one corpus part from dir, or merges dev, test and (when
// present) train for part "all". Questions colliding across parts
// overwrite, last loaded part wins.
func LoadAll(dir, part string) (*Corpus, error) {
	if part != "all" {
		return Load(partPaths(dir, part))
	}
	parts := []string{"dev", "test"}
	if _, err := os.Stat(filepath.Join(dir, "train_doc.json")); err == nil {
		parts = append(parts, "train")
	}
	merged := NewCorpus()
	for _, p := range parts {
		c, err := Load(partPaths(dir, p))
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", p, err)
		}
		merged.Merge(c)
	}
	return merged, nil
}

func partPaths(dir, part string) (string, string) {
	return filepath.Join(dir, part+"_doc.json"), filepath.Join(dir, part+".txt")
}

// RedactMode selects how SaveRedacted blanks the question field.
type RedactMode int

const (
	// RedactEmpty replaces the question with an empty string.
	RedactEmpty RedactMode = iota
	// RedactDummy replaces every whitespace-separated token with "dummy",
	// preserving the question length in tokens.
	RedactDummy
	// RedactPlaceholder replaces the question with a fixed token sequence.
	RedactPlaceholder
)

const placeholderQuestion = "xxx xxx xxx xxx xxx"

func (m RedactMode) apply(question string) string {
	switch m {
	case RedactDummy:
		words := strings.Fields(question)
		for i := range words {
			words[i] = "dummy"
		}
		return strings.Join(words, " ")
	case RedactPlaceholder:
		return placeholderQuestion
	default:
		return ""
	}
}

// Save writes the corpus as the paired XQA files: one JSON-array line per
// example in the doc file and one JSON-object line per example in the
// gold file, in iteration order. The two files stay line-aligned 1:1 so
// the question join in Load keeps working.
func Save(c *Corpus, docPath, goldPath string) error {
	return save(c, docPath, goldPath, func(q string) string { return q })
}

// SaveRedacted writes the corpus with the question field blanked in both
// files, producing a blind corpus for document-only ablation baselines.
func SaveRedacted(c *Corpus, docPath, goldPath string, mode RedactMode) error {
	return save(c, docPath, goldPath, mode.apply)
}

func save(c *Corpus, docPath, goldPath string, question func(string) string) error {
	docFile, err := os.Create(docPath)
	if err != nil {
		return err
	}
	defer docFile.Close()
	goldFile, err := os.Create(goldPath)
	if err != nil {
		return err
	}
	defer goldFile.Close()

	docW := bufio.NewWriter(docFile)
	goldW := bufio.NewWriter(goldFile)
	docEnc := newLineEncoder(docW)
	goldEnc := newLineEncoder(goldW)

	for _, e := range c.Examples() {
		q := question(e.Question)
		line := make([]docItem, 0, len(e.Documents))
		for i, doc := range e.Documents {
			line = append(line, docItem{
				ID:         docRef{Outer: e.ID, Index: i},
				Question:   q,
				Document:   doc.Text,
				DocumentID: doc.ID,
			})
		}
		if err := docEnc.Encode(line); err != nil {
			return err
		}
		if err := goldEnc.Encode(goldLine{Answers: e.Gold, Question: q}); err != nil {
			return err
		}
	}
	if err := docW.Flush(); err != nil {
		return err
	}
	return goldW.Flush()
}

// newLineEncoder returns a JSON encoder that keeps multilingual text
// readable on disk instead of escaping it.
func newLineEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// FilterByIDs streams the paired files and writes only the documents
// whose outer id is in kept, then only the gold lines whose question
// survived the document filtering. Relative order is preserved. The gold
// side is joined by question string because gold lines carry no id.
func FilterByIDs(docPath, goldPath, outDocPath, outGoldPath string, kept map[OuterID]struct{}) error {
	keptQuestions := make(map[string]struct{})

	in, err := os.Open(docPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outDocPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	enc := newLineEncoder(w)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var items []docItem
		if err := json.Unmarshal(scanner.Bytes(), &items); err != nil {
			return fmt.Errorf("doc line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		retained := items[:0]
		for _, item := range items {
			if _, ok := kept[item.ID.Outer]; ok {
				retained = append(retained, item)
				keptQuestions[item.Question] = struct{}{}
			}
		}
		if len(retained) == 0 {
			continue
		}
		if err := enc.Encode(retained); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	goldIn, err := os.Open(goldPath)
	if err != nil {
		return err
	}
	defer goldIn.Close()
	goldOut, err := os.Create(outGoldPath)
	if err != nil {
		return err
	}
	defer goldOut.Close()

	gw := bufio.NewWriter(goldOut)
	scanner = bufio.NewScanner(goldIn)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	lineNo = 0
	for scanner.Scan() {
		lineNo++
		var gold goldLine
		if err := json.Unmarshal(scanner.Bytes(), &gold); err != nil {
			return fmt.Errorf("gold line %d: %w: %v", lineNo, ErrMalformedRecord, err)
		}
		if _, ok := keptQuestions[gold.Question]; !ok {
			continue
		}
		if _, err := gw.Write(scanner.Bytes()); err != nil {
			return err
		}
		if err := gw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return gw.Flush()
}

// SplitAnswerable partitions the corpus ids by whether a gold answer can
// be found in the candidate documents.
func SplitAnswerable(c *Corpus) (answerable, unanswerable []OuterID) {
	for _, e := range c.Examples() {
		if e.HasGoldInDocuments(0) {
			answerable = append(answerable, e.ID)
		} else {
			unanswerable = append(unanswerable, e.ID)
		}
	}
	return answerable, unanswerable
}

// IDSet collects ids into the set form FilterByIDs consumes.
func IDSet(ids []OuterID) map[OuterID]struct{} {
	set := make(map[OuterID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
