package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// MLQA and XQUAD share the nested SQuAD envelope:
// data[] -> title + paragraphs[] -> context + qas[] -> answers[].
type squadFile struct {
	Version json.RawMessage `json:"version,omitempty"`
	Data    []squadArticle  `json:"data"`
}

type squadArticle struct {
	Title      string           `json:"title"`
	Paragraphs []squadParagraph `json:"paragraphs"`
}

type squadParagraph struct {
	Context string    `json:"context"`
	QAs     []squadQA `json:"qas"`
}

type squadQA struct {
	Question string        `json:"question"`
	ID       string        `json:"id"`
	Answers  []squadAnswer `json:"answers"`
}

type squadAnswer struct {
	Text        string `json:"text"`
	AnswerStart int    `json:"answer_start"`
}

func readSquadFile(path string) (*squadFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file squadFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedRecord, err)
	}
	return &file, nil
}

// ReadMLQA converts an MLQA corpus file. Every question gets exactly one
// context document, identified by the article title. Answer character
// offsets are kept verbatim so WriteMLQA can reproduce the source layout.
func ReadMLQA(path string) (*Corpus, error) {
	file, err := readSquadFile(path)
	if err != nil {
		return nil, err
	}
	c := NewCorpus()
	for _, article := range file.Data {
		for _, paragraph := range article.Paragraphs {
			for _, qa := range paragraph.QAs {
				e := &Example{
					ID:       StringID(qa.ID),
					Question: qa.Question,
					Documents: []Document{{
						Text: paragraph.Context,
						ID:   StringID(article.Title),
					}},
				}
				for _, answer := range qa.Answers {
					e.Gold = append(e.Gold, answer.Text)
					e.GoldStarts = append(e.GoldStarts, answer.AnswerStart)
				}
				c.Add(e)
			}
		}
	}
	return c, nil
}

// WriteMLQA writes a corpus back into the nested MLQA layout. Consecutive
// examples sharing identical context text merge into one paragraph's qas
// list; a new title group starts whenever the primary document id changes.
func WriteMLQA(c *Corpus, path string) error {
	out := squadFile{Version: json.RawMessage("1.0")}

	var (
		currentTitle string
		haveTitle    bool
		paragraphs   []squadParagraph
		lastContext  string
	)
	flushTitle := func() {
		if !haveTitle {
			return
		}
		out.Data = append(out.Data, squadArticle{Title: currentTitle, Paragraphs: paragraphs})
		paragraphs = nil
		lastContext = ""
	}

	for _, e := range c.Examples() {
		if len(e.Documents) == 0 {
			return fmt.Errorf("example %s has no documents", e.ID)
		}
		title := e.Documents[0].ID.String()
		if !haveTitle || title != currentTitle {
			flushTitle()
			currentTitle = title
			haveTitle = true
		}

		qa := squadQA{Question: e.Question, ID: e.ID.String()}
		for i, answer := range e.Gold {
			start := -1
			if i < len(e.GoldStarts) {
				start = e.GoldStarts[i]
			}
			qa.Answers = append(qa.Answers, squadAnswer{Text: answer, AnswerStart: start})
		}

		context := e.Documents[0].Text
		if len(paragraphs) > 0 && context == lastContext {
			last := &paragraphs[len(paragraphs)-1]
			last.QAs = append(last.QAs, qa)
		} else {
			paragraphs = append(paragraphs, squadParagraph{Context: context, QAs: []squadQA{qa}})
			lastContext = context
		}
	}
	flushTitle()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := newLineEncoder(f)
	return enc.Encode(out)
}
