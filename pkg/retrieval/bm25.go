package retrieval

import "math"

// Okapi BM25 parameters, matching the reference implementation the
// original corpora were built with.
const (
	defaultK1      = 1.5
	defaultB       = 0.75
	defaultEpsilon = 0.25
)

// BM25 is an Okapi BM25 model over one document collection. Statistics
// (document frequencies, average length) cover exactly the documents the
// model was built from; in the streaming ranker this means batch-local
// statistics, a deliberate memory/precision trade-off controlled by the
// batch size.
type BM25 struct {
	k1      float64
	b       float64
	epsilon float64

	corpusSize int
	avgDocLen  float64
	docLens    []int
	termFreqs  []map[string]int
	idf        map[string]float64
}

// NewBM25 builds a model over the tokenized documents.
func NewBM25(docs [][]string) *BM25 {
	m := &BM25{
		k1:         defaultK1,
		b:          defaultB,
		epsilon:    defaultEpsilon,
		corpusSize: len(docs),
		docLens:    make([]int, len(docs)),
		termFreqs:  make([]map[string]int, len(docs)),
	}

	total := 0
	docFreq := make(map[string]int)
	for i, doc := range docs {
		m.docLens[i] = len(doc)
		total += len(doc)

		freqs := make(map[string]int, len(doc))
		for _, term := range doc {
			freqs[term]++
		}
		m.termFreqs[i] = freqs
		for term := range freqs {
			docFreq[term]++
		}
	}
	if m.corpusSize > 0 {
		m.avgDocLen = float64(total) / float64(m.corpusSize)
	}
	m.computeIDF(docFreq)
	return m
}

// computeIDF uses the probabilistic idf, which can go negative for terms
// in more than half the documents. Negative values are floored to
// epsilon times the average idf so common terms still contribute a small
// positive weight.
func (m *BM25) computeIDF(docFreq map[string]int) {
	m.idf = make(map[string]float64, len(docFreq))
	sum := 0.0
	var negative []string
	for term, df := range docFreq {
		idf := math.Log(float64(m.corpusSize)-float64(df)+0.5) - math.Log(float64(df)+0.5)
		m.idf[term] = idf
		sum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(m.idf) == 0 {
		return
	}
	avgIDF := sum / float64(len(m.idf))
	for _, term := range negative {
		m.idf[term] = m.epsilon * avgIDF
	}
}

// Scores returns the BM25 score of every document against the query, in
// document order.
func (m *BM25) Scores(query []string) []float64 {
	scores := make([]float64, m.corpusSize)
	if m.avgDocLen == 0 {
		return scores
	}
	for _, term := range query {
		idf, ok := m.idf[term]
		if !ok {
			continue
		}
		for i, freqs := range m.termFreqs {
			f := float64(freqs[term])
			if f == 0 {
				continue
			}
			norm := 1 - m.b + m.b*float64(m.docLens[i])/m.avgDocLen
			scores[i] += idf * f * (m.k1 + 1) / (f + m.k1*norm)
		}
	}
	return scores
}
