// Package baseline provides heuristic answer predictors and the
// SQuAD-style scoring used to sanity-check a corpus: a usable corpus
// should let even trivial baselines score above zero, and a strong
// baseline score reveals exploitable artifacts.
package baseline

import (
	"strings"
	"unicode"
)

// normalizeAnswer lowercases, strips punctuation, drops english articles
// and collapses whitespace. Matches the TriviaQA evaluation script so
// scores are comparable to published numbers.
func normalizeAnswer(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if f == "a" || f == "an" || f == "the" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// ExactMatch returns 1 when prediction and gold are equal after
// normalization, else 0.
func ExactMatch(prediction, gold string) float64 {
	if normalizeAnswer(prediction) == normalizeAnswer(gold) {
		return 1
	}
	return 0
}

// F1 is the token-level F1 between normalized prediction and gold.
func F1(prediction, gold string) float64 {
	predTokens := strings.Fields(normalizeAnswer(prediction))
	goldTokens := strings.Fields(normalizeAnswer(gold))
	if len(predTokens) == 0 || len(goldTokens) == 0 {
		return 0
	}

	goldCounts := make(map[string]int, len(goldTokens))
	for _, t := range goldTokens {
		goldCounts[t]++
	}
	common := 0
	for _, t := range predTokens {
		if goldCounts[t] > 0 {
			goldCounts[t]--
			common++
		}
	}
	if common == 0 {
		return 0
	}
	precision := float64(common) / float64(len(predTokens))
	recall := float64(common) / float64(len(goldTokens))
	return 2 * precision * recall / (precision + recall)
}

// Metric scores a prediction against one ground truth.
type Metric func(prediction, gold string) float64

// MetricMax scores the prediction against every ground truth and keeps
// the best, the standard multi-reference aggregation.
func MetricMax(m Metric, prediction string, golds []string) float64 {
	best := 0.0
	for _, g := range golds {
		if score := m(prediction, g); score > best {
			best = score
		}
	}
	return best
}
