package retrieval

import "sort"

// RankedResult is one (score, article) pair of a query's result set.
type RankedResult struct {
	Score   float64
	Article *Article
}

// ResultSet maintains the exact top-K documents seen so far for one
// query. It is mutated incrementally as batches arrive and never shrinks
// below the true top-K once K or more documents have been seen. Ties at
// the K-th score are retained, so the set can transiently exceed K until
// a later, higher-scoring batch pushes the boundary up.
type ResultSet struct {
	capacity int
	entries  []RankedResult
}

// NewResultSet returns a set keeping the top capacity results.
func NewResultSet(capacity int) *ResultSet {
	if capacity <= 0 {
		capacity = 10
	}
	return &ResultSet{capacity: capacity}
}

// Threshold is the score a new document must reach to enter the set: the
// current K-th best score, or negative infinity semantics (ok == false)
// while fewer than K results have been seen. Comparison at call sites
// must use >= so equal-score documents are never excluded.
func (s *ResultSet) Threshold() (float64, bool) {
	if len(s.entries) < s.capacity {
		return 0, false
	}
	return s.entries[s.capacity-1].Score, true
}

// Add inserts a scored article, keeping entries sorted by descending
// score. Equal scores keep first-seen order: a new entry goes after the
// existing entries with the same score.
func (s *ResultSet) Add(score float64, article *Article) {
	idx := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Score < score
	})
	s.entries = append(s.entries, RankedResult{})
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = RankedResult{Score: score, Article: article}
}

// Prune discards everything scoring strictly below the K-th best score.
// Entries tying that score survive, so the set may stay larger than K.
// Dropped articles become eligible for release with their batch.
func (s *ResultSet) Prune() {
	if len(s.entries) <= s.capacity {
		return
	}
	threshold := s.entries[s.capacity-1].Score
	cut := len(s.entries)
	for cut > s.capacity && s.entries[cut-1].Score < threshold {
		cut--
	}
	// Free the tail so pruned articles do not stay reachable.
	for i := cut; i < len(s.entries); i++ {
		s.entries[i] = RankedResult{}
	}
	s.entries = s.entries[:cut]
}

// Len reports the current set size (can exceed capacity on boundary ties).
func (s *ResultSet) Len() int { return len(s.entries) }

// MinScore is the lowest score currently retained, 0 for an empty set.
func (s *ResultSet) MinScore() float64 {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[len(s.entries)-1].Score
}

// Results returns the retained pairs, best first, truncated to capacity.
func (s *ResultSet) Results() []RankedResult {
	n := len(s.entries)
	if n > s.capacity {
		n = s.capacity
	}
	out := make([]RankedResult, n)
	copy(out, s.entries[:n])
	return out
}
