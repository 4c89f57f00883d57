package retrieval

import "testing"

func art(title string) *Article {
	return &Article{Title: title}
}

func TestResultSetThreshold(t *testing.T) {
	s := NewResultSet(3)

	if _, ok := s.Threshold(); ok {
		t.Fatal("empty set reported a threshold")
	}
	s.Add(5, art("a"))
	s.Add(3, art("b"))
	if _, ok := s.Threshold(); ok {
		t.Fatal("under-capacity set reported a threshold")
	}
	s.Add(4, art("c"))
	th, ok := s.Threshold()
	if !ok || th != 3 {
		t.Fatalf("Threshold() = %v, %v, want 3, true", th, ok)
	}
}

func TestResultSetTieOrderFirstSeen(t *testing.T) {
	s := NewResultSet(5)
	s.Add(2, art("first"))
	s.Add(2, art("second"))
	s.Add(2, art("third"))
	s.Add(7, art("top"))

	got := s.Results()
	wantTitles := []string{"top", "first", "second", "third"}
	for i, w := range wantTitles {
		if got[i].Article.Title != w {
			t.Errorf("results[%d] = %q, want %q", i, got[i].Article.Title, w)
		}
	}
}

func TestResultSetPruneKeepsBoundaryTies(t *testing.T) {
	s := NewResultSet(3)
	for _, score := range []float64{9, 8, 5, 5, 5, 1} {
		s.Add(score, art("x"))
	}
	s.Prune()

	// The third-best score is 5; every 5 survives, the 1 does not.
	if s.Len() != 5 {
		t.Fatalf("Len() = %d after prune, want 5", s.Len())
	}
	if s.MinScore() != 5 {
		t.Errorf("MinScore() = %v, want 5", s.MinScore())
	}
	if got := s.Results(); len(got) != 3 {
		t.Errorf("Results() length = %d, want capacity 3", len(got))
	}
}

func TestResultSetMinScoreMonotonic(t *testing.T) {
	s := NewResultSet(2)
	scores := []float64{1, 2, 3, 2.5, 4, 0.5, 6}
	var prevMin float64
	for i, score := range scores {
		if th, ok := s.Threshold(); !ok || score >= th {
			s.Add(score, art("x"))
		}
		s.Prune()
		if s.Len() >= 2 {
			if s.MinScore() < prevMin {
				t.Fatalf("min degraded at step %d: %v < %v", i, s.MinScore(), prevMin)
			}
			prevMin = s.MinScore()
		}
	}
	if prevMin != 4 {
		t.Errorf("final min = %v, want 4", prevMin)
	}
}
