package assembly

import (
	"math/rand"

	"github.com/crosslingua/xqa/pkg/corpus"
)

// Sample selects k examples uniformly at random without replacement,
// preserving input order in the output. Examples whose question string
// repeats an already selected one are skipped, not replaced, so the
// result can hold fewer than k examples; callers must check the size.
func Sample(examples []*corpus.Example, k int, rng *rand.Rand) []*corpus.Example {
	n := len(examples)
	if k > n {
		k = n
	}

	picked := make(map[int]struct{}, k)
	for _, idx := range rng.Perm(n)[:k] {
		picked[idx] = struct{}{}
	}

	seen := make(map[string]struct{}, k)
	var out []*corpus.Example
	for i, e := range examples {
		if _, ok := picked[i]; !ok {
			continue
		}
		if _, dup := seen[e.Question]; dup {
			continue
		}
		seen[e.Question] = struct{}{}
		out = append(out, e)
	}
	return out
}
