package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Source streams articles one at a time. Next returns io.EOF after the
// last article. Sources own decompression and parsing; the ranker only
// sees ready-to-score articles.
type Source interface {
	Next() (*Article, error)
}

// StreamConfig controls the streaming ranker.
type StreamConfig struct {
	// BatchSize is the number of articles resident at once. Ranking
	// statistics are computed per batch, not corpus-wide: smaller batches
	// bound memory tighter but make idf noisier. Default 1000.
	BatchSize int

	// TopK results kept per query. Default 10.
	TopK int

	// Checkpoint, when set, receives the partial per-query state after
	// every scored batch so a long indexing run is resumable and
	// inspectable without starting over.
	Checkpoint Checkpointer

	// Logf receives progress lines; nil disables logging.
	Logf func(format string, args ...any)

	// OnBatch is called after each scored batch with the running article
	// count (drives CLI progress display).
	OnBatch func(seen int)
}

func (c *StreamConfig) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// RankStream computes the exact running top-K documents per query over a
// streamed collection. Batches are strictly sequential: batch i+1 is not
// accumulated until batch i has been scored, pruned and released, which
// bounds peak memory to one batch plus the per-query survivor sets.
func RankStream(ctx context.Context, src Source, queries []Query, cfg StreamConfig) ([]QueryResult, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 10
	}

	sets := make([]*ResultSet, len(queries))
	for i := range sets {
		sets[i] = NewResultSet(cfg.TopK)
	}

	batch := make([]*Article, 0, cfg.BatchSize)
	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		article, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		batch = append(batch, article)
		seen++
		if len(batch) < cfg.BatchSize {
			continue
		}

		if err := scoreBatch(batch, queries, sets, &cfg, seen); err != nil {
			return nil, err
		}
		batch = batch[:0]
	}

	// Final partial batch: the stream rarely ends on a batch boundary.
	if len(batch) > 0 {
		if err := scoreBatch(batch, queries, sets, &cfg, seen); err != nil {
			return nil, err
		}
	}

	return collectResults(queries, sets), nil
}

// scoreBatch folds one batch into the running result sets: a fresh
// batch-local model, one score pass per query, admission against the
// query's current K-th best score, then prune and checkpoint.
func scoreBatch(batch []*Article, queries []Query, sets []*ResultSet, cfg *StreamConfig, seen int) error {
	docs := make([][]string, len(batch))
	for i, a := range batch {
		docs[i] = a.Terms
	}
	model := NewBM25(docs)

	for qi, query := range queries {
		set := sets[qi]
		threshold, bounded := set.Threshold()
		scores := model.Scores(query.Terms)
		for di, score := range scores {
			// >= keeps documents tying the boundary score.
			if !bounded || score >= threshold {
				set.Add(score, batch[di])
			}
		}
		set.Prune()
	}

	if cfg.Checkpoint != nil {
		if err := cfg.Checkpoint.Save(collectResults(queries, sets), seen); err != nil {
			return fmt.Errorf("checkpoint after %d articles: %w", seen, err)
		}
	}
	cfg.logf("scored batch: %d articles seen", seen)
	if cfg.OnBatch != nil {
		cfg.OnBatch(seen)
	}
	return nil
}

func collectResults(queries []Query, sets []*ResultSet) []QueryResult {
	out := make([]QueryResult, len(queries))
	for i, query := range queries {
		ranked := sets[i].Results()
		docs := make([]RankedDocument, 0, len(ranked))
		for _, r := range ranked {
			docs = append(docs, RankedDocument{
				Score: r.Score,
				Title: r.Article.Title,
				Text:  r.Article.Text,
				ID:    r.Article.ID,
			})
		}
		out[i] = QueryResult{Question: query.Text, Documents: docs}
	}
	return out
}

// RankBulk scores a fully resident candidate pool in one pass and returns
// the exact top-K per query, ties at the K-th score included. Callers
// must guarantee a pool of at least K documents; anything smaller is an
// ErrInsufficientCandidates contract violation.
func RankBulk(articles []*Article, queries []Query, topK int) ([]QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}
	if len(articles) < topK {
		return nil, fmt.Errorf("%w: pool=%d topK=%d", ErrInsufficientCandidates, len(articles), topK)
	}

	docs := make([][]string, len(articles))
	for i, a := range articles {
		docs[i] = a.Terms
	}
	model := NewBM25(docs)

	out := make([]QueryResult, len(queries))
	for qi, query := range queries {
		scores := model.Scores(query.Terms)
		set := NewResultSet(topK)
		for di, score := range scores {
			threshold, bounded := set.Threshold()
			if !bounded || score >= threshold {
				set.Add(score, articles[di])
			}
		}
		set.Prune()
		if set.Len() < topK {
			return nil, fmt.Errorf("query %q: %w: got %d", query.Text, ErrInsufficientCandidates, set.Len())
		}
		docs := make([]RankedDocument, 0, topK)
		for _, r := range set.Results() {
			docs = append(docs, RankedDocument{
				Score: r.Score,
				Title: r.Article.Title,
				Text:  r.Article.Text,
				ID:    r.Article.ID,
			})
		}
		out[qi] = QueryResult{Question: query.Text, Documents: docs}
	}
	return out, nil
}
