package baseline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crosslingua/xqa/pkg/corpus"
)

// QuestionResult holds one question's prediction and scores.
type QuestionResult struct {
	Question   string   `json:"question"`
	Prediction string   `json:"prediction"`
	Gold       []string `json:"gold"`
	EM         float64  `json:"em"`
	F1         float64  `json:"f1"`
}

// Result is one baseline evaluation run.
type Result struct {
	RunID       string           `json:"run_id"`
	Model       string           `json:"model"`
	Total       int              `json:"total"`
	Accuracy    float64          `json:"accuracy"`
	MeanEM      float64          `json:"mean_em"`
	MeanF1      float64          `json:"mean_f1"`
	Duration    time.Duration    `json:"duration"`
	GeneratedAt time.Time        `json:"generated_at"`
	PerQuestion []QuestionResult `json:"per_question,omitempty"`
}

// RunConfig controls a baseline run.
type RunConfig struct {
	// NBest limits predictions to the first N documents per question;
	// 0 means all.
	NBest int
	// PerQuestion keeps the per-question detail in the result.
	PerQuestion bool
	// LogFunc receives progress lines.
	LogFunc func(string)
}

// Run evaluates one predictor over every example in the corpus.
func Run(ctx context.Context, c *corpus.Corpus, pred Predictor, cfg RunConfig) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:       uuid.NewString(),
		Model:       pred.Name(),
		Total:       c.Len(),
		GeneratedAt: start,
	}

	correct := 0
	var sumEM, sumF1 float64
	for _, e := range c.Examples() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		docs := make([]string, 0, len(e.Documents))
		for _, d := range e.Documents {
			docs = append(docs, d.Text)
		}
		if cfg.NBest > 0 && cfg.NBest < len(docs) {
			docs = docs[:cfg.NBest]
		}

		prediction, err := pred.Predict(e.Question, docs)
		if err != nil {
			return nil, err
		}

		em := MetricMax(ExactMatch, prediction, e.Gold)
		f1 := MetricMax(F1, prediction, e.Gold)
		sumEM += em
		sumF1 += f1
		for _, g := range e.Gold {
			if prediction == g {
				correct++
				break
			}
		}

		if cfg.LogFunc != nil {
			cfg.LogFunc("question: " + e.Question + "\tpred: " + prediction)
		}
		if cfg.PerQuestion {
			res.PerQuestion = append(res.PerQuestion, QuestionResult{
				Question:   e.Question,
				Prediction: prediction,
				Gold:       e.Gold,
				EM:         em,
				F1:         f1,
			})
		}
	}

	if res.Total > 0 {
		res.Accuracy = float64(correct) / float64(res.Total)
		res.MeanEM = sumEM / float64(res.Total)
		res.MeanF1 = sumF1 / float64(res.Total)
	}
	res.Duration = time.Since(start)
	return res, nil
}
