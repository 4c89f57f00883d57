package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/baseline"
	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/nlp"
)

func newBaselineCmd(flags *rootFlags) *cobra.Command {
	var (
		corpusDir   string
		part        string
		model       string
		nBest       int
		seed        int64
		output      string
		perQuestion bool
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Evaluate a heuristic answer predictor over a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.LoadAll(corpusDir, part)
			if err != nil {
				return err
			}
			fmt.Printf("loaded %d examples\n", c.Len())

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			pred, err := buildPredictor(model, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			cfg := baseline.RunConfig{
				NBest:       nBest,
				PerQuestion: perQuestion || strings.HasSuffix(output, ".html"),
			}
			if verbose {
				cfg.LogFunc = func(line string) { fmt.Println(line) }
			}

			res, err := baseline.Run(cmd.Context(), c, pred, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("accuracy: %.4f\n", res.Accuracy)
			fmt.Printf("EM: %.4f\n", res.MeanEM)
			fmt.Printf("F1: %.4f\n", res.MeanF1)

			if output == "" {
				return nil
			}
			return writeBaselineReport(output, res)
		},
	}
	cmd.Flags().StringVarP(&corpusDir, "corpus", "c", "", "corpus directory")
	cmd.Flags().StringVarP(&part, "part", "p", "dev", "corpus part: train, dev, test or all")
	cmd.Flags().StringVarP(&model, "predictor", "m", "noun", "predictor: noun, ne, random-ne, first-ne, overlap-ne, overlap-noun")
	cmd.Flags().IntVarP(&nBest, "n-best", "n", 0, "predict from the first N documents only (0 = all)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for stochastic predictors (0 = time-based)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write a report (.html or .json)")
	cmd.Flags().BoolVar(&perQuestion, "per-question", false, "keep per-question detail in the report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every prediction")
	_ = cmd.MarkFlagRequired("corpus")
	return cmd
}

func buildPredictor(model string, rng *rand.Rand) (baseline.Predictor, error) {
	an := nlp.NewProseAnalyzer()
	tok := nlp.WordTokenizer{Lowercase: true}
	switch model {
	case "noun":
		return baseline.MostFrequentNoun{Analyzer: an}, nil
	case "ne":
		return baseline.MostFrequentEntity{Analyzer: an}, nil
	case "random-ne":
		return baseline.RandomEntity{Analyzer: an, Rand: rng}, nil
	case "first-ne":
		return baseline.FirstEntity{Analyzer: an}, nil
	case "overlap-ne":
		return baseline.OverlapEntity{Analyzer: an, Tokenizer: tok, Rand: rng}, nil
	case "overlap-noun":
		return baseline.OverlapNoun{Analyzer: an, Tokenizer: tok, Rand: rng}, nil
	default:
		return nil, fmt.Errorf("unknown predictor %q", model)
	}
}

func writeBaselineReport(path string, res *baseline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".html") {
		err = baseline.NewReport([]*baseline.Result{res}).WriteHTML(f)
	} else {
		enc := json.NewEncoder(f)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(res)
	}
	if err != nil {
		f.Close()
		return err
	}
	fmt.Printf("report written to %s\n", path)
	return f.Close()
}
