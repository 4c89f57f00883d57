package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/config"
	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/nlp"
	"github.com/crosslingua/xqa/pkg/retrieval"
)

func newRetrieveCmd(flags *rootFlags) *cobra.Command {
	var (
		mode           string
		sourceKind     string
		queriesPath    string
		outPath        string
		checkpointPath string
		language       string
		batch          int
		topK           int
		lowercase      bool
	)
	cmd := &cobra.Command{
		Use:   "retrieve <source-path>",
		Short: "Rank documents against queries with BM25",
		Long: `Scores every document of a collection against every query and keeps
the exact top-K per query. In stream mode documents are scored in
sequential batches with batch-local statistics, so arbitrarily large
collections fit in memory; bulk mode holds the whole pool and uses
collection-wide statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if batch <= 0 {
				batch = cfg.Retrieval.BatchSize
			}
			if topK <= 0 {
				topK = cfg.Retrieval.TopK
			}
			if checkpointPath == "" {
				checkpointPath = cfg.Retrieval.CheckpointPath
			}
			lang := config.LanguageName(language)
			tok := nlp.WordTokenizer{Lowercase: lowercase || cfg.Retrieval.Lowercase}

			queries, err := retrieval.LoadQueries(queriesPath, lang, tok)
			if err != nil {
				return err
			}
			fmt.Printf("loaded %d queries\n", len(queries))

			src, closeSrc, err := openSource(sourceKind, args[0], lang, tok)
			if err != nil {
				return err
			}
			defer closeSrc()

			var results []retrieval.QueryResult
			switch mode {
			case "stream":
				results, err = runStream(cmd, src, queries, batch, topK, checkpointPath)
			case "bulk":
				results, err = runBulk(src, queries, topK)
			default:
				return fmt.Errorf("unknown mode %q (want stream or bulk)", mode)
			}
			if err != nil {
				return err
			}

			if err := retrieval.WriteResultsFile(outPath, results); err != nil {
				return err
			}
			fmt.Printf("wrote %d ranked queries to %s\n", len(results), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "stream", "ranking mode: stream or bulk")
	cmd.Flags().StringVar(&sourceKind, "source", "wiki", "document source: wiki (XML dump) or corpus (XQA doc file)")
	cmd.Flags().StringVarP(&queriesPath, "queries", "q", "", "gold answers file holding the questions")
	cmd.Flags().StringVarP(&outPath, "out", "o", "ranked.json", "output file for ranked results")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "bbolt file for resumable partial state")
	cmd.Flags().StringVarP(&language, "language", "l", "en", "language code")
	cmd.Flags().IntVar(&batch, "batch", 0, "articles per scoring batch (default from config)")
	cmd.Flags().IntVar(&topK, "top-k", 0, "documents kept per query (default from config)")
	cmd.Flags().BoolVar(&lowercase, "lowercase", false, "lowercase tokens before scoring")
	_ = cmd.MarkFlagRequired("queries")
	return cmd
}

func openSource(kind, path, language string, tok nlp.Tokenizer) (retrieval.Source, func(), error) {
	switch kind {
	case "wiki":
		src, err := retrieval.OpenWikiDump(path, language, tok)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	case "corpus":
		c, err := corpus.LoadDocs(path)
		if err != nil {
			return nil, nil, err
		}
		return retrieval.NewCorpusSource(c, language, tok), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q (want wiki or corpus)", kind)
	}
}

func runStream(cmd *cobra.Command, src retrieval.Source, queries []retrieval.Query, batch, topK int, checkpointPath string) ([]retrieval.QueryResult, error) {
	streamCfg := retrieval.StreamConfig{
		BatchSize: batch,
		TopK:      topK,
	}
	if checkpointPath != "" {
		ckpt, err := retrieval.OpenCheckpoint(checkpointPath)
		if err != nil {
			return nil, err
		}
		defer ckpt.Close()
		streamCfg.Checkpoint = ckpt
	}

	bar := progressbar.Default(-1, "scoring articles")
	streamCfg.OnBatch = func(seen int) {
		_ = bar.Set(seen)
	}
	defer bar.Finish()

	return retrieval.RankStream(cmd.Context(), src, queries, streamCfg)
}

func runBulk(src retrieval.Source, queries []retrieval.Query, topK int) ([]retrieval.QueryResult, error) {
	var articles []*retrieval.Article
	for {
		a, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		articles = append(articles, a)
	}
	fmt.Printf("loaded %d articles\n", len(articles))
	return retrieval.RankBulk(articles, queries, topK)
}
