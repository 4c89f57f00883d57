package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/assembly"
	"github.com/crosslingua/xqa/pkg/corpus"
	"github.com/crosslingua/xqa/pkg/retrieval"
)

func newAssembleCmd(flags *rootFlags) *cobra.Command {
	var (
		baseDoc      string
		baseGold     string
		rankedPath   string
		outDoc       string
		outGold      string
		filter       bool
		dropFirst    bool
		promoteTitle bool
	)
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Fuse a single-document corpus with ranked candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := corpus.Load(baseDoc, baseGold)
			if err != nil {
				return err
			}
			if filter {
				var stats assembly.FilterStats
				base, stats = assembly.FilterWithoutDocument(base)
				fmt.Printf("filtered: %d of %d kept, %d discarded\n",
					stats.Kept, stats.Original, stats.Discarded)
			}

			ranked, err := retrieval.ReadResultsFile(rankedPath)
			if err != nil {
				return err
			}

			out, stats := assembly.Augment(base, ranked)
			for _, q := range stats.Missing {
				fmt.Printf("not in base corpus: %q\n", q)
			}
			for _, q := range stats.Short {
				fmt.Printf("fewer than %d documents: %q\n", assembly.TargetDocs, q)
			}
			if stats.Total > 0 {
				fmt.Printf("gold duplicated among candidates: %d (%.3f of %d questions)\n",
					stats.SameDoc, float64(stats.SameDoc)/float64(stats.Total), stats.Total)
			}

			if dropFirst {
				assembly.DropLeadingParagraph(out)
			}
			if promoteTitle {
				assembly.PromoteTitleToAnswer(out)
			}

			if err := corpus.Save(out, outDoc, outGold); err != nil {
				return err
			}
			fmt.Printf("wrote %d assembled examples\n", out.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&baseDoc, "base-doc", "", "single-document corpus doc file")
	cmd.Flags().StringVar(&baseGold, "base-gold", "", "gold answers file of the base corpus")
	cmd.Flags().StringVar(&rankedPath, "ranked", "", "ranked candidates file from retrieve")
	cmd.Flags().StringVar(&outDoc, "out-doc", "", "output doc file")
	cmd.Flags().StringVar(&outGold, "out-gold", "", "output gold file")
	cmd.Flags().BoolVar(&filter, "filter", false, "drop placeholder and missing-page records first")
	cmd.Flags().BoolVar(&dropFirst, "drop-first", false, "remove the leading paragraph of every document")
	cmd.Flags().BoolVar(&promoteTitle, "promote-title", false, "add article titles to the gold answers")
	for _, f := range []string{"base-doc", "base-gold", "ranked", "out-doc", "out-gold"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
