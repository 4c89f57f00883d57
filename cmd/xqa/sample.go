package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/assembly"
	"github.com/crosslingua/xqa/pkg/corpus"
)

func newSampleCmd(flags *rootFlags) *cobra.Command {
	var (
		docPath  string
		goldPath string
		outDoc   string
		outGold  string
		n        int
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a uniform sample of examples from a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.Load(docPath, goldPath)
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			sampled := assembly.Sample(c.Examples(), n, rng)
			if len(sampled) < n {
				fmt.Printf("sample smaller than requested: %d < %d (duplicate questions skipped)\n", len(sampled), n)
			}

			out := corpus.NewCorpus()
			for _, e := range sampled {
				out.Add(e)
			}
			if err := corpus.Save(out, outDoc, outGold); err != nil {
				return err
			}
			fmt.Printf("wrote %d sampled examples (seed %d)\n", out.Len(), seed)
			return nil
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "input doc file")
	cmd.Flags().StringVar(&goldPath, "gold", "", "input gold file")
	cmd.Flags().StringVar(&outDoc, "out-doc", "", "output doc file")
	cmd.Flags().StringVar(&outGold, "out-gold", "", "output gold file")
	cmd.Flags().IntVarP(&n, "num", "n", 1000, "sample size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	for _, f := range []string{"doc", "gold", "out-doc", "out-gold"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
