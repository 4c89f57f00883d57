package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/assembly"
	"github.com/crosslingua/xqa/pkg/corpus"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var (
		corpusDir string
		part      string
		nBest     int
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report answerability and alignment statistics for a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.Load(
				filepath.Join(corpusDir, part+"_doc.json"),
				filepath.Join(corpusDir, part+".txt"),
			)
			if err != nil {
				return err
			}

			answerable := 0
			for _, e := range c.Examples() {
				if e.HasGoldInDocuments(nBest) {
					answerable++
				}
			}
			report := assembly.Check(c)

			fmt.Printf("total: %d\n", report.Total)
			if report.Total > 0 {
				fmt.Printf("answerable in first %d docs: %d (%.3f)\n",
					nBest, answerable, float64(answerable)/float64(report.Total))
				fmt.Printf("gold missing from first document: %d (%.3f)\n",
					report.AnswerNotInDoc, float64(report.AnswerNotInDoc)/float64(report.Total))
				fmt.Printf("title missing from answers: %d (%.3f)\n",
					report.AnswerNotInTitle, float64(report.AnswerNotInTitle)/float64(report.Total))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&corpusDir, "corpus", "c", "", "corpus directory")
	cmd.Flags().StringVarP(&part, "part", "p", "dev", "corpus part: train, dev or test")
	cmd.Flags().IntVarP(&nBest, "n-best", "n", 0, "check only the first N documents (0 = all)")
	_ = cmd.MarkFlagRequired("corpus")
	return cmd
}
