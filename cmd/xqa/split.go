package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/corpus"
)

func newSplitCmd(flags *rootFlags) *cobra.Command {
	var (
		corpusDir       string
		answerableDir   string
		unanswerableDir string
		part            string
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a corpus into answerable and unanswerable questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := filepath.Join(corpusDir, part+"_doc.json")
			goldPath := filepath.Join(corpusDir, part+".txt")

			c, err := corpus.Load(docPath, goldPath)
			if err != nil {
				return err
			}
			fmt.Printf("loaded %d examples\n", c.Len())

			answerable, unanswerable := corpus.SplitAnswerable(c)
			fmt.Printf("answerable: %d, unanswerable: %d\n", len(answerable), len(unanswerable))

			for dir, ids := range map[string][]corpus.OuterID{
				answerableDir:   answerable,
				unanswerableDir: unanswerable,
			} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				err := corpus.FilterByIDs(docPath, goldPath,
					filepath.Join(dir, part+"_doc.json"),
					filepath.Join(dir, part+".txt"),
					corpus.IDSet(ids))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&corpusDir, "corpus", "c", "", "corpus directory")
	cmd.Flags().StringVarP(&answerableDir, "answerable", "a", "", "output directory for answerable questions")
	cmd.Flags().StringVarP(&unanswerableDir, "unanswerable", "u", "", "output directory for unanswerable questions")
	cmd.Flags().StringVarP(&part, "part", "p", "dev", "corpus part: train, dev or test")
	for _, f := range []string{"corpus", "answerable", "unanswerable"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
