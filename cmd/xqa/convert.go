package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/config"
	"github.com/crosslingua/xqa/pkg/corpus"
)

func newConvertCmd(flags *rootFlags) *cobra.Command {
	var (
		format   string
		part     string
		language string
	)
	cmd := &cobra.Command{
		Use:   "convert <in-path> <out-path>",
		Short: "Convert a source dataset (MLQA, XQUAD, TyDi) to XQA format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := corpus.ParseFormat(format)
			if err != nil {
				return err
			}
			inPath, outDir := sourcePaths(f, args[0], args[1], part, language)

			lang := language
			if f == corpus.FormatTyDi {
				lang = config.LanguageName(language)
			}
			c, err := corpus.Convert(f, inPath, lang)
			if err != nil {
				return err
			}

			dir := filepath.Join(outDir, language)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			docPath := filepath.Join(dir, part+"_doc.json")
			goldPath := filepath.Join(dir, part+".txt")
			if err := corpus.Save(c, docPath, goldPath); err != nil {
				return err
			}
			fmt.Printf("converted %d examples to %s\n", c.Len(), dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: mlqa, xquad, xquad-context, tydi")
	cmd.Flags().StringVarP(&part, "part", "p", "dev", "corpus part: train, dev or test")
	cmd.Flags().StringVarP(&language, "language", "l", "en", "language code")
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// sourcePaths composes the conventional input file and output directory
// for each dataset's published layout.
func sourcePaths(f corpus.Format, inPath, outPath, part, language string) (string, string) {
	switch f {
	case corpus.FormatMLQA:
		in := filepath.Join(inPath, part, fmt.Sprintf("%s-context-%s-question-%s.json", part, language, language))
		return in, filepath.Join(outPath, "MLQA")
	case corpus.FormatXQUAD:
		return filepath.Join(inPath, fmt.Sprintf("xquad.%s.json", language)), filepath.Join(outPath, "XQUAD")
	case corpus.FormatXQUADContext:
		return filepath.Join(inPath, fmt.Sprintf("xquad.%s.json", language)), filepath.Join(outPath, "XQUAD_context")
	case corpus.FormatTyDi:
		in := filepath.Join(inPath, fmt.Sprintf("v1.0_tydiqa-v1.0-%s.jsonl.gz", part))
		return in, filepath.Join(outPath, "TYDI")
	default:
		return inPath, outPath
	}
}
