package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/corpus"
)

func newStripCmd(flags *rootFlags) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		language  string
		mode      string
	)
	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Redact questions for document-only ablation corpora",
		RunE: func(cmd *cobra.Command, args []string) error {
			var redact corpus.RedactMode
			switch mode {
			case "empty":
				redact = corpus.RedactEmpty
			case "dummy":
				redact = corpus.RedactDummy
			case "placeholder":
				redact = corpus.RedactPlaceholder
			default:
				return fmt.Errorf("unknown redact mode %q (want empty, dummy or placeholder)", mode)
			}

			parts := []string{"dev", "test"}
			if language == "en" {
				parts = append(parts, "train")
			}
			for _, part := range parts {
				inDir := filepath.Join(inputDir, language)
				outDir := filepath.Join(outputDir, language)
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				c, err := corpus.Load(
					filepath.Join(inDir, part+"_doc.json"),
					filepath.Join(inDir, part+".txt"),
				)
				if err != nil {
					return err
				}
				err = corpus.SaveRedacted(c,
					filepath.Join(outDir, part+"_doc.json"),
					filepath.Join(outDir, part+".txt"),
					redact,
				)
				if err != nil {
					return err
				}
				fmt.Printf("%s: redacted %d questions\n", part, c.Len())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "corpus root directory")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output root directory")
	cmd.Flags().StringVarP(&language, "language", "l", "en", "language code")
	cmd.Flags().StringVar(&mode, "mode", "placeholder", "redact mode: empty, dummy or placeholder")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
