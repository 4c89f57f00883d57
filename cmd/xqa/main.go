// xqa builds and inspects cross-lingual QA corpora: converting source
// datasets into the two-file XQA format, retrieving candidate documents
// with BM25, assembling the final multi-document corpus and running
// sanity-check baselines.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crosslingua/xqa/pkg/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
}

func (f *rootFlags) load() (*config.Config, error) {
	return config.Load(f.configPath)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "xqa",
		Short:         "Cross-lingual QA corpus toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to YAML config file")

	cmd.AddCommand(
		newConvertCmd(flags),
		newRetrieveCmd(flags),
		newAssembleCmd(flags),
		newSplitCmd(flags),
		newStripCmd(flags),
		newSampleCmd(flags),
		newCheckCmd(flags),
		newBaselineCmd(flags),
	)
	return cmd
}
