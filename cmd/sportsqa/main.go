package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are flags shared by every subcommand.
type rootOptions struct {
	env           string
	knowledgeRoot string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "sportsqa",
		Short: "Sports knowledge question answering over yacht, baseball and gymnastics documents",
		Long: `sportsqa answers free-form sports questions from a directory of JSON
knowledge files. Questions are routed to a domain by keyword, documents are
ranked by lexical overlap, and the best matches are formatted into an answer.
An external text generator (OpenAI or Gemini) can optionally rewrite it.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.env, "env", "",
		"config environment (config/<env>.yaml); defaults to $ENV or local")
	root.PersistentFlags().StringVar(&opts.knowledgeRoot, "data", "",
		"knowledge root directory; overrides knowledge.root")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides logging.level")

	root.AddCommand(
		newServeCmd(opts),
		newAskCmd(opts),
		newVersionCmd(),
	)
	return root
}
