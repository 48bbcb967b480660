package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	answeruc "github.com/capstone-design/sportsqa/internal/usecase/answer"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Answer one question and print it",
		Example: `  sportsqa ask 레이저 강풍 세팅
  sportsqa ask --generate "투수의 역할은?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := buildApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			req := answeruc.Request{Question: strings.Join(args, " ")}
			if cmd.Flags().Changed("generate") {
				req.UseGeneration = &generate
			}

			ans := a.answers.Answer(ctx, req)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&generate, "generate", false,
		"rewrite the answer with the configured generator; overrides generation.default_enabled")
	return cmd
}
