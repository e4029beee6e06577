package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/victornm/pollquiz/internal/questions"
)

func newConvertCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a question file into the spreadsheet layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertQuestions(cmd, in, out)
		},
	}

	cmd.Flags().StringVar(&in, "questions", "", "question file (.yaml, .xlsx, .json or .html)")
	cmd.Flags().StringVar(&out, "out", "", "workbook to write")
	_ = cmd.MarkFlagRequired("questions")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func convertQuestions(cmd *cobra.Command, in, out string) error {
	pool, err := questions.LoadFile(in)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	for _, s := range pool.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", s)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := questions.WriteXLSX(f, pool.Questions); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d questions to %s\n", len(pool.Questions), out)
	return nil
}
