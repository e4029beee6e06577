package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/victornm/pollquiz/internal/message"
	"github.com/victornm/pollquiz/internal/questions"
	"github.com/victornm/pollquiz/internal/report"
	"github.com/victornm/pollquiz/internal/server"
	"github.com/victornm/pollquiz/internal/session"
	"github.com/victornm/pollquiz/internal/telegram"
)

type runFlags struct {
	questions  string
	count      int
	openPeriod time.Duration
	chats      []int64
	initiator  int64
	xlsx       string
}

func newRunCmd(configPath *string) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one quiz in the foreground and print the scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, os.Interrupt)
			defer stop()

			return runQuiz(ctx, cmd, *configPath, f)
		},
	}

	cmd.Flags().StringVar(&f.questions, "questions", "", "question file (.yaml, .xlsx, .json or .html), defaults to quiz.pool")
	cmd.Flags().IntVar(&f.count, "count", 0, "number of questions, defaults to quiz.count")
	cmd.Flags().DurationVar(&f.openPeriod, "open-period", 0, "how long each poll stays open, defaults to quiz.openPeriod")
	cmd.Flags().Int64SliceVar(&f.chats, "chat", nil, "participant chat id, repeatable")
	cmd.Flags().Int64Var(&f.initiator, "initiator", 0, "chat id that receives the scoreboard")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write the scoreboard to this workbook")
	_ = cmd.MarkFlagRequired("chat")

	return cmd
}

func runQuiz(ctx context.Context, cmd *cobra.Command, configPath string, f runFlags) error {
	c, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	file := f.questions
	if file == "" {
		file = c.Quiz.Pool
	}
	if file == "" {
		return fmt.Errorf("no question file: pass --questions or set quiz.pool")
	}

	pool, err := questions.LoadFile(file)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	for _, s := range pool.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", s)
	}

	count := f.count
	if count == 0 {
		count = c.Quiz.Count
	}

	quiz, err := server.NewQuiz(c.Telegram, c.Quiz, nil)
	if err != nil {
		return err
	}

	sb, err := quiz.Start(ctx, session.StartRequest{
		CreateSessionRequest: session.CreateSessionRequest{
			Pool:       pool.Questions,
			Count:      count,
			OpenPeriod: f.openPeriod,
			Initiator:  f.initiator,
		},
		Recipients: f.chats,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), telegram.PlainText(message.Scoreboard(*sb)))

	if f.xlsx == "" {
		return nil
	}

	out, err := os.Create(f.xlsx)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	defer out.Close()

	if err := report.WriteXLSX(out, *sb); err != nil {
		return err
	}
	return out.Close()
}
