package server

import (
	"fmt"
	"time"

	"github.com/victornm/pollquiz/internal/collector"
	"github.com/victornm/pollquiz/internal/event"
	"github.com/victornm/pollquiz/internal/ratelimit"
	"github.com/victornm/pollquiz/internal/retry"
	"github.com/victornm/pollquiz/internal/session"
	"github.com/victornm/pollquiz/internal/telegram"
	"github.com/victornm/pollquiz/internal/telemetry"
)

type TelegramConfig struct {
	Token string
	// URL overrides the Bot API endpoint.
	URL               string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	MaxAttempts       int
	LongPollTimeout   time.Duration
}

type QuizConfig struct {
	// Pool is the default question file served when a request carries no questions.
	Pool       string
	Count      int
	OpenPeriod time.Duration
	// BatchSize bounds concurrent platform calls while fanning out a question.
	BatchSize int
}

// NewQuiz builds the session engine on top of the Bot API: one transport, one limiter and one
// collector shared by every session.
func NewQuiz(tc TelegramConfig, qc QuizConfig, eb *event.Bus) (*session.Service, error) {
	transport, err := telegram.NewTransport(telegram.TransportConfig{
		Token:       tc.Token,
		URL:         tc.URL,
		HTTPTimeout: tc.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	client := telegram.NewClient(telegram.Config{
		Transport: transport,
		Limiter: ratelimit.New(ratelimit.Config{
			RequestsPerSecond: tc.RequestsPerSecond,
		}),
		Retrier: retry.New(retry.Config{
			MaxAttempts: tc.MaxAttempts,
			OnRetry:     telemetry.RecordRetry,
		}),
		LongPollTimeout: tc.LongPollTimeout,
	})

	return session.NewService(session.Config{
		Client: client,
		Collector: collector.New(collector.Config{
			Updates:  client,
			LongPoll: tc.LongPollTimeout,
		}),
		EventBus:   eb,
		OpenPeriod: qc.OpenPeriod,
		BatchSize:  qc.BatchSize,
	}), nil
}
