package telegram

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const DefaultHTTPTimeout = 45 * time.Second

type TransportConfig struct {
	Token string
	// URL overrides the Bot API endpoint, e.g. a local Bot API server.
	URL string
	// HTTPTimeout must exceed the long poll timeout.
	HTTPTimeout time.Duration
}

// BotTransport runs raw calls through an offline bot. The bot never polls by itself,
// updates are read by the collector through GetUpdates.
type BotTransport struct {
	bot   *tele.Bot
	token string
}

func NewTransport(c TransportConfig) (*BotTransport, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("telegram: empty bot token")
	}

	timeout := c.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	b, err := tele.NewBot(tele.Settings{
		URL:     c.URL,
		Token:   c.Token,
		Offline: true,
		Client:  &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: new bot: %w", err)
	}

	return &BotTransport{bot: b, token: c.Token}, nil
}

type rawResult struct {
	data []byte
	err  error
}

// Raw returns as soon as ctx is done. The abandoned request still runs to the HTTP timeout
// in the background. Errors never carry the bot token.
func (t *BotTransport) Raw(ctx context.Context, method string, payload any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan rawResult, 1)
	go func() {
		data, err := t.bot.Raw(method, payload)
		done <- rawResult{data: data, err: err}
	}()

	select {
	case r := <-done:
		return r.data, t.redact(r.err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// redact drops the error chain: transport errors embed the request URL, and the URL embeds the token.
func (t *BotTransport) redact(err error) error {
	if err == nil {
		return nil
	}
	return stderrors.New(strings.ReplaceAll(err.Error(), t.token, "<token>"))
}
