package telegram

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/message"
	"github.com/victornm/pollquiz/internal/ratelimit"
	"github.com/victornm/pollquiz/internal/retry"
	"github.com/victornm/pollquiz/internal/telemetry"
)

const (
	MinOpenPeriod = 5 * time.Second
	MaxOpenPeriod = 200 * time.Second

	DefaultLongPollTimeout = 30 * time.Second

	UpdatePollAnswer = "poll_answer"
)

// Transport performs one Bot API call and returns the raw response body. A non-nil error
// may come together with a body that describes the failure. Raw returns ctx.Err() once ctx is done.
type Transport interface {
	Raw(ctx context.Context, method string, payload any) ([]byte, error)
}

type Config struct {
	Transport       Transport
	Limiter         *ratelimit.Limiter
	Retrier         *retry.Retrier
	LongPollTimeout time.Duration
}

// Client is a rate limited, retrying Bot API client. All calls share one limiter.
type Client struct {
	transport       Transport
	limiter         *ratelimit.Limiter
	retrier         *retry.Retrier
	longPollTimeout time.Duration
}

func NewClient(c Config) *Client {
	cl := &Client{
		transport:       c.Transport,
		limiter:         c.Limiter,
		retrier:         c.Retrier,
		longPollTimeout: c.LongPollTimeout,
	}

	if cl.limiter == nil {
		cl.limiter = ratelimit.New(ratelimit.Config{})
	}
	if cl.retrier == nil {
		cl.retrier = retry.New(retry.Config{})
	}
	if cl.longPollTimeout <= 0 {
		cl.longPollTimeout = DefaultLongPollTimeout
	}

	return cl
}

// APIError is a call the platform answered with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s: %d %s", e.Method, e.Code, e.Description)
}

// Rejected reports whether the platform refused the request itself rather than failing to serve it.
func (e *APIError) Rejected() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func (c *Client) call(ctx context.Context, method string, payload, out any) error {
	res, err := retry.Do(ctx, c.retrier, method, func(ctx context.Context) (json.RawMessage, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, retry.Stop(err)
		}

		data, rawErr := c.transport.Raw(ctx, method, payload)
		if ctxErr := ctx.Err(); rawErr != nil && ctxErr != nil {
			return nil, retry.Stop(fmt.Errorf("telegram: %s: %w", method, ctxErr))
		}

		res, err := decode(method, data, rawErr)
		if err != nil {
			telemetry.APIRequests.WithLabelValues(method, "error").Inc()
			slog.WarnContext(ctx, "telegram: call failed", "method", method, "error", err)
			return nil, err
		}

		telemetry.APIRequests.WithLabelValues(method, "ok").Inc()
		return res, nil
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("telegram: %s: decode result: %w", method, err)
	}

	return nil
}

func decode(method string, data []byte, rawErr error) (json.RawMessage, error) {
	if len(data) == 0 {
		if rawErr == nil {
			rawErr = stderrors.New("empty response")
		}
		return nil, fmt.Errorf("telegram: %s: %w", method, rawErr)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("telegram: %s: decode response: %w", method, err)
	}

	if env.OK {
		return env.Result, nil
	}

	apiErr := &APIError{
		Method:      method,
		Code:        env.ErrorCode,
		Description: env.Description,
	}
	if env.Parameters != nil {
		apiErr.RetryAfter = time.Duration(env.Parameters.RetryAfter) * time.Second
	}

	if apiErr.Code == http.StatusTooManyRequests {
		return nil, &retry.Throttled{After: apiErr.RetryAfter, Err: apiErr}
	}

	return nil, apiErr
}

type linkPreviewOptions struct {
	IsDisabled bool `json:"is_disabled"`
}

type sendMessageRequest struct {
	ChatID             int64              `json:"chat_id"`
	Text               string             `json:"text"`
	ParseMode          string             `json:"parse_mode"`
	LinkPreviewOptions linkPreviewOptions `json:"link_preview_options"`
}

// SendMessage sends sanitized HTML text with link previews disabled.
func (c *Client) SendMessage(ctx context.Context, recipient int64, text string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:             recipient,
		Text:               SanitizeHTML(text, MaxMessageLength),
		ParseMode:          "HTML",
		LinkPreviewOptions: linkPreviewOptions{IsDisabled: true},
	}, nil)
}

type Poll struct {
	Recipient    int64
	Question     string
	Options      []string
	CorrectIndex int
	OpenPeriod   time.Duration
	// TraceID ends up in the poll explanation, usually the question's source row.
	TraceID string
}

type inputPollOption struct {
	Text string `json:"text"`
}

type sendPollRequest struct {
	ChatID          int64             `json:"chat_id"`
	Question        string            `json:"question"`
	Options         []inputPollOption `json:"options"`
	IsAnonymous     bool              `json:"is_anonymous"`
	Type            string            `json:"type"`
	CorrectOptionID int               `json:"correct_option_id"`
	OpenPeriod      int               `json:"open_period"`
	Explanation     string            `json:"explanation,omitempty"`
}

// SendPoll sends a non-anonymous quiz poll and returns its poll id.
//
// Option bounds are checked on the sanitized options before anything is sent. When the question or
// an option has to be shortened, the full text goes out first as a plain message.
func (c *Client) SendPoll(ctx context.Context, p Poll) (string, error) {
	if p.CorrectIndex < 0 || p.CorrectIndex >= len(p.Options) {
		return "", errors.Validationf("poll: correct index %d out of range [0, %d)", p.CorrectIndex, len(p.Options))
	}

	options := make([]string, 0, len(p.Options))
	correct := -1
	for i, o := range p.Options {
		o = PlainText(o)
		if o == "" {
			continue
		}
		if i == p.CorrectIndex {
			correct = len(options)
		}
		options = append(options, o)
	}

	if len(options) < domain.MinOptions || len(options) > domain.MaxOptions {
		return "", errors.Validationf("poll: has %d options after sanitizing, want %d-%d",
			len(options), domain.MinOptions, domain.MaxOptions)
	}
	if correct < 0 {
		return "", errors.Validationf("poll: correct option is empty after sanitizing")
	}

	question := PlainText(p.Question)
	short, truncated := Truncate(question, MaxQuestionLength)

	opts := make([]inputPollOption, len(options))
	for i, o := range options {
		s, cut := Truncate(o, MaxOptionLength)
		truncated = truncated || cut
		opts[i] = inputPollOption{Text: s}
	}

	if truncated {
		if err := c.SendMessage(ctx, p.Recipient, message.FullQuestion(question, options)); err != nil {
			return "", err
		}
	}

	req := sendPollRequest{
		ChatID:          p.Recipient,
		Question:        short,
		Options:         opts,
		IsAnonymous:     false,
		Type:            "quiz",
		CorrectOptionID: correct,
		OpenPeriod:      int(ClampOpenPeriod(p.OpenPeriod).Seconds()),
	}
	if p.TraceID != "" {
		req.Explanation, _ = Truncate("Source: "+PlainText(p.TraceID), MaxExplanationLength)
	}

	var res struct {
		Poll *struct {
			ID string `json:"id"`
		} `json:"poll"`
	}
	if err := c.call(ctx, "sendPoll", req, &res); err != nil {
		return "", err
	}

	if res.Poll == nil || res.Poll.ID == "" {
		return "", fmt.Errorf("telegram: sendPoll: response carries no poll")
	}

	return res.Poll.ID, nil
}

func ClampOpenPeriod(d time.Duration) time.Duration {
	d = d.Truncate(time.Second)
	return min(max(d, MinOpenPeriod), MaxOpenPeriod)
}

type chat struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GetUserInfo resolves a recipient's identity. A platform rejection becomes a lookup error;
// transport failures stay request errors.
func (c *Client) GetUserInfo(ctx context.Context, recipient int64) (domain.Identity, error) {
	var ch chat
	err := c.call(ctx, "getChat", struct {
		ChatID int64 `json:"chat_id"`
	}{ChatID: recipient}, &ch)

	var apiErr *APIError
	if stderrors.As(err, &apiErr) && apiErr.Rejected() {
		return domain.Identity{}, errors.Lookup(apiErr.Description, err)
	}
	if err != nil {
		return domain.Identity{}, err
	}

	if ch.ID == 0 {
		ch.ID = recipient
	}

	return domain.Identity{
		UserID:    ch.ID,
		Username:  ch.Username,
		FirstName: ch.FirstName,
		LastName:  ch.LastName,
	}, nil
}

type User struct {
	ID int64 `json:"id"`
}

type PollAnswer struct {
	PollID    string `json:"poll_id"`
	User      *User  `json:"user,omitempty"`
	OptionIDs []int  `json:"option_ids"`
}

type Update struct {
	UpdateID   int64       `json:"update_id"`
	PollAnswer *PollAnswer `json:"poll_answer,omitempty"`
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates long polls for updates with id >= offset. The wait is capped at the configured
// long poll timeout.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration, types []string) ([]Update, error) {
	timeout = min(max(timeout, 0), c.longPollTimeout)

	var updates []Update
	err := c.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: types,
	}, &updates)
	if err != nil {
		return nil, err
	}

	return updates, nil
}
