package telegram_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/ratelimit"
	"github.com/victornm/pollquiz/internal/retry"
	"github.com/victornm/pollquiz/internal/telegram"
)

type call struct {
	method  string
	payload map[string]any
}

type response struct {
	body string
	err  error
}

// fakeTransport replays scripted responses per method and records every call.
type fakeTransport struct {
	mu        sync.Mutex
	calls     []call
	responses map[string][]response
}

func (f *fakeTransport) Raw(_ context.Context, method string, payload any) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, _ := json.Marshal(payload)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	f.calls = append(f.calls, call{method: method, payload: m})

	rs := f.responses[method]
	if len(rs) == 0 {
		return []byte(`{"ok":true,"result":true}`), nil
	}
	r := rs[0]
	if len(rs) > 1 {
		f.responses[method] = rs[1:]
	}

	return []byte(r.body), r.err
}

func (f *fakeTransport) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ms := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		ms = append(ms, c.method)
	}
	return ms
}

func makeClient(t *testing.T, ft *fakeTransport) (*telegram.Client, *[]time.Duration) {
	t.Helper()

	var slept []time.Duration
	noSleep := func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	return telegram.NewClient(telegram.Config{
		Transport: ft,
		Limiter: ratelimit.New(ratelimit.Config{
			RequestsPerSecond: 1000,
			Sleep:             func(context.Context, time.Duration) error { return nil },
		}),
		Retrier: retry.New(retry.Config{Sleep: noSleep}),
	}), &slept
}

const pollOK = `{"ok":true,"result":{"message_id":1,"poll":{"id":"p-1"}}}`

func TestClient_SendPoll(t *testing.T) {
	type (
		inputs struct {
			poll      telegram.Poll
			responses map[string][]response
		}

		outputs struct {
			pollID string
			err    error
			calls  []call
			slept  []time.Duration
		}
	)

	tests := map[string]struct {
		arrange func() inputs
		assert  func(t *testing.T, out outputs)
	}{
		"quiz poll payload": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{
						Recipient:    42,
						Question:     "<b>Capital</b> of France?",
						Options:      []string{"Lyon", "Paris", "Nice"},
						CorrectIndex: 1,
						OpenPeriod:   30 * time.Second,
						TraceID:      "row 7",
					},
					responses: map[string][]response{"sendPoll": {{body: pollOK}}},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.NoError(t, out.err)
				assert.Equal(t, "p-1", out.pollID)
				require.Len(t, out.calls, 1)

				p := out.calls[0].payload
				assert.Equal(t, "sendPoll", out.calls[0].method)
				assert.EqualValues(t, 42, p["chat_id"])
				assert.Equal(t, "Capital of France?", p["question"])
				assert.Equal(t, "quiz", p["type"])
				assert.Equal(t, false, p["is_anonymous"])
				assert.EqualValues(t, 1, p["correct_option_id"])
				assert.EqualValues(t, 30, p["open_period"])
				assert.Equal(t, "Source: row 7", p["explanation"])
				assert.Equal(t, []any{
					map[string]any{"text": "Lyon"},
					map[string]any{"text": "Paris"},
					map[string]any{"text": "Nice"},
				}, p["options"])
			},
		},

		"single sanitized option fails before any network call": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{
						Recipient:    42,
						Question:     "q",
						Options:      []string{"yes", "<i> </i>"},
						CorrectIndex: 0,
						OpenPeriod:   30 * time.Second,
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Error(t, out.err)
				assert.True(t, errors.HasCode(out.err, errors.CodeValidation))
				assert.Empty(t, out.calls)
			},
		},

		"correct index out of range fails before any network call": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{
						Recipient:    42,
						Question:     "q",
						Options:      []string{"a", "b"},
						CorrectIndex: 2,
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				assert.True(t, errors.HasCode(out.err, errors.CodeValidation))
				assert.Empty(t, out.calls)
			},
		},

		"blank options are removed and the correct index follows": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{
						Recipient:    42,
						Question:     "q",
						Options:      []string{"", "a", " ", "b"},
						CorrectIndex: 3,
						OpenPeriod:   time.Second,
					},
					responses: map[string][]response{"sendPoll": {{body: pollOK}}},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.NoError(t, out.err)
				p := out.calls[0].payload
				assert.EqualValues(t, 1, p["correct_option_id"])
				assert.Len(t, p["options"], 2)
				assert.EqualValues(t, 5, p["open_period"], "open period is clamped to the lower bound")
			},
		},

		"long question is truncated and sent in full first": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{
						Recipient:    42,
						Question:     strings.Repeat("q", 350),
						Options:      []string{"a", strings.Repeat("o", 120)},
						CorrectIndex: 0,
						OpenPeriod:   time.Hour,
					},
					responses: map[string][]response{"sendPoll": {{body: pollOK}}},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.NoError(t, out.err)
				require.Len(t, out.calls, 2)
				assert.Equal(t, "sendMessage", out.calls[0].method)
				assert.Contains(t, out.calls[0].payload["text"], strings.Repeat("q", 350))
				assert.Contains(t, out.calls[0].payload["text"], strings.Repeat("o", 120))

				p := out.calls[1].payload
				assert.Len(t, p["question"], telegram.MaxQuestionLength)
				opts := p["options"].([]any)
				assert.Len(t, opts[1].(map[string]any)["text"], telegram.MaxOptionLength)
				assert.EqualValues(t, 200, p["open_period"], "open period is clamped to the upper bound")
			},
		},

		"throttled call waits retry_after without spending an attempt": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{Recipient: 1, Question: "q", Options: []string{"a", "b"}},
					responses: map[string][]response{"sendPoll": {
						{body: `{"ok":false,"error_code":500,"description":"Internal"}`, err: stderrors.New("500")},
						{body: `{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":9}}`, err: stderrors.New("429")},
						{body: `{"ok":false,"error_code":502,"description":"Bad Gateway"}`, err: stderrors.New("502")},
						{body: pollOK},
					}},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.NoError(t, out.err)
				assert.Equal(t, "p-1", out.pollID)
				assert.Len(t, out.calls, 4)
				assert.Equal(t, []time.Duration{time.Second, 9 * time.Second, 2 * time.Second}, out.slept)
			},
		},

		"exhausted retries surface as request error": {
			arrange: func() inputs {
				return inputs{
					poll: telegram.Poll{Recipient: 1, Question: "q", Options: []string{"a", "b"}},
					responses: map[string][]response{"sendPoll": {
						{err: stderrors.New("connection refused")},
					}},
				}
			},

			assert: func(t *testing.T, out outputs) {
				require.Error(t, out.err)
				assert.True(t, errors.HasCode(out.err, errors.CodeRequest))
				assert.Contains(t, out.err.Error(), "connection refused")
				assert.Len(t, out.calls, retry.DefaultMaxAttempts)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in := tt.arrange()
			ft := &fakeTransport{responses: in.responses}
			c, slept := makeClient(t, ft)

			var out outputs
			out.pollID, out.err = c.SendPoll(context.Background(), in.poll)
			out.calls = ft.calls
			out.slept = *slept

			tt.assert(t, out)
		})
	}
}

func TestClient_SendMessage(t *testing.T) {
	ft := &fakeTransport{}
	c, _ := makeClient(t, ft)

	err := c.SendMessage(context.Background(), 7, `<a href="x">hi</a> <b>there</b>`)
	require.NoError(t, err)

	require.Len(t, ft.calls, 1)
	p := ft.calls[0].payload
	assert.Equal(t, "sendMessage", ft.calls[0].method)
	assert.Equal(t, "hi <b>there</b>", p["text"])
	assert.Equal(t, "HTML", p["parse_mode"])
	assert.Equal(t, map[string]any{"is_disabled": true}, p["link_preview_options"])
}

func TestClient_GetUserInfo(t *testing.T) {
	tests := map[string]struct {
		responses []response
		want      domain.Identity
		wantCode  errors.Code
	}{
		"resolved identity": {
			responses: []response{{body: `{"ok":true,"result":{"id":5,"username":"ada","first_name":"Ada","last_name":"L"}}`}},
			want:      domain.Identity{UserID: 5, Username: "ada", FirstName: "Ada", LastName: "L"},
		},
		"platform rejection is a lookup error": {
			responses: []response{{body: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, err: stderrors.New("400")}},
			wantCode:  errors.CodeLookup,
		},
		"transport failure stays a request error": {
			responses: []response{{err: stderrors.New("timeout")}},
			wantCode:  errors.CodeRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ft := &fakeTransport{responses: map[string][]response{"getChat": tt.responses}}
			c, _ := makeClient(t, ft)

			got, err := c.GetUserInfo(context.Background(), 5)
			if tt.wantCode != errors.CodeInternal {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"getChat"}, ft.methods())
		})
	}
}

func TestClient_GetUpdates(t *testing.T) {
	ft := &fakeTransport{responses: map[string][]response{"getUpdates": {{
		body: `{"ok":true,"result":[{"update_id":10,"poll_answer":{"poll_id":"p-1","user":{"id":5},"option_ids":[2]}},{"update_id":11}]}`,
	}}}}
	c, _ := makeClient(t, ft)

	got, err := c.GetUpdates(context.Background(), 9, 90*time.Second, []string{telegram.UpdatePollAnswer})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.EqualValues(t, 10, got[0].UpdateID)
	require.NotNil(t, got[0].PollAnswer)
	assert.Equal(t, "p-1", got[0].PollAnswer.PollID)
	assert.EqualValues(t, 5, got[0].PollAnswer.User.ID)
	assert.Equal(t, []int{2}, got[0].PollAnswer.OptionIDs)
	assert.Nil(t, got[1].PollAnswer)

	p := ft.calls[0].payload
	assert.EqualValues(t, 9, p["offset"])
	assert.EqualValues(t, 30, p["timeout"], "long poll is capped")
	assert.Equal(t, []any{"poll_answer"}, p["allowed_updates"])
}

func TestClampOpenPeriod(t *testing.T) {
	assert.Equal(t, 5*time.Second, telegram.ClampOpenPeriod(0))
	assert.Equal(t, 45*time.Second, telegram.ClampOpenPeriod(45*time.Second+300*time.Millisecond))
	assert.Equal(t, 200*time.Second, telegram.ClampOpenPeriod(10*time.Minute))
}
