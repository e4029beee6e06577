package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/victornm/pollquiz/internal/api"
	pollquizv1 "github.com/victornm/pollquiz/internal/api/proto/pollquiz/v1"
	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/event"
	"github.com/victornm/pollquiz/internal/leaderboard"
	"github.com/victornm/pollquiz/internal/server"
	"github.com/victornm/pollquiz/internal/telemetry"
)

const prefix = "demo"

// TestQuiz runs a whole quiz through the gRPC API against a scripted Bot API. Participant 1
// answers every question correctly, participant 2 never does, participant 3 does not exist.
func TestQuiz(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bot := newFakeBotAPI(map[int64]string{1: "Ada", 2: "Bob"})
	ts := httptest.NewServer(bot)
	t.Cleanup(ts.Close)

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{rs.Addr()}})
	t.Cleanup(func() { rc.Close() })

	eb := event.NewBus()
	quiz, err := server.NewQuiz(server.TelegramConfig{
		Token:             "token",
		URL:               ts.URL,
		RequestsPerSecond: 100,
		MaxAttempts:       1,
		LongPollTimeout:   time.Second,
	}, server.QuizConfig{OpenPeriod: 5 * time.Second}, eb)
	require.NoError(t, err)

	ls := leaderboard.NewService(leaderboard.Config{EventBus: eb, Redis: rc, Prefix: prefix})

	gs := grpc.NewServer(telemetry.GRPCServerInterceptor())
	a := api.New(api.Config{
		GRPC:         gs,
		EventBus:     eb,
		Session:      quiz,
		Leaderboard:  ls,
		Redis:        rc,
		PubsubPrefix: prefix,
	})
	qc := makeQuizClient(t, gs)

	notified := subscribe(ctx, t, rc, 1, 2)

	resp, err := qc.StartSession(ctx, &pollquizv1.StartSessionRequest{
		Questions: []*pollquizv1.Question{
			{Prompt: "Largest planet?", Correct: "Jupiter", Options: []string{"Mars", "Venus"}},
			{Prompt: "Go keyword for deferred calls?", Correct: "defer", Options: []string{"later", "finally"}},
		},
		Count:      2,
		Initiator:  1,
		Recipients: []int64{1, 2, 3},
	})
	require.NoError(t, err)
	require.Len(t, resp.Participants, 2)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "participant 3")

	got := make(map[string]api.LeaderboardNotification)
	for len(got) < 2 {
		select {
		case n := <-notified:
			got[n.channel] = n.data
		case <-ctx.Done():
			t.Fatalf("waiting for leaderboard notifications: %v", ctx.Err())
		}
	}

	ada, bob := got[api.UserChannel(prefix, 1)].You, got[api.UserChannel(prefix, 2)].You
	assert.Equal(t, 1, ada.Rank)
	assert.Equal(t, 2, ada.Correct)
	assert.Equal(t, "100.00", ada.Percentage)
	assert.Equal(t, 2, bob.Rank)
	assert.Equal(t, 0, bob.Correct)
	assert.Equal(t, "0.00", bob.Percentage)

	l, err := qc.GetLeaderboard(ctx, &pollquizv1.GetLeaderboardRequest{SessionId: resp.SessionId})
	require.NoError(t, err)
	require.Len(t, l.Leaderboard.Entries, 2)
	assert.Equal(t, "Ada (@ada)", l.Leaderboard.Entries[0].Name)

	require.Eventually(t, func() bool {
		msgs := bot.messagesTo(1)
		return len(msgs) > 0 && strings.Contains(msgs[len(msgs)-1], "Quiz finished")
	}, 10*time.Second, 50*time.Millisecond)

	a.Stop()
	eb.Stop()

	assert.Equal(t, 4, bot.count("sendPoll"))
	assert.Equal(t, 3, bot.count("getChat"))
	bobs := bot.messagesTo(2)
	require.NotEmpty(t, bobs)
	assert.Contains(t, bobs[len(bobs)-1], "Rank: 2 of 2")
}

type notification struct {
	channel string
	data    api.LeaderboardNotification
}

func subscribe(ctx context.Context, t *testing.T, rc redis.UniversalClient, users ...int64) <-chan notification {
	channels := make([]string, 0, len(users))
	for _, u := range users {
		channels = append(channels, api.UserChannel(prefix, u))
	}

	sub := rc.Subscribe(ctx, channels...)
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	c := make(chan notification, len(users))
	go func() {
		for {
			msg, err := sub.ReceiveMessage(ctx)
			if err != nil {
				return
			}

			var n struct {
				Event string                      `json:"event"`
				Data  api.LeaderboardNotification `json:"data"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil || n.Event != domain.EventNameLeaderboardUpdated {
				continue
			}

			select {
			case c <- notification{channel: msg.Channel, data: n.Data}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return c
}

func makeQuizClient(t *testing.T, gs *grpc.Server) pollquizv1.QuizServiceClient {
	lis := bufconn.Listen(1 << 20)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///demo",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pollquizv1.NewQuizServiceClient(conn)
}

// fakeBotAPI answers the Bot API methods the engine uses. Every poll is answered right away:
// correctly by participant 1, incorrectly by everybody else.
type fakeBotAPI struct {
	mu       sync.Mutex
	users    map[int64]string
	calls    map[string]int
	messages map[int64][]string
	updates  []map[string]any
	nextPoll int
	nextID   int64
}

func newFakeBotAPI(users map[int64]string) *fakeBotAPI {
	return &fakeBotAPI{
		users:    users,
		calls:    make(map[string]int),
		messages: make(map[int64][]string),
		nextID:   1,
	}
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID          int64             `json:"chat_id"`
		Text            string            `json:"text"`
		Options         []json.RawMessage `json:"options"`
		CorrectOptionID int               `json:"correct_option_id"`
		Offset          int64             `json:"offset"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	method := path.Base(r.URL.Path)

	f.mu.Lock()
	f.calls[method]++

	var (
		result any
		failed string
	)
	switch method {
	case "getChat":
		name, ok := f.users[req.ChatID]
		if !ok {
			failed = "Bad Request: chat not found"
			break
		}
		result = map[string]any{"id": req.ChatID, "type": "private", "first_name": name, "username": strings.ToLower(name)}

	case "sendMessage":
		f.messages[req.ChatID] = append(f.messages[req.ChatID], req.Text)
		result = map[string]any{"message_id": len(f.messages[req.ChatID])}

	case "sendPoll":
		f.nextPoll++
		id := fmt.Sprintf("poll-%d", f.nextPoll)

		option := req.CorrectOptionID
		if req.ChatID != 1 {
			option = (option + 1) % len(req.Options)
		}
		f.updates = append(f.updates, map[string]any{
			"update_id": f.nextID,
			"poll_answer": map[string]any{
				"poll_id":    id,
				"user":       map[string]any{"id": req.ChatID},
				"option_ids": []int{option},
			},
		})
		f.nextID++
		result = map[string]any{"message_id": f.nextPoll, "poll": map[string]any{"id": id}}

	case "getUpdates":
		due := []map[string]any{}
		for _, u := range f.updates {
			if u["update_id"].(int64) >= req.Offset {
				due = append(due, u)
			}
		}
		result = due
		if len(due) == 0 {
			f.mu.Unlock()
			time.Sleep(50 * time.Millisecond)
			f.mu.Lock()
		}

	default:
		failed = "Not Found: method not found"
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failed != "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": 400, "description": failed})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func (f *fakeBotAPI) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeBotAPI) messagesTo(chat int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages[chat]...)
}

