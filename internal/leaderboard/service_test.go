package leaderboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/event"
	"github.com/victornm/pollquiz/internal/leaderboard"
)

var ended = time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC)

func scoreboard(session string, ids ...int64) domain.Scoreboard {
	sb := domain.Scoreboard{
		SessionID: session,
		Questions: 3,
		StartedAt: ended.Add(-5 * time.Minute),
		EndedAt:   ended,
		Warnings:  []string{"participant 9 skipped: chat not found"},
	}
	for i, id := range ids {
		sb.Results = append(sb.Results, domain.Result{
			Identity:       domain.Identity{UserID: id, FirstName: "user"},
			Rank:           i + 1,
			Correct:        3 - i,
			Incorrect:      i,
			Total:          3,
			Percentage:     decimal.NewFromInt(int64(100 * (3 - i) / 3)),
			CompletionTime: time.Duration(i+1) * 10 * time.Second,
		})
	}
	return sb
}

func TestService_UpdateLeaderboard(t *testing.T) {
	s, _ := makeService(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateLeaderboard(ctx, domain.EventSessionEnded{Scoreboard: scoreboard("s1", 7, 3, 5)}))

	got, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, 3, got.Questions)
	assert.Equal(t, ended, got.EndedAt)
	assert.Equal(t, []string{"participant 9 skipped: chat not found"}, got.Warnings)

	require.Len(t, got.Results, 3)
	for i, want := range []int64{7, 3, 5} {
		r := got.Results[i]
		assert.Equal(t, want, r.UserID)
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, time.Duration(i+1)*10*time.Second, r.CompletionTime)
	}
	assert.True(t, decimal.NewFromInt(100).Equal(got.Results[0].Percentage))

	top, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{SessionID: "s1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, top.Results, 1)
	assert.Equal(t, int64(7), top.Results[0].UserID)
}

func TestService_UpdateLeaderboard_Replaces(t *testing.T) {
	s, _ := makeService(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateLeaderboard(ctx, domain.EventSessionEnded{Scoreboard: scoreboard("s1", 1, 2, 3)}))
	require.NoError(t, s.UpdateLeaderboard(ctx, domain.EventSessionEnded{Scoreboard: scoreboard("s1", 3)}))

	got, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, int64(3), got.Results[0].UserID)
}

func TestService_GetLeaderboard_NotFound(t *testing.T) {
	s, _ := makeService(t)

	_, err := s.GetLeaderboard(context.Background(), leaderboard.GetLeaderboardRequest{SessionID: "missing"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestService_Expiry(t *testing.T) {
	s, rs := makeService(t, func(c *leaderboard.Config) { c.TTL = time.Hour })
	ctx := context.Background()

	require.NoError(t, s.UpdateLeaderboard(ctx, domain.EventSessionEnded{Scoreboard: scoreboard("s1", 1)}))

	rs.FastForward(2 * time.Hour)

	_, err := s.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{SessionID: "s1"})
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestServer_PublishLeaderboardUpdated(t *testing.T) {
	type (
		inputs struct {
			ended []domain.EventSessionEnded
		}

		outputs struct {
			publishedEvents []domain.EventLeaderboardUpdated
		}
	)

	tests := map[string]struct {
		arrange func() inputs
		assert  func(t *testing.T, out outputs)
	}{
		"should publish leaderboard.updated after session.ended": {
			arrange: func() inputs {
				return inputs{ended: []domain.EventSessionEnded{{Scoreboard: scoreboard("s1", 1, 2)}}}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 1, "should receive 1 leaderboard updated event")
				sb := out.publishedEvents[0].Scoreboard
				assert.Equal(t, "s1", sb.SessionID)
				require.Len(t, sb.Results, 2)
				assert.Equal(t, int64(1), sb.Results[0].UserID)
			},
		},

		"should publish once per session for 2 different sessions": {
			arrange: func() inputs {
				return inputs{ended: []domain.EventSessionEnded{
					{Scoreboard: scoreboard("s1", 1)},
					{Scoreboard: scoreboard("s2", 2)},
				}}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 2, "should receive 2 leaderboard updated events")
			},
		},

		"should publish once when the same session ends twice within the publish interval": {
			arrange: func() inputs {
				return inputs{ended: []domain.EventSessionEnded{
					{Scoreboard: scoreboard("s1", 1)},
					{Scoreboard: scoreboard("s1", 1)},
				}}
			},

			assert: func(t *testing.T, out outputs) {
				require.Len(t, out.publishedEvents, 1, "should receive 1 leaderboard updated event")
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in, out := tt.arrange(), outputs{}

			eb := event.NewBus()

			var mu sync.Mutex
			eb.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
				mu.Lock()
				out.publishedEvents = append(out.publishedEvents, e.(domain.EventLeaderboardUpdated))
				mu.Unlock()
				return nil
			})

			makeService(t, withEventBus(eb))

			for _, e := range in.ended {
				eb.Publish(context.Background(), e)
			}

			eb.Stop()

			tt.assert(t, out)
		})
	}
}

func makeService(t *testing.T, opts ...options) (*leaderboard.Service, *miniredis.Miniredis) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rs := miniredis.RunT(t)
	rc := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{rs.Addr()},
	})
	require.NoError(t, rc.Ping(ctx).Err(), "should be able to ping redis")

	c := leaderboard.Config{
		EventBus: event.NewBus(),
		Redis:    rc,
		Prefix:   "pollquiz",
	}

	for _, opt := range opts {
		opt(&c)
	}

	return leaderboard.NewService(c), rs
}

type options func(c *leaderboard.Config)

func withEventBus(eb *event.Bus) options {
	return func(c *leaderboard.Config) {
		c.EventBus = eb
	}
}
