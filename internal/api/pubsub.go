package api

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/victornm/pollquiz/internal/domain"
)

const maxConcurrent = 100

type (
	Notification struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}

	// LeaderboardNotification is what a participant receives when a session they took part in
	// is ranked.
	LeaderboardNotification struct {
		Leaderboard Leaderboard      `json:"leaderboard"`
		You         LeaderboardEntry `json:"you"`
	}
)

// PublishLeaderboardUpdated notifies every ranked participant on its own channel.
func (a *API) PublishLeaderboardUpdated(ctx context.Context, e domain.EventLeaderboardUpdated) error {
	l := toLeaderboard(e.Scoreboard)

	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)

	for _, entry := range l.Entries {
		eg.Go(func() error {
			return a.publishNotification(ctx, entry.UserID, e.Name(), LeaderboardNotification{
				Leaderboard: l,
				You:         entry,
			})
		})
	}

	return eg.Wait()
}

func (a *API) publishNotification(ctx context.Context, user int64, event string, data any) error {
	n := Notification{
		Event: event,
		Data:  data,
	}

	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %v", event, err)
	}

	return a.redis.Publish(ctx, UserChannel(a.prefix, user), b).Err()
}

// UserChannel is the pub/sub channel of one participant.
func UserChannel(prefix string, user int64) string {
	return fmt.Sprintf("%s:user:%d", prefix, user)
}
