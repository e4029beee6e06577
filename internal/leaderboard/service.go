package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/event"
)

const (
	defaultTTL      = 24 * time.Hour
	publishInterval = 200 * time.Millisecond
)

type Config struct {
	EventBus *event.Bus
	Redis    redis.UniversalClient
	Prefix   string
	// TTL is how long a finished session's leaderboard is kept.
	TTL time.Duration
}

// Service is the read model of finished sessions. Rankings live in a sorted set scored by rank,
// the results in a hash keyed by participant id and the session metadata in a plain key.
type Service struct {
	eb     *event.Bus
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewService(c Config) *Service {
	s := &Service{
		eb:     c.EventBus,
		redis:  c.Redis,
		prefix: c.Prefix,
		ttl:    c.TTL,
	}

	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}

	s.eb.Subscribe(domain.EventNameSessionEnded, func(ctx context.Context, e event.Event) error {
		return s.UpdateLeaderboard(ctx, e.(domain.EventSessionEnded))
	})

	return s
}

type GetLeaderboardRequest struct {
	SessionID string
	// Limit caps the number of results. Zero returns everyone.
	Limit int
}

// GetLeaderboard returns the ranked results of a finished session.
func (s *Service) GetLeaderboard(ctx context.Context, req GetLeaderboardRequest) (*domain.Scoreboard, error) {
	meta, err := s.redis.Get(ctx, s.getMetaKey(req.SessionID)).Bytes()
	if err == redis.Nil {
		return nil, errors.New(errors.CodeNotFound, errors.WithMessagef("leaderboard not found: session=%s", req.SessionID))
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard meta: %w", err)
	}

	var sb domain.Scoreboard
	if err := json.Unmarshal(meta, &sb); err != nil {
		return nil, fmt.Errorf("decode leaderboard meta: %w", err)
	}

	stop := int64(-1)
	if req.Limit > 0 {
		stop = int64(req.Limit) - 1
	}

	members, err := s.redis.ZRange(ctx, s.getLeaderboardKey(req.SessionID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	sb.Results = make([]domain.Result, 0, len(members))
	if len(members) == 0 {
		return &sb, nil
	}

	raw, err := s.redis.HMGet(ctx, s.getResultsKey(req.SessionID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard results: %w", err)
	}

	for i, v := range raw {
		str, ok := v.(string)
		if !ok {
			return nil, errors.Integrityf("leaderboard %s: result of participant %s is missing", req.SessionID, members[i])
		}

		var r domain.Result
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("decode result of participant %s: %w", members[i], err)
		}
		sb.Results = append(sb.Results, r)
	}

	return &sb, nil
}

// UpdateLeaderboard replaces the stored leaderboard of the ended session with its scoreboard.
func (s *Service) UpdateLeaderboard(ctx context.Context, e domain.EventSessionEnded) error {
	sb := e.Scoreboard

	meta := sb
	meta.Results = nil
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode leaderboard meta: %w", err)
	}

	zs := make([]redis.Z, 0, len(sb.Results))
	fields := make(map[string]any, len(sb.Results))
	for _, r := range sb.Results {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode result of participant %d: %w", r.UserID, err)
		}

		member := strconv.FormatInt(r.UserID, 10)
		zs = append(zs, redis.Z{Score: float64(r.Rank), Member: member})
		fields[member] = b
	}

	lk, rk, mk := s.getLeaderboardKey(sb.SessionID), s.getResultsKey(sb.SessionID), s.getMetaKey(sb.SessionID)
	_, err = s.redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, lk, rk)
		if len(zs) > 0 {
			p.ZAdd(ctx, lk, zs...)
			p.HSet(ctx, rk, fields)
			p.Expire(ctx, lk, s.ttl)
			p.Expire(ctx, rk, s.ttl)
		}
		p.Set(ctx, mk, metaJSON, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update leaderboard: %w", err)
	}

	return s.schedulePublishLeaderboard(ctx, sb.SessionID, sb.EndedAt)
}

// schedulePublishLeaderboard publishes at most one leaderboard.updated per session and interval,
// so a repeated session.ended does not notify participants twice.
func (s *Service) schedulePublishLeaderboard(ctx context.Context, sessionID string, at time.Time) error {
	// This is a simple way to prevent multiple instances of the service from publishing the leaderboard.
	ok, err := s.redis.SetNX(ctx, s.getLeaderboardTimeKey(sessionID), at.UnixMilli(), publishInterval).Result()
	if err != nil {
		return fmt.Errorf("setnx: %w", err)
	}

	if !ok {
		return nil
	}

	return s.publishLeaderboard(ctx, sessionID)
}

func (s *Service) publishLeaderboard(ctx context.Context, sessionID string) error {
	sb, err := s.GetLeaderboard(ctx, GetLeaderboardRequest{
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("get leaderboard failed: session=%s: %w", sessionID, err)
	}

	s.eb.Publish(ctx, domain.EventLeaderboardUpdated{
		Scoreboard: *sb,
	})

	return nil
}

func (s *Service) getLeaderboardKey(session string) string {
	return fmt.Sprintf("%s:%s:leaderboard", s.prefix, session)
}

func (s *Service) getResultsKey(session string) string {
	return fmt.Sprintf("%s:%s:results", s.prefix, session)
}

func (s *Service) getMetaKey(session string) string {
	return fmt.Sprintf("%s:%s:meta", s.prefix, session)
}

func (s *Service) getLeaderboardTimeKey(session string) string {
	return fmt.Sprintf("%s:%s:time", s.prefix, session)
}
