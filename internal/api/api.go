package api

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	pollquizv1 "github.com/victornm/pollquiz/internal/api/proto/pollquiz/v1"
	"github.com/victornm/pollquiz/internal/archive"
	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/event"
	"github.com/victornm/pollquiz/internal/leaderboard"
	"github.com/victornm/pollquiz/internal/session"
)

type Sessions interface {
	Prepare(ctx context.Context, req session.StartRequest) (*domain.Session, []string, error)
	Run(ctx context.Context, sessionID string) (*domain.Scoreboard, error)
	Session(ctx context.Context, id string) (*domain.Session, error)
	Scoreboard(ctx context.Context, id string) (*domain.Scoreboard, error)
}

type Leaderboards interface {
	GetLeaderboard(ctx context.Context, req leaderboard.GetLeaderboardRequest) (*domain.Scoreboard, error)
}

type Archive interface {
	ListStandings(ctx context.Context, req archive.ListStandingsRequest) ([]domain.Result, error)
	ListHistory(ctx context.Context, req archive.ListHistoryRequest) ([]archive.HistoryEntry, error)
}

type Config struct {
	GRPC     *grpc.Server
	HTTP     gin.IRouter
	EventBus *event.Bus

	Session     Sessions
	Leaderboard Leaderboards
	// Archive is optional.
	Archive Archive
	// Pool is used when a start request carries no questions.
	Pool []domain.Question

	Redis        Redis
	PubsubPrefix string
}

type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type API struct {
	pollquizv1.UnimplementedQuizServiceServer

	qss     Sessions
	ls      Leaderboards
	archive Archive
	pool    []domain.Question

	redis  Redis
	prefix string

	// runs outlive the request that started them and end with Stop.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(c Config) *API {
	ctx, cancel := context.WithCancel(context.Background())
	a := &API{
		qss:     c.Session,
		ls:      c.Leaderboard,
		archive: c.Archive,
		pool:    c.Pool,
		redis:   c.Redis,
		prefix:  c.PubsubPrefix,
		ctx:     ctx,
		cancel:  cancel,
	}

	// gRPC APIs
	if c.GRPC != nil {
		pollquizv1.RegisterQuizServiceServer(c.GRPC, a)
	}

	// HTTP APIs
	if c.HTTP != nil {
		a.registerHTTP(c.HTTP)
	}

	// Register event handlers
	if c.EventBus != nil && c.Redis != nil {
		c.EventBus.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
			return a.PublishLeaderboardUpdated(ctx, e.(domain.EventLeaderboardUpdated))
		})
	}

	return a
}

// Stop cancels the sessions still running and waits for them.
func (a *API) Stop() {
	a.cancel()
	a.wg.Wait()
}

// startSession prepares a session and runs it in the background. The response lists who was
// registered. Results are available from GetLeaderboard once the run finishes.
func (a *API) startSession(ctx context.Context, req *StartSessionRequest) (*StartSessionResponse, error) {
	pool, err := a.poolOf(req.Questions)
	if err != nil {
		return nil, err
	}

	ss, warnings, err := a.qss.Prepare(ctx, session.StartRequest{
		CreateSessionRequest: session.CreateSessionRequest{
			Pool:       pool,
			Count:      req.Count,
			OpenPeriod: time.Duration(req.OpenPeriodSeconds) * time.Second,
			Initiator:  req.Initiator,
		},
		Recipients: req.Recipients,
	})
	if err != nil {
		return nil, err
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if _, err := a.qss.Run(a.ctx, ss.SessionID); err != nil {
			slog.ErrorContext(a.ctx, "api: session run failed", "session", ss.SessionID, "error", err)
		}
	}()

	return &StartSessionResponse{
		SessionID:    ss.SessionID,
		Questions:    len(ss.Questions),
		Participants: toParticipants(ss.Participants),
		Warnings:     warnings,
	}, nil
}

func (a *API) poolOf(qs []Question) ([]domain.Question, error) {
	if len(qs) == 0 {
		if len(a.pool) == 0 {
			return nil, errors.Validationf("request has no questions and no default pool is configured")
		}
		return a.pool, nil
	}

	pool := make([]domain.Question, 0, len(qs))
	for i, q := range qs {
		row := q.SourceRow
		if row == "" {
			row = "request " + strconv.Itoa(i+1)
		}
		dq, err := domain.NewQuestion(q.Prompt, q.Correct, q.Options, row)
		if err != nil {
			return nil, err
		}
		pool = append(pool, dq)
	}

	return pool, nil
}

func (a *API) GetSession(ctx context.Context, id string) (*GetSessionResponse, error) {
	ss, err := a.qss.Session(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetSessionResponse{
		SessionID:    ss.SessionID,
		Questions:    len(ss.Questions),
		Participants: toParticipants(ss.Participants),
		Active:       ss.Active,
		StartedAt:    timeOrNil(ss.StartedAt),
		EndedAt:      timeOrNil(ss.EndedAt),
	}, nil
}

// getLeaderboard looks the session up in the leaderboard read model, then in the sessions still
// held in memory, then in the archive.
func (a *API) getLeaderboard(ctx context.Context, req *GetLeaderboardRequest) (*GetLeaderboardResponse, error) {
	sb, err := a.scoreboard(ctx, req.SessionID, req.Limit)
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardResponse{Leaderboard: toLeaderboard(*sb)}, nil
}

func (a *API) scoreboard(ctx context.Context, id string, limit int) (*domain.Scoreboard, error) {
	if a.ls != nil {
		sb, err := a.ls.GetLeaderboard(ctx, leaderboard.GetLeaderboardRequest{SessionID: id, Limit: limit})
		if err == nil {
			return sb, nil
		}
		if !errors.HasCode(err, errors.CodeNotFound) {
			return nil, err
		}
	}

	sb, err := a.qss.Scoreboard(ctx, id)
	if err == nil {
		return truncate(sb, limit), nil
	}

	if a.archive == nil {
		return nil, err
	}

	results, aerr := a.archive.ListStandings(ctx, archive.ListStandingsRequest{SessionID: id})
	if aerr != nil {
		return nil, aerr
	}

	sb = &domain.Scoreboard{SessionID: id, Results: results}
	if len(results) > 0 {
		sb.Questions = results[0].Total
	}
	return truncate(sb, limit), nil
}

func truncate(sb *domain.Scoreboard, limit int) *domain.Scoreboard {
	if limit > 0 && len(sb.Results) > limit {
		sb.Results = sb.Results[:limit]
	}
	return sb
}

func (a *API) ListHistory(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error) {
	if a.archive == nil {
		return nil, errors.NotFoundf("result archive is not configured")
	}

	hs, err := a.archive.ListHistory(ctx, archive.ListHistoryRequest{UserID: userID, Limit: limit})
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(hs))
	for _, h := range hs {
		out = append(out, HistoryEntry{SessionID: h.SessionID, EndedAt: h.EndedAt, Result: toEntry(h.Result)})
	}
	return out, nil
}
