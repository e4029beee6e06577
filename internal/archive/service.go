package archive

import (
	"context"
	_ "embed"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/event"
)

//go:embed schema.sql
var schema string

const codeUniqueViolation = "23505"

type Config struct {
	EventBus *event.Bus
	DB       *pgxpool.Pool
}

// Service keeps finished scoreboards in Postgres.
type Service struct {
	eb *event.Bus
	db *pgxpool.Pool
}

func NewService(c Config) *Service {
	s := &Service{
		eb: c.EventBus,
		db: c.DB,
	}

	if s.eb != nil {
		s.eb.Subscribe(domain.EventNameSessionEnded, func(ctx context.Context, e event.Event) error {
			err := s.Save(ctx, e.(domain.EventSessionEnded).Scoreboard)
			if errors.HasCode(err, errors.CodeAlreadyExists) {
				slog.InfoContext(ctx, "archive: session already archived", "error", err)
				return nil
			}
			return err
		})
	}

	return s
}

// EnsureSchema creates the archive tables when they are missing.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save archives a scoreboard. A session is archived once.
func (s *Service) Save(ctx context.Context, sb domain.Scoreboard) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(ctx); rerr != nil && !stderrors.Is(rerr, pgx.ErrTxClosed) {
				err = stderrors.Join(err, fmt.Errorf("rollback: %w", rerr))
			}
		}
	}()

	const stmt = `
INSERT INTO sessions (session_id, questions, started_at, ended_at, warnings)
VALUES ($1, $2, $3, $4, $5);`

	warnings := sb.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	_, err = tx.Exec(ctx, stmt, sb.SessionID, sb.Questions, sb.StartedAt, sb.EndedAt, warnings)

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("session %s already archived", sb.SessionID),
			errors.WithCause(err))
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"results"},
		[]string{"session_id", "user_id", "username", "first_name", "last_name", "rank", "correct", "incorrect", "total", "percentage", "completion_ms", "dropped"},
		pgx.CopyFromSlice(len(sb.Results), func(i int) ([]any, error) {
			r := sb.Results[i]
			return []any{
				sb.SessionID, r.UserID, r.Username, r.FirstName, r.LastName,
				r.Rank, r.Correct, r.Incorrect, r.Total, r.Percentage,
				r.CompletionTime.Milliseconds(), r.Dropped,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy results: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "archive: session archived", "session", sb.SessionID, "results", len(sb.Results))
	return nil
}

type ListStandingsRequest struct {
	SessionID string
}

// ListStandings returns the archived results of a session in rank order.
func (s *Service) ListStandings(ctx context.Context, req ListStandingsRequest) ([]domain.Result, error) {
	const stmt = `
SELECT user_id, username, first_name, last_name, rank, correct, incorrect, total, percentage, completion_ms, dropped
FROM results
WHERE session_id = $1
ORDER BY rank;`

	rows, err := s.db.Query(ctx, stmt, req.SessionID)
	if err != nil {
		return nil, err
	}

	results, err := pgx.CollectRows(rows, scanResult)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, errors.NotFoundf("no archived standings for session %s", req.SessionID)
	}

	return results, nil
}

type HistoryEntry struct {
	SessionID string
	EndedAt   time.Time
	Result    domain.Result
}

type ListHistoryRequest struct {
	UserID int64
	Limit  int
}

// ListHistory returns a participant's archived results, most recent session first.
func (s *Service) ListHistory(ctx context.Context, req ListHistoryRequest) ([]HistoryEntry, error) {
	const stmt = `
SELECT s.session_id, s.ended_at,
       r.user_id, r.username, r.first_name, r.last_name, r.rank, r.correct, r.incorrect, r.total, r.percentage, r.completion_ms, r.dropped
FROM results r
JOIN sessions s ON s.session_id = r.session_id
WHERE r.user_id = $1
ORDER BY s.ended_at DESC
LIMIT $2;`

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, stmt, req.UserID, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (HistoryEntry, error) {
		var (
			h  HistoryEntry
			ms int64
		)
		err := r.Scan(&h.SessionID, &h.EndedAt,
			&h.Result.UserID, &h.Result.Username, &h.Result.FirstName, &h.Result.LastName,
			&h.Result.Rank, &h.Result.Correct, &h.Result.Incorrect, &h.Result.Total,
			&h.Result.Percentage, &ms, &h.Result.Dropped)
		if err != nil {
			return HistoryEntry{}, err
		}
		h.Result.CompletionTime = time.Duration(ms) * time.Millisecond
		return h, nil
	})
}

func scanResult(r pgx.CollectableRow) (domain.Result, error) {
	var (
		res domain.Result
		ms  int64
	)
	err := r.Scan(&res.UserID, &res.Username, &res.FirstName, &res.LastName,
		&res.Rank, &res.Correct, &res.Incorrect, &res.Total, &res.Percentage, &ms, &res.Dropped)
	if err != nil {
		return domain.Result{}, err
	}
	res.CompletionTime = time.Duration(ms) * time.Millisecond
	return res, nil
}
