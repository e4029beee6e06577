//go:build integration_test

package archive_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/pollquiz/internal/archive"
	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
)

func TestService_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := makeService(t)

	ended := time.Now().UTC().Truncate(time.Second)
	sb := domain.Scoreboard{
		SessionID: uuid.NewString(),
		Questions: 5,
		StartedAt: ended.Add(-2 * time.Minute),
		EndedAt:   ended,
		Results: []domain.Result{
			{Identity: domain.Identity{UserID: 11, FirstName: "Ada"}, Rank: 1, Correct: 3, Incorrect: 2, Total: 5,
				Percentage: decimal.RequireFromString("60.00"), CompletionTime: 30 * time.Second},
			{Identity: domain.Identity{UserID: 12, Username: "bob"}, Rank: 2, Correct: 3, Incorrect: 2, Total: 5,
				Percentage: decimal.RequireFromString("60.00"), CompletionTime: 45 * time.Second, Dropped: true},
		},
	}

	require.NoError(t, s.Save(ctx, sb))

	err := s.Save(ctx, sb)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeAlreadyExists))

	got, err := s.ListStandings(ctx, archive.ListStandingsRequest{SessionID: sb.SessionID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(11), got[0].UserID)
	assert.Equal(t, 30*time.Second, got[0].CompletionTime)
	assert.True(t, decimal.NewFromInt(60).Equal(got[0].Percentage))
	assert.True(t, got[1].Dropped)

	history, err := s.ListHistory(ctx, archive.ListHistoryRequest{UserID: 12})
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, sb.SessionID, history[0].SessionID)

	_, err = s.ListStandings(ctx, archive.ListStandingsRequest{SessionID: "missing"})
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func makeService(t *testing.T) *archive.Service {
	dsn := os.Getenv("ARCHIVE_DSN")
	if dsn == "" {
		t.Skip("ARCHIVE_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	s := archive.NewService(archive.Config{DB: db})
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}
