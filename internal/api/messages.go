package api

import (
	"time"

	"github.com/victornm/pollquiz/internal/domain"
)

// JSON messages of the HTTP routes and pub/sub notifications. The gRPC handlers map onto them.
type (
	Question struct {
		Prompt    string   `json:"prompt"`
		Correct   string   `json:"correct"`
		Options   []string `json:"options"`
		SourceRow string   `json:"source_row,omitempty"`
	}

	StartSessionRequest struct {
		// Questions is the pool to sample from. Empty uses the server's default pool.
		Questions         []Question `json:"questions,omitempty"`
		Count             int        `json:"count"`
		OpenPeriodSeconds int        `json:"open_period_seconds,omitempty"`
		Initiator         int64      `json:"initiator,omitempty"`
		Recipients        []int64    `json:"recipients"`
	}

	Participant struct {
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
	}

	StartSessionResponse struct {
		SessionID    string        `json:"session_id"`
		Questions    int           `json:"questions"`
		Participants []Participant `json:"participants"`
		Warnings     []string      `json:"warnings,omitempty"`
	}

	GetSessionResponse struct {
		SessionID    string        `json:"session_id"`
		Questions    int           `json:"questions"`
		Participants []Participant `json:"participants"`
		Active       bool          `json:"active"`
		StartedAt    *time.Time    `json:"started_at,omitempty"`
		EndedAt      *time.Time    `json:"ended_at,omitempty"`
	}

	GetLeaderboardRequest struct {
		SessionID string `json:"session_id"`
		Limit     int    `json:"limit,omitempty"`
	}

	GetLeaderboardResponse struct {
		Leaderboard Leaderboard `json:"leaderboard"`
	}

	Leaderboard struct {
		SessionID string             `json:"session_id"`
		Questions int                `json:"questions"`
		EndedAt   time.Time          `json:"ended_at"`
		Entries   []LeaderboardEntry `json:"entries"`
		Warnings  []string           `json:"warnings,omitempty"`
	}

	LeaderboardEntry struct {
		Rank              int     `json:"rank"`
		UserID            int64   `json:"user_id"`
		Name              string  `json:"name"`
		Correct           int     `json:"correct"`
		Total             int     `json:"total"`
		Percentage        string  `json:"percentage"`
		CompletionSeconds float64 `json:"completion_seconds"`
		Dropped           bool    `json:"dropped,omitempty"`
	}

	HistoryEntry struct {
		SessionID string           `json:"session_id"`
		EndedAt   time.Time        `json:"ended_at"`
		Result    LeaderboardEntry `json:"result"`
	}
)

func toParticipants(ps []domain.Participant) []Participant {
	out := make([]Participant, 0, len(ps))
	for _, p := range ps {
		out = append(out, Participant{UserID: p.UserID, Name: p.DisplayName()})
	}
	return out
}

func toLeaderboard(sb domain.Scoreboard) Leaderboard {
	l := Leaderboard{
		SessionID: sb.SessionID,
		Questions: sb.Questions,
		EndedAt:   sb.EndedAt,
		Entries:   make([]LeaderboardEntry, 0, len(sb.Results)),
		Warnings:  sb.Warnings,
	}

	for _, r := range sb.Results {
		l.Entries = append(l.Entries, toEntry(r))
	}

	return l
}

func toEntry(r domain.Result) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:              r.Rank,
		UserID:            r.UserID,
		Name:              r.DisplayName(),
		Correct:           r.Correct,
		Total:             r.Total,
		Percentage:        r.Percentage.StringFixed(2),
		CompletionSeconds: r.CompletionSeconds(),
		Dropped:           r.Dropped,
	}
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
