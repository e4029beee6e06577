package api

import (
	"context"

	"google.golang.org/protobuf/types/known/timestamppb"

	pollquizv1 "github.com/victornm/pollquiz/internal/api/proto/pollquiz/v1"
)

func (a *API) StartSession(ctx context.Context, req *pollquizv1.StartSessionRequest) (*pollquizv1.StartSessionResponse, error) {
	qs := make([]Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		qs = append(qs, Question{
			Prompt:    q.Prompt,
			Correct:   q.Correct,
			Options:   q.Options,
			SourceRow: q.SourceRow,
		})
	}

	resp, err := a.startSession(ctx, &StartSessionRequest{
		Questions:         qs,
		Count:             int(req.Count),
		OpenPeriodSeconds: int(req.OpenPeriodSeconds),
		Initiator:         req.Initiator,
		Recipients:        req.Recipients,
	})
	if err != nil {
		return nil, err
	}

	out := &pollquizv1.StartSessionResponse{
		SessionId:    resp.SessionID,
		Questions:    int32(resp.Questions),
		Participants: make([]*pollquizv1.Participant, 0, len(resp.Participants)),
		Warnings:     resp.Warnings,
	}
	for _, p := range resp.Participants {
		out.Participants = append(out.Participants, &pollquizv1.Participant{
			UserId: p.UserID,
			Name:   p.Name,
		})
	}

	return out, nil
}

func (a *API) GetLeaderboard(ctx context.Context, req *pollquizv1.GetLeaderboardRequest) (*pollquizv1.GetLeaderboardResponse, error) {
	resp, err := a.getLeaderboard(ctx, &GetLeaderboardRequest{
		SessionID: req.SessionId,
		Limit:     int(req.Limit),
	})
	if err != nil {
		return nil, err
	}

	l := resp.Leaderboard
	out := &pollquizv1.GetLeaderboardResponse{
		Leaderboard: &pollquizv1.Leaderboard{
			SessionId: l.SessionID,
			Questions: int32(l.Questions),
			Entries:   make([]*pollquizv1.LeaderboardEntry, 0, len(l.Entries)),
			Warnings:  l.Warnings,
		},
	}
	if !l.EndedAt.IsZero() {
		out.Leaderboard.EndedAt = timestamppb.New(l.EndedAt)
	}

	for _, e := range l.Entries {
		out.Leaderboard.Entries = append(out.Leaderboard.Entries, &pollquizv1.LeaderboardEntry{
			Rank:              int32(e.Rank),
			UserId:            e.UserID,
			Name:              e.Name,
			Correct:           int32(e.Correct),
			Total:             int32(e.Total),
			Percentage:        e.Percentage,
			CompletionSeconds: e.CompletionSeconds,
			Dropped:           e.Dropped,
		})
	}

	return out, nil
}
