package session

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/victornm/pollquiz/internal/domain"
)

// setSessionResults turns the recorded answers into per participant results, closes the session
// and ranks the results. A missing answer counts as incorrect.
//
// Completion time runs from joining to the participant's last read answer, not to the moment the
// session ends, so a fast participant keeps the shorter time. Participants whose last question
// timed out, or who were dropped, finish when the session ends.
func (s *Service) setSessionResults(ss *session) *domain.Scoreboard {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.endedAt = s.now()
	ss.active = false
	ss.running = false

	total := len(ss.questions)
	results := make([]domain.Result, 0, len(ss.order))
	for _, id := range ss.order {
		p := ss.participants[id]

		correct := 0
		for q := range total {
			if ss.answers[domain.AnswerKey{ParticipantID: id, QuestionIndex: q}] {
				correct++
			}
		}

		finished := ss.endedAt
		if at, ok := ss.finishedAt[id]; ok && p.Active {
			finished = at
		}

		results = append(results, domain.Result{
			Identity:       p.Identity,
			Correct:        correct,
			Incorrect:      total - correct,
			Total:          total,
			Percentage:     percentage(correct, total),
			CompletionTime: max(finished.Sub(p.JoinedAt), 0),
			Dropped:        !p.Active,
		})
	}

	Rank(results)

	ss.scoreboard = &domain.Scoreboard{
		SessionID: ss.id,
		Questions: total,
		StartedAt: ss.startedAt,
		EndedAt:   ss.endedAt,
		Results:   results,
		Warnings:  slices.Clone(ss.warnings),
	}

	sb := *ss.scoreboard
	return &sb
}

func percentage(correct, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

// Rank orders results by correct answers, then by completion time, then by participant id, and
// assigns 1-based ranks in that order.
func Rank(results []domain.Result) {
	slices.SortStableFunc(results, func(a, b domain.Result) int {
		if c := cmp.Compare(b.Correct, a.Correct); c != 0 {
			return c
		}
		if c := cmp.Compare(a.CompletionTime, b.CompletionTime); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	for i := range results {
		results[i].Rank = i + 1
	}
}
