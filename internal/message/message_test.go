package message_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/message"
)

func TestScoreboard(t *testing.T) {
	sb := domain.Scoreboard{
		SessionID: "s1",
		Questions: 3,
		Results: []domain.Result{
			{
				Identity:       domain.Identity{UserID: 1, FirstName: "A<b>"},
				Rank:           1,
				Correct:        3,
				Total:          3,
				Percentage:     decimal.NewFromInt(100),
				CompletionTime: 30 * time.Second,
			},
			{
				Identity:       domain.Identity{UserID: 2, Username: "bee"},
				Rank:           2,
				Correct:        1,
				Incorrect:      2,
				Total:          3,
				Percentage:     decimal.RequireFromString("33.33"),
				CompletionTime: 45 * time.Second,
				Dropped:        true,
			},
		},
		Warnings: []string{"participant 3: chat not found"},
	}

	got := message.Scoreboard(sb)

	assert.Contains(t, got, "1. A&lt;b&gt;: 3/3 (100.00%) in 30s")
	assert.Contains(t, got, "2. @bee: 1/3 (33.33%) in 45s <i>(dropped)</i>")
	assert.Contains(t, got, "<b>Warnings</b>\n- participant 3: chat not found")
}

func TestParticipantSummary(t *testing.T) {
	got := message.ParticipantSummary(domain.Result{
		Rank:           1,
		Correct:        3,
		Incorrect:      2,
		Total:          5,
		Percentage:     decimal.NewFromInt(60),
		CompletionTime: 90 * time.Second,
	}, 1)

	assert.Contains(t, got, "Correct: 3")
	assert.Contains(t, got, "Incorrect: 2")
	assert.Contains(t, got, "Score: 60.00%")
	assert.Contains(t, got, "Time: 1m30s")
	assert.Contains(t, got, "Rank: 1 of 1")
	assert.NotContains(t, got, "removed")
}

func TestFullQuestion(t *testing.T) {
	got := message.FullQuestion("a < b?", []string{"yes", "no"})
	assert.Equal(t, "<b>Full question</b>\na &lt; b?\n\n1. yes\n2. no", got)
}

func TestFailureNotice(t *testing.T) {
	assert.Equal(t, "<b>Quiz aborted</b>\nno participants &amp; no quiz", message.FailureNotice(stderrors.New("no participants & no quiz")))
}
