package collector

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/ratelimit"
	"github.com/victornm/pollquiz/internal/telegram"
	"github.com/victornm/pollquiz/internal/telemetry"
)

const (
	defaultPollInterval = time.Second
	defaultErrorBackoff = 2 * time.Second
)

// Updates is the part of the platform client the collector reads answers from.
type Updates interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration, types []string) ([]telegram.Update, error)
}

type Config struct {
	Updates Updates
	// PollInterval is the pause after a batch without answers.
	PollInterval time.Duration
	// ErrorBackoff is the pause after a failed read.
	ErrorBackoff time.Duration
	// LongPoll caps how long a single read may be held open by the platform.
	LongPoll time.Duration

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Collector correlates poll answers with armed expectations.
//
// The platform allows one reader per bot, so reads are serialized and every update is routed
// to whichever armed cycle it belongs to. The update offset is owned here and carries over
// between cycles.
type Collector struct {
	updates      Updates
	pollInterval time.Duration
	errorBackoff time.Duration
	longPoll     time.Duration
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error

	readMu sync.Mutex

	mu     sync.Mutex
	offset int64
	cycles map[*Cycle]struct{}
}

func New(c Config) *Collector {
	col := &Collector{
		updates:      c.Updates,
		pollInterval: c.PollInterval,
		errorBackoff: c.ErrorBackoff,
		longPoll:     c.LongPoll,
		now:          c.Now,
		sleep:        c.Sleep,
		cycles:       make(map[*Cycle]struct{}),
	}

	if col.pollInterval <= 0 {
		col.pollInterval = defaultPollInterval
	}
	if col.errorBackoff <= 0 {
		col.errorBackoff = defaultErrorBackoff
	}
	if col.longPoll <= 0 {
		col.longPoll = telegram.DefaultLongPollTimeout
	}
	if col.now == nil {
		col.now = time.Now
	}
	if col.sleep == nil {
		col.sleep = ratelimit.Sleep
	}

	return col
}

type expectation struct {
	dispatch   domain.PollDispatch
	answered   bool
	correct    bool
	answeredAt time.Time
}

// Cycle is the answer collection state of one question.
type Cycle struct {
	SessionID     string
	QuestionIndex int

	armedAt  time.Time
	deadline time.Time
	byPoll   map[string]*expectation
	pending  int
}

func (cy *Cycle) Deadline() time.Time {
	return cy.deadline
}

// AnsweredAt reports when the participant's answer was read. Only valid after Collect returned.
func (cy *Cycle) AnsweredAt(participantID int64) (time.Time, bool) {
	for _, e := range cy.byPoll {
		if e.dispatch.ParticipantID == participantID && e.answered {
			return e.answeredAt, true
		}
	}
	return time.Time{}, false
}

// Arm registers an expectation per dispatched poll. The deadline is fixed here and never moves.
// Dispatches for another question or session are ignored.
func (c *Collector) Arm(sessionID string, questionIndex int, timeout time.Duration, dispatches []domain.PollDispatch) *Cycle {
	now := c.now()
	cy := &Cycle{
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		armedAt:       now,
		deadline:      now.Add(timeout),
		byPoll:        make(map[string]*expectation, len(dispatches)),
	}

	for _, d := range dispatches {
		if d.SessionID != sessionID || d.QuestionIndex != questionIndex {
			continue
		}
		if _, ok := cy.byPoll[d.PollID]; ok {
			continue
		}
		cy.byPoll[d.PollID] = &expectation{dispatch: d}
		cy.pending++
	}

	c.mu.Lock()
	c.cycles[cy] = struct{}{}
	c.mu.Unlock()

	return cy
}

// Pending is the number of expectations still waiting for an answer.
func (c *Collector) Pending(cy *Cycle) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cy.pending
}

// Offset is the id of the next update to read.
func (c *Collector) Offset() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Collect reads answers until every expectation of cy is answered or its deadline passes.
// Unanswered expectations resolve to false, so the result holds exactly one entry per armed
// participant. Read failures are retried until the deadline. Only ctx cancellation ends a
// cycle early.
func (c *Collector) Collect(ctx context.Context, cy *Cycle) (map[int64]bool, error) {
	defer c.release(cy)

	for {
		if _, open := c.window(cy); !open {
			break
		}

		matched, err := c.read(ctx, cy)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		switch {
		case err != nil:
			slog.WarnContext(ctx, "collector: get updates failed",
				"session", cy.SessionID, "question", cy.QuestionIndex, "error", err)
			err = c.pause(ctx, cy, c.errorBackoff)
		case matched == 0 && c.Pending(cy) > 0:
			err = c.pause(ctx, cy, c.pollInterval)
		}
		if err != nil {
			return nil, err
		}
	}

	return c.resolve(ctx, cy), nil
}

// window reports how long cy may still wait and whether it is still collecting.
func (c *Collector) window(cy *Cycle) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := cy.deadline.Sub(c.now())
	return remaining, cy.pending > 0 && remaining > 0
}

// read performs one serialized platform read and routes the batch. The platform may hold the
// read open only until the earliest deadline among open cycles.
func (c *Collector) read(ctx context.Context, cy *Cycle) (int, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	// Another reader may have resolved cy while this one waited for the lock.
	if _, open := c.window(cy); !open {
		return 0, nil
	}

	wait, offset := c.readParams()

	readCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	updates, err := c.updates.GetUpdates(readCtx, offset, min(wait, c.longPoll), []string{telegram.UpdatePollAnswer})
	if err != nil {
		return 0, err
	}

	return c.route(updates), nil
}

func (c *Collector) readParams() (time.Duration, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var wait time.Duration
	for cy := range c.cycles {
		if cy.pending == 0 {
			continue
		}
		if r := cy.deadline.Sub(now); r > 0 && (wait == 0 || r < wait) {
			wait = r
		}
	}

	return wait, c.offset
}

// route advances the offset past every update and records the ones matching an armed,
// unanswered expectation. Anything else is a duplicate or late delivery and is dropped.
func (c *Collector) route(updates []telegram.Update) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	matched := 0
	for _, u := range updates {
		if u.UpdateID >= c.offset {
			c.offset = u.UpdateID + 1
		}

		a := u.PollAnswer
		if a == nil || a.User == nil {
			continue
		}

		for cy := range c.cycles {
			e, ok := cy.byPoll[a.PollID]
			if !ok || e.answered || e.dispatch.ParticipantID != a.User.ID {
				continue
			}

			e.answered = true
			e.answeredAt = now
			e.correct = slices.Contains(a.OptionIDs, e.dispatch.CorrectOption)
			cy.pending--
			matched++
			break
		}
	}

	return matched
}

// pause sleeps for d but never past the cycle deadline.
func (c *Collector) pause(ctx context.Context, cy *Cycle, d time.Duration) error {
	remaining, open := c.window(cy)
	if !open {
		return nil
	}
	return c.sleep(ctx, min(d, remaining))
}

func (c *Collector) resolve(ctx context.Context, cy *Cycle) map[int64]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make(map[int64]bool, len(cy.byPoll))
	for _, e := range cy.byPoll {
		res[e.dispatch.ParticipantID] = e.answered && e.correct

		switch {
		case !e.answered:
			telemetry.Answers.WithLabelValues("timeout").Inc()
		case e.correct:
			telemetry.Answers.WithLabelValues("correct").Inc()
		default:
			telemetry.Answers.WithLabelValues("incorrect").Inc()
		}
	}

	slog.InfoContext(ctx, "collector: cycle resolved",
		"session", cy.SessionID, "question", cy.QuestionIndex,
		"expected", len(cy.byPoll), "unanswered", cy.pending)

	return res
}

func (c *Collector) release(cy *Cycle) {
	c.mu.Lock()
	delete(c.cycles, cy)
	armedAt := cy.armedAt
	c.mu.Unlock()

	telemetry.PollCycleSeconds.Observe(c.now().Sub(armedAt).Seconds())
}
