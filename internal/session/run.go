package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/message"
	"github.com/victornm/pollquiz/internal/telegram"
)

// StartRequest is everything needed to run a quiz from scratch.
type StartRequest struct {
	CreateSessionRequest
	Recipients []int64
}

// Prepare creates a session and registers its participants. The returned warnings name the
// recipients that could not be registered.
func (s *Service) Prepare(ctx context.Context, req StartRequest) (*domain.Session, []string, error) {
	ss, err := s.CreateSession(ctx, req.CreateSessionRequest)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := s.RegisterParticipants(ctx, ss.SessionID, req.Recipients)
	if err != nil {
		return nil, warnings, err
	}

	ss, err = s.Session(ctx, ss.SessionID)
	if err != nil {
		return nil, warnings, err
	}

	return ss, warnings, nil
}

// Start prepares and runs a session. On a terminal failure the initiator and the registered
// participants get a failure notice and the original error is returned.
func (s *Service) Start(ctx context.Context, req StartRequest) (*domain.Scoreboard, error) {
	ss, _, err := s.Prepare(ctx, req)
	if err != nil {
		s.notifyFailure(ctx, req.Initiator, nil, err)
		return nil, err
	}

	return s.Run(ctx, ss.SessionID)
}

// Run dispatches the session's questions one at a time, waits for every cycle to resolve and
// ranks the participants. Failures of single participants drop them from the session and end
// up as scoreboard warnings. A session that loses all participants fails as a whole.
func (s *Service) Run(ctx context.Context, sessionID string) (*domain.Scoreboard, error) {
	ss, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := ss.begin(s.now()); err != nil {
		return nil, err
	}

	sb, err := s.run(ctx, ss)
	if err != nil {
		ss.abort(s.now())
		slog.ErrorContext(ctx, "session: run failed", "session", sessionID, "error", err)
		s.notifyFailure(ctx, ss.initiator, ss.activeIDs(), err)
		return nil, err
	}

	return sb, nil
}

// begin marks the session as running. A session runs at most once.
func (ss *session) begin(now time.Time) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.active {
		return errors.SessionClosedf("session %s is closed", ss.id)
	}
	if ss.running {
		return errors.SessionClosedf("session %s is already running", ss.id)
	}

	ss.running = true
	ss.startedAt = now
	return nil
}

func (ss *session) abort(now time.Time) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.active = false
	ss.running = false
	ss.endedAt = now
}

func (s *Service) run(ctx context.Context, ss *session) (*domain.Scoreboard, error) {
	s.broadcast(ctx, ss.activeIDs(), message.Intro(len(ss.questions), ss.openPeriod))

	for i, q := range ss.questions {
		if err := s.runQuestion(ctx, ss, i, q); err != nil {
			return nil, err
		}
	}

	sb := s.setSessionResults(ss)

	if s.eb != nil {
		s.eb.Publish(ctx, domain.EventSessionEnded{Scoreboard: *sb})
	}

	s.notifyResults(ctx, ss, sb)

	slog.InfoContext(ctx, "session: finished",
		"session", ss.id, "participants", len(sb.Results), "warnings", len(sb.Warnings))

	return sb, nil
}

// runQuestion is one poll cycle: fan out, arm, collect, record.
func (s *Service) runQuestion(ctx context.Context, ss *session, index int, q domain.Question) error {
	options, correct, err := s.shuffleOptions(q)
	if err != nil {
		return err
	}

	active := ss.activeIDs()
	if len(active) == 0 {
		return errors.Request("sendPoll", fmt.Errorf("question %d: no active participants left", index+1))
	}

	var (
		mu         sync.Mutex
		dispatches = make([]domain.PollDispatch, 0, len(active))
		lastErr    error
	)

	var eg errgroup.Group
	eg.SetLimit(s.batchSize)
	for _, pid := range active {
		eg.Go(func() error {
			pollID, err := s.client.SendPoll(ctx, telegram.Poll{
				Recipient:    pid,
				Question:     q.Prompt,
				Options:      options,
				CorrectIndex: correct,
				OpenPeriod:   ss.openPeriod,
				TraceID:      q.SourceRow,
			})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				// Isolated: the batch goes on without this participant.
				slog.WarnContext(ctx, "session: dispatch failed",
					"session", ss.id, "question", index, "participant", pid, "error", err)
				ss.drop(pid, fmt.Sprintf("question %d not delivered: %v", index+1, err))
				lastErr = err
				return nil
			}

			dispatches = append(dispatches, domain.PollDispatch{
				SessionID:     ss.id,
				QuestionIndex: index,
				ParticipantID: pid,
				PollID:        pollID,
				CorrectOption: correct,
			})
			return nil
		})
	}
	_ = eg.Wait()

	if len(dispatches) == 0 {
		return errors.Request("sendPoll", fmt.Errorf("question %d reached no participant: %w", index+1, lastErr))
	}

	cy := s.collector.Arm(ss.id, index, ss.openPeriod, dispatches)
	answers, err := s.collector.Collect(ctx, cy)
	if err != nil {
		return fmt.Errorf("collect answers for question %d: %w", index+1, err)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for pid, correct := range answers {
		key := domain.AnswerKey{ParticipantID: pid, QuestionIndex: index}
		if _, ok := ss.answers[key]; ok {
			continue
		}
		ss.answers[key] = correct

		if at, ok := cy.AnsweredAt(pid); ok {
			ss.finishedAt[pid] = at
		} else {
			delete(ss.finishedAt, pid)
		}
	}

	return nil
}

// shuffleOptions returns the question's options in random order and the position of the
// correct answer among them.
func (s *Service) shuffleOptions(q domain.Question) ([]string, int, error) {
	options := sample(q.Options, len(q.Options), s.intN)

	for i, o := range options {
		if o == q.CorrectAnswer {
			return options, i, nil
		}
	}

	return nil, 0, errors.Integrityf("question %s: correct answer missing after shuffling", q.SourceRow)
}

func (s *Service) broadcast(ctx context.Context, recipients []int64, text string) {
	var eg errgroup.Group
	eg.SetLimit(s.batchSize)
	for _, r := range recipients {
		eg.Go(func() error {
			if err := s.client.SendMessage(ctx, r, text); err != nil {
				slog.WarnContext(ctx, "session: send message failed", "recipient", r, "error", err)
			}
			return nil
		})
	}
	_ = eg.Wait()
}

// notifyResults sends every participant still reachable a personal summary and the initiator
// the scoreboard.
func (s *Service) notifyResults(ctx context.Context, ss *session, sb *domain.Scoreboard) {
	var eg errgroup.Group
	eg.SetLimit(s.batchSize)
	for _, r := range sb.Results {
		if r.Dropped {
			continue
		}
		eg.Go(func() error {
			if err := s.client.SendMessage(ctx, r.UserID, message.ParticipantSummary(r, len(sb.Results))); err != nil {
				slog.WarnContext(ctx, "session: send summary failed",
					"session", ss.id, "participant", r.UserID, "error", err)
			}
			return nil
		})
	}
	_ = eg.Wait()

	if ss.initiator != 0 {
		if err := s.client.SendMessage(ctx, ss.initiator, message.Scoreboard(*sb)); err != nil {
			slog.WarnContext(ctx, "session: send scoreboard failed", "session", ss.id, "error", err)
		}
	}
}

// notifyFailure is best-effort. Its own errors are logged and never replace cause.
func (s *Service) notifyFailure(ctx context.Context, initiator int64, participants []int64, cause error) {
	ctx = context.WithoutCancel(ctx)

	recipients := participants
	if initiator != 0 {
		recipients = append([]int64{initiator}, participants...)
	}

	s.broadcast(ctx, unique(recipients), message.FailureNotice(cause))
}
