package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/victornm/pollquiz/internal/collector"
	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
	"github.com/victornm/pollquiz/internal/event"
	"github.com/victornm/pollquiz/internal/telegram"
)

const (
	defaultBatchSize  = 5
	defaultOpenPeriod = 30 * time.Second
)

// Client is the messaging platform as seen by a session.
type Client interface {
	SendMessage(ctx context.Context, recipient int64, text string) error
	SendPoll(ctx context.Context, p telegram.Poll) (string, error)
	GetUserInfo(ctx context.Context, recipient int64) (domain.Identity, error)
}

type Collector interface {
	Arm(sessionID string, questionIndex int, timeout time.Duration, dispatches []domain.PollDispatch) *collector.Cycle
	Collect(ctx context.Context, cy *collector.Cycle) (map[int64]bool, error)
}

type Config struct {
	Client    Client
	Collector Collector
	EventBus  *event.Bus
	// OpenPeriod is used when a request does not set one.
	OpenPeriod time.Duration
	// BatchSize bounds concurrent platform calls during fan-out.
	BatchSize int

	Now  func() time.Time
	IntN func(n int) int
}

type Service struct {
	client     Client
	collector  Collector
	eb         *event.Bus
	openPeriod time.Duration
	batchSize  int
	now        func() time.Time
	intN       func(n int) int

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(c Config) *Service {
	s := &Service{
		client:     c.Client,
		collector:  c.Collector,
		eb:         c.EventBus,
		openPeriod: c.OpenPeriod,
		batchSize:  c.BatchSize,
		now:        c.Now,
		intN:       c.IntN,
		sessions:   make(map[string]*session),
	}

	if s.openPeriod <= 0 {
		s.openPeriod = defaultOpenPeriod
	}
	if s.batchSize <= 0 {
		s.batchSize = defaultBatchSize
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.intN == nil {
		s.intN = rand.IntN
	}

	return s
}

// session is owned by the service. Its fields are guarded by mu because snapshots may be taken
// while a run is in progress.
type session struct {
	mu sync.Mutex

	id         string
	questions  []domain.Question
	openPeriod time.Duration
	initiator  int64

	participants map[int64]*domain.Participant
	order        []int64
	answers      map[domain.AnswerKey]bool
	finishedAt   map[int64]time.Time
	warnings     []string

	active     bool
	running    bool
	startedAt  time.Time
	endedAt    time.Time
	scoreboard *domain.Scoreboard
}

// get is the only place that resolves a session id.
func (s *Service) get(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ss, ok := s.sessions[id]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", id)
	}

	return ss, nil
}

// CreateSessionRequest represents a request to create a new quiz session.
type CreateSessionRequest struct {
	// Pool is the set of questions to sample from.
	Pool []domain.Question
	// Count is the requested number of questions. Fewer are used when the pool is smaller.
	Count int
	// OpenPeriod is how long each poll stays open. Zero uses the service default.
	OpenPeriod time.Duration
	// Initiator receives the scoreboard and failure notices. Zero means nobody.
	Initiator int64
}

// CreateSession samples the session's questions and registers it as active.
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.Session, error) {
	if len(req.Pool) == 0 {
		return nil, errors.Validationf("question pool is empty")
	}
	if req.Count < 1 {
		return nil, errors.Validationf("requested question count %d, want at least 1", req.Count)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	openPeriod := req.OpenPeriod
	if openPeriod <= 0 {
		openPeriod = s.openPeriod
	}

	ss := &session{
		id:           id.String(),
		questions:    sample(req.Pool, min(req.Count, len(req.Pool)), s.intN),
		openPeriod:   telegram.ClampOpenPeriod(openPeriod),
		initiator:    req.Initiator,
		participants: make(map[int64]*domain.Participant),
		answers:      make(map[domain.AnswerKey]bool),
		finishedAt:   make(map[int64]time.Time),
		active:       true,
	}

	s.mu.Lock()
	s.sessions[ss.id] = ss
	s.mu.Unlock()

	slog.InfoContext(ctx, "session: created",
		"session", ss.id, "questions", len(ss.questions), "pool", len(req.Pool))

	return ss.snapshot(), nil
}

// sample draws n items without replacement using a Fisher-Yates shuffle of a copy of pool.
func sample[T any](pool []T, n int, intN func(int) int) []T {
	s := slices.Clone(pool)
	for i := len(s) - 1; i > 0; i-- {
		j := intN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
	return s[:n]
}

// AddParticipant registers a participant. Adding a known participant again refreshes the
// identity and keeps the original join time.
func (s *Service) AddParticipant(ctx context.Context, sessionID string, id domain.Identity) error {
	ss, err := s.get(sessionID)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.active {
		return errors.SessionClosedf("session %s is closed", sessionID)
	}

	if p, ok := ss.participants[id.UserID]; ok {
		p.Identity = id
		return nil
	}

	ss.participants[id.UserID] = &domain.Participant{
		Identity: id,
		JoinedAt: s.now(),
		Active:   true,
	}
	ss.order = append(ss.order, id.UserID)

	slog.InfoContext(ctx, "session: participant added", "session", sessionID, "participant", id.UserID)

	return nil
}

// RegisterParticipants resolves every recipient through the platform and adds it. A failed lookup
// only skips that recipient and is returned as a warning. The session is aborted when nobody
// could be registered.
func (s *Service) RegisterParticipants(ctx context.Context, sessionID string, recipients []int64) ([]string, error) {
	if _, err := s.get(sessionID); err != nil {
		return nil, err
	}

	recipients = unique(recipients)
	identities := make([]*domain.Identity, len(recipients))
	failures := make([]error, len(recipients))

	var eg errgroup.Group
	eg.SetLimit(s.batchSize)
	for i, r := range recipients {
		eg.Go(func() error {
			id, err := s.client.GetUserInfo(ctx, r)
			if err != nil {
				failures[i] = err
				return nil
			}
			identities[i] = &id
			return nil
		})
	}
	_ = eg.Wait()

	var (
		warnings   []string
		registered int
	)
	for i, r := range recipients {
		if failures[i] != nil {
			slog.WarnContext(ctx, "session: participant lookup failed",
				"session", sessionID, "participant", r, "error", failures[i])
			warnings = append(warnings, fmt.Sprintf("participant %d skipped: %v", r, failures[i]))
			continue
		}

		if err := s.AddParticipant(ctx, sessionID, *identities[i]); err != nil {
			return warnings, err
		}
		registered++
	}

	ss, err := s.get(sessionID)
	if err != nil {
		return warnings, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.warnings = append(ss.warnings, warnings...)
	if registered == 0 && len(ss.participants) == 0 {
		ss.active = false
		return warnings, errors.Validationf("no participant could be registered for session %s", sessionID)
	}

	return warnings, nil
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Session returns a snapshot of the session.
func (s *Service) Session(_ context.Context, id string) (*domain.Session, error) {
	ss, err := s.get(id)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.snapshot(), nil
}

// Scoreboard returns the ranked outcome of a finished session.
func (s *Service) Scoreboard(_ context.Context, id string) (*domain.Scoreboard, error) {
	ss, err := s.get(id)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.scoreboard == nil {
		return nil, errors.NotFoundf("session %s has not finished", id)
	}

	sb := *ss.scoreboard
	return &sb, nil
}

// snapshot must be called with ss.mu held, or before ss is shared.
func (ss *session) snapshot() *domain.Session {
	ps := make([]domain.Participant, 0, len(ss.order))
	for _, id := range ss.order {
		ps = append(ps, *ss.participants[id])
	}

	return &domain.Session{
		SessionID:    ss.id,
		Questions:    slices.Clone(ss.questions),
		Participants: ps,
		Active:       ss.active,
		StartedAt:    ss.startedAt,
		EndedAt:      ss.endedAt,
	}
}

// activeIDs returns the active participants in join order.
func (ss *session) activeIDs() []int64 {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ids := make([]int64, 0, len(ss.order))
	for _, id := range ss.order {
		if ss.participants[id].Active {
			ids = append(ids, id)
		}
	}
	return ids
}

func (ss *session) drop(id int64, reason string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	p, ok := ss.participants[id]
	if !ok || !p.Active {
		return
	}
	p.Active = false
	p.DropReason = reason
	ss.warnings = append(ss.warnings, fmt.Sprintf("participant %s dropped: %s", p.DisplayName(), reason))
}
