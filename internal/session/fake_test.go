package session_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/victornm/pollquiz/internal/collector"
	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/session"
	"github.com/victornm/pollquiz/internal/telegram"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.Advance(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}

// behaviour decides how a participant answers question q. Returning answers=false keeps them silent.
type behaviour func(q int) (correct bool, after time.Duration, answers bool)

func always(correct bool, after time.Duration) behaviour {
	return func(int) (bool, time.Duration, bool) { return correct, after, true }
}

func silent(int) (bool, time.Duration, bool) { return false, 0, false }

type sentPoll struct {
	telegram.Poll
	ID string
}

type scheduledAnswer struct {
	at     time.Time
	answer telegram.PollAnswer
}

// fakePlatform plays the messaging platform: it resolves identities, accepts polls and
// produces poll answers at scripted times on the fake clock.
type fakePlatform struct {
	mu    sync.Mutex
	clock *fakeClock

	identities map[int64]domain.Identity
	behaviours map[int64]behaviour
	// failPollsFrom makes SendPoll fail for a participant from the given question on.
	failPollsFrom map[int64]int

	polls    []sentPoll
	asked    map[int64]int
	messages map[int64][]string
	answers  []scheduledAnswer
	updateID int64
}

func newFakePlatform(clock *fakeClock) *fakePlatform {
	return &fakePlatform{
		clock:         clock,
		identities:    make(map[int64]domain.Identity),
		behaviours:    make(map[int64]behaviour),
		failPollsFrom: make(map[int64]int),
		asked:         make(map[int64]int),
		messages:      make(map[int64][]string),
	}
}

func (f *fakePlatform) join(id int64, name string, b behaviour) {
	f.identities[id] = domain.Identity{UserID: id, FirstName: name}
	f.behaviours[id] = b
}

func (f *fakePlatform) SendMessage(_ context.Context, recipient int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[recipient] = append(f.messages[recipient], text)
	return nil
}

func (f *fakePlatform) GetUserInfo(_ context.Context, recipient int64) (domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.identities[recipient]
	if !ok {
		return domain.Identity{}, fmt.Errorf("chat %d not found", recipient)
	}
	return id, nil
}

func (f *fakePlatform) SendPoll(_ context.Context, p telegram.Poll) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.asked[p.Recipient]
	if from, ok := f.failPollsFrom[p.Recipient]; ok && q >= from {
		return "", fmt.Errorf("bot was blocked by the user")
	}
	f.asked[p.Recipient]++

	id := fmt.Sprintf("poll-%d", len(f.polls)+1)
	f.polls = append(f.polls, sentPoll{Poll: p, ID: id})

	b := f.behaviours[p.Recipient]
	if b == nil {
		return id, nil
	}

	correct, after, answers := b(q)
	if !answers {
		return id, nil
	}

	option := p.CorrectIndex
	if !correct {
		option = (p.CorrectIndex + 1) % len(p.Options)
	}
	f.answers = append(f.answers, scheduledAnswer{
		at: f.clock.Now().Add(after),
		answer: telegram.PollAnswer{
			PollID:    id,
			User:      &telegram.User{ID: p.Recipient},
			OptionIDs: []int{option},
		},
	})

	return id, nil
}

func (f *fakePlatform) GetUpdates(_ context.Context, offset int64, timeout time.Duration, _ []string) ([]telegram.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	if len(f.answers) > 0 {
		earliest := slices.MinFunc(f.answers, func(a, b scheduledAnswer) int { return a.at.Compare(b.at) }).at
		if earliest.After(now) && !earliest.After(now.Add(timeout)) {
			f.clock.Set(earliest)
			now = earliest
		}
	}

	var (
		due  []telegram.Update
		left []scheduledAnswer
	)
	for _, a := range f.answers {
		if a.at.After(now) {
			left = append(left, a)
			continue
		}
		f.updateID++
		due = append(due, telegram.Update{UpdateID: f.updateID, PollAnswer: &a.answer})
	}
	f.answers = left

	if len(due) == 0 {
		f.clock.Advance(timeout)
	}

	return due, nil
}

func (f *fakePlatform) pollsFor(recipient int64) []sentPoll {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ps []sentPoll
	for _, p := range f.polls {
		if p.Recipient == recipient {
			ps = append(ps, p)
		}
	}
	return ps
}

func (f *fakePlatform) messagesFor(recipient int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.messages[recipient])
}

func makeService(clock *fakeClock, platform *fakePlatform, opts ...func(*session.Config)) *session.Service {
	c := session.Config{
		Client: platform,
		Collector: collector.New(collector.Config{
			Updates: platform,
			Now:     clock.Now,
			Sleep:   clock.Sleep,
		}),
		OpenPeriod: 60 * time.Second,
		Now:        clock.Now,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return session.NewService(c)
}

func makePool(n int) []domain.Question {
	pool := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		q, err := domain.NewQuestion(
			fmt.Sprintf("question %d", i),
			fmt.Sprintf("right %d", i),
			[]string{fmt.Sprintf("wrong %d a", i), fmt.Sprintf("wrong %d b", i), fmt.Sprintf("wrong %d c", i)},
			fmt.Sprintf("row %d", i+1),
		)
		if err != nil {
			panic(err)
		}
		pool = append(pool, q)
	}
	return pool
}
