package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/pollquiz/internal/event"
)

func TestBus_PublishSubscribe(t *testing.T) {
	type (
		inputs struct {
			published   []event.Event
			subscribers []subscriber
		}

		outputs struct {
			received map[string][]event.Event
		}
	)

	tests := map[string]struct {
		arrange func() inputs
		assert  func(t *testing.T, out outputs)
	}{
		"a single subscriber should receive correct event": {
			arrange: func() inputs {
				return inputs{
					published: []event.Event{
						eventWithName("session.ended"),
						eventWithName("leaderboard.updated"),
					},
					subscribers: []subscriber{
						{
							name:        "archive",
							subscribeTo: []string{"session.ended"},
						},
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended")}, out.received["archive"])
			},
		},

		"a single subscriber should receive all dispatched event": {
			arrange: func() inputs {
				return inputs{
					published: []event.Event{
						eventWithName("session.ended"),
						eventWithName("session.ended"),
					},
					subscribers: []subscriber{
						{
							name:        "archive",
							subscribeTo: []string{"session.ended"},
						},
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended"), eventWithName("session.ended")}, out.received["archive"])
			},
		},

		"an event should be dispatched to all subscribers": {
			arrange: func() inputs {
				return inputs{
					published: []event.Event{
						eventWithName("session.ended"),
					},
					subscribers: []subscriber{
						{
							name:        "archive",
							subscribeTo: []string{"session.ended"},
						},
						{
							name:        "leaderboard",
							subscribeTo: []string{"session.ended"},
						},
						{
							name:        "notifier",
							subscribeTo: []string{"session.ended"},
						},
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended")}, out.received["archive"])
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended")}, out.received["leaderboard"])
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended")}, out.received["notifier"])
			},
		},

		"multiple events should be dispatched correctly multiple subscribers": {
			arrange: func() inputs {
				return inputs{
					published: []event.Event{
						eventWithName("session.ended"),
						eventWithName("leaderboard.updated"),
						eventWithName("session.ended"),
						eventWithName("session.aborted"),
					},
					subscribers: []subscriber{
						{
							name:        "archive",
							subscribeTo: []string{"session.ended"},
						},
						{
							name:        "leaderboard",
							subscribeTo: []string{"session.ended", "leaderboard.updated"},
						},
						{
							name:        "notifier",
							subscribeTo: []string{"session.aborted", "leaderboard.updated"},
						},
					},
				}
			},

			assert: func(t *testing.T, out outputs) {
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended"), eventWithName("session.ended")}, out.received["archive"])
				assert.ElementsMatch(t, []event.Event{eventWithName("session.ended"), eventWithName("session.ended"), eventWithName("leaderboard.updated")}, out.received["leaderboard"])
				assert.ElementsMatch(t, []event.Event{eventWithName("leaderboard.updated"), eventWithName("session.aborted")}, out.received["notifier"])
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in := tt.arrange()
			mu := sync.Mutex{}
			out := outputs{received: make(map[string][]event.Event)}

			b := event.NewBus()
			for _, s := range in.subscribers {
				for _, e := range s.subscribeTo {
					b.Subscribe(e, func(ctx context.Context, e event.Event) error {
						mu.Lock()
						out.received[s.name] = append(out.received[s.name], e)
						mu.Unlock()
						return nil
					})
				}
			}

			for _, e := range in.published {
				b.Publish(context.Background(), e)
			}
			b.Stop()

			tt.assert(t, out)
		})
	}
}

type eventWithName string

func (e eventWithName) Name() string {
	return string(e)
}

type subscriber struct {
	name        string
	subscribeTo []string
}

func TestBus_SlowHandlerDoesNotBlockOthers(t *testing.T) {
	b := event.NewBus(func(c *event.Config) { c.PoolSize = 1 })

	release := make(chan struct{})
	b.Subscribe("session.ended", func(ctx context.Context, e event.Event) error {
		<-release
		return nil
	})

	fast := make(chan struct{}, 2)
	b.Subscribe("session.ended", func(ctx context.Context, e event.Event) error {
		fast <- struct{}{}
		return nil
	})

	b.Publish(context.Background(), eventWithName("session.ended"))

	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatal("fast handler was blocked by the slow one")
	}

	close(release)
	b.Stop()
}

func TestBus_HandlerFailuresAreContained(t *testing.T) {
	b := event.NewBus(func(c *event.Config) { c.Timeout = 50 * time.Millisecond })

	var (
		mu       sync.Mutex
		deadline bool
	)
	b.Subscribe("session.ended", func(ctx context.Context, e event.Event) error {
		panic("boom")
	})
	b.Subscribe("session.ended", func(ctx context.Context, e event.Event) error {
		return errors.New("failed")
	})
	b.Subscribe("session.ended", func(ctx context.Context, e event.Event) error {
		<-ctx.Done()
		mu.Lock()
		deadline = errors.Is(ctx.Err(), context.DeadlineExceeded)
		mu.Unlock()
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	b.Publish(ctx, eventWithName("session.ended"))
	cancel()

	require.NotPanics(t, b.Stop)
	assert.True(t, deadline, "handlers outlive the publisher's context and stop at their own timeout")
}
