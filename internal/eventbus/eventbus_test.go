package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventSearchFired, func(e DomainEvent) { got <- e })

	b.Publish(SearchFiredEvent{Field: "city", Term: "ca", Seq: 1})

	select {
	case e := <-got:
		fired, ok := e.(SearchFiredEvent)
		require.True(t, ok, "Should receive a SearchFiredEvent")
		assert.Equal(t, "ca", fired.Term)
		assert.Equal(t, uint64(1), fired.Seq)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventFormSubmitted, func(DomainEvent) { calls.Add(1) })
	marker := make(chan struct{}, 1)
	b.Subscribe(EventConfigSaved, func(DomainEvent) { marker <- struct{}{} })

	unsubscribe()
	b.Publish(FormSubmittedEvent{})
	b.Publish(ConfigSavedEvent{Path: "x"})

	select {
	case <-marker:
	case <-time.After(2 * time.Second):
		t.Fatal("marker event was not delivered")
	}
	assert.Equal(t, int32(0), calls.Load(), "Unsubscribed handler should not run")
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan struct{}, 1)
	b.Subscribe(EventSearchFailed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventSearchFailed, func(DomainEvent) { got <- struct{}{} })

	b.Publish(SearchFailedEvent{Field: "city"})

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run after the first panicked")
	}
}

func TestSubscribersSeeEventsInPublishOrder(t *testing.T) {
	b := New()
	defer b.Close()

	const pairs = 200
	type seen struct {
		mu     sync.Mutex
		events []DomainEvent
	}
	subscribers := []*seen{{}, {}}
	done := make(chan struct{}, len(subscribers))
	for _, s := range subscribers {
		record := func(e DomainEvent) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.events = append(s.events, e)
			if len(s.events) == 2*pairs {
				done <- struct{}{}
			}
		}
		b.Subscribe(EventSearchScheduled, record)
		b.Subscribe(EventSearchFired, record)
	}

	for i := 1; i <= pairs; i++ {
		b.Publish(SearchScheduledEvent{Field: "city", Ticket: uint64(i)})
		b.Publish(SearchFiredEvent{Field: "city", Seq: uint64(i)})
	}
	for range subscribers {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("not every event was delivered")
		}
	}

	for _, s := range subscribers {
		s.mu.Lock()
		for i, e := range s.events {
			want := uint64(i/2 + 1)
			if i%2 == 0 {
				scheduled, ok := e.(SearchScheduledEvent)
				require.True(t, ok, "event %d should be SearchScheduled", i)
				assert.Equal(t, want, scheduled.Ticket)
			} else {
				fired, ok := e.(SearchFiredEvent)
				require.True(t, ok, "event %d should be SearchFired", i)
				assert.Equal(t, want, fired.Seq)
			}
		}
		s.mu.Unlock()
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(ConfigLoadedEvent{Path: "x"})
		b.Close()
	})
}
