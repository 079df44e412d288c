package eventbus

import (
	"formdeck/internal/domain"
	"log"
	"runtime/debug"
	"sync"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchScheduled     = domain.EventSearchScheduled
	EventSearchCancelled     = domain.EventSearchCancelled
	EventSearchFired         = domain.EventSearchFired
	EventSearchFailed        = domain.EventSearchFailed
	EventResultsApplied      = domain.EventResultsApplied
	EventStaleResultsDropped = domain.EventStaleResultsDropped
	EventSelectionResolved   = domain.EventSelectionResolved
	EventFormSubmitted       = domain.EventFormSubmitted
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
)

// Re-export domain event types
type SearchScheduledEvent = domain.SearchScheduledEvent
type SearchCancelledEvent = domain.SearchCancelledEvent
type SearchFiredEvent = domain.SearchFiredEvent
type SearchFailedEvent = domain.SearchFailedEvent
type ResultsAppliedEvent = domain.ResultsAppliedEvent
type StaleResultsDroppedEvent = domain.StaleResultsDroppedEvent
type SelectionResolvedEvent = domain.SelectionResolvedEvent
type FormSubmittedEvent = domain.FormSubmittedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// AllEventTypes lists every event type the bus carries
var AllEventTypes = []EventType{
	EventSearchScheduled,
	EventSearchCancelled,
	EventSearchFired,
	EventSearchFailed,
	EventResultsApplied,
	EventStaleResultsDropped,
	EventSelectionResolved,
	EventFormSubmitted,
	EventConfigLoaded,
	EventConfigSaved,
}

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Keystroke-rate events would flood the log
	switch event.Type() {
	case EventSearchScheduled, EventSearchCancelled:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and drops any queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Make a copy to avoid holding lock during handler execution
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			// Handlers run in order on this goroutine
			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// deliver runs one handler and recovers from its panic
func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
