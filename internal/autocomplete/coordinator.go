// Package autocomplete turns keystrokes into a throttled, race-safe stream of
// search calls and decides when the typed text names exactly one result.
//
// A Coordinator is not safe for concurrent use. It is meant to be driven from
// a Bubble Tea Update method: every method that may start work returns a
// tea.Cmd, and every message the coordinator emits comes back through Update.
package autocomplete

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/eventbus"
)

var lastID int64

func nextID() int64 {
	return atomic.AddInt64(&lastID, 1)
}

// Stats counts what the coordinator did; useful for logs and tests
type Stats struct {
	Scheduled  int
	Suppressed int // single-character terms that scheduled nothing
	Coalesced  int // pending searches replaced inside the debounce window
	Superseded int // pending searches replaced outside the debounce window
	Fired      int
	Failed     int
	Applied    int
	Stale      int
}

type pendingSearch struct {
	ticket uint64 // 0 means no search is pending
	term   string
	at     time.Time
}

// Coordinator owns the search term, the pending search slot and the latest
// result set for one field.
type Coordinator[T any] struct {
	id         int64
	name       string
	search     SearchFunc[T]
	stringify  func(T) string
	onResolved func(T, bool) tea.Cmd
	onResults  func([]T) tea.Cmd
	opts       Options
	bus        eventbus.EventBus
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	term       string
	results    []T
	pending    pendingSearch
	nextTicket uint64
	lastChange time.Time
	issued     uint64 // sequence number of the newest dispatched search
	applied    uint64 // sequence number of the newest applied result set
	settled    uint64 // sequence number of the newest search that answered, even with an error
	stats      Stats
}

// New validates cfg and returns a coordinator for an autocomplete field
func New[T any](cfg Config[T]) (*Coordinator[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := build(cfg.Name, cfg.Search, cfg.Options, cfg.Bus, cfg.Now, cfg.Context)
	c.stringify = cfg.Stringify
	c.onResolved = cfg.OnResolved
	return c, nil
}

func build[T any](name string, search SearchFunc[T], opts Options, bus eventbus.EventBus, now func() time.Time, parent context.Context) *Coordinator[T] {
	if now == nil {
		now = time.Now
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Coordinator[T]{
		id:         nextID(),
		name:       name,
		search:     search,
		opts:       opts,
		bus:        bus,
		now:        now,
		ctx:        ctx,
		cancel:     cancel,
		lastChange: now(),
	}
}

// ID identifies the coordinator's messages
func (c *Coordinator[T]) ID() int64 { return c.id }

// Name returns the field name
func (c *Coordinator[T]) Name() string { return c.name }

// Term returns the current search term
func (c *Coordinator[T]) Term() string { return c.term }

// Results returns the latest applied result set
func (c *Coordinator[T]) Results() []T { return c.results }

// Stats returns a snapshot of the counters
func (c *Coordinator[T]) Stats() Stats { return c.stats }

// Pending reports the term of the scheduled-but-unfired search, if any
func (c *Coordinator[T]) Pending() (string, bool) {
	return c.pending.term, c.pending.ticket != 0
}

// Searching reports whether a search is scheduled or still waiting for its answer
func (c *Coordinator[T]) Searching() bool {
	return c.pending.ticket != 0 || c.issued > c.settled
}

// Labels returns the stringified results for display
func (c *Coordinator[T]) Labels() []string {
	if c.stringify == nil {
		return nil
	}
	return Labels(c.results, c.stringify)
}

// ListVisible reports whether the result list should be shown
func (c *Coordinator[T]) ListVisible() bool {
	if c.stringify == nil {
		return false
	}
	return ListVisible(c.term, c.results, c.stringify)
}

// Resolved returns the item the current term uniquely and exactly names
func (c *Coordinator[T]) Resolved() (T, bool) {
	if c.stringify == nil {
		var zero T
		return zero, false
	}
	return Resolve(c.term, c.results, c.stringify)
}

// TermChanged records a new term and (re)schedules a search for it
func (c *Coordinator[T]) TermChanged(term string) tea.Cmd {
	c.term = term
	now := c.now()

	if c.opts.SuppressSingleChar && utf8.RuneCountInString(term) == 1 {
		c.lastChange = now
		c.stats.Suppressed++
		return nil
	}

	if c.pending.ticket != 0 {
		c.cancelPending(now.Sub(c.lastChange) < c.opts.DebounceWindow)
	}

	c.nextTicket++
	c.pending = pendingSearch{ticket: c.nextTicket, term: term, at: now}
	c.lastChange = now
	c.stats.Scheduled++
	c.publish(eventbus.SearchScheduledEvent{Field: c.name, Term: term, Ticket: c.pending.ticket})

	return c.schedule(c.pending.ticket)
}

// SelectIndex treats picking row index as typing that row's text
func (c *Coordinator[T]) SelectIndex(index int) (tea.Cmd, error) {
	if c.stringify == nil {
		return nil, fmt.Errorf("%w: %s has no stringify", ErrInvalidConfig, c.name)
	}
	term, err := SelectTerm(index, c.results, c.stringify)
	if err != nil {
		return nil, err
	}
	return c.TermChanged(term), nil
}

// Update handles the coordinator's own messages and ignores everything else
func (c *Coordinator[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fireMsg:
		if msg.id != c.id {
			return nil
		}
		return c.fire(msg.ticket)

	case resultsMsg[T]:
		if msg.id != c.id {
			return nil
		}
		return c.receive(msg)
	}
	return nil
}

// ApplyResults publishes a result set for the current term and resolves it
func (c *Coordinator[T]) ApplyResults(results []T) tea.Cmd {
	return c.apply(results, c.applied)
}

// Close cancels the context handed to in-flight searches
func (c *Coordinator[T]) Close() {
	c.cancel()
}

func (c *Coordinator[T]) apply(results []T, seq uint64) tea.Cmd {
	if c.opts.ClearOnBlank && isBlank(c.term) {
		results = nil
	}
	c.results = results
	c.stats.Applied++
	c.publish(eventbus.ResultsAppliedEvent{Field: c.name, Term: c.term, Seq: seq, Count: len(results)})

	var cmds []tea.Cmd
	if c.onResults != nil {
		cmds = append(cmds, c.onResults(results))
	}
	if c.onResolved != nil {
		// Read state again: onResults may have changed the term
		item, ok := Resolve(c.term, c.results, c.stringify)
		label := ""
		if ok {
			label = c.stringify(item)
		}
		c.publish(eventbus.SelectionResolvedEvent{Field: c.name, Term: c.term, Label: label, Matched: ok})
		cmds = append(cmds, c.onResolved(item, ok))
	}
	return tea.Batch(cmds...)
}

func (c *Coordinator[T]) cancelPending(coalesced bool) {
	if coalesced {
		c.stats.Coalesced++
	} else {
		c.stats.Superseded++
	}
	c.publish(eventbus.SearchCancelledEvent{
		Field:     c.name,
		Term:      c.pending.term,
		Ticket:    c.pending.ticket,
		Coalesced: coalesced,
	})
	c.pending = pendingSearch{}
}

func (c *Coordinator[T]) schedule(ticket uint64) tea.Cmd {
	id := c.id
	if c.opts.FireDelay <= 0 {
		return func() tea.Msg {
			return fireMsg{id: id, ticket: ticket}
		}
	}
	return tea.Tick(c.opts.FireDelay, func(time.Time) tea.Msg {
		return fireMsg{id: id, ticket: ticket}
	})
}

func (c *Coordinator[T]) fire(ticket uint64) tea.Cmd {
	if ticket == 0 || ticket != c.pending.ticket {
		return nil
	}
	c.pending = pendingSearch{}
	c.issued++
	c.stats.Fired++

	id, seq, term := c.id, c.issued, c.term
	search, ctx := c.search, c.ctx
	c.publish(eventbus.SearchFiredEvent{Field: c.name, Term: term, Seq: seq})

	return func() tea.Msg {
		results, err := search(ctx, term)
		return resultsMsg[T]{id: id, seq: seq, term: term, results: results, err: err}
	}
}

func (c *Coordinator[T]) receive(msg resultsMsg[T]) tea.Cmd {
	if msg.seq > c.settled {
		c.settled = msg.seq
	}
	if msg.err != nil {
		c.stats.Failed++
		log.Printf("Search %s failed for '%s': %v", c.name, msg.term, msg.err)
		c.publish(eventbus.SearchFailedEvent{Field: c.name, Term: msg.term, Seq: msg.seq, Err: msg.err})
		return nil
	}

	if c.opts.DiscardStale && msg.seq < c.applied {
		c.stats.Stale++
		log.Printf("Search %s: dropping stale results #%d for '%s' (applied #%d)", c.name, msg.seq, msg.term, c.applied)
		c.publish(eventbus.StaleResultsDroppedEvent{Field: c.name, Seq: msg.seq, Applied: c.applied})
		return nil
	}
	if msg.seq > c.applied {
		c.applied = msg.seq
	}

	log.Printf("Search %s completed for '%s': found %d results", c.name, msg.term, len(msg.results))
	return c.apply(msg.results, msg.seq)
}

func (c *Coordinator[T]) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
