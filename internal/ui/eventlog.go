package ui

import (
	"fmt"
	"strings"
	"time"

	"formdeck/internal/eventbus"
)

// eventLog keeps the most recent domain events as display lines
type eventLog struct {
	lines []string
	size  int
	now   func() time.Time
}

func newEventLog(size int) *eventLog {
	if size <= 0 {
		size = 1
	}
	return &eventLog{size: size, now: time.Now}
}

func (l *eventLog) add(e eventbus.DomainEvent) {
	line := fmt.Sprintf("%s %-20s %s", l.now().Format("15:04:05.000"), e.Type(), describeEvent(e))
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.size; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// tail returns the last n lines, oldest first
func (l *eventLog) tail(n int) []string {
	if n >= len(l.lines) {
		return l.lines
	}
	return l.lines[len(l.lines)-n:]
}

func (l *eventLog) String() string {
	if len(l.lines) == 0 {
		return "No events yet\n"
	}
	return strings.Join(l.lines, "\n") + "\n"
}

func describeEvent(e eventbus.DomainEvent) string {
	switch ev := e.(type) {
	case eventbus.SearchScheduledEvent:
		return fmt.Sprintf("%s: %q ticket %d", ev.Field, ev.Term, ev.Ticket)
	case eventbus.SearchCancelledEvent:
		reason := "superseded"
		if ev.Coalesced {
			reason = "coalesced"
		}
		return fmt.Sprintf("%s: %q ticket %d %s", ev.Field, ev.Term, ev.Ticket, reason)
	case eventbus.SearchFiredEvent:
		return fmt.Sprintf("%s: %q seq %d", ev.Field, ev.Term, ev.Seq)
	case eventbus.SearchFailedEvent:
		return fmt.Sprintf("%s: %q seq %d: %v", ev.Field, ev.Term, ev.Seq, ev.Err)
	case eventbus.ResultsAppliedEvent:
		return fmt.Sprintf("%s: %q seq %d, %d results", ev.Field, ev.Term, ev.Seq, ev.Count)
	case eventbus.StaleResultsDroppedEvent:
		return fmt.Sprintf("%s: seq %d older than %d", ev.Field, ev.Seq, ev.Applied)
	case eventbus.SelectionResolvedEvent:
		if ev.Matched {
			return fmt.Sprintf("%s: %q -> %s", ev.Field, ev.Term, ev.Label)
		}
		return fmt.Sprintf("%s: %q no match", ev.Field, ev.Term)
	case eventbus.FormSubmittedEvent:
		return fmt.Sprintf("%s (%s)", ev.Entry.Name, ev.Entry.City)
	case eventbus.ConfigLoadedEvent:
		return ev.Path
	case eventbus.ConfigSavedEvent:
		return ev.Path
	default:
		return fmt.Sprintf("%+v", e)
	}
}
