package ui

import (
	"formdeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// clearStatusMsg clears the status line unless a newer status replaced it
type clearStatusMsg struct {
	id int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
