package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchScheduled     EventType = "SearchScheduled"
	EventSearchCancelled     EventType = "SearchCancelled"
	EventSearchFired         EventType = "SearchFired"
	EventSearchFailed        EventType = "SearchFailed"
	EventResultsApplied      EventType = "ResultsApplied"
	EventStaleResultsDropped EventType = "StaleResultsDropped"
	EventSelectionResolved   EventType = "SelectionResolved"
	EventFormSubmitted       EventType = "FormSubmitted"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchScheduledEvent is emitted when a keystroke schedules a search
type SearchScheduledEvent struct {
	Field  string
	Term   string
	Ticket uint64
}

func (e SearchScheduledEvent) Type() EventType { return EventSearchScheduled }

// SearchCancelledEvent is emitted when a pending search is invalidated before it fired.
// Coalesced is true when the replacing keystroke arrived inside the debounce window.
type SearchCancelledEvent struct {
	Field     string
	Term      string
	Ticket    uint64
	Coalesced bool
}

func (e SearchCancelledEvent) Type() EventType { return EventSearchCancelled }

// SearchFiredEvent is emitted when the search function is invoked
type SearchFiredEvent struct {
	Field string
	Term  string
	Seq   uint64
}

func (e SearchFiredEvent) Type() EventType { return EventSearchFired }

// SearchFailedEvent is emitted when the search function returns an error
type SearchFailedEvent struct {
	Field string
	Term  string
	Seq   uint64
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ResultsAppliedEvent is emitted when a result set replaces the previous one
type ResultsAppliedEvent struct {
	Field string
	Term  string
	Seq   uint64
	Count int
}

func (e ResultsAppliedEvent) Type() EventType { return EventResultsApplied }

// StaleResultsDroppedEvent is emitted when a response older than the applied one arrives
type StaleResultsDroppedEvent struct {
	Field   string
	Seq     uint64
	Applied uint64
}

func (e StaleResultsDroppedEvent) Type() EventType { return EventStaleResultsDropped }

// SelectionResolvedEvent is emitted every time match resolution runs
type SelectionResolvedEvent struct {
	Field   string
	Term    string
	Label   string // stringified selection, empty when Matched is false
	Matched bool
}

func (e SelectionResolvedEvent) Type() EventType { return EventSelectionResolved }

// FormSubmittedEvent is emitted when the demo form is submitted
type FormSubmittedEvent struct {
	Entry Entry
}

func (e FormSubmittedEvent) Type() EventType { return EventFormSubmitted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
