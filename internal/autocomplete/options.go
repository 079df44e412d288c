package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/eventbus"
)

// DefaultDebounceWindow is the keystroke window inside which a new term
// coalesces with the pending search.
const DefaultDebounceWindow = 300 * time.Millisecond

// ErrInvalidConfig is returned when a coordinator is built without the
// collaborators it needs.
var ErrInvalidConfig = errors.New("autocomplete: invalid config")

// SearchFunc looks up results for a term. It runs on a command goroutine,
// never on the update loop.
type SearchFunc[T any] func(ctx context.Context, term string) ([]T, error)

// Options tune scheduling and result handling
type Options struct {
	// DebounceWindow classifies a replaced pending search as coalesced
	// (inside the window) or superseded. Either way it is cancelled.
	DebounceWindow time.Duration
	// FireDelay is how long a scheduled search waits before firing.
	// Zero fires on the next turn of the event loop.
	FireDelay time.Duration
	// SuppressSingleChar skips scheduling when the term is one character.
	SuppressSingleChar bool
	// DiscardStale drops responses older than the newest applied one.
	DiscardStale bool
	// ClearOnBlank forces an empty result set while the term is blank.
	ClearOnBlank bool
}

// DefaultOptions returns the autocomplete scheduling policy
func DefaultOptions() Options {
	return Options{
		DebounceWindow:     DefaultDebounceWindow,
		SuppressSingleChar: true,
		DiscardStale:       true,
		ClearOnBlank:       true,
	}
}

// Config wires a coordinator to its host
type Config[T any] struct {
	Name       string
	Label      string
	Search     SearchFunc[T]
	Stringify  func(T) string
	OnResolved func(item T, ok bool) tea.Cmd
	Options    Options

	// Optional collaborators
	Bus     eventbus.EventBus
	Now     func() time.Time
	Context context.Context
}

// Validate reports every missing required field at once
func (c Config[T]) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Label) == "" {
		missing = append(missing, "label")
	}
	if c.Search == nil {
		missing = append(missing, "search")
	}
	if c.Stringify == nil {
		missing = append(missing, "stringify")
	}
	if c.OnResolved == nil {
		missing = append(missing, "onResolved")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	if c.Options.DebounceWindow < 0 || c.Options.FireDelay < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	return nil
}
