package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/eventbus"
)

// DefaultSearchFieldDelay is how long a search field waits after the last
// keystroke before searching.
const DefaultSearchFieldDelay = 500 * time.Millisecond

// SearchFieldConfig wires a plain debounced search field. Unlike an
// autocomplete it never resolves a selection; every result set goes to
// OnResponse as-is.
type SearchFieldConfig[T any] struct {
	Name       string
	Label      string
	Search     SearchFunc[T]
	OnResponse func(results []T) tea.Cmd
	Delay      time.Duration

	Bus     eventbus.EventBus
	Now     func() time.Time
	Context context.Context
}

// NewSearchField returns a coordinator that searches Delay after the last
// keystroke, with no single-character suppression.
func NewSearchField[T any](cfg SearchFieldConfig[T]) (*Coordinator[T], error) {
	var missing []string
	if strings.TrimSpace(cfg.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(cfg.Label) == "" {
		missing = append(missing, "label")
	}
	if cfg.Search == nil {
		missing = append(missing, "search")
	}
	if cfg.OnResponse == nil {
		missing = append(missing, "onResponse")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultSearchFieldDelay
	}
	opts := Options{
		DebounceWindow: delay,
		FireDelay:      delay,
		DiscardStale:   true,
	}

	c := build(cfg.Name, cfg.Search, opts, cfg.Bus, cfg.Now, cfg.Context)
	c.onResults = cfg.OnResponse
	return c, nil
}
