package widgets

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/autocomplete"
	"formdeck/internal/eventbus"
)

// SearchFieldConfig configures a SearchField
type SearchFieldConfig struct {
	Name        string
	Label       string
	Placeholder string
	Search      autocomplete.SearchFunc[string]
	OnResponse  func(results []string) tea.Cmd
	Delay       time.Duration
	Bus         eventbus.EventBus
	Context     context.Context
	Styles      *Styles
}

// SearchField searches once typing pauses and shows the last response inline
type SearchField struct {
	base
	input   textinput.Model
	coord   *autocomplete.Coordinator[string]
	results []string
}

// NewSearchField validates cfg and creates the field
func NewSearchField(cfg SearchFieldConfig) (*SearchField, error) {
	f := &SearchField{}
	coord, err := autocomplete.NewSearchField(autocomplete.SearchFieldConfig[string]{
		Name:   cfg.Name,
		Label:  cfg.Label,
		Search: cfg.Search,
		OnResponse: func(results []string) tea.Cmd {
			f.results = results
			if cfg.OnResponse == nil {
				return nil
			}
			return cfg.OnResponse(results)
		},
		Delay:   cfg.Delay,
		Bus:     cfg.Bus,
		Context: cfg.Context,
	})
	if err != nil {
		return nil, err
	}

	ti := newInput("⌕ ", cfg.Placeholder)
	f.base = newBase(cfg.Name, cfg.Label, cfg.Styles)
	f.input = ti
	f.coord = coord
	return f, nil
}

// Value returns the typed query
func (f *SearchField) Value() string { return f.input.Value() }

// Results returns the last response
func (f *SearchField) Results() []string { return f.results }

// Focus focuses the field
func (f *SearchField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

// Blur removes focus
func (f *SearchField) Blur() {
	f.focused = false
	f.input.Blur()
}

// Close releases the coordinator
func (f *SearchField) Close() { f.coord.Close() }

// Update edits the query and schedules searches
func (f *SearchField) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); !ok {
		cmd := f.coord.Update(msg)
		var inputCmd tea.Cmd
		f.input, inputCmd = f.input.Update(msg)
		return tea.Batch(cmd, inputCmd)
	}
	if !f.focused {
		return nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, f.coord.TermChanged(f.input.Value()))
}

// View renders the query and the last response on one line
func (f *SearchField) View() string {
	summary := ""
	if _, pending := f.coord.Pending(); pending {
		summary = f.styles.Hint.Render("waiting for typing to pause…")
	} else if f.coord.Searching() {
		summary = f.styles.Hint.Render("searching…")
	} else if len(f.results) > 0 {
		summary = f.styles.Hint.Render(strings.Join(f.results, " · "))
	}
	return f.render(f.input.View(), summary)
}
