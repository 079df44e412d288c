package widgets

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/autocomplete"
	"formdeck/internal/eventbus"
)

// AutocompleteConfig configures an Autocomplete field
type AutocompleteConfig[T any] struct {
	Name        string
	Label       string
	Placeholder string
	Search      autocomplete.SearchFunc[T]
	Stringify   func(T) string
	OnResolved  func(item T, ok bool) tea.Cmd
	Options     autocomplete.Options
	Bus         eventbus.EventBus
	Context     context.Context
	Styles      *Styles
}

// Autocomplete is a text field with a live result list. When the text names
// exactly one result, that result is reported through OnResolved.
type Autocomplete[T any] struct {
	base
	input  textinput.Model
	coord  *autocomplete.Coordinator[T]
	cursor int
}

// NewAutocomplete validates cfg and creates the field
func NewAutocomplete[T any](cfg AutocompleteConfig[T]) (*Autocomplete[T], error) {
	coord, err := autocomplete.New(autocomplete.Config[T]{
		Name:       cfg.Name,
		Label:      cfg.Label,
		Search:     cfg.Search,
		Stringify:  cfg.Stringify,
		OnResolved: cfg.OnResolved,
		Options:    cfg.Options,
		Bus:        cfg.Bus,
		Context:    cfg.Context,
	})
	if err != nil {
		return nil, err
	}

	ti := newInput("› ", cfg.Placeholder)
	return &Autocomplete[T]{
		base:  newBase(cfg.Name, cfg.Label, cfg.Styles),
		input: ti,
		coord: coord,
	}, nil
}

// Value returns the current search term
func (a *Autocomplete[T]) Value() string { return a.coord.Term() }

// Resolved returns the item the text currently names, if any
func (a *Autocomplete[T]) Resolved() (T, bool) { return a.coord.Resolved() }

// Coordinator exposes the search coordinator driving the field
func (a *Autocomplete[T]) Coordinator() *autocomplete.Coordinator[T] { return a.coord }

// SetValue types v into the field as if the user had entered it
func (a *Autocomplete[T]) SetValue(v string) tea.Cmd {
	a.input.SetValue(v)
	a.cursor = 0
	return a.coord.TermChanged(v)
}

// Focus focuses the field
func (a *Autocomplete[T]) Focus() tea.Cmd {
	a.focused = true
	return a.input.Focus()
}

// Blur removes focus
func (a *Autocomplete[T]) Blur() {
	a.focused = false
	a.input.Blur()
}

// Close releases the coordinator
func (a *Autocomplete[T]) Close() { a.coord.Close() }

// Update routes keys to the input and list, and coordinator messages to the
// coordinator regardless of focus.
func (a *Autocomplete[T]) Update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		cmd := a.coord.Update(msg)
		var inputCmd tea.Cmd
		a.input, inputCmd = a.input.Update(msg)
		a.sync()
		return tea.Batch(cmd, inputCmd)
	}
	if !a.focused {
		return nil
	}

	labels := a.coord.Labels()
	visible := a.coord.ListVisible() && len(labels) > 0
	switch key.String() {
	case "up":
		if visible && a.cursor > 0 {
			a.cursor--
		}
		return nil
	case "down":
		if visible && a.cursor < len(labels)-1 {
			a.cursor++
		}
		return nil
	case "enter":
		if !visible {
			return nil
		}
		cmd, err := a.coord.SelectIndex(a.cursor)
		if err != nil {
			// View and coordinator disagree about the list
			log.Printf("Autocomplete %s: pick failed: %v", a.name, err)
			return nil
		}
		a.cursor = 0
		a.sync()
		return cmd
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return cmd
	}
	a.err = ""
	a.cursor = 0
	return tea.Batch(cmd, a.coord.TermChanged(a.input.Value()))
}

// sync mirrors the coordinator's term into the text input; a resolution
// callback may have changed it.
func (a *Autocomplete[T]) sync() {
	if a.input.Value() != a.coord.Term() {
		a.input.SetValue(a.coord.Term())
		a.input.CursorEnd()
	}
	if n := len(a.coord.Labels()); a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
}

// View renders the input and, when useful, the result list
func (a *Autocomplete[T]) View() string {
	var status string
	if _, ok := a.coord.Resolved(); ok {
		status = a.styles.Resolved.Render("✓ " + a.coord.Term())
	} else if a.coord.Searching() {
		status = a.styles.Hint.Render("searching '" + a.coord.Term() + "'…")
	}

	var list string
	if a.coord.ListVisible() {
		labels := a.coord.Labels()
		if len(labels) == 0 {
			list = a.styles.Hint.Render("  no matches")
		} else {
			lines := make([]string, len(labels))
			for i, l := range labels {
				style := a.styles.ListItem
				if a.focused && i == a.cursor {
					style = a.styles.ListSelected
				}
				lines[i] = style.Render(l)
			}
			list = strings.Join(lines, "\n")
		}
	}
	return a.render(a.input.View(), status, list)
}
