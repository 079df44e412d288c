package widgets

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TimeLayout is the value format of a DateInput
const TimeLayout = "15:04"

// TextInput is a single-line free text field
type TextInput struct {
	base
	input textinput.Model
}

// NewTextInput creates a text field
func NewTextInput(name, label, placeholder string, styles *Styles) *TextInput {
	ti := newInput("› ", placeholder)
	return &TextInput{
		base:  newBase(name, label, styles),
		input: ti,
	}
}

// NewDateInput creates a time-of-day field that only accepts HH:MM
func NewDateInput(name, label string, styles *Styles) *TextInput {
	t := NewTextInput(name, label, "HH:MM", styles)
	t.input.CharLimit = len(TimeLayout)
	t.input.Validate = validateTime
	return t
}

func validateTime(s string) error {
	if len(s) < len(TimeLayout) {
		// Partial input is fine while typing
		return nil
	}
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

// Value returns the entered text
func (t *TextInput) Value() string { return t.input.Value() }

// SetValue replaces the entered text
func (t *TextInput) SetValue(v string) { t.input.SetValue(v) }

// Reset clears the field and its error
func (t *TextInput) Reset() {
	t.input.Reset()
	t.err = ""
}

// Focus focuses the field
func (t *TextInput) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur removes focus
func (t *TextInput) Blur() {
	t.focused = false
	t.input.Blur()
}

// Update forwards the message to the text input
func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok && !t.focused {
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		t.err = ""
		if t.input.Err != nil {
			t.err = t.input.Err.Error()
		}
	}
	return cmd
}

// View renders the field
func (t *TextInput) View() string {
	return t.render(t.input.View())
}
