package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Option is one choice of a SelectInput
type Option struct {
	Value string
	Text  string
}

// SelectInput cycles through a fixed list of options with left/right.
// Position -1 is the default option, whose value is empty.
type SelectInput struct {
	base
	options       []Option
	defaultOption string
	index         int
}

// NewSelectInput creates a select field
func NewSelectInput(name, label, defaultOption string, options []Option, styles *Styles) *SelectInput {
	return &SelectInput{
		base:          newBase(name, label, styles),
		options:       append([]Option(nil), options...),
		defaultOption: defaultOption,
		index:         -1,
	}
}

// Value returns the selected option's value, or "" for the default option
func (s *SelectInput) Value() string {
	if s.index < 0 {
		return ""
	}
	return s.options[s.index].Value
}

// Text returns the selected option's display text
func (s *SelectInput) Text() string {
	if s.index < 0 {
		return s.defaultOption
	}
	return s.options[s.index].Text
}

// Select picks the option with the given value; unknown values select the default
func (s *SelectInput) Select(value string) {
	s.index = -1
	for i, o := range s.options {
		if o.Value == value {
			s.index = i
			return
		}
	}
}

// Reset returns to the default option
func (s *SelectInput) Reset() {
	s.index = -1
	s.err = ""
}

// Focus focuses the field
func (s *SelectInput) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes focus
func (s *SelectInput) Blur() { s.focused = false }

// Update moves between options
func (s *SelectInput) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !s.focused || len(s.options) == 0 {
		return nil
	}
	// Positions run from -1 (default) to len-1
	n := len(s.options) + 1
	switch key.String() {
	case "right", "l", " ":
		s.index = (s.index+2)%n - 1
		s.err = ""
	case "left", "h":
		s.index = (s.index+n)%n - 1
		s.err = ""
	}
	return nil
}

// View renders the field
func (s *SelectInput) View() string {
	text := s.styles.Value.Render(s.Text())
	if s.index < 0 {
		text = s.styles.Placeholder.Render(s.Text())
	}
	return s.render("‹ " + text + " ›")
}
