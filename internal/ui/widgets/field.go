// Package widgets holds the form fields the demo application is built from.
// Each field is a small Bubble Tea component: Update returns a command and
// View returns the rendered block.
package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is the contract the form model drives every widget through
type Field interface {
	Name() string
	Label() string
	Value() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	SetError(msg string)
	Error() string
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// base carries the label/error/focus bookkeeping every field shares
type base struct {
	name    string
	label   string
	err     string
	focused bool
	styles  *Styles
}

func newBase(name, label string, styles *Styles) base {
	if styles == nil {
		styles = NewStyles()
	}
	return base{name: name, label: label, styles: styles}
}

func (b *base) Name() string        { return b.name }
func (b *base) Label() string       { return b.label }
func (b *base) Focused() bool       { return b.focused }
func (b *base) SetError(msg string) { b.err = msg }
func (b *base) Error() string       { return b.err }

// render lays out label, body and error the same way for every field
func (b *base) render(body string, extra ...string) string {
	labelStyle := b.styles.Label
	group := b.styles.Group
	if b.focused {
		labelStyle = b.styles.FocusedLabel
		group = b.styles.FocusedGroup
	}

	lines := []string{labelStyle.Render(b.label), body}
	for _, e := range extra {
		if e != "" {
			lines = append(lines, e)
		}
	}
	if b.err != "" {
		lines = append(lines, b.styles.Error.Render(b.err))
	}
	return group.Render(strings.Join(lines, "\n"))
}

// newInput builds the text input every typed field wraps. The cursor does not
// blink, so focus and edits never leave timers behind in the command stream.
func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}
