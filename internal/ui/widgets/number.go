package widgets

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotANumber is reported for text that does not parse as a number
var ErrNotANumber = errors.New("not a number")

// NumberInput accepts a number within [Min, Max]; up/down step it by Step
type NumberInput struct {
	base
	input    textinput.Model
	min      float64
	max      float64
	step     float64
	disabled bool
}

// NumberOptions bound a NumberInput
type NumberOptions struct {
	Min      float64
	Max      float64
	Step     float64
	Disabled bool
}

// NewNumberInput creates a numeric field
func NewNumberInput(name, label, placeholder string, opts NumberOptions, styles *Styles) *NumberInput {
	if opts.Step <= 0 {
		opts.Step = 1
	}
	if opts.Max < opts.Min {
		opts.Min, opts.Max = opts.Max, opts.Min
	}
	ti := newInput("# ", placeholder)
	n := &NumberInput{
		base:     newBase(name, label, styles),
		input:    ti,
		min:      opts.Min,
		max:      opts.Max,
		step:     opts.Step,
		disabled: opts.Disabled,
	}
	n.input.Validate = n.validate
	return n
}

func (n *NumberInput) validate(s string) error {
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ErrNotANumber
	}
	if v < n.min || v > n.max {
		return fmt.Errorf("must be between %s and %s", formatNumber(n.min), formatNumber(n.max))
	}
	return nil
}

// Value returns the entered text
func (n *NumberInput) Value() string { return n.input.Value() }

// Number parses the entered value. A lone "-" is accepted while typing but
// is not a number.
func (n *NumberInput) Number() (float64, error) {
	if err := n.validate(n.input.Value()); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(n.input.Value(), 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return v, nil
}

// SetNumber replaces the value, clamped to the bounds
func (n *NumberInput) SetNumber(v float64) {
	v = math.Max(n.min, math.Min(n.max, v))
	n.input.SetValue(formatNumber(v))
	n.err = ""
}

// Reset clears the field and its error
func (n *NumberInput) Reset() {
	n.input.Reset()
	n.err = ""
}

// Focus focuses the field unless it is disabled
func (n *NumberInput) Focus() tea.Cmd {
	n.focused = true
	if n.disabled {
		return nil
	}
	return n.input.Focus()
}

// Blur removes focus
func (n *NumberInput) Blur() {
	n.focused = false
	n.input.Blur()
}

// Update steps on up/down and otherwise edits the text
func (n *NumberInput) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		if !n.focused || n.disabled {
			return nil
		}
		switch key.String() {
		case "up":
			n.stepBy(n.step)
			return nil
		case "down":
			n.stepBy(-n.step)
			return nil
		}
	}

	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		n.err = ""
		if n.input.Err != nil {
			n.err = n.input.Err.Error()
		}
	}
	return cmd
}

func (n *NumberInput) stepBy(delta float64) {
	current, err := strconv.ParseFloat(n.input.Value(), 64)
	if err != nil {
		current = n.min
		if delta < 0 {
			current = n.max
		}
		n.SetNumber(current)
		return
	}
	n.SetNumber(current + delta)
}

// View renders the field
func (n *NumberInput) View() string {
	if n.disabled {
		v := n.input.Value()
		if v == "" {
			v = n.input.Placeholder
		}
		return n.render(n.styles.Disabled.Render(v))
	}
	hint := n.styles.Hint.Render(fmt.Sprintf("%s–%s, step %s", formatNumber(n.min), formatNumber(n.max), formatNumber(n.step)))
	return n.render(n.input.View(), hint)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
