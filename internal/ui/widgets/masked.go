package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/mask"
)

// MaskedNumberInput collects digits and shows them laid out over a mask,
// e.g. "(dd) ddddd dddd" for a phone number.
type MaskedNumberInput struct {
	base
	mask        string
	digits      string
	placeholder string
}

// NewMaskedNumberInput creates a masked digit field
func NewMaskedNumberInput(name, label, pattern, placeholder string, styles *Styles) *MaskedNumberInput {
	return &MaskedNumberInput{
		base:        newBase(name, label, styles),
		mask:        pattern,
		placeholder: placeholder,
	}
}

// Value returns the raw digits
func (m *MaskedNumberInput) Value() string { return m.digits }

// Formatted returns the digits laid out over the mask
func (m *MaskedNumberInput) Formatted() string { return mask.Format(m.mask, m.digits) }

// Complete reports whether every slot of the mask is filled
func (m *MaskedNumberInput) Complete() bool { return len(m.digits) == mask.MaxDigits(m.mask) }

// Reset clears the digits and the error
func (m *MaskedNumberInput) Reset() {
	m.digits = ""
	m.err = ""
}

// Focus focuses the field
func (m *MaskedNumberInput) Focus() tea.Cmd {
	m.focused = true
	return nil
}

// Blur removes focus
func (m *MaskedNumberInput) Blur() { m.focused = false }

// Update accepts digits and backspace
func (m *MaskedNumberInput) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return nil
	}
	switch key.Type {
	case tea.KeyBackspace:
		m.digits = mask.Backspace(m.digits)
		m.err = ""
	case tea.KeyRunes:
		if digits, changed := mask.Accept(m.mask, m.digits, string(key.Runes)); changed {
			m.digits = digits
			m.err = ""
		}
	}
	return nil
}

// View renders the field
func (m *MaskedNumberInput) View() string {
	body := m.styles.Placeholder.Render(m.placeholder)
	if m.digits != "" {
		body = m.styles.Value.Render(m.Formatted())
	}
	if m.focused {
		body += "█"
	}
	return m.render("› "+body, m.styles.Hint.Render(m.mask))
}
