package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeInto sends s one rune at a time
func typeInto(f Field, s string) {
	for _, r := range s {
		f.Update(runes(string(r)))
	}
}

func TestTextInputIgnoresKeysWhenBlurred(t *testing.T) {
	in := NewTextInput("name", "Name", "", nil)
	typeInto(in, "abc")
	assert.Empty(t, in.Value())

	in.Focus()
	typeInto(in, "abc")
	assert.Equal(t, "abc", in.Value())
	assert.Contains(t, in.View(), "Name")
}

func TestDateInputRejectsInvalidTime(t *testing.T) {
	in := NewDateInput("time", "Time", nil)
	in.Focus()

	typeInto(in, "25:61")
	assert.NotEmpty(t, in.Error())

	in.Reset()
	assert.Empty(t, in.Error())
	typeInto(in, "09:30")
	assert.Equal(t, "09:30", in.Value())
	assert.Empty(t, in.Error())
}

func TestNumberInputStepping(t *testing.T) {
	n := NewNumberInput("age", "Age", "", NumberOptions{Min: 0, Max: 3, Step: 2}, nil)
	n.Focus()

	// Stepping an empty field starts from the bound in that direction
	n.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "0", n.Value())
	n.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "2", n.Value())
	n.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "3", n.Value(), "Stepping clamps to max")

	n.Reset()
	n.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "3", n.Value())

	v, err := n.Number()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestNumberInputValidation(t *testing.T) {
	n := NewNumberInput("age", "Age", "", NumberOptions{Min: 0, Max: 120}, nil)
	n.Focus()

	typeInto(n, "x")
	assert.NotEmpty(t, n.Error())

	n.Reset()
	n.SetNumber(500)
	assert.Equal(t, "120", n.Value())
	_, err := n.Number()
	assert.NoError(t, err)
}

func TestNumberInputLoneMinusIsNotANumber(t *testing.T) {
	n := NewNumberInput("age", "Age", "", NumberOptions{Min: -10, Max: 10}, nil)
	n.Focus()

	typeInto(n, "-")
	assert.Equal(t, "-", n.Value())
	assert.Empty(t, n.Error(), "A leading minus is fine while typing")

	_, err := n.Number()
	require.ErrorIs(t, err, ErrNotANumber)
	assert.Equal(t, "not a number", err.Error())
}

func TestDisabledNumberInputIgnoresKeys(t *testing.T) {
	n := NewNumberInput("age", "Age", "n/a", NumberOptions{Max: 10, Disabled: true}, nil)
	n.Focus()
	n.Update(tea.KeyMsg{Type: tea.KeyUp})
	typeInto(n, "4")
	assert.Empty(t, n.Value())
	assert.Contains(t, n.View(), "n/a")
}

func TestMaskedNumberInput(t *testing.T) {
	m := NewMaskedNumberInput("phone", "Phone", "(dd) dddd-dddd", "(00) 0000-0000", nil)
	m.Focus()

	typeInto(m, "11a2")
	assert.Equal(t, "112", m.Value(), "Non-digits are ignored")
	assert.Equal(t, "(11) 2", m.Formatted())
	assert.False(t, m.Complete())

	typeInto(m, "3456789999")
	assert.Equal(t, "1123456789", m.Value(), "Digits beyond the mask are dropped")
	assert.True(t, m.Complete())
	assert.Equal(t, "(11) 2345-6789", m.Formatted())

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "(11) 2345-678", m.Formatted())
}

func TestSelectInputCycles(t *testing.T) {
	s := NewSelectInput("category", "Category", "Choose…", []Option{
		{Value: "a", Text: "Alpha"},
		{Value: "b", Text: "Beta"},
	}, nil)
	s.Focus()

	assert.Equal(t, "", s.Value())
	assert.Equal(t, "Choose…", s.Text())

	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	s.Update(right)
	assert.Equal(t, "a", s.Value())
	s.Update(right)
	assert.Equal(t, "b", s.Value())
	s.Update(right)
	assert.Equal(t, "", s.Value(), "Wraps back to the default option")

	s.Update(left)
	assert.Equal(t, "b", s.Value())

	s.Select("a")
	assert.Equal(t, "Alpha", s.Text())
	s.Select("nope")
	assert.Equal(t, "", s.Value())
}

func TestNewTableRejectsMismatchedColumns(t *testing.T) {
	_, err := NewTable("entries", []string{"Name", "Age"}, []string{"name"}, 5)
	require.ErrorIs(t, err, ErrColumnMismatch)
}

func TestTableAppendAndSelect(t *testing.T) {
	tbl, err := NewTable("entries", []string{"Name", "City"}, []string{"name", "city"}, 5)
	require.NoError(t, err)
	assert.Equal(t, -1, tbl.SelectedIndex())

	tbl.Append(map[string]string{"name": "Ana", "city": "Lisbon"})
	tbl.Append(map[string]string{"name": "Bo", "city": "Oslo"})
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 1, tbl.SelectedIndex(), "Append moves the cursor to the new row")
	assert.Contains(t, tbl.View(), "Lisbon")

	// Enter does nothing without focus
	assert.Nil(t, tbl.Update(tea.KeyMsg{Type: tea.KeyEnter}))

	tbl.Focus()
	tbl.Update(tea.KeyMsg{Type: tea.KeyUp})
	cmd := tbl.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(RowSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, 0, msg.Index)
	assert.Equal(t, "Ana", msg.Row["name"])
	assert.Equal(t, "entries", msg.Table)
}
