package widgets

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrColumnMismatch is returned when a table gets a different number of
// labels and attributes.
var ErrColumnMismatch = errors.New("widgets: invalid number of labels/attributes")

// RowSelectedMsg is sent when enter is pressed on a table row
type RowSelectedMsg struct {
	Table string
	Index int
	Row   map[string]string
}

// Table shows rows of attribute maps. Labels name the columns and
// attributes pick the map key shown in each column, in the same order.
type Table struct {
	name       string
	labels     []string
	attributes []string
	data       []map[string]string
	model      table.Model
	focused    bool
}

// NewTable creates a table; labels and attributes must pair up one to one
func NewTable(name string, labels, attributes []string, height int) (*Table, error) {
	if len(labels) != len(attributes) {
		return nil, fmt.Errorf("%w: %d labels, %d attributes", ErrColumnMismatch, len(labels), len(attributes))
	}

	columns := make([]table.Column, len(labels))
	for i, l := range labels {
		columns[i] = table.Column{Title: l, Width: max(lipgloss.Width(l), 10)}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("226")).
		Background(lipgloss.Color("238")).
		Bold(false)

	model := table.New(
		table.WithColumns(columns),
		table.WithHeight(height),
		table.WithStyles(styles),
	)

	return &Table{
		name:       name,
		labels:     append([]string(nil), labels...),
		attributes: append([]string(nil), attributes...),
		model:      model,
	}, nil
}

// Name returns the table name
func (t *Table) Name() string { return t.name }

// Len returns the number of rows
func (t *Table) Len() int { return len(t.data) }

// SelectedIndex returns the cursor row, or -1 when the table is empty
func (t *Table) SelectedIndex() int {
	if len(t.data) == 0 {
		return -1
	}
	return t.model.Cursor()
}

// SetData replaces all rows
func (t *Table) SetData(data []map[string]string) {
	t.data = append([]map[string]string(nil), data...)
	t.refresh()
}

// Append adds one row at the bottom
func (t *Table) Append(row map[string]string) {
	t.data = append(t.data, row)
	t.refresh()
	t.model.SetCursor(len(t.data) - 1)
}

func (t *Table) refresh() {
	rows := make([]table.Row, len(t.data))
	columns := t.model.Columns()
	for i, obj := range t.data {
		row := make(table.Row, len(t.attributes))
		for j, attr := range t.attributes {
			row[j] = obj[attr]
			if w := lipgloss.Width(row[j]); w > columns[j].Width {
				columns[j].Width = w
			}
		}
		rows[i] = row
	}
	t.model.SetColumns(columns)
	t.model.SetRows(rows)
}

// Focus focuses the table
func (t *Table) Focus() tea.Cmd {
	t.focused = true
	t.model.Focus()
	return nil
}

// Blur removes focus
func (t *Table) Blur() {
	t.focused = false
	t.model.Blur()
}

// Focused reports whether the table has focus
func (t *Table) Focused() bool { return t.focused }

// Update moves the cursor and reports enter as a RowSelectedMsg
func (t *Table) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !t.focused {
		return nil
	}
	if key.String() == "enter" {
		index := t.SelectedIndex()
		if index < 0 {
			return nil
		}
		row := t.data[index]
		name := t.name
		return func() tea.Msg {
			return RowSelectedMsg{Table: name, Index: index, Row: row}
		}
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return cmd
}

// View renders the table
func (t *Table) View() string {
	return t.model.View()
}
