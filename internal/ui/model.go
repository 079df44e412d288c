package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formdeck/internal/autocomplete"
	"formdeck/internal/config"
	"formdeck/internal/domain"
	"formdeck/internal/eventbus"
	"formdeck/internal/store"
	"formdeck/internal/ui/widgets"
)

// Catalog is the backend the form searches
type Catalog interface {
	Search(ctx context.Context, term string) ([]domain.Place, error)
	Countries(ctx context.Context, query string) ([]string, error)
}

// PhoneMask lays out the phone field
const PhoneMask = "(ddd) ddd-dddd"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
	eventStyle = lipgloss.NewStyle().
			Faint(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	keys   keyMap
	help   help.Model
	styles *widgets.Styles

	name     *widgets.TextInput
	age      *widgets.NumberInput
	at       *widgets.TextInput
	phone    *widgets.MaskedNumberInput
	category *widgets.SelectInput
	city     *widgets.Autocomplete[domain.Place]
	country  *widgets.SearchField
	fields   []widgets.Field
	entries  *widgets.Table
	focus    int // len(fields) is the entries table
	store    store.EntryStore

	place    domain.Place // last city reported by resolution
	hasPlace bool

	status      string
	statusID    int
	statusAfter time.Duration
	events      *eventLog

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates the form model. Saved entries go to entries, or to a
// fresh in-memory store when it is nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, cat Catalog, entries store.EntryStore) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if entries == nil {
		entries = store.NewMemoryEntryStore()
	}
	styles := widgets.NewStyles()
	m := &Model{
		bus:         bus,
		config:      cfg,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      styles,
		statusAfter: 3 * time.Second,
		events:      newEventLog(cfg.UISettings.EventLogSize),
		store:       entries,
	}

	m.name = widgets.NewTextInput("name", "Name", "Full name", styles)
	m.age = widgets.NewNumberInput("age", "Age", "0", widgets.NumberOptions{Min: 0, Max: 130, Step: 1}, styles)
	m.at = widgets.NewDateInput("time", "Time", styles)
	m.phone = widgets.NewMaskedNumberInput("phone", "Phone", PhoneMask, "(000) 000-0000", styles)
	m.category = widgets.NewSelectInput("category", "Category", "Choose a category", []widgets.Option{
		{Value: "personal", Text: "Personal"},
		{Value: "work", Text: "Work"},
		{Value: "other", Text: "Other"},
	}, styles)

	ac := cfg.Autocomplete
	city, err := widgets.NewAutocomplete(widgets.AutocompleteConfig[domain.Place]{
		Name:        "city",
		Label:       "City",
		Placeholder: "Start typing a city",
		Search:      cat.Search,
		Stringify:   domain.Place.String,
		OnResolved:  m.cityResolved,
		Options: autocomplete.Options{
			DebounceWindow:     ac.DebounceWindow(),
			FireDelay:          ac.FireDelay(),
			SuppressSingleChar: ac.SuppressSingleChar,
			DiscardStale:       ac.DiscardStale,
			ClearOnBlank:       true,
		},
		Bus:    bus,
		Styles: styles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create city field: %w", err)
	}
	m.city = city

	country, err := widgets.NewSearchField(widgets.SearchFieldConfig{
		Name:        "country",
		Label:       "Country lookup",
		Placeholder: "Search countries",
		Search:      cat.Countries,
		OnResponse:  func([]string) tea.Cmd { return nil },
		Delay:       cfg.SearchField.Delay(),
		Bus:         bus,
		Styles:      styles,
	})
	if err != nil {
		city.Close()
		return nil, fmt.Errorf("failed to create country field: %w", err)
	}
	m.country = country

	m.entries, err = widgets.NewTable("entries",
		[]string{"Name", "Age", "Time", "Phone", "Category", "City"},
		[]string{"name", "age", "time", "phone", "category", "city"},
		6,
	)
	if err != nil {
		city.Close()
		country.Close()
		return nil, err
	}
	rows := make([]map[string]string, 0, entries.Len())
	for _, e := range entries.All() {
		rows = append(rows, e.Attributes())
	}
	m.entries.SetData(rows)

	m.fields = []widgets.Field{m.name, m.age, m.at, m.phone, m.category, m.city, m.country}
	m.fields[0].Focus()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("formdeck")
}

// cityResolved runs after every city search is applied
func (m *Model) cityResolved(place domain.Place, ok bool) tea.Cmd {
	m.place, m.hasPlace = place, ok
	if ok {
		m.city.SetError("")
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case widgets.RowSelectedMsg:
		entry, ok := m.store.Get(msg.Index)
		if !ok {
			return m, nil
		}
		return m, m.setStatus(fmt.Sprintf("Entry %d: %s from %s, %s at %s", msg.Index+1, entry.Name, entry.City, entry.Category, entry.Time))

	case EventMsg:
		m.events.add(msg.Event)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only
			log.Printf("%s pager failed: %v", msg.title, msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	// Search traffic is addressed by coordinator id, so every field can see it
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for _, f := range m.fields {
		cmds = append(cmds, f.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.inPagerMode {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Reset):
		return tea.Batch(m.resetForm(), m.setStatus("Form cleared"))
	case key.Matches(msg, m.keys.Help):
		return m.showPager("help", NewHelpRenderer(m.keys).Render())
	case key.Matches(msg, m.keys.Events):
		return m.showPager("event log", m.events.String())
	}

	if m.focus == len(m.fields) {
		return m.entries.Update(msg)
	}
	return m.fields[m.focus].Update(msg)
}

func (m *Model) quit() tea.Cmd {
	m.city.Close()
	m.country.Close()
	return tea.Quit
}

// moveFocus cycles through the fields and the table
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.fields) + 1
	return m.focusAt(((m.focus+delta)%n + n) % n)
}

func (m *Model) focusAt(i int) tea.Cmd {
	if m.focus == len(m.fields) {
		m.entries.Blur()
	} else {
		m.fields[m.focus].Blur()
	}
	m.focus = i
	if i == len(m.fields) {
		return m.entries.Focus()
	}
	return m.fields[i].Focus()
}

// setStatus shows s until the status timeout passes or another status replaces it
func (m *Model) setStatus(s string) tea.Cmd {
	m.statusID++
	m.status = s
	id := m.statusID
	return tea.Tick(m.statusAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// submit validates the form and appends it to the entries table
func (m *Model) submit() tea.Cmd {
	entry, ok := m.validate()
	if !ok {
		return m.setStatus("Fix the highlighted fields")
	}

	m.store.Add(entry)
	m.entries.Append(entry.Attributes())
	if m.bus != nil {
		m.bus.Publish(eventbus.FormSubmittedEvent{Entry: entry})
	}
	log.Printf("Entry saved: %s (%s)", entry.Name, entry.City)
	return tea.Batch(m.resetForm(), m.setStatus("Saved "+entry.Name))
}

// validate sets field errors and builds the entry when everything checks out
func (m *Model) validate() (domain.Entry, bool) {
	for _, f := range m.fields {
		f.SetError("")
	}
	ok := true
	fail := func(f widgets.Field, msg string) {
		f.SetError(msg)
		ok = false
	}

	if strings.TrimSpace(m.name.Value()) == "" {
		fail(m.name, "required")
	}
	if m.age.Value() == "" {
		fail(m.age, "required")
	} else if _, err := m.age.Number(); err != nil {
		fail(m.age, err.Error())
	}
	if m.at.Value() == "" {
		fail(m.at, "required")
	} else if _, err := time.Parse(widgets.TimeLayout, m.at.Value()); err != nil {
		fail(m.at, "expected HH:MM")
	}
	if m.phone.Value() == "" {
		fail(m.phone, "required")
	} else if !m.phone.Complete() {
		fail(m.phone, "incomplete number")
	}
	if m.category.Value() == "" {
		fail(m.category, "choose a category")
	}
	place, resolved := m.city.Resolved()
	if !resolved {
		fail(m.city, "pick a city from the list")
	}
	if !ok {
		return domain.Entry{}, false
	}

	return domain.Entry{
		Name:     strings.TrimSpace(m.name.Value()),
		Age:      m.age.Value(),
		Time:     m.at.Value(),
		Phone:    m.phone.Formatted(),
		Category: m.category.Text(),
		City:     place.Name,
	}, true
}

// resetForm clears every entry field and focuses the first one
func (m *Model) resetForm() tea.Cmd {
	m.name.Reset()
	m.age.Reset()
	m.at.Reset()
	m.phone.Reset()
	m.category.Reset()
	m.city.SetError("")
	m.hasPlace = false
	return tea.Batch(m.city.SetValue(""), m.focusAt(0))
}

// showPager returns a command that shows content using ov pager
func (m *Model) showPager(title, content string) tea.Cmd {
	if m.program == nil {
		return m.setStatus("Pager unavailable")
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{title: title, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	left := make([]string, 0, 5)
	for _, f := range m.fields[:5] {
		left = append(left, f.View())
	}
	right := []string{m.city.View(), m.country.View()}
	if m.config.UISettings.ShowEventLog {
		right = append(right, eventStyle.Render(strings.Join(m.events.tail(6), "\n")))
	}
	form := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)

	city := "City: none selected"
	if m.hasPlace {
		city = fmt.Sprintf("City: %s, %s (%s)", m.place.Name, m.place.Country, m.place.Region)
	}
	statusLine := city
	if m.status != "" {
		statusLine += "  •  " + m.status
	}

	entriesTitle := "Entries"
	if m.entries.Focused() {
		entriesTitle = "» Entries"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("formdeck"),
		form,
		sectionStyle.Render(entriesTitle),
		m.entries.View(),
		statusStyle.Render(statusLine),
		m.help.View(m.keys),
	)
}
