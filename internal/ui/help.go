package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer renders the help page shown in the pager
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// Render generates help content with colors for the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(keys, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(keys), descStyle.Render(desc)))
	}
	binding := func(b key.Binding) {
		line(b.Help().Key, b.Help().Desc)
	}

	help.WriteString(titleStyle.Render("formdeck Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Form"))
	help.WriteString("\n")
	binding(r.keys.Next)
	binding(r.keys.Prev)
	binding(r.keys.Submit)
	binding(r.keys.Reset)
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Fields"))
	help.WriteString("\n")
	line("↑/↓", "Step numbers, move through suggestions")
	line("←/→", "Cycle select options")
	line("enter", "Pick the highlighted suggestion")
	line("backspace", "Delete the last character or digit")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("City search"))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  Typing searches the catalog once two or more characters are entered.\n"))
	help.WriteString(descStyle.Render("  Text that names exactly one place selects it automatically.\n"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	binding(r.keys.Help)
	binding(r.keys.Events)
	binding(r.keys.Quit)

	return help.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show shows content using ov pager
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
