package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type commandID int

const (
	cmdAddMission commandID = iota
	cmdShowAll
	cmdShowActive
	cmdShowCompleted
	cmdToggleTheme
	cmdFocusMode
	cmdToggleSound
	cmdExportCSV
	cmdExportJSON
)

type command struct {
	id          commandID
	title       string
	description string
}

var commands = []command{
	{cmdAddMission, "Add mission", "Create a new mission"},
	{cmdShowAll, "Show all missions", "Clear the filter"},
	{cmdShowActive, "Show active missions", "Only missions still in flight"},
	{cmdShowCompleted, "Show completed missions", "Only finished missions"},
	{cmdToggleTheme, "Toggle theme", "Switch between nebula and galaxy"},
	{cmdFocusMode, "Focus mode", "Open the focus timer"},
	{cmdToggleSound, "Toggle sound", "Turn sound effects on or off"},
	{cmdExportCSV, "Export CSV", "Write all missions to a CSV file"},
	{cmdExportJSON, "Export JSON", "Write all missions to a JSON file"},
}

// runCommandMsg is sent when a palette entry is chosen.
type runCommandMsg struct {
	id commandID
}

// filterCommands matches query against titles and descriptions, ignoring case.
func filterCommands(query string) []command {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return commands
	}
	var out []command
	for _, c := range commands {
		if strings.Contains(strings.ToLower(c.title), q) || strings.Contains(strings.ToLower(c.description), q) {
			out = append(out, c)
		}
	}
	return out
}

type paletteModel struct {
	width   int
	input   textinput.Model
	matches []command
	cursor  int
}

func newPaletteModel() paletteModel {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "› "
	ti.CharLimit = 64
	return paletteModel{input: ti, matches: commands}
}

// open focuses the input, prefilled with query.
func (p *paletteModel) open(query string) tea.Cmd {
	p.input.SetValue(query)
	p.input.CursorEnd()
	p.matches = filterCommands(query)
	p.cursor = 0
	return p.input.Focus()
}

func (p *paletteModel) close() {
	p.input.Blur()
}

// update returns closed=true once the palette should be dismissed.
func (p paletteModel) update(msg tea.KeyMsg) (paletteModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		return p, nil, true
	case msg.Type == tea.KeyEnter:
		if p.cursor < len(p.matches) {
			id := p.matches[p.cursor].id
			return p, func() tea.Msg { return runCommandMsg{id: id} }, true
		}
		return p, nil, false
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP:
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil, false
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN:
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return p, nil, false
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.matches = filterCommands(p.input.Value())
	if p.cursor >= len(p.matches) {
		p.cursor = max(0, len(p.matches)-1)
	}
	return p, cmd, false
}

func (p paletteModel) view(w int) string {
	rows := []string{titleStyle.Render("Command Palette"), "", p.input.View(), ""}
	if len(p.matches) == 0 {
		rows = append(rows, mutedStyle.Render("  No matching commands"))
	}
	for i, c := range p.matches {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+c.title)+mutedStyle.Render("  "+c.description))
	}
	rows = append(rows, "", mutedStyle.Render("  ↑/↓: select  enter: run  esc: close"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
