package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

type focusModel struct {
	db     *store.Store
	width  int
	height int

	timer countdownModel
	open  []mission.Todo

	// Task picker; cursor 0 is "no task".
	cursor    int
	todoID    string
	todoText  string
	sessionID int64
}

func newFocusModel(db *store.Store, length time.Duration, now func() time.Time) focusModel {
	return focusModel{
		db:    db,
		timer: newCountdown(length, now),
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *focusModel) setState(s mission.AppState) {
	f.open = mission.Visible(s.Todos, mission.FilterPending)
	if f.cursor > len(f.open) {
		f.cursor = len(f.open)
	}
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if f.timer.tick() {
			return f.finish()
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if !f.timer.running() && f.cursor > 0 {
				f.cursor--
			}
		case key.Matches(msg, keys.Down):
			if !f.timer.running() && f.cursor < len(f.open) {
				f.cursor++
			}
		case key.Matches(msg, keys.Start):
			if !f.timer.running() {
				return f.startSession()
			}
		case key.Matches(msg, keys.Pause):
			f.timer.toggle()
		case key.Matches(msg, keys.Reset):
			if f.timer.running() {
				return f.cancelSession()
			}
		}
	}
	return f, nil
}

func (f focusModel) startSession() (focusModel, tea.Cmd) {
	f.todoID, f.todoText = "", ""
	if f.cursor > 0 && f.cursor <= len(f.open) {
		t := f.open[f.cursor-1]
		f.todoID, f.todoText = t.ID, t.Text
	}
	session, err := f.db.StartFocus(f.todoID, f.timer.length)
	if err != nil {
		return f, errStatus(err)
	}
	f.sessionID = session.ID
	f.timer.start()
	return f, func() tea.Msg { return statusMsg{text: "Focus session started"} }
}

func (f focusModel) finish() (focusModel, tea.Cmd) {
	var cmds []tea.Cmd
	if f.sessionID > 0 {
		if err := f.db.CompleteFocus(f.sessionID); err != nil {
			cmds = append(cmds, errStatus(err))
		}
		f.sessionID = 0
	}
	f.timer.reset()
	text := f.todoText
	cmds = append(cmds, func() tea.Msg { return focusDoneMsg{todoText: text} })
	return f, tea.Batch(cmds...)
}

func (f focusModel) cancelSession() (focusModel, tea.Cmd) {
	var err error
	if f.sessionID > 0 {
		err = f.db.CancelFocus(f.sessionID)
		f.sessionID = 0
	}
	f.timer.reset()
	if err != nil {
		return f, errStatus(err)
	}
	return f, func() tea.Msg { return statusMsg{text: "Focus session reset"} }
}

func (f focusModel) view() string {
	w := f.width - 4

	title := titleStyle.Render("Focus Mode")

	var timeDisplay, indicator string
	switch {
	case f.timer.paused():
		timeDisplay = timerPausedStyle.Width(w - 6).Render(formatCountdown(f.timer.remaining))
		indicator = warningStyle.Render("⏸  PAUSED")
	case f.timer.running():
		timeDisplay = timerRunningStyle.Width(w - 6).Render(formatCountdown(f.timer.remaining))
		indicator = successStyle.Render("●  FOCUSING")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(f.timer.length))
		indicator = mutedStyle.Render("Ready for launch")
	}

	content := []string{title, "", timeDisplay, indicator, "", f.renderProgress(w - 10)}

	if f.timer.running() {
		task := mutedStyle.Render("Free focus")
		if f.todoText != "" {
			task = highlightStyle.Render(f.todoText)
		}
		content = append(content, "", task)
	} else {
		content = append(content, "", f.renderPicker())
	}

	var controls string
	if f.timer.running() {
		controls = mutedStyle.Render("space: pause/resume  r: reset")
	} else {
		controls = mutedStyle.Render("↑/↓: pick mission  s: start")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, append(content, "", controls)...),
	)
}

func (f focusModel) renderProgress(w int) string {
	w = max(10, min(w, 50))
	filled := int(f.timer.progress() * float64(w))
	bar := accentStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", w-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, f.timer.progress()*100)
}

func (f focusModel) renderPicker() string {
	rows := []string{titleStyle.Render("Current mission")}
	options := append([]string{"No specific mission"}, make([]string, len(f.open))...)
	for i, t := range f.open {
		options[i+1] = t.Text
	}
	for i, opt := range options {
		cursor := "  "
		style := normalItemStyle
		if i == f.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt))
	}
	return strings.Join(rows, "\n")
}
