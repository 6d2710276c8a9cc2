package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

type settingsModel struct {
	db     *store.Store
	opts   Options
	width  int
	height int

	state      mission.AppState
	entries    []store.Entry
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	theme *mission.Theme
	sound *bool
}

func newSettingsModel(db *store.Store, opts Options) settingsModel {
	theme := mission.ThemeNebula
	sound := true
	return settingsModel{
		db:    db,
		opts:  opts,
		state: mission.DefaultState(),
		theme: &theme,
		sound: &sound,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) setState(st mission.AppState) {
	s.state = st
}

type settingsDataMsg struct {
	entries []store.Entry
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := s.db.Keys()
		return settingsDataMsg{entries: entries}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.entries = msg.entries
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.theme = s.state.Theme
	*s.sound = s.state.SoundEnabled

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[mission.Theme]().Title("Theme").
				Options(
					huh.NewOption("Nebula", mission.ThemeNebula),
					huh.NewOption("Galaxy", mission.ThemeGalaxy),
				).Value(s.theme),
			huh.NewConfirm().Title("Sound effects").Affirmative("On").Negative("Off").Value(s.sound),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, tea.Batch(s.saveSettings()...)
	}

	return s, cmd
}

// saveSettings dispatches the toggles needed to reach the form values.
func (s settingsModel) saveSettings() []tea.Cmd {
	var cmds []tea.Cmd
	if *s.theme != s.state.Theme {
		cmds = append(cmds, dispatch(mission.ToggleTheme{}))
	}
	if *s.sound != s.state.SoundEnabled {
		cmds = append(cmds, dispatch(mission.ToggleSound{}))
	}
	return cmds
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	sound := "off"
	if s.state.SoundEnabled {
		sound = "on"
	}
	rows := []string{title, ""}
	rows = append(rows, settingRow("theme", string(s.state.Theme)))
	rows = append(rows, settingRow("sound", sound))
	rows = append(rows, settingRow("focus length", fmt.Sprintf("%d min", int(s.opts.FocusDuration/time.Minute))))
	rows = append(rows, settingRow("alert interval", s.opts.AlertInterval.String()))
	rows = append(rows, settingRow("export dir", s.opts.ExportDir))

	if len(s.entries) > 0 {
		rows = append(rows, "", titleStyle.Render("Storage"))
		for _, e := range s.entries {
			rows = append(rows, settingRow(e.Key, fmt.Sprintf("%d bytes, saved %s", len(e.Value), e.UpdatedAt.Local().Format("Jan 02 15:04"))))
		}
	}

	rows = append(rows, "", mutedStyle.Render("enter: edit  t: theme  m: sound"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(k, v string) string {
	label := lipgloss.NewStyle().Width(24).Render(k)
	return fmt.Sprintf("  %s %s", label, highlightStyle.Render(v))
}
