package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/novanotes/internal/core"
	"github.com/sadopc/novanotes/internal/export"
	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

const toastDuration = 4 * time.Second

// Options configures the interactive app.
type Options struct {
	FocusDuration time.Duration
	AlertInterval time.Duration
	ExportDir     string
	// Bell receives the terminal bell for sound effects. Nil disables it.
	Bell   io.Writer
	Logger *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	core   *core.Store
	db     *store.Store
	opts   Options
	width  int
	height int

	ready       bool
	state       mission.AppState
	activeView  viewState
	showHelp    bool
	paletteOpen bool

	missions     missionsModel
	stats        statsModel
	focus        focusModel
	achievements achievementsModel
	settings     settingsModel
	palette      paletteModel

	help      help.Model
	status    string
	statusErr bool
	toast     []mission.Achievement
	toastSeq  int
}

func NewApp(c *core.Store, db *store.Store, opts Options) App {
	if opts.FocusDuration <= 0 {
		opts.FocusDuration = 25 * time.Minute
	}
	if opts.AlertInterval <= 0 {
		opts.AlertInterval = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := help.New()
	h.ShowAll = false

	return App{
		core:         c,
		db:           db,
		opts:         opts,
		state:        c.State(),
		activeView:   viewMissions,
		missions:     newMissionsModel(c.Now, c.Location()),
		stats:        newStatsModel(db, c.Now, c.Location()),
		focus:        newFocusModel(db, opts.FocusDuration, c.Now),
		achievements: newAchievementsModel(c.Now),
		settings:     newSettingsModel(db, opts),
		palette:      newPaletteModel(),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.rehydrate(),
		tickCmd(),
		alertTickCmd(a.opts.AlertInterval),
	)
}

func (a App) rehydrate() tea.Cmd {
	return func() tea.Msg {
		return readyMsg{err: a.core.Rehydrate(context.Background())}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func alertTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return alertTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.missions.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.achievements.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.palette.width = a.width
		a.stats.buildChart()
		return a, nil

	case readyMsg:
		a.ready = true
		if msg.err != nil {
			a.status, a.statusErr = fmt.Sprintf("Error: %v", msg.err), true
		}
		a.setState(a.core.State())
		// Transient flags survive restarts, so restore the surfaces they describe.
		if a.state.FocusMode {
			a.activeView = viewFocus
		}
		if a.state.ShowCommandPalette {
			a.paletteOpen = true
			cmds = append(cmds, a.palette.open(""))
		}
		cmds = append(cmds, a.stats.refresh(), a.settings.refresh())
		return a, tea.Batch(cmds...)

	case actionMsg:
		return a.dispatch(msg.action)

	case runCommandMsg:
		return a.runCommand(msg.id)

	case tea.KeyMsg:
		if !a.ready {
			if key.Matches(msg, keys.Quit) {
				return a, tea.Quit
			}
			return a, nil
		}

		if a.paletteOpen {
			var cmd tea.Cmd
			var closed bool
			a.palette, cmd, closed = a.palette.update(msg)
			if closed {
				var closeCmd tea.Cmd
				a, closeCmd = a.closePalette()
				return a, tea.Batch(cmd, closeCmd)
			}
			return a, cmd
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Palette):
			return a.openPalette("")
		case key.Matches(msg, keys.Export):
			return a.openPalette("export")
		case key.Matches(msg, keys.Theme):
			return a.dispatch(mission.ToggleTheme{})
		case key.Matches(msg, keys.Sound):
			return a.dispatch(mission.ToggleSound{})
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.setView(viewMissions)
		case key.Matches(msg, keys.Tab2):
			return a.setView(viewStats)
		case key.Matches(msg, keys.Tab3):
			return a.setView(viewFocus)
		case key.Matches(msg, keys.Tab4):
			return a.setView(viewAchievements)
		case key.Matches(msg, keys.Tab5):
			return a.setView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.setView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The focus countdown keeps running on every view.
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case alertTickMsg:
		cmds = append(cmds, alertTickCmd(a.opts.AlertInterval))
		var cmd tea.Cmd
		a.missions, cmd = a.missions.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case focusStatsMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case toastExpiredMsg:
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case focusDoneMsg:
		a.status, a.statusErr = "Focus session complete", false
		if msg.todoText != "" {
			a.status = fmt.Sprintf("Focus session complete: %s", msg.todoText)
		}
		return a, tea.Batch(chime(a.opts.Bell, a.state.SoundEnabled), a.stats.refresh())

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.statusErr = "Exported to "+msg.path, false
		a.opts.Logger.Info("export written", "path", msg.path)
		return a, nil
	}

	return a.updateActiveView(msg)
}

// dispatch runs an action through the core store and fans the new state out
// to every view.
func (a App) dispatch(action mission.Action) (App, tea.Cmd) {
	prev := a.state
	if err := a.core.Dispatch(action); err != nil {
		a.status, a.statusErr = fmt.Sprintf("Error: %v", err), true
		return a, nil
	}
	next := a.core.State()
	a.setState(next)

	var cmds []tea.Cmd
	if unlocked := mission.NewlyUnlocked(prev, next); len(unlocked) > 0 {
		a.toast = unlocked
		a.toastSeq++
		seq := a.toastSeq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}))
	}
	if wantsChime(action, prev, next) {
		cmds = append(cmds, chime(a.opts.Bell, next.SoundEnabled))
	}
	cmds = append(cmds, a.settings.refresh())
	return a, tea.Batch(cmds...)
}

// wantsChime reports whether action deserves a sound effect: adding a
// mission, completing one, or unlocking an achievement.
func wantsChime(action mission.Action, prev, next mission.AppState) bool {
	if mission.UnlockedCount(next) > mission.UnlockedCount(prev) {
		return true
	}
	switch act := action.(type) {
	case mission.AddTodo:
		return len(next.Todos) > len(prev.Todos)
	case mission.ToggleTodo:
		i := next.Find(act.ID)
		return i >= 0 && next.Todos[i].Completed
	}
	return false
}

func (a *App) setState(s mission.AppState) {
	a.state = s
	applyTheme(s.Theme)
	a.missions.setState(s)
	a.stats.setState(s)
	a.focus.setState(s)
	a.achievements.setState(s)
	a.settings.setState(s)
}

// setView switches views. Focus mode is on exactly while the focus view is
// showing.
func (a App) setView(v viewState) (App, tea.Cmd) {
	var cmds []tea.Cmd
	a.activeView = v

	if (v == viewFocus) != a.state.FocusMode {
		var cmd tea.Cmd
		a, cmd = a.dispatch(mission.ToggleFocusMode{})
		cmds = append(cmds, cmd)
	}

	switch v {
	case viewStats:
		cmds = append(cmds, a.stats.refresh())
	case viewSettings:
		cmds = append(cmds, a.settings.refresh())
	}
	return a, tea.Batch(cmds...)
}

func (a App) openPalette(query string) (App, tea.Cmd) {
	a.paletteOpen = true
	cmd := a.palette.open(query)
	if a.state.ShowCommandPalette {
		return a, cmd
	}
	var dcmd tea.Cmd
	a, dcmd = a.dispatch(mission.ToggleCommandPalette{})
	return a, tea.Batch(cmd, dcmd)
}

func (a App) closePalette() (App, tea.Cmd) {
	a.paletteOpen = false
	a.palette.close()
	if !a.state.ShowCommandPalette {
		return a, nil
	}
	return a.dispatch(mission.ToggleCommandPalette{})
}

func (a App) runCommand(id commandID) (App, tea.Cmd) {
	switch id {
	case cmdAddMission:
		var cmd, formCmd tea.Cmd
		a, cmd = a.setView(viewMissions)
		a.missions, formCmd = a.missions.showAddForm()
		return a, tea.Batch(cmd, formCmd)
	case cmdShowAll, cmdShowActive, cmdShowCompleted:
		f := map[commandID]mission.Filter{
			cmdShowAll:       mission.FilterAll,
			cmdShowActive:    mission.FilterPending,
			cmdShowCompleted: mission.FilterCompleted,
		}[id]
		var cmd, dcmd tea.Cmd
		a, cmd = a.setView(viewMissions)
		a, dcmd = a.dispatch(mission.SetFilter{Filter: f})
		return a, tea.Batch(cmd, dcmd)
	case cmdToggleTheme:
		return a.dispatch(mission.ToggleTheme{})
	case cmdFocusMode:
		return a.setView(viewFocus)
	case cmdToggleSound:
		return a.dispatch(mission.ToggleSound{})
	case cmdExportCSV:
		return a, a.doExport("csv")
	case cmdExportJSON:
		return a, a.doExport("json")
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewMissions:
		a.missions, cmd = a.missions.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewMissions:
		return a.missions.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 || !a.ready {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewMissions:
		content = a.missions.view()
	case viewStats:
		content = a.stats.view()
	case viewFocus:
		content = a.focus.view()
	case viewAchievements:
		content = a.achievements.view()
	case viewSettings:
		content = a.settings.view()
	}

	if a.paletteOpen {
		content = a.palette.view(a.width - 4)
	}
	if len(a.toast) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderToast(), content)
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("✦ novanotes")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Focus countdown indicator in footer
	timerInfo := ""
	if a.focus.timer.running() {
		left := formatCountdown(a.focus.timer.remaining)
		timerInfo = successStyle.Render(" ● " + left)
		if a.focus.timer.paused() {
			timerInfo = warningStyle.Render(" ⏸ " + left)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) doExport(format string) tea.Cmd {
	todos := a.state.Todos
	path := filepath.Join(a.opts.ExportDir, export.DefaultFilename(format, a.core.Now()))
	return func() tea.Msg {
		var err error
		if format == "csv" {
			err = export.ToCSV(todos, path)
		} else {
			err = export.ToJSON(todos, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
