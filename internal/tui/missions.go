package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/novanotes/internal/mission"
)

var filterOrder = []mission.Filter{mission.FilterAll, mission.FilterPending, mission.FilterCompleted}

var filterLabels = map[mission.Filter]string{
	mission.FilterAll:       "All",
	mission.FilterPending:   "Active",
	mission.FilterCompleted: "Completed",
}

// actionMsg asks the App to dispatch an action.
type actionMsg struct {
	action mission.Action
}

func dispatch(a mission.Action) tea.Cmd {
	return func() tea.Msg { return actionMsg{action: a} }
}

type missionsModel struct {
	width  int
	height int
	now    func() time.Time
	loc    *time.Location

	state     mission.AppState
	visible   []mission.Todo
	cursor    int
	alerts    []mission.Alert
	dismissed map[string]bool

	formActive bool
	form       *huh.Form
	formType   string // "add", "edit"
	editingID  string

	// Form field pointers (survive value copies)
	formText      *string
	formPriority  *mission.Priority
	formCategory  *string
	formDue       *string
	formEstimate  *string
	formRecurring *bool
}

func newMissionsModel(now func() time.Time, loc *time.Location) missionsModel {
	text, cat, due, est := "", "", "", ""
	prio := mission.PriorityMedium
	recurring := false
	return missionsModel{
		now:           now,
		loc:           loc,
		state:         mission.DefaultState(),
		dismissed:     make(map[string]bool),
		formText:      &text,
		formPriority:  &prio,
		formCategory:  &cat,
		formDue:       &due,
		formEstimate:  &est,
		formRecurring: &recurring,
	}
}

func (m *missionsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *missionsModel) setState(s mission.AppState) {
	m.state = s
	m.visible = mission.Visible(s.Todos, s.Filter)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.scanAlerts()
}

func (m *missionsModel) scanAlerts() {
	m.alerts = nil
	for _, a := range mission.Alerts(m.state.Todos, m.now(), m.loc) {
		if !m.dismissed[a.ID] {
			m.alerts = append(m.alerts, a)
		}
	}
}

func (m missionsModel) selected() (mission.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return mission.Todo{}, false
	}
	return m.visible[m.cursor], true
}

func (m missionsModel) update(msg tea.Msg) (missionsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case alertTickMsg:
		m.scanAlerts()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showAddForm()
		case key.Matches(msg, keys.Edit):
			if t, ok := m.selected(); ok {
				return m.showEditForm(t)
			}
		case key.Matches(msg, keys.Toggle):
			if t, ok := m.selected(); ok {
				return m, dispatch(mission.ToggleTodo{ID: t.ID})
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m, dispatch(mission.DeleteTodo{ID: t.ID})
			}
		case key.Matches(msg, keys.MoveUp):
			return m.move(-1)
		case key.Matches(msg, keys.MoveDown):
			return m.move(1)
		case key.Matches(msg, keys.Filter):
			return m, dispatch(mission.SetFilter{Filter: nextFilter(m.state.Filter)})
		case key.Matches(msg, keys.Dismiss):
			if len(m.alerts) > 0 {
				m.dismissed[m.alerts[0].ID] = true
				m.scanAlerts()
			}
		}
	}
	return m, nil
}

func nextFilter(f mission.Filter) mission.Filter {
	for i, v := range filterOrder {
		if v == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return mission.FilterAll
}

// move swaps the selected todo with its visible neighbour.
func (m missionsModel) move(delta int) (missionsModel, tea.Cmd) {
	t, ok := m.selected()
	target := m.cursor + delta
	if !ok || target < 0 || target >= len(m.visible) {
		return m, nil
	}
	to := m.state.Find(m.visible[target].ID)
	reordered, err := mission.Move(m.state.Todos, t.ID, to)
	if err != nil {
		return m, errStatus(err)
	}
	m.cursor = target
	return m, dispatch(mission.ReorderTodos{Todos: reordered})
}

func (m missionsModel) buildForm(withRecurring bool) *huh.Form {
	priorities := []huh.Option[mission.Priority]{
		huh.NewOption("High", mission.PriorityHigh),
		huh.NewOption("Medium", mission.PriorityMedium),
		huh.NewOption("Low", mission.PriorityLow),
	}
	categories := []huh.Option[string]{huh.NewOption("none", "")}
	for _, c := range mission.KnownCategories {
		categories = append(categories, huh.NewOption(c, c))
	}
	if c := *m.formCategory; c != "" && !isKnownCategory(c) {
		categories = append(categories, huh.NewOption(c, c))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Mission").Value(m.formText).Validate(validateText),
		huh.NewSelect[mission.Priority]().Title("Priority").Options(priorities...).Value(m.formPriority),
		huh.NewSelect[string]().Title("Category").Options(categories...).Value(m.formCategory),
		huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDue).Validate(m.validateDue),
		huh.NewInput().Title("Estimated minutes").Value(m.formEstimate).Validate(validateEstimate),
	}
	if withRecurring {
		fields = append(fields, huh.NewConfirm().Title("Recurring?").Value(m.formRecurring))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
}

func isKnownCategory(c string) bool {
	for _, k := range mission.KnownCategories {
		if k == c {
			return true
		}
	}
	return false
}

func (m missionsModel) showAddForm() (missionsModel, tea.Cmd) {
	*m.formText = ""
	*m.formPriority = mission.PriorityMedium
	*m.formCategory = ""
	*m.formDue = ""
	*m.formEstimate = ""
	*m.formRecurring = false
	m.formType = "add"

	m.form = m.buildForm(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m missionsModel) showEditForm(t mission.Todo) (missionsModel, tea.Cmd) {
	*m.formText = t.Text
	*m.formPriority = t.Priority
	*m.formCategory = t.Category
	*m.formDue = ""
	if t.DueDate != nil {
		*m.formDue = mission.DateKey(*t.DueDate, m.loc)
	}
	*m.formEstimate = ""
	if t.EstimatedTime > 0 {
		*m.formEstimate = strconv.Itoa(t.EstimatedTime)
	}
	m.formType = "edit"
	m.editingID = t.ID

	m.form = m.buildForm(false)
	m.formActive = true
	return m, m.form.Init()
}

func (m missionsModel) updateForm(msg tea.Msg) (missionsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		return m, m.submitForm()
	}
	return m, cmd
}

func (m missionsModel) submitForm() tea.Cmd {
	due, err := parseDue(*m.formDue, m.loc)
	if err != nil {
		return errStatus(err)
	}
	est, err := parseEstimate(*m.formEstimate)
	if err != nil {
		return errStatus(err)
	}
	switch m.formType {
	case "add":
		return dispatch(mission.AddTodo{Draft: mission.Draft{
			Text:          *m.formText,
			Priority:      *m.formPriority,
			DueDate:       due,
			Category:      *m.formCategory,
			IsRecurring:   *m.formRecurring,
			EstimatedTime: est,
		}})
	case "edit":
		return dispatch(mission.EditTodo{
			ID:            m.editingID,
			Text:          *m.formText,
			Priority:      *m.formPriority,
			DueDate:       due,
			Category:      *m.formCategory,
			EstimatedTime: est,
		})
	}
	return nil
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return mission.ErrEmptyText
	}
	return nil
}

func (m missionsModel) validateDue(s string) error {
	_, err := parseDue(s, m.loc)
	return err
}

func validateEstimate(s string) error {
	_, err := parseEstimate(s)
	return err
}

func parseDue(s string, loc *time.Location) (*time.Time, error) {
	return mission.ParseDue(s, loc)
}

func parseEstimate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("estimate must be a whole number of minutes")
	}
	return n, nil
}

func (m missionsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Mission")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Mission")
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	var panels []string
	if len(m.alerts) > 0 {
		panels = append(panels, m.renderAlerts(w))
	}
	panels = append(panels, m.renderQuote(w), m.renderList(w))
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m missionsModel) renderQuote(w int) string {
	return panelStyle.Width(w).Padding(0, 2).Render(accentStyle.Italic(true).Render("“" + m.state.DailyQuote + "”"))
}

func (m missionsModel) renderAlerts(w int) string {
	var rows []string
	for _, a := range m.alerts {
		style := warningStyle
		icon := "⏰"
		if a.Kind == mission.AlertOverdue {
			style = errorStyle
			icon = "⚠"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s %s", icon, a.Message)))
	}
	rows = append(rows, mutedStyle.Render("a: dismiss"))
	return activePanelStyle.Width(w).Padding(0, 2).Render(strings.Join(rows, "\n"))
}

func (m missionsModel) renderFilterTabs() string {
	counts := mission.CountsOf(m.state.Todos)
	n := map[mission.Filter]int{
		mission.FilterAll:       counts.All,
		mission.FilterPending:   counts.Pending,
		mission.FilterCompleted: counts.Completed,
	}
	var tabs []string
	for _, f := range filterOrder {
		label := fmt.Sprintf("%s (%d)", filterLabels[f], n[f])
		if f == m.state.Filter {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m missionsModel) renderList(w int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Missions"), "  ", m.renderFilterTabs())

	if len(m.visible) == 0 {
		empty := "No missions yet. Press n to launch one."
		if len(m.state.Todos) > 0 {
			empty = "Nothing under this filter."
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render(empty)),
		)
	}

	rows := []string{header, ""}
	now := m.now()
	for i, t := range m.visible {
		rows = append(rows, m.renderRow(i, t, now))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: complete  d: delete  f: filter  K/J: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m missionsModel) renderRow(i int, t mission.Todo, now time.Time) string {
	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "○"
	if t.Completed {
		check = successStyle.Render("✓")
		if i != m.cursor {
			style = doneItemStyle
		}
	}
	prio := priorityStyle(t.Priority).Render("●")

	var meta []string
	if t.Category != "" {
		meta = append(meta, t.Category)
	}
	if t.DueDate != nil {
		due := "due " + formatDue(*t.DueDate, now, m.loc)
		if !t.Completed && mission.DateKey(*t.DueDate, m.loc) < mission.DateKey(now, m.loc) {
			due = errorStyle.Render(due)
		}
		meta = append(meta, due)
	}
	if t.EstimatedTime > 0 {
		meta = append(meta, formatMinutes(t.EstimatedTime))
	}
	if t.IsRecurring {
		meta = append(meta, "↻")
	}

	row := fmt.Sprintf("%s%s %s %s", cursor, check, prio, style.Render(t.Text))
	if len(meta) > 0 {
		row += mutedStyle.Render("  " + strings.Join(meta, " · "))
	}
	return row
}
