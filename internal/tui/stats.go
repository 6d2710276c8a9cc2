package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

type statsModel struct {
	db     *store.Store
	width  int
	height int
	now    func() time.Time
	loc    *time.Location

	state  mission.AppState
	offset int // 7-day blocks back from today (0 = current)
	days   []mission.DayCount

	focusCount int
	focusTotal time.Duration

	chart barchart.Model
}

func newStatsModel(db *store.Store, now func() time.Time, loc *time.Location) statsModel {
	return statsModel{
		db:    db,
		now:   now,
		loc:   loc,
		state: mission.DefaultState(),
		chart: barchart.New(60, 12),
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *statsModel) setState(s mission.AppState) {
	r.state = s
	r.buildChart()
}

type focusStatsMsg struct {
	completed int
	total     time.Duration
}

func (r statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		n, total, err := r.db.FocusStats(from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return focusStatsMsg{completed: n, total: total}
	}
}

// dateRange is the 7-day window ending today, shifted back by offset weeks.
func (r statsModel) dateRange() (time.Time, time.Time) {
	now := r.now().In(r.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
	end := today.AddDate(0, 0, 1-7*r.offset)
	return end.AddDate(0, 0, -7), end
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case focusStatsMsg:
		r.focusCount = msg.completed
		r.focusTotal = msg.total
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.buildChart()
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			r.buildChart()
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *statsModel) buildChart() {
	chartWidth := max(r.width-8, 20)
	chartHeight := 10
	if r.height > 36 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	r.days = mission.CompletionsByDay(r.state.Todos, from, to, r.loc)

	bars := make([]barchart.BarData, 0, len(r.days))
	style := lipgloss.NewStyle().Foreground(colorPrimary)
	for _, d := range r.days {
		label := d.Date
		if t, err := time.ParseInLocation(time.DateOnly, d.Date, r.loc); err == nil {
			label = t.Format("Mon 02")
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: "completed", Value: float64(d.Count), Style: style}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Mission Control"), "  ", dateLabel)

	st := mission.Summarize(r.state.Todos, r.now(), r.loc)

	figures := lipgloss.JoinHorizontal(lipgloss.Top,
		r.figure("Total", fmt.Sprintf("%d", st.Total)),
		r.figure("Completed", fmt.Sprintf("%d", st.Completed)),
		r.figure("Rate", fmt.Sprintf("%.0f%%", st.CompletionRate)),
		r.figure("Due today", fmt.Sprintf("%d", st.DueToday)),
		r.figure("High priority", fmt.Sprintf("%d", st.HighPriorityOpen)),
		r.figure("Remaining", formatMinutes(st.MinutesRemaining)),
	)

	focusLine := mutedStyle.Render(fmt.Sprintf("  Focus sessions this period: %d (%s)", r.focusCount, formatDuration(r.focusTotal)))

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", figures, "", r.chart.View(), "", focusLine, "", r.renderCategories(w), "", nav,
		),
	)
}

func (r statsModel) figure(label, value string) string {
	return lipgloss.NewStyle().Width(16).Render(
		lipgloss.JoinVertical(lipgloss.Left, highlightStyle.Bold(true).Render(value), mutedStyle.Render(label)),
	)
}

func (r statsModel) renderCategories(w int) string {
	st := mission.Summarize(r.state.Todos, r.now(), r.loc)
	if len(st.Categories) == 0 {
		return mutedStyle.Render("  No categorized missions")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %8s %10s", "Category", "Missions", "Completed")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 34))))
	for _, c := range st.Categories {
		rows = append(rows, fmt.Sprintf("  %-14s %8d %10d", c.Name, c.Count, c.Completed))
	}
	return strings.Join(rows, "\n")
}
