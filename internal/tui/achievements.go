package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/novanotes/internal/mission"
)

type achievementsModel struct {
	width  int
	height int
	now    func() time.Time

	state mission.AppState
}

func newAchievementsModel(now func() time.Time) achievementsModel {
	return achievementsModel{now: now, state: mission.DefaultState()}
}

func (a *achievementsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a *achievementsModel) setState(s mission.AppState) {
	a.state = s
}

func (a achievementsModel) view() string {
	w := a.width - 4
	unlocked := mission.UnlockedCount(a.state)
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Achievements"),
		"  ",
		highlightStyle.Render(fmt.Sprintf("%d/%d unlocked", unlocked, len(a.state.Achievements))),
	)

	rows := []string{header, ""}
	for _, ach := range a.state.Achievements {
		if ach.Unlocked {
			when := ""
			if ach.UnlockedAt != nil {
				when = mutedStyle.Render("  " + humanize.RelTime(*ach.UnlockedAt, a.now(), "ago", "from now"))
			}
			rows = append(rows, fmt.Sprintf("  %s %s%s", ach.Icon, selectedItemStyle.Render(ach.Name), when))
			rows = append(rows, "     "+normalItemStyle.Render(ach.Description))
		} else {
			rows = append(rows, fmt.Sprintf("  🔒 %s", mutedStyle.Render(ach.Name)))
			rows = append(rows, "     "+mutedStyle.Render(ach.Description))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a App) renderToast() string {
	var lines []string
	lines = append(lines, accentStyle.Bold(true).Render("Achievement Unlocked!"))
	for _, ach := range a.toast {
		lines = append(lines, fmt.Sprintf("%s %s", ach.Icon, titleStyle.Render(ach.Name)))
	}
	return toastStyle.Render(strings.Join(lines, "\n"))
}
