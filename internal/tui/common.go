package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/novanotes/internal/mission"
)

// viewState represents the currently active view.
type viewState int

const (
	viewMissions viewState = iota
	viewStats
	viewFocus
	viewAchievements
	viewSettings
)

var viewNames = []string{"Missions", "Stats", "Focus", "Achievements", "Settings"}

// --- Messages ---

// readyMsg reports that rehydration finished.
type readyMsg struct {
	err error
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type alertTickMsg time.Time

type toastExpiredMsg struct {
	seq int
}

type focusDoneMsg struct {
	todoText string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

// formatDue renders a due date relative to now, e.g. "today" or "in 3 days".
func formatDue(due, now time.Time, loc *time.Location) string {
	if mission.SameDay(due, now, loc) {
		return "today"
	}
	return humanize.RelTime(due, now, "ago", "from now")
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}
