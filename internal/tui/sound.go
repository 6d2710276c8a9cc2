package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// chime rings the terminal bell. Write errors are ignored.
func chime(w io.Writer, enabled bool) tea.Cmd {
	if !enabled || w == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = w.Write([]byte("\a"))
		return nil
	}
}
