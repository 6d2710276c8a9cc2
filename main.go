// Command novanotes is a space-themed mission list for the terminal.
package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/novanotes/internal/tui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:          "novanotes",
	Short:        "Mission control for your todo list",
	Long:         "novanotes tracks missions, unlocks achievements and runs focus sessions.\nRun without a subcommand to open the interactive app.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/novanotes/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides the config)")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Rehydration runs inside the app so the loading screen shows.
	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	app := tui.NewApp(sess.core, sess.db, tui.Options{
		FocusDuration: sess.cfg.FocusDuration(),
		AlertInterval: sess.cfg.AlertInterval(),
		ExportDir:     sess.cfg.Export.Dir,
		Bell:          os.Stderr,
		Logger:        sess.logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	sess.logger.Info("app started", "db", sess.cfg.Storage.Path)
	_, err = p.Run()
	return err
}
