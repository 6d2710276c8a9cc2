package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/novanotes/internal/export"
	"github.com/sadopc/novanotes/internal/mission"
)

var themeCmd = &cobra.Command{
	Use:       "theme [nebula|galaxy]",
	Short:     "Show or switch the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(mission.ThemeNebula), string(mission.ThemeGalaxy)},
	RunE:      withSession(runTheme),
}

var soundCmd = &cobra.Command{
	Use:       "sound [on|off]",
	Short:     "Show or switch sound effects",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      withSession(runSound),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all missions to CSV or JSON",
	Args:  cobra.NoArgs,
	RunE:  withSession(runExport),
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(themeCmd, soundCmd, exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: export dir from config)")
}

func runTheme(cmd *cobra.Command, args []string, s *session) error {
	out := cmd.OutOrStdout()
	current := s.core.State().Theme
	if len(args) == 0 {
		fmt.Fprintln(out, current)
		return nil
	}
	want := mission.Theme(strings.ToLower(args[0]))
	if !want.Valid() {
		return fmt.Errorf("unknown theme %q (want nebula or galaxy)", args[0])
	}
	if want != current {
		if err := s.dispatch(out, mission.ToggleTheme{}); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Theme set to %s\n", want)
	return nil
}

func runSound(cmd *cobra.Command, args []string, s *session) error {
	out := cmd.OutOrStdout()
	enabled := s.core.State().SoundEnabled
	if len(args) == 0 {
		fmt.Fprintln(out, onOff(enabled))
		return nil
	}
	var want bool
	switch strings.ToLower(args[0]) {
	case "on":
		want = true
	case "off":
		want = false
	default:
		return fmt.Errorf("sound must be on or off, got %q", args[0])
	}
	if want != enabled {
		if err := s.dispatch(out, mission.ToggleSound{}); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Sound %s\n", onOff(want))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runExport(cmd *cobra.Command, _ []string, s *session) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}

	path := exportOutput
	if path == "" {
		if err := os.MkdirAll(s.cfg.Export.Dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		path = filepath.Join(s.cfg.Export.Dir, export.DefaultFilename(format, s.core.Now()))
	}

	todos := s.core.State().Todos
	var err error
	if format == "csv" {
		err = export.ToCSV(todos, path)
	} else {
		err = export.ToJSON(todos, path)
	}
	if err != nil {
		return err
	}
	s.logger.Info("export written", "path", path, "missions", len(todos))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d missions to %s\n", len(todos), path)
	return nil
}
