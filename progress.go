package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievements and which are unlocked",
	Args:  cobra.NoArgs,
	RunE:  withSession(runAchievements),
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print today's quote",
	Args:  cobra.NoArgs,
	RunE:  withSession(runQuote),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mission control figures",
	Args:  cobra.NoArgs,
	RunE:  withSession(runStats),
}

var statsDays int

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List missions due today or overdue",
	Args:  cobra.NoArgs,
	RunE:  withSession(runAlerts),
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the action journal",
	Args:  cobra.NoArgs,
	RunE:  withSession(runLog),
}

var (
	logKind  string
	logLimit int
)

func init() {
	rootCmd.AddCommand(achievementsCmd, quoteCmd, statsCmd, alertsCmd, logCmd)

	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days of completion history")

	logCmd.Flags().StringVar(&logKind, "kind", "", "Only show actions of this kind (e.g. ADD_TODO)")
	logCmd.Flags().IntVar(&logLimit, "limit", 20, "Maximum number of actions to show")
}

func runAchievements(cmd *cobra.Command, _ []string, s *session) error {
	st := s.core.State()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d/%d achievements unlocked\n", mission.UnlockedCount(st), len(st.Achievements))

	tw := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	for _, a := range st.Achievements {
		mark, when := "[ ]", ""
		if a.Unlocked {
			mark = "[x]"
			if a.UnlockedAt != nil {
				when = a.UnlockedAt.In(s.core.Location()).Format(time.DateOnly)
			}
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", mark, a.Icon, a.Name, a.Description, when)
	}
	return tw.Flush()
}

func runQuote(cmd *cobra.Command, _ []string, s *session) error {
	fmt.Fprintln(cmd.OutOrStdout(), s.core.State().DailyQuote)
	return nil
}

func runStats(cmd *cobra.Command, _ []string, s *session) error {
	if statsDays < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	st := s.core.State()
	now, loc := s.core.Now(), s.core.Location()
	sum := mission.Summarize(st.Todos, now, loc)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Total missions\t%d\n", sum.Total)
	fmt.Fprintf(tw, "Completed\t%d\n", sum.Completed)
	fmt.Fprintf(tw, "Completion rate\t%.0f%%\n", sum.CompletionRate)
	fmt.Fprintf(tw, "Due today\t%d\n", sum.DueToday)
	fmt.Fprintf(tw, "High priority open\t%d\n", sum.HighPriorityOpen)
	fmt.Fprintf(tw, "Minutes remaining\t%d\n", sum.MinutesRemaining)

	today := now.In(loc)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -statsDays)
	sessions, focused, err := s.db.FocusStats(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(tw, "Focus sessions (%dd)\t%d (%s)\n", statsDays, sessions, focused)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(sum.Categories) > 0 {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
		fmt.Fprintf(tw, "CATEGORY\tMISSIONS\tCOMPLETED\n")
		for _, c := range sum.Categories {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Name, c.Count, c.Completed)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "DAY\tCOMPLETED\n")
	for _, d := range mission.CompletionsByDay(st.Todos, from, to, loc) {
		fmt.Fprintf(tw, "%s\t%d\n", d.Date, d.Count)
	}
	return tw.Flush()
}

func runAlerts(cmd *cobra.Command, _ []string, s *session) error {
	now, loc := s.core.Now(), s.core.Location()
	alerts := mission.Alerts(s.core.State().Todos, now, loc)
	out := cmd.OutOrStdout()
	if len(alerts) == 0 {
		fmt.Fprintln(out, "No alerts.")
		return nil
	}
	for _, a := range alerts {
		fmt.Fprintf(out, "[%s] %s (%s)\n", a.Kind, a.Message, relDue(a.DueDate, now, loc))
	}
	return nil
}

func runLog(cmd *cobra.Command, _ []string, s *session) error {
	records, err := s.db.ListActions(store.ActionFilter{Kind: logKind, Limit: logLimit})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No actions recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "AT\tKIND\tPAYLOAD\n")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.At.In(s.core.Location()).Format(time.DateTime), r.Kind, truncate(r.Payload, 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	total, err := s.db.CountActions(logKind)
	if err != nil {
		return err
	}
	if total > len(records) {
		fmt.Fprintf(out, "%d of %d actions shown\n", len(records), total)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
