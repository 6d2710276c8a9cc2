package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sadopc/novanotes/internal/mission"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Launch a new mission",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withSession(runAdd),
}

var (
	addPriority  string
	addCategory  string
	addDue       string
	addEstimate  int
	addRecurring bool
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List missions",
	Args:    cobra.NoArgs,
	RunE:    withSession(runList),
}

var (
	listFilter string
	listJSON   bool
)

// done / reopen
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark missions as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withSession(runDone),
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Mark completed missions as pending again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withSession(runReopen),
}

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a mission",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runEdit),
}

var (
	editText     string
	editPriority string
	editCategory string
	editDue      string
	editEstimate int
)

// rm
var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete missions",
	Args:    cobra.MinimumNArgs(1),
	RunE:    withSession(runRemove),
}

// move
var moveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a mission to a 1-based position in the list",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession(runMove),
}

// filter
var filterCmd = &cobra.Command{
	Use:       "filter [all|pending|completed]",
	Short:     "Show or set the saved list filter",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(mission.FilterAll), string(mission.FilterPending), string(mission.FilterCompleted)},
	RunE:      withSession(runFilter),
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, doneCmd, reopenCmd, editCmd, rmCmd, moveCmd, filterCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(mission.PriorityMedium), "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (e.g. work, health)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&addEstimate, "estimate", 0, "Estimated minutes")
	addCmd.Flags().BoolVar(&addRecurring, "recurring", false, "Mark as recurring")

	listCmd.Flags().StringVar(&listFilter, "filter", "", "Filter (all, pending, completed); default is the saved filter")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	editCmd.Flags().StringVar(&editText, "text", "", "New text")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (low, medium, high)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category (empty clears)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	editCmd.Flags().IntVar(&editEstimate, "estimate", 0, "New estimated minutes")
}

func runAdd(cmd *cobra.Command, args []string, s *session) error {
	due, err := mission.ParseDue(addDue, s.core.Location())
	if err != nil {
		return err
	}
	if addEstimate < 0 {
		return fmt.Errorf("estimate must not be negative")
	}

	before := s.core.State().Todos
	out := cmd.OutOrStdout()
	err = s.dispatch(out, mission.AddTodo{Draft: mission.Draft{
		Text:          strings.Join(args, " "),
		Priority:      mission.Priority(strings.ToLower(addPriority)),
		DueDate:       due,
		Category:      addCategory,
		IsRecurring:   addRecurring,
		EstimatedTime: addEstimate,
	}})
	if err != nil {
		return err
	}

	if added, ok := mission.Added(before, s.core.State().Todos); ok {
		fmt.Fprintf(out, "Launched mission %s: %s\n", mission.ShortID(added.ID), added.Text)
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string, s *session) error {
	st := s.core.State()
	filter := st.Filter
	if cmd.Flags().Changed("filter") {
		filter = mission.Filter(strings.ToLower(listFilter))
		if !filter.Valid() {
			return fmt.Errorf("%w: %q", mission.ErrInvalidFilter, listFilter)
		}
	}
	todos := mission.Visible(st.Todos, filter)

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	if len(todos) == 0 {
		fmt.Fprintln(out, "No missions.")
		return nil
	}
	return writeTodoTable(out, todos, s.core.Now(), s.core.Location())
}

func writeTodoTable(w io.Writer, todos []mission.Todo, now time.Time, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "ID\tSTATUS\tPRIORITY\tCATEGORY\tDUE\tEST\tMISSION\n")
	for _, t := range todos {
		status := "pending"
		if t.Completed {
			status = "done"
		}
		due := "-"
		if t.DueDate != nil {
			due = mission.DateKey(*t.DueDate, loc)
			if !t.Completed && due < mission.DateKey(now, loc) {
				due += " (overdue)"
			}
		}
		est := "-"
		if t.EstimatedTime > 0 {
			est = fmt.Sprintf("%dm", t.EstimatedTime)
		}
		category := t.Category
		if category == "" {
			category = "-"
		}
		text := t.Text
		if t.IsRecurring {
			text += " ↻"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mission.ShortID(t.ID), status, t.Priority, category, due, est, text)
	}
	return tw.Flush()
}

func runDone(cmd *cobra.Command, args []string, s *session) error {
	return setCompleted(cmd.OutOrStdout(), args, s, true)
}

func runReopen(cmd *cobra.Command, args []string, s *session) error {
	return setCompleted(cmd.OutOrStdout(), args, s, false)
}

// setCompleted toggles each mission whose completion differs from want.
func setCompleted(out io.Writer, ids []string, s *session, want bool) error {
	for _, id := range ids {
		t, err := s.core.Resolve(id)
		if err != nil {
			return err
		}
		if t.Completed == want {
			fmt.Fprintf(out, "Mission %s already %s\n", mission.ShortID(t.ID), completionWord(want))
			continue
		}
		if err := s.dispatch(out, mission.ToggleTodo{ID: t.ID}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Mission %s %s: %s\n", mission.ShortID(t.ID), completionWord(want), t.Text)
	}
	return nil
}

func completionWord(completed bool) string {
	if completed {
		return "completed"
	}
	return "reopened"
}

func runEdit(cmd *cobra.Command, args []string, s *session) error {
	t, err := s.core.Resolve(args[0])
	if err != nil {
		return err
	}

	edit := mission.EditTodo{
		ID:            t.ID,
		Text:          t.Text,
		Priority:      t.Priority,
		DueDate:       t.DueDate,
		Category:      t.Category,
		EstimatedTime: t.EstimatedTime,
	}
	flags := cmd.Flags()
	if flags.Changed("text") {
		edit.Text = editText
	}
	if flags.Changed("priority") {
		edit.Priority = mission.Priority(strings.ToLower(editPriority))
	}
	if flags.Changed("category") {
		edit.Category = editCategory
	}
	if flags.Changed("due") {
		due, err := mission.ParseDue(editDue, s.core.Location())
		if err != nil {
			return err
		}
		edit.DueDate = due
	}
	if flags.Changed("estimate") {
		if editEstimate < 0 {
			return fmt.Errorf("estimate must not be negative")
		}
		edit.EstimatedTime = editEstimate
	}

	out := cmd.OutOrStdout()
	if err := s.dispatch(out, edit); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated mission %s: %s\n", mission.ShortID(t.ID), strings.TrimSpace(edit.Text))
	return nil
}

func runRemove(cmd *cobra.Command, args []string, s *session) error {
	out := cmd.OutOrStdout()
	for _, id := range args {
		t, err := s.core.Resolve(id)
		if err != nil {
			return err
		}
		if err := s.dispatch(out, mission.DeleteTodo{ID: t.ID}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted mission %s: %s\n", mission.ShortID(t.ID), t.Text)
	}
	return nil
}

func runMove(cmd *cobra.Command, args []string, s *session) error {
	t, err := s.core.Resolve(args[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a positive number, got %q", args[1])
	}

	reordered, err := mission.Move(s.core.State().Todos, t.ID, pos-1)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := s.dispatch(out, mission.ReorderTodos{Todos: reordered}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Moved mission %s to position %d\n", mission.ShortID(t.ID), s.core.State().Find(t.ID)+1)
	return nil
}

func runFilter(cmd *cobra.Command, args []string, s *session) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, s.core.State().Filter)
		return nil
	}
	f := mission.Filter(strings.ToLower(args[0]))
	if err := s.dispatch(out, mission.SetFilter{Filter: f}); err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}
	fmt.Fprintf(out, "Filter set to %s\n", f)
	return nil
}

// relDue renders a due date for humans, e.g. "in 3 days".
func relDue(due, now time.Time, loc *time.Location) string {
	if mission.SameDay(due, now, loc) {
		return "today"
	}
	return humanize.RelTime(due, now, "ago", "from now")
}
