package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/novanotes/internal/core"
	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestCore(db *store.Store, clk *fakeClock) *core.Store {
	n := 0
	return core.New(db, core.Options{
		Now: clk.Now,
		NewID: func() string {
			n++
			return fmt.Sprintf("todo-%03d", n)
		},
		IntN:     func(int) int { return 0 },
		Location: time.UTC,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Journal:  db,
	})
}

// newTestApp returns a sized, rehydrated App.
func newTestApp(t *testing.T, db *store.Store, clk *fakeClock, bell io.Writer) App {
	t.Helper()
	c := newTestCore(db, clk)
	app := NewApp(c, db, Options{
		FocusDuration: time.Minute,
		AlertInterval: time.Minute,
		ExportDir:     t.TempDir(),
		Bell:          bell,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	app = update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	app = update(t, app, readyMsg{err: c.Rehydrate(context.Background())})
	t.Cleanup(func() { applyTheme(mission.ThemeNebula) })
	return app
}

func update(t *testing.T, app App, msg tea.Msg) App {
	t.Helper()
	m, _ := app.Update(msg)
	return m.(App)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches. Only use it on commands without ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func stateWith(todos ...mission.Todo) mission.AppState {
	s := mission.DefaultState()
	s.Todos = todos
	return s
}

// ============================================================
// Countdown
// ============================================================

func TestCountdownRunsToZero(t *testing.T) {
	clk := &fakeClock{now: t0}
	cd := newCountdown(10*time.Second, clk.Now)
	if cd.running() {
		t.Fatal("countdown should start stopped")
	}

	cd.start()
	clk.advance(4 * time.Second)
	if cd.tick() {
		t.Fatal("countdown should not be done after 4s")
	}
	if cd.remaining != 6*time.Second {
		t.Fatalf("remaining = %v, want 6s", cd.remaining)
	}

	clk.advance(6 * time.Second)
	if !cd.tick() {
		t.Fatal("countdown should report completion at zero")
	}
	if cd.running() {
		t.Fatal("finished countdown should stop itself")
	}
	if cd.progress() != 1 {
		t.Fatalf("progress = %v, want 1", cd.progress())
	}
	if cd.tick() {
		t.Fatal("stopped countdown should not complete twice")
	}
}

func TestCountdownPauseResume(t *testing.T) {
	clk := &fakeClock{now: t0}
	cd := newCountdown(10*time.Second, clk.Now)
	cd.start()

	clk.advance(2 * time.Second)
	cd.toggle()
	if !cd.paused() {
		t.Fatal("toggle should pause a running countdown")
	}
	clk.advance(30 * time.Second)
	if cd.tick() {
		t.Fatal("paused countdown should not tick")
	}

	cd.toggle()
	clk.advance(time.Second)
	cd.tick()
	if cd.remaining != 7*time.Second {
		t.Fatalf("remaining = %v, want 7s (pause excluded)", cd.remaining)
	}
}

func TestCountdownToggleWhenStopped(t *testing.T) {
	cd := newCountdown(time.Minute, nil)
	cd.toggle()
	if cd.running() || cd.paused() {
		t.Fatal("toggle should not start a stopped countdown")
	}
}

func TestCountdownReset(t *testing.T) {
	clk := &fakeClock{now: t0}
	cd := newCountdown(time.Minute, clk.Now)
	cd.start()
	clk.advance(20 * time.Second)
	cd.tick()
	cd.reset()
	if cd.running() || cd.remaining != time.Minute || cd.progress() != 0 {
		t.Fatalf("reset countdown not cleared: %+v", cd)
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{90 * time.Second, "01:30"},
		{25 * time.Minute, "25:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(3661 * time.Second); got != "01:01:01" {
		t.Fatalf("formatDuration = %q", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{45, "45m"},
		{60, "1h00m"},
		{90, "1h30m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestFormatDue(t *testing.T) {
	if got := formatDue(t0.Add(3*time.Hour), t0, time.UTC); got != "today" {
		t.Fatalf("same day should be today, got %q", got)
	}
	if got := formatDue(t0.Add(72*time.Hour), t0, time.UTC); !strings.Contains(got, "3 days from now") {
		t.Fatalf("unexpected future due %q", got)
	}
	if got := formatDue(t0.Add(-48*time.Hour), t0, time.UTC); !strings.Contains(got, "ago") {
		t.Fatalf("unexpected past due %q", got)
	}
}

// ============================================================
// Missions view
// ============================================================

func TestParseDue(t *testing.T) {
	due, err := parseDue("2026-03-14", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("parseDue = %v, want %v", due, want)
	}
	if due, err := parseDue("  ", time.UTC); err != nil || due != nil {
		t.Fatal("blank due date should mean none")
	}
	if _, err := parseDue("14/03/2026", time.UTC); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestParseEstimate(t *testing.T) {
	if n, err := parseEstimate("30"); err != nil || n != 30 {
		t.Fatalf("parseEstimate(30) = %d, %v", n, err)
	}
	if n, err := parseEstimate(""); err != nil || n != 0 {
		t.Fatal("blank estimate should be zero")
	}
	for _, bad := range []string{"-1", "ten", "1.5"} {
		if _, err := parseEstimate(bad); err == nil {
			t.Errorf("parseEstimate(%q) should fail", bad)
		}
	}
}

func TestValidateText(t *testing.T) {
	if validateText("   ") == nil {
		t.Fatal("blank text should fail")
	}
	if validateText("Launch") != nil {
		t.Fatal("non-blank text should pass")
	}
}

func TestNextFilter(t *testing.T) {
	f := mission.FilterAll
	seen := []mission.Filter{}
	for i := 0; i < 3; i++ {
		f = nextFilter(f)
		seen = append(seen, f)
	}
	want := []mission.Filter{mission.FilterPending, mission.FilterCompleted, mission.FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("filter cycle = %v, want %v", seen, want)
		}
	}
}

func TestMissionsToggleAndDelete(t *testing.T) {
	clk := &fakeClock{now: t0}
	m := newMissionsModel(clk.Now, time.UTC)
	m.setState(stateWith(
		mission.Todo{ID: "a", Text: "one"},
		mission.Todo{ID: "b", Text: "two"},
	))

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	_, cmd := m.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	act, ok := msgs[0].(actionMsg).action.(mission.ToggleTodo)
	if !ok || act.ID != "b" {
		t.Fatalf("unexpected action %#v", msgs[0])
	}

	_, cmd = m.update(runes("d"))
	if del, ok := collect(cmd)[0].(actionMsg).action.(mission.DeleteTodo); !ok || del.ID != "b" {
		t.Fatal("d should delete the selected mission")
	}
}

func TestMissionsMoveUsesFullListOrder(t *testing.T) {
	clk := &fakeClock{now: t0}
	m := newMissionsModel(clk.Now, time.UTC)
	s := stateWith(
		mission.Todo{ID: "a", Text: "one"},
		mission.Todo{ID: "b", Text: "two", Completed: true},
		mission.Todo{ID: "c", Text: "three"},
	)
	s.Filter = mission.FilterPending
	m.setState(s)

	m, cmd := m.update(runes("J"))
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the moved mission, got %d", m.cursor)
	}
	act, ok := collect(cmd)[0].(actionMsg).action.(mission.ReorderTodos)
	if !ok {
		t.Fatal("expected a reorder action")
	}
	var ids []string
	for _, todo := range act.Todos {
		ids = append(ids, todo.ID)
	}
	if strings.Join(ids, ",") != "b,c,a" {
		t.Fatalf("order = %v, want b,c,a", ids)
	}

	if _, cmd := m.update(runes("J")); cmd != nil {
		t.Fatal("moving past the end should do nothing")
	}
}

func TestMissionsAlertDismissal(t *testing.T) {
	clk := &fakeClock{now: t0}
	due := t0.Add(time.Hour)
	m := newMissionsModel(clk.Now, time.UTC)
	m.setState(stateWith(mission.Todo{ID: "a", Text: "Launch", DueDate: &due}))
	if len(m.alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(m.alerts))
	}

	m, _ = m.update(runes("a"))
	if len(m.alerts) != 0 {
		t.Fatal("alert should be dismissed")
	}
	m.setState(m.state)
	if len(m.alerts) != 0 {
		t.Fatal("dismissed alert should stay dismissed")
	}
}

func TestMissionsAddFormOpens(t *testing.T) {
	clk := &fakeClock{now: t0}
	m := newMissionsModel(clk.Now, time.UTC)
	m.setSize(100, 30)
	m, _ = m.update(runes("n"))
	if !m.formActive || m.formType != "add" {
		t.Fatal("n should open the add form")
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Focus view
// ============================================================

func TestFocusSessionCompletes(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	f := newFocusModel(db, time.Minute, clk.Now)
	f.setState(stateWith(mission.Todo{ID: "a", Text: "Launch"}))

	f, _ = f.update(tea.KeyMsg{Type: tea.KeyDown})
	f, _ = f.update(runes("s"))
	if !f.timer.running() || f.sessionID == 0 {
		t.Fatal("s should start a recorded session")
	}
	if f.todoID != "a" {
		t.Fatalf("session should be bound to the picked mission, got %q", f.todoID)
	}

	clk.advance(61 * time.Second)
	f, cmd := f.update(tickMsg(clk.now))
	if f.timer.running() {
		t.Fatal("timer should stop at zero")
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected focus done message, got %v", msgs)
	}
	if done, ok := msgs[0].(focusDoneMsg); !ok || done.todoText != "Launch" {
		t.Fatalf("unexpected message %#v", msgs[0])
	}

	// The store stamps sessions with its own wall clock.
	now := time.Now()
	n, total, err := db.FocusStats(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || total != time.Minute {
		t.Fatalf("focus stats = %d, %v", n, total)
	}
}

func TestFocusSessionReset(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	f := newFocusModel(db, time.Minute, clk.Now)

	f, _ = f.update(runes("s"))
	id := f.sessionID
	f, _ = f.update(runes("r"))
	if f.timer.running() {
		t.Fatal("reset should stop the timer")
	}
	session, err := db.GetFocus(id)
	if err != nil {
		t.Fatal(err)
	}
	if session.Status != store.FocusCancelled {
		t.Fatalf("status = %q, want cancelled", session.Status)
	}
}

func TestFocusSessionResetReportsStoreError(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	f := newFocusModel(db, time.Minute, clk.Now)

	f, _ = f.update(runes("s"))
	// A session that is no longer running cannot be cancelled again.
	if err := db.CancelFocus(f.sessionID); err != nil {
		t.Fatal(err)
	}
	f, cmd := f.update(runes("r"))
	if f.timer.running() || f.sessionID != 0 {
		t.Fatal("reset should stop the timer even when the store fails")
	}
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one status message, got %v", msgs)
	}
	if status, ok := msgs[0].(statusMsg); !ok || !status.isError {
		t.Fatalf("expected an error status, got %#v", msgs[0])
	}
}

func TestFocusPickerLockedWhileRunning(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	f := newFocusModel(db, time.Minute, clk.Now)
	f.setState(stateWith(mission.Todo{ID: "a", Text: "one"}, mission.Todo{ID: "b", Text: "two"}))

	f, _ = f.update(runes("s"))
	f, _ = f.update(tea.KeyMsg{Type: tea.KeyDown})
	if f.cursor != 0 {
		t.Fatal("picker should not move while a session runs")
	}
}

// ============================================================
// Command palette
// ============================================================

func TestFilterCommands(t *testing.T) {
	if len(filterCommands("")) != len(commands) {
		t.Fatal("empty query should list every command")
	}
	if got := filterCommands("export"); len(got) != 2 {
		t.Fatalf("export matches = %d, want 2", len(got))
	}
	if got := filterCommands("THEME"); len(got) != 1 || got[0].id != cmdToggleTheme {
		t.Fatalf("theme matches = %v", got)
	}
	if got := filterCommands("timer"); len(got) != 1 || got[0].id != cmdFocusMode {
		t.Fatalf("description should match too, got %v", got)
	}
	if len(filterCommands("warp drive")) != 0 {
		t.Fatal("unknown query should match nothing")
	}
}

func TestPaletteTypeAndRun(t *testing.T) {
	p := newPaletteModel()
	p.open("")

	p, _, closed := p.update(runes("json"))
	if closed {
		t.Fatal("typing should not close the palette")
	}
	if len(p.matches) != 1 || p.matches[0].id != cmdExportJSON {
		t.Fatalf("matches = %v", p.matches)
	}

	_, cmd, closed := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !closed {
		t.Fatal("enter should close the palette")
	}
	if msg, ok := cmd().(runCommandMsg); !ok || msg.id != cmdExportJSON {
		t.Fatal("enter should run the selected command")
	}
}

// ============================================================
// App
// ============================================================

func TestAppLoadingUntilReady(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	app := NewApp(newTestCore(db, clk), db, Options{})
	app = update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	if app.View() != "Loading..." {
		t.Fatal("app should show loading until rehydrated")
	}
	if app.activeView != viewMissions {
		t.Fatal("default view should be missions")
	}
}

func TestAppViewsRender(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	for v := range viewNames {
		app.activeView = viewState(v)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppDispatchFansOutState(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "Launch probe"}}})

	if len(app.state.Todos) != 1 {
		t.Fatalf("app state todos = %d", len(app.state.Todos))
	}
	if len(app.missions.visible) != 1 || len(app.focus.open) != 1 {
		t.Fatal("views should receive the new state")
	}
	if app.core.State().Todos[0].ID != "todo-001" {
		t.Fatal("core store should hold the stamped todo")
	}
}

func TestAppInvalidActionSetsError(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "  "}}})
	if !app.statusErr || len(app.state.Todos) != 0 {
		t.Fatal("blank mission should be rejected with an error status")
	}
}

func TestAppUnlockToast(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "Launch probe"}}})
	app = update(t, app, actionMsg{action: mission.ToggleTodo{ID: "todo-001"}})

	if len(app.toast) != 1 || app.toast[0].ID != mission.FirstTask {
		t.Fatalf("expected first-task toast, got %+v", app.toast)
	}
	if !strings.Contains(app.View(), "Achievement Unlocked!") {
		t.Fatal("toast should render")
	}

	app = update(t, app, toastExpiredMsg{seq: app.toastSeq - 1})
	if len(app.toast) == 0 {
		t.Fatal("stale expiry should not clear the toast")
	}
	app = update(t, app, toastExpiredMsg{seq: app.toastSeq})
	if len(app.toast) != 0 {
		t.Fatal("toast should clear on expiry")
	}
}

func TestAppChime(t *testing.T) {
	var bell bytes.Buffer
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, &bell)

	m, cmd := app.Update(actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "one"}}})
	app = m.(App)
	collect(cmd)
	if bell.String() != "\a" {
		t.Fatalf("adding a mission should ring once, got %q", bell.String())
	}

	app = update(t, app, runes("m"))
	if app.state.SoundEnabled {
		t.Fatal("m should mute sound")
	}
	_, cmd = app.Update(actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "two"}}})
	collect(cmd)
	if bell.Len() != 1 {
		t.Fatal("muted app should not ring")
	}
}

func TestWantsChime(t *testing.T) {
	prev := stateWith(mission.Todo{ID: "a", Text: "one"})
	done := stateWith(mission.Todo{ID: "a", Text: "one", Completed: true})
	if !wantsChime(mission.ToggleTodo{ID: "a"}, prev, done) {
		t.Fatal("completing should chime")
	}
	if wantsChime(mission.ToggleTodo{ID: "a"}, done, prev) {
		t.Fatal("reopening should not chime")
	}
	if wantsChime(mission.SetFilter{Filter: mission.FilterAll}, prev, prev) {
		t.Fatal("filter changes should not chime")
	}
}

func TestAppThemeKey(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, runes("t"))
	if app.state.Theme != mission.ThemeGalaxy || currentTheme != mission.ThemeGalaxy {
		t.Fatal("t should switch to galaxy")
	}
	app = update(t, app, runes("t"))
	if app.state.Theme != mission.ThemeNebula || currentTheme != mission.ThemeNebula {
		t.Fatal("t should switch back to nebula")
	}
}

func TestAppFocusViewTogglesFocusMode(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, runes("3"))
	if app.activeView != viewFocus || !app.state.FocusMode {
		t.Fatal("entering the focus view should enable focus mode")
	}
	app = update(t, app, runes("1"))
	if app.activeView != viewMissions || app.state.FocusMode {
		t.Fatal("leaving the focus view should disable focus mode")
	}
}

func TestAppRestoresTransientFlags(t *testing.T) {
	db := newTestStore(t)
	clk := &fakeClock{now: t0}
	c := newTestCore(db, clk)
	if err := c.Rehydrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(mission.ToggleFocusMode{}); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, db, clk, nil)
	if app.activeView != viewFocus {
		t.Fatal("persisted focus mode should reopen the focus view")
	}
}

func TestAppPaletteTogglesFlag(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, tea.KeyMsg{Type: tea.KeyCtrlK})
	if !app.paletteOpen || !app.state.ShowCommandPalette {
		t.Fatal("ctrl+k should open the palette")
	}
	if !strings.Contains(app.View(), "Command Palette") {
		t.Fatal("palette should render")
	}
	app = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.paletteOpen || app.state.ShowCommandPalette {
		t.Fatal("esc should close the palette")
	}
}

func TestAppRunCommandFilter(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app.activeView = viewStats
	app = update(t, app, runCommandMsg{id: cmdShowCompleted})
	if app.activeView != viewMissions || app.state.Filter != mission.FilterCompleted {
		t.Fatal("filter command should show missions under the new filter")
	}
}

func TestAppExport(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, actionMsg{action: mission.AddTodo{Draft: mission.Draft{Text: "Launch probe"}}})

	_, cmd := app.Update(runCommandMsg{id: cmdExportCSV})
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export should finish")
	}
	if filepath.Base(done.path) != "novanotes-20260314.csv" {
		t.Fatalf("unexpected export path %q", done.path)
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Launch probe") {
		t.Fatal("export should contain the mission")
	}

	app = update(t, app, done)
	if !strings.Contains(app.status, done.path) {
		t.Fatal("status should report the export path")
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t, newTestStore(t), &fakeClock{now: t0}, nil)
	app = update(t, app, statusMsg{text: "test status"})
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapFullHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles
// ============================================================

func TestApplyThemeUnknownFallsBack(t *testing.T) {
	t.Cleanup(func() { applyTheme(mission.ThemeNebula) })
	applyTheme(mission.Theme("aurora"))
	if currentTheme != mission.ThemeNebula || colorPrimary != palettes[mission.ThemeNebula].primary {
		t.Fatal("unknown theme should fall back to nebula")
	}
	applyTheme(mission.ThemeGalaxy)
	if colorPrimary != palettes[mission.ThemeGalaxy].primary {
		t.Fatal("galaxy palette not applied")
	}
}
