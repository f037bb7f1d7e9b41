package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitlog/internal/catalog"
	"github.com/sadopc/fitlog/internal/quote"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
)

// seedLibrary imports a small catalog and returns it in the order the
// store lists it.
func seedLibrary(t *testing.T, s *store.Store) []catalog.Entry {
	t.Helper()
	_, err := s.ImportExercises([]catalog.Entry{
		{ID: 1, Name: "Squat", BodyPart: "Legs", Category: "Strength"},
		{ID: 2, Name: "Bench Press", BodyPart: "Chest", Category: "Strength"},
		{ID: 3, Name: "Rowing", BodyPart: "Back", Category: "Cardio"},
		{ID: 4, Name: "Split Squat", BodyPart: "Legs", Category: "Strength"},
	})
	require.NoError(t, err)
	entries, err := s.ListExercises()
	require.NoError(t, err)
	return entries
}

func seedWorkout(t *testing.T, s *store.Store, on time.Time, minutes int) *stats.WorkoutRecord {
	t.Helper()
	rec, err := s.CreateWorkout(store.WorkoutInput{
		Date:            on,
		DurationMinutes: minutes,
		Details: []store.DetailInput{
			{ExerciseID: ptr(int64(1)), Sets: ptr(3), Reps: ptr(10), WeightKg: ptr(50.0)},
		},
	})
	require.NoError(t, err)
	return rec
}

// fakeClock is a settable time source for the session timer.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testTimer() (sessionTimer, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)}
	tm := newSessionTimer()
	tm.now = clock.now
	tm.lastActivity = clock.t
	return tm, clock
}

// ============================================================
// Session timer
// ============================================================

func TestTimerStartStop(t *testing.T) {
	tm, clock := testTimer()
	assert.False(t, tm.running())

	tm.start()
	assert.True(t, tm.running())
	assert.False(t, tm.paused())

	clock.advance(45*time.Minute + 20*time.Second)
	assert.Equal(t, 45, tm.stop())
	assert.False(t, tm.running())
}

func TestTimerStopRoundsToNearestMinute(t *testing.T) {
	tm, clock := testTimer()
	tm.start()
	clock.advance(29*time.Minute + 40*time.Second)
	assert.Equal(t, 30, tm.stop())
}

func TestTimerStopWhenStopped(t *testing.T) {
	tm, _ := testTimer()
	assert.Equal(t, 0, tm.stop())
}

func TestTimerPausedTimeNotCounted(t *testing.T) {
	tm, clock := testTimer()
	tm.start()
	clock.advance(10 * time.Minute)

	tm.pause()
	assert.True(t, tm.paused())
	assert.True(t, tm.running(), "a paused session is not stopped")
	clock.advance(5 * time.Minute)
	assert.Equal(t, 10*time.Minute, tm.currentElapsed())

	tm.resume()
	assert.False(t, tm.paused())
	clock.advance(10 * time.Minute)
	assert.Equal(t, 20*time.Minute, tm.currentElapsed())
	assert.Equal(t, 20, tm.stop())
}

func TestTimerToggle(t *testing.T) {
	tm, _ := testTimer()
	tm.toggle()
	assert.False(t, tm.running(), "toggle on a stopped timer does nothing")

	tm.start()
	tm.toggle()
	assert.True(t, tm.paused())
	tm.toggle()
	assert.False(t, tm.paused())
}

func TestTimerPauseResumeNoops(t *testing.T) {
	tm, _ := testTimer()
	tm.pause()
	assert.False(t, tm.paused())

	tm.start()
	tm.resume()
	assert.False(t, tm.paused())
	assert.True(t, tm.running())
}

func TestTimerTick(t *testing.T) {
	tm, clock := testTimer()
	tm.tick()
	assert.Zero(t, tm.elapsed)

	tm.start()
	clock.advance(90 * time.Second)
	tm.tick()
	assert.Equal(t, 90*time.Second, tm.elapsed)
}

func TestTimerIdleDetectionAndRecovery(t *testing.T) {
	tm, clock := testTimer()
	tm.idleTimeout = time.Minute
	tm.start()

	clock.advance(2 * time.Minute)
	tm.tick()
	assert.True(t, tm.isIdle)
	assert.True(t, tm.paused())

	clock.advance(time.Minute)
	tm.recordActivity()
	assert.False(t, tm.isIdle)
	assert.False(t, tm.paused())
	assert.Equal(t, 2*time.Minute, tm.currentElapsed())
}

func TestTimerRecordActivityKeepsManualPause(t *testing.T) {
	tm, _ := testTimer()
	tm.start()
	tm.pause()
	tm.recordActivity()
	assert.True(t, tm.paused())
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", formatDuration(0))
	assert.Equal(t, "01:02:03", formatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h 00m", 65: "1h 05m", 150: "2h 30m"}
	for in, want := range tests {
		assert.Equal(t, want, formatMinutes(in), "minutes %d", in)
	}
}

func TestFormatKgAndTonnes(t *testing.T) {
	assert.Equal(t, "2,300 kg", formatKg(2300))
	assert.Equal(t, "62.5 kg", formatKg(62.5))
	assert.Equal(t, "2.3 t", formatTonnes(2.3))
	assert.Equal(t, "+1.5 kg", formatChange(1.5))
	assert.Equal(t, "-2 kg", formatChange(-2))
	assert.Equal(t, "0 kg", formatChange(0))
}

func TestRelativeDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 30, 0, 0, time.Local) // a Friday
	assert.Equal(t, "today", relativeDay(time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), now))
	assert.Equal(t, "yesterday", relativeDay(time.Date(2025, 3, 13, 0, 0, 0, 0, time.Local), now))
	assert.Equal(t, "Tuesday", relativeDay(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local), now))
	assert.Contains(t, relativeDay(time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), now), "ago")
}

func TestParseOptionalInt(t *testing.T) {
	n, err := parseOptionalInt("  ")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = parseOptionalInt(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, *n)

	_, err = parseOptionalInt("twelve")
	assert.Error(t, err)
	_, err = parseOptionalInt("-1")
	assert.Error(t, err)
}

func TestParseOptionalFloat(t *testing.T) {
	f, err := parseOptionalFloat("62,5")
	require.NoError(t, err)
	assert.Equal(t, 62.5, *f)

	f, err = parseOptionalFloat("")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = parseOptionalFloat("heavy")
	assert.Error(t, err)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, validateDate("2025-01-31"))
	assert.Error(t, validateDate("31/01/2025"))
	assert.Error(t, validateDate(""))
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local), parseDate(" 2025-01-31 "))
}

func TestValidateWeight(t *testing.T) {
	assert.NoError(t, validateWeight("80.5"))
	assert.Error(t, validateWeight(""))
	assert.Error(t, validateWeight("0"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Squat", truncate("Squat", 10))
	assert.Equal(t, "Bench Pr…", truncate("Bench Press", 9))
}

func TestViewNames(t *testing.T) {
	require.Len(t, viewNames, 6)
	assert.Equal(t, "Dashboard", viewNames[viewDashboard])
	assert.Equal(t, "Workouts", viewNames[viewWorkouts])
	assert.Equal(t, "Analytics", viewNames[viewAnalytics])
	assert.Equal(t, "Library", viewNames[viewLibrary])
	assert.Equal(t, "Progress", viewNames[viewProgress])
	assert.Equal(t, "Profile", viewNames[viewProfile])
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	today := time.Now()
	seedWorkout(t, s, today, 30)
	seedWorkout(t, s, today.AddDate(0, 0, -1), 20)
	seedWorkout(t, s, today.AddDate(0, 0, -30), 60)

	picker := quote.NewWith(nil, []quote.Quote{{Text: "Lift heavy", Author: "Coach"}})
	d := newDashboardModel(s, session.New("jane@example.com"), picker, 7)
	d.setSize(120, 40)

	d, cmd := d.update(d.loadData()())
	assert.Nil(t, cmd)
	assert.Equal(t, 3, d.totals.Count)
	assert.Equal(t, 110, d.totals.DurationMinutes)
	require.Len(t, d.window, 7)
	assert.Equal(t, 30, d.window[6].DurationMinutes)
	assert.Equal(t, 20, d.window[5].DurationMinutes)

	view := d.view()
	assert.Contains(t, view, "Welcome back, Jane")
	assert.Contains(t, view, "Lift heavy")
	assert.Contains(t, view, "Squat")
	assert.Contains(t, view, "today")
}

func TestDashboardFavoriteTieGoesToOldest(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	today := time.Now()
	seedWorkout(t, s, today.AddDate(0, 0, -1), 30)
	_, err := s.CreateWorkout(store.WorkoutInput{
		Date:            today,
		DurationMinutes: 30,
		Details:         []store.DetailInput{{ExerciseID: ptr(int64(2))}},
	})
	require.NoError(t, err)

	d := newDashboardModel(s, session.Context{}, quote.New(nil), 7)
	d.setSize(120, 40)
	d, _ = d.update(d.loadData()())

	cards := d.renderCards(116)
	assert.Contains(t, cards, "Squat")
	assert.NotContains(t, cards, "Bench Press")
}

func TestDashboardEmpty(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, session.Context{}, nil, 0)
	d.setSize(100, 30)
	d, _ = d.update(d.loadData()())

	assert.Equal(t, 7, d.windowDays)
	view := d.view()
	assert.Contains(t, view, "Welcome back, Athlete")
	assert.Contains(t, view, "No workouts yet")
	assert.Contains(t, view, stats.NoData)
}

func TestDashboardSessionKeys(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, session.Context{}, nil, 7)
	clock := &fakeClock{t: time.Now()}
	d.timer.now = clock.now

	d, cmd := d.update(press("s"))
	require.NotNil(t, cmd)
	assert.IsType(t, sessionStartedMsg{}, cmd())
	assert.True(t, d.isRunning())

	d, _ = d.update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, d.isPaused())
	d, _ = d.update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, d.isPaused())

	clock.advance(42 * time.Minute)
	d, cmd = d.update(press("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, sessionFinishedMsg{minutes: 42}, cmd())
	assert.False(t, d.isRunning())

	_, cmd = d.update(press("x"))
	assert.Nil(t, cmd, "finishing twice does nothing")
}

func TestDashboardTerminalTooSmall(t *testing.T) {
	d := newDashboardModel(newTestStore(t), session.Context{}, nil, 7)
	d.setSize(10, 10)
	assert.Equal(t, "Terminal too small", d.view())
}

// ============================================================
// Workouts
// ============================================================

func TestWorkoutsListAndDetail(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	seedWorkout(t, s, time.Now().AddDate(0, 0, -1), 40)
	seedWorkout(t, s, time.Now(), 30)

	w := newWorkoutsModel(s, 0)
	w.setSize(120, 40)
	w, _ = w.update(w.refresh()())
	require.Len(t, w.records, 2)
	assert.Contains(t, w.view(), "2 workouts")

	w, _ = w.update(enterKey)
	assert.Equal(t, workoutsDetail, w.mode)
	view := w.view()
	assert.Contains(t, view, "Squat")
	assert.Contains(t, view, "1,500 kg")

	w, _ = w.update(escKey)
	assert.Equal(t, workoutsList, w.mode)
}

func TestWorkoutsCreateFromEditor(t *testing.T) {
	s := newTestStore(t)
	lib := seedLibrary(t, s)

	w := newWorkoutsModel(s, 0)
	w.setSize(120, 40)
	w, _ = w.showNewForm(45)
	assert.True(t, w.capturing())
	assert.True(t, w.formActive)
	assert.Equal(t, "45", *w.formDuration)
	assert.Equal(t, time.Now().Format(time.DateOnly), *w.formDate)

	// Leave the header form and add an exercise through the picker.
	w.formActive = false
	w, _ = w.update(exercisesDataMsg{entries: lib})
	w, _ = w.update(press("a"))
	require.True(t, w.picking)
	w, _ = w.update(press("squ"))
	require.Len(t, w.matches, 2)
	w, _ = w.update(enterKey)
	assert.False(t, w.picking)
	require.True(t, w.formActive)
	assert.Equal(t, "detail", w.formType)

	*w.formSets, *w.formReps, *w.formWeight = "3", "10", "50"
	w.formActive = false
	w.rows = append(w.rows, editRow{
		exerciseID: &w.pendingEntry.ID,
		name:       w.pendingEntry.Name,
		sets:       ptr(3),
		reps:       ptr(10),
		weightKg:   ptr(50.0),
	})
	assert.Contains(t, w.view(), "1,500 kg")

	msg := w.save()()
	saved, ok := msg.(workoutSavedMsg)
	require.True(t, ok, "got %#v", msg)

	rec, err := s.GetWorkout(saved.id)
	require.NoError(t, err)
	assert.Equal(t, 45, rec.DurationMinutes)
	require.Len(t, rec.Details, 1)
	assert.Equal(t, 1500.0, rec.Details[0].Volume())

	w, cmd := w.update(saved)
	assert.Equal(t, workoutsList, w.mode)
	assert.False(t, w.capturing())
	require.NotNil(t, cmd)
}

func TestWorkoutsEditReplacesDetails(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	rec := seedWorkout(t, s, time.Now(), 30)

	w := newWorkoutsModel(s, 0)
	w, _ = w.update(w.refresh()())
	w, _ = w.update(press("e"))
	require.Equal(t, workoutsEditor, w.mode)
	assert.Equal(t, rec.ID, w.editingID)
	require.Len(t, w.rows, 1)
	assert.Equal(t, "Squat", w.rows[0].name)

	w, _ = w.update(press("d"))
	assert.Empty(t, w.rows)
	*w.formDuration = "35"

	_, ok := w.save()().(workoutSavedMsg)
	require.True(t, ok)
	got, err := s.GetWorkout(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, got.DurationMinutes)
	assert.Empty(t, got.Details)
}

func TestWorkoutsEditorEscDiscards(t *testing.T) {
	s := newTestStore(t)
	w := newWorkoutsModel(s, 0)
	w, _ = w.showNewForm(0)
	w.formActive = false
	w, cmd := w.update(escKey)
	assert.Equal(t, workoutsList, w.mode)
	require.NotNil(t, cmd)
	assert.Equal(t, statusMsg{text: "Changes discarded"}, cmd())

	n, err := s.CountWorkouts()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWorkoutsDelete(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	seedWorkout(t, s, time.Now(), 30)

	w := newWorkoutsModel(s, 0)
	w, _ = w.update(w.refresh()())
	w, _ = w.update(press("d"))
	require.True(t, w.formActive)
	assert.Equal(t, "delete", w.formType)

	assert.IsType(t, workoutDeletedMsg{}, w.deleteSelected()())
	n, err := s.CountWorkouts()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRowFromDetailWithDeletedExercise(t *testing.T) {
	row := rowFromDetail(stats.SetDetail{Sets: 2})
	assert.Nil(t, row.exerciseID)
	assert.Equal(t, "Unknown exercise", row.name)
	assert.Equal(t, 2, *row.sets)
	assert.Nil(t, row.reps)
	assert.Zero(t, row.volume())
}

// ============================================================
// Analytics
// ============================================================

func TestAnalyticsReport(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	seedWorkout(t, s, day, 30)
	_, err := s.CreateWorkout(store.WorkoutInput{
		Date:            day,
		DurationMinutes: 20,
		Details:         []store.DetailInput{{ExerciseID: ptr(int64(1)), Sets: ptr(4), Reps: ptr(8), WeightKg: ptr(25.0)}},
	})
	require.NoError(t, err)

	a := newAnalyticsModel(s, stats.ReportOptions{})
	a.setSize(120, 40)
	assert.Contains(t, a.view(), "Loading")

	a, _ = a.update(a.refresh()())
	assert.Equal(t, 2, a.report.Totals.Count)
	assert.Equal(t, 50, a.report.Totals.DurationMinutes)
	assert.Equal(t, 2300.0, a.report.Totals.VolumeKg)
	assert.Equal(t, []stats.Slice{{Label: "LEGS", Count: 2}}, a.report.Distribution)
	assert.Equal(t, "Squat", a.report.Favorite)
	require.Len(t, a.report.Trend, 1)
	assert.Equal(t, 50, a.report.Trend[0].DurationMinutes)

	view := a.view()
	assert.Contains(t, view, "2.3 t")
	assert.Contains(t, view, "LEGS")
	assert.Contains(t, view, "100%")

	a, _ = a.update(press("v"))
	assert.Equal(t, chartVolume, a.chart)
	assert.Contains(t, a.view(), "last 2 workouts")
	a, _ = a.update(press("v"))
	assert.Equal(t, chartTrend, a.chart)
}

func TestAnalyticsEmpty(t *testing.T) {
	a := newAnalyticsModel(newTestStore(t), stats.ReportOptions{})
	a.setSize(100, 30)
	a, _ = a.update(a.refresh()())
	view := a.view()
	assert.Contains(t, view, stats.NoData)
	assert.Contains(t, view, "Log a workout")
}

// ============================================================
// Library
// ============================================================

func TestLibraryBrowse(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)

	l := newLibraryModel(s, 2)
	l.setSize(120, 40)
	l, _ = l.update(l.refresh()())

	page := l.browser.Page()
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Contains(t, l.view(), "page 1 of 2")

	l, _ = l.update(press("l"))
	assert.Equal(t, 1, l.browser.Page().Index)
	l, _ = l.update(press("l"))
	assert.Equal(t, 1, l.browser.Page().Index, "paging past the end clamps")
	l, _ = l.update(press("h"))
	assert.Equal(t, 0, l.browser.Page().Index)
}

func TestLibrarySearchResetsPage(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)

	l := newLibraryModel(s, 2)
	l.setSize(120, 40)
	l, _ = l.update(l.refresh()())
	l, _ = l.update(press("l"))
	require.Equal(t, 1, l.browser.Page().Index)

	l, _ = l.update(press("/"))
	require.True(t, l.capturing())
	l, _ = l.update(press("squat"))
	assert.Equal(t, "squat", l.browser.Query().Text)
	assert.Equal(t, 0, l.browser.Page().Index)
	assert.Equal(t, 2, l.browser.Matches())

	l, _ = l.update(escKey)
	assert.False(t, l.capturing())
	assert.Equal(t, 2, l.browser.Matches(), "leaving the search box keeps the filter")

	l, _ = l.update(escKey)
	assert.Equal(t, 4, l.browser.Matches())
}

func TestLibraryCycleFilters(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)

	l := newLibraryModel(s, 0)
	l.setSize(120, 40)
	l, _ = l.update(l.refresh()())
	require.NotEmpty(t, l.categories)

	l, _ = l.update(press("]"))
	first := l.browser.Query().Category
	assert.Equal(t, l.categories[0], first)

	l, _ = l.update(press("["))
	assert.Empty(t, l.browser.Query().Category)
	l, _ = l.update(press("["))
	assert.Equal(t, l.categories[len(l.categories)-1], l.browser.Query().Category)

	l, _ = l.update(press("v"))
	l, _ = l.update(press("]"))
	assert.Equal(t, l.bodyParts[0], l.browser.Query().BodyPart)
}

func TestLibraryEntryDetail(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)

	l := newLibraryModel(s, 0)
	l.setSize(120, 40)
	l, _ = l.update(l.refresh()())
	l, _ = l.update(enterKey)
	require.True(t, l.viewing)
	e, ok := l.selected()
	require.True(t, ok)
	assert.Contains(t, l.view(), e.Name)
	assert.Contains(t, l.view(), "Body part:")

	l, _ = l.update(escKey)
	assert.False(t, l.viewing)
}

func TestLibraryEmpty(t *testing.T) {
	l := newLibraryModel(newTestStore(t), 0)
	l.setSize(120, 40)
	l, _ = l.update(l.refresh()())
	assert.Contains(t, l.view(), "library is empty")
}

// ============================================================
// Progress
// ============================================================

func TestProgressLogAndDelete(t *testing.T) {
	s := newTestStore(t)
	p := newProgressModel(s)
	p.setSize(120, 40)
	p, _ = p.update(p.refresh()())
	assert.False(t, p.hasData)
	assert.Contains(t, p.view(), "No weigh-ins yet")

	assert.IsType(t, progressChangedMsg{}, p.addLog(time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), "82")())
	assert.IsType(t, progressChangedMsg{}, p.addLog(time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), "80.5")())
	assert.Equal(t, statusMsg{text: "Weight is required", isError: true}, p.addLog(time.Now(), "")())

	p, cmd := p.update(progressChangedMsg{})
	require.NotNil(t, cmd)
	p, _ = p.update(cmd())
	require.True(t, p.hasData)
	assert.Equal(t, 82.0, p.summary.StartKg)
	assert.Equal(t, 80.5, p.summary.CurrentKg)
	assert.Equal(t, -1.5, p.summary.ChangeKg)
	assert.Contains(t, p.view(), "-1.5 kg")

	// The cursor starts on the newest weigh-in.
	sel, ok := p.selected()
	require.True(t, ok)
	assert.Equal(t, 80.5, sel.WeightKg)

	p, _ = p.update(press("d"))
	require.True(t, p.formActive)
	assert.IsType(t, progressChangedMsg{}, p.deleteSelected()())

	logs, err := s.ListProgressLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 82.0, logs[0].WeightKg)
}

func TestProgressFormPrefillsCurrentWeight(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddProgressLog(time.Now(), 77.5)
	require.NoError(t, err)

	p := newProgressModel(s)
	p, _ = p.update(p.refresh()())
	p, _ = p.update(press("n"))
	require.True(t, p.formActive)
	assert.Equal(t, "77.5", *p.formWeight)

	p, _ = p.update(escKey)
	assert.False(t, p.formActive)
}

// ============================================================
// Profile
// ============================================================

func TestProfileBMI(t *testing.T) {
	s := newTestStore(t)
	sess := session.New("jane@example.com")
	_, err := s.SaveProfile(sess.ProfileKey(), store.Profile{HeightCm: 180, WeightKg: 80, Age: 30}, time.Now())
	require.NoError(t, err)

	p := newProfileModel(s, sess)
	p.setSize(120, 40)
	p, _ = p.update(p.refresh()())
	require.True(t, p.hasMetrics)
	assert.Equal(t, 24.7, p.metrics.BMI)
	assert.Equal(t, stats.Normal, p.metrics.Band)

	view := p.view()
	assert.Contains(t, view, "Jane")
	assert.Contains(t, view, "24.7")
	assert.Contains(t, view, "Normal")
}

func TestProfileLatestWeighInWins(t *testing.T) {
	s := newTestStore(t)
	sess := session.Context{}
	_, err := s.SaveProfile(sess.ProfileKey(), store.Profile{HeightCm: 100, WeightKg: 20}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = s.AddProgressLog(time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), 30)
	require.NoError(t, err)

	p := newProfileModel(s, sess)
	p, _ = p.update(p.refresh()())
	assert.True(t, p.fromLog)
	assert.Equal(t, 30.0, p.weightKg)
	assert.Equal(t, stats.Obese, p.metrics.Band)
}

func TestProfileHidesBMIWithoutHeight(t *testing.T) {
	s := newTestStore(t)
	p := newProfileModel(s, session.Context{})
	p.setSize(100, 30)
	p, _ = p.update(p.refresh()())
	assert.False(t, p.hasMetrics)
	assert.Contains(t, p.view(), "to see your BMI")
}

func TestProfileSaveFromForm(t *testing.T) {
	s := newTestStore(t)
	sess := session.New("sam@example.com")
	p := newProfileModel(s, sess)
	p, _ = p.update(p.refresh()())

	p, _ = p.update(enterKey)
	require.True(t, p.formActive)
	*p.formHeight, *p.formWeight, *p.formAge, *p.formGender = "175", "70", "41", "other"

	assert.IsType(t, profileSavedMsg{}, p.save(p.formProfile())())

	got, err := s.GetProfile(sess.ProfileKey())
	require.NoError(t, err)
	assert.Equal(t, store.Profile{HeightCm: 175, WeightKg: 70, Age: 41, Gender: "other"}, got)

	logs, err := s.ListProgressLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 70.0, logs[0].WeightKg)
}

// ============================================================
// App
// ============================================================

func newTestApp(t *testing.T, s *store.Store) App {
	t.Helper()
	app := NewApp(s, Options{
		Session:   session.New("jane@example.com"),
		Quotes:    quote.New(nil),
		ExportDir: t.TempDir(),
	})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func TestNewApp(t *testing.T) {
	app := NewApp(newTestStore(t), Options{})
	assert.Equal(t, viewDashboard, app.activeView)
	assert.False(t, app.showHelp)
	assert.False(t, app.exportPicking)
	assert.NotEmpty(t, app.exportDir)
	assert.NotNil(t, app.Init())
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestStore(t), Options{})
	assert.Equal(t, "Loading...", app.View())
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	header := app.renderHeader()
	assert.Contains(t, header, "fitlog")
	for _, name := range viewNames {
		assert.Contains(t, header, name)
	}
}

func TestAppSwitchViews(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	for i, k := range []string{"1", "2", "3", "4", "5", "6"} {
		m, cmd := app.Update(press(k))
		app = m.(App)
		assert.Equal(t, viewState(i), app.activeView)
		assert.NotNil(t, cmd)
	}

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	assert.Equal(t, viewDashboard, app.activeView, "tab wraps around")
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	m, _ := app.Update(statusMsg{text: "Boom", isError: true})
	app = m.(App)
	assert.True(t, app.statusError)
	assert.Contains(t, app.renderFooter(), "Boom")

	m, _ = app.Update(exportDoneMsg{path: "/tmp/x.csv"})
	app = m.(App)
	assert.False(t, app.statusError)
	assert.Equal(t, "Exported to /tmp/x.csv", app.status)
}

func TestAppSessionFinishedOpensEditor(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	m, _ := app.Update(sessionFinishedMsg{minutes: 52})
	app = m.(App)
	assert.Equal(t, viewWorkouts, app.activeView)
	assert.True(t, app.isFormActive())
	assert.Equal(t, "52", *app.workouts.formDuration)

	// Global shortcuts go to the form while it is open.
	m, _ = app.Update(press("3"))
	app = m.(App)
	assert.Equal(t, viewWorkouts, app.activeView)
}

func TestAppHelpToggle(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(press("?"))
	app = m.(App)
	assert.True(t, app.showHelp)
	assert.True(t, app.help.ShowAll)
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	_, cmd := app.Update(press("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppExport(t *testing.T) {
	s := newTestStore(t)
	seedLibrary(t, s)
	seedWorkout(t, s, time.Now(), 30)
	app := newTestApp(t, s)

	m, _ := app.Update(press("E"))
	app = m.(App)
	require.True(t, app.exportPicking)
	assert.Contains(t, app.View(), "Export Format")

	m, _ = app.Update(press("j"))
	app = m.(App)
	assert.Equal(t, 1, app.exportCursor)

	m, cmd := app.Update(enterKey)
	app = m.(App)
	assert.False(t, app.exportPicking)
	require.NotNil(t, cmd)

	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(done.path, ".json"))
	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"favorite_exercise": "Squat"`)
}

func TestAppExportCancel(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(press("E"))
	app = m.(App)
	m, _ = app.Update(escKey)
	app = m.(App)
	assert.False(t, app.exportPicking)
}

func TestAppFooterShowsSession(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(press("s"))
	app = m.(App)
	assert.True(t, app.dashboard.isRunning())
	assert.Contains(t, app.renderFooter(), "00:00:0")
}

// ============================================================
// Keys & styles
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	assert.NotEmpty(t, keys.ShortHelp())
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	assert.Len(t, groups, 5)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestStylesRender(t *testing.T) {
	for _, s := range []string{
		titleStyle.Render("x"),
		mutedStyle.Render("x"),
		cardStyle.Render("x"),
		quoteStyle.Render("x"),
		bandStyle(stats.Obese).Render("x"),
	} {
		assert.Contains(t, s, "x")
	}
	assert.Equal(t, seriesColors[0], seriesColor(len(seriesColors)))
}
