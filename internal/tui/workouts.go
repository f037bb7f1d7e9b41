package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/catalog"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
)

type workoutsMode int

const (
	workoutsList workoutsMode = iota
	workoutsDetail
	workoutsEditor
)

// editRow is one exercise line of the workout being edited.
type editRow struct {
	exerciseID *int64
	name       string
	bodyPart   string
	sets       *int
	reps       *int
	weightKg   *float64
}

func (r editRow) volume() float64 {
	d := stats.SetDetail{}
	if r.sets != nil {
		d.Sets = *r.sets
	}
	if r.reps != nil {
		d.Reps = *r.reps
	}
	if r.weightKg != nil {
		d.WeightKg = *r.weightKg
	}
	return d.Volume()
}

type workoutsModel struct {
	store  *store.Store
	width  int
	height int

	mode     workoutsMode
	records  []stats.WorkoutRecord
	cursor   int
	pageSize int

	// Editor
	editingID int64 // 0 for a new workout
	rows      []editRow
	rowCursor int

	// Exercise picker
	picking      bool
	search       textinput.Model
	exercises    []catalog.Entry
	matches      []catalog.Entry
	pickCursor   int
	pendingEntry catalog.Entry

	formActive bool
	form       *huh.Form
	formType   string // "workout", "detail", "delete"

	// Form field pointers (survive value copies)
	formDate     *string
	formDuration *string
	formNotes    *string
	formSets     *string
	formReps     *string
	formWeight   *string
	formConfirm  *bool
}

func newWorkoutsModel(s *store.Store, pageSize int) workoutsModel {
	date, dur, notes, sets, reps, weight := "", "", "", "", "", ""
	confirm := false
	search := textinput.New()
	search.Placeholder = "search exercises"
	search.Prompt = "/ "
	search.CharLimit = 64
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return workoutsModel{
		store:        s,
		pageSize:     pageSize,
		search:       search,
		formDate:     &date,
		formDuration: &dur,
		formNotes:    &notes,
		formSets:     &sets,
		formReps:     &reps,
		formWeight:   &weight,
		formConfirm:  &confirm,
	}
}

func (w *workoutsModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

// capturing reports whether the view wants every key, including the
// global shortcuts.
func (w workoutsModel) capturing() bool {
	return w.formActive || w.mode == workoutsEditor
}

type workoutsDataMsg struct {
	records []stats.WorkoutRecord
	err     error
}

type exercisesDataMsg struct {
	entries []catalog.Entry
	err     error
}

type workoutDeletedMsg struct{}

func (w workoutsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, err := w.store.ListWorkouts(store.WorkoutFilter{})
		return workoutsDataMsg{records: records, err: err}
	}
}

func (w workoutsModel) loadExercises() tea.Cmd {
	return func() tea.Msg {
		entries, err := w.store.ListExercises()
		return exercisesDataMsg{entries: entries, err: err}
	}
}

func (w workoutsModel) update(msg tea.Msg) (workoutsModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workoutsDataMsg:
		if msg.err != nil {
			return w, func() tea.Msg { return errStatus("Load workouts", msg.err) }
		}
		w.records = msg.records
		if w.cursor >= len(w.records) {
			w.cursor = max(0, len(w.records)-1)
		}
		if w.mode == workoutsDetail && len(w.records) == 0 {
			w.mode = workoutsList
		}
		return w, nil

	case exercisesDataMsg:
		if msg.err != nil {
			return w, func() tea.Msg { return errStatus("Load exercises", msg.err) }
		}
		w.exercises = msg.entries
		w.matches = catalog.QuickPick(w.exercises, w.search.Value())
		w.pickCursor = 0
		return w, nil

	case workoutSavedMsg:
		w.mode = workoutsList
		w.rows = nil
		w.editingID = 0
		return w, w.refresh()

	case workoutDeletedMsg:
		w.mode = workoutsList
		return w, w.refresh()

	case tea.KeyMsg:
		switch w.mode {
		case workoutsEditor:
			if w.picking {
				return w.updatePicker(msg)
			}
			return w.updateEditor(msg)
		case workoutsDetail:
			return w.updateDetail(msg)
		default:
			return w.updateList(msg)
		}
	}
	if w.picking {
		var cmd tea.Cmd
		w.search, cmd = w.search.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w workoutsModel) selected() (stats.WorkoutRecord, bool) {
	if w.cursor < 0 || w.cursor >= len(w.records) {
		return stats.WorkoutRecord{}, false
	}
	return w.records[w.cursor], true
}

func (w workoutsModel) updateList(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, keys.Down):
		if w.cursor < len(w.records)-1 {
			w.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(w.records) > 0 {
			w.mode = workoutsDetail
		}
	case key.Matches(msg, keys.New):
		return w.showNewForm(0)
	case key.Matches(msg, keys.Edit):
		if rec, ok := w.selected(); ok {
			return w.showEditForm(rec)
		}
	case key.Matches(msg, keys.Delete):
		if _, ok := w.selected(); ok {
			return w.showDeleteForm()
		}
	}
	return w, nil
}

func (w workoutsModel) updateDetail(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		w.mode = workoutsList
	case key.Matches(msg, keys.Edit):
		if rec, ok := w.selected(); ok {
			return w.showEditForm(rec)
		}
	case key.Matches(msg, keys.Delete):
		if _, ok := w.selected(); ok {
			return w.showDeleteForm()
		}
	}
	return w, nil
}

func (w workoutsModel) updateEditor(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		w.mode = workoutsList
		w.rows = nil
		w.editingID = 0
		return w, func() tea.Msg { return statusMsg{text: "Changes discarded"} }
	case key.Matches(msg, keys.Save):
		return w, w.save()
	case key.Matches(msg, keys.Up):
		if w.rowCursor > 0 {
			w.rowCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.rowCursor < len(w.rows)-1 {
			w.rowCursor++
		}
	case key.Matches(msg, keys.Add):
		w.picking = true
		w.search.SetValue("")
		w.matches = catalog.QuickPick(w.exercises, "")
		w.pickCursor = 0
		focus := w.search.Focus()
		return w, tea.Batch(focus, w.loadExercises())
	case key.Matches(msg, keys.Delete):
		if len(w.rows) > 0 {
			w.rows = append(w.rows[:w.rowCursor:w.rowCursor], w.rows[w.rowCursor+1:]...)
			if w.rowCursor >= len(w.rows) {
				w.rowCursor = max(0, len(w.rows)-1)
			}
		}
	case key.Matches(msg, keys.Enter):
		return w.showHeaderForm()
	}
	return w, nil
}

func (w workoutsModel) updatePicker(msg tea.KeyMsg) (workoutsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		w.picking = false
		w.search.Blur()
		return w, nil
	case tea.KeyUp:
		if w.pickCursor > 0 {
			w.pickCursor--
		}
		return w, nil
	case tea.KeyDown:
		if w.pickCursor < len(w.matches)-1 {
			w.pickCursor++
		}
		return w, nil
	case tea.KeyEnter:
		if len(w.matches) == 0 {
			return w, nil
		}
		w.pendingEntry = w.matches[w.pickCursor]
		w.picking = false
		w.search.Blur()
		return w.showDetailForm()
	}

	var cmd tea.Cmd
	w.search, cmd = w.search.Update(msg)
	w.matches = catalog.QuickPick(w.exercises, w.search.Value())
	w.pickCursor = min(w.pickCursor, max(0, len(w.matches)-1))
	return w, cmd
}

// showNewForm opens the editor for a new workout dated today. minutes
// pre-fills the duration when the workout comes from a timed session.
func (w workoutsModel) showNewForm(minutes int) (workoutsModel, tea.Cmd) {
	*w.formDate = time.Now().Format(time.DateOnly)
	*w.formDuration = ""
	if minutes > 0 {
		*w.formDuration = strconv.Itoa(minutes)
	}
	*w.formNotes = ""
	w.editingID = 0
	w.rows = nil
	w.rowCursor = 0
	w.mode = workoutsEditor
	w, cmd := w.showHeaderForm()
	return w, tea.Batch(cmd, w.loadExercises())
}

func (w workoutsModel) showEditForm(rec stats.WorkoutRecord) (workoutsModel, tea.Cmd) {
	*w.formDate = rec.Date.Format(time.DateOnly)
	*w.formDuration = strconv.Itoa(rec.DurationMinutes)
	*w.formNotes = rec.Notes
	w.editingID = rec.ID
	w.rows = make([]editRow, 0, len(rec.Details))
	for _, d := range rec.Details {
		w.rows = append(w.rows, rowFromDetail(d))
	}
	w.rowCursor = 0
	w.mode = workoutsEditor
	return w, w.loadExercises()
}

func rowFromDetail(d stats.SetDetail) editRow {
	row := editRow{name: "Unknown exercise"}
	if d.Exercise != nil {
		id := d.Exercise.ID
		row.exerciseID = &id
		row.name = d.Exercise.Name
		row.bodyPart = d.Exercise.BodyPart
	}
	if d.Sets > 0 {
		sets := d.Sets
		row.sets = &sets
	}
	if d.Reps > 0 {
		reps := d.Reps
		row.reps = &reps
	}
	if d.WeightKg > 0 {
		kg := d.WeightKg
		row.weightKg = &kg
	}
	return row
}

func (w workoutsModel) showHeaderForm() (workoutsModel, tea.Cmd) {
	w.formType = "workout"
	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(w.formDate).Validate(validateDate),
			huh.NewInput().Title("Duration (minutes)").Value(w.formDuration).Validate(validateOptionalInt),
			huh.NewText().Title("Notes").Lines(3).Value(w.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutsModel) showDetailForm() (workoutsModel, tea.Cmd) {
	*w.formSets = ""
	*w.formReps = ""
	*w.formWeight = ""
	w.formType = "detail"
	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Sets").Value(w.formSets).Validate(validateOptionalInt),
			huh.NewInput().Title("Reps").Value(w.formReps).Validate(validateOptionalInt),
			huh.NewInput().Title("Weight (kg)").Value(w.formWeight).Validate(validateOptionalFloat),
		).Title(w.pendingEntry.Name),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutsModel) showDeleteForm() (workoutsModel, tea.Cmd) {
	*w.formConfirm = false
	w.formType = "delete"
	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Delete this workout?").Affirmative("Delete").Negative("Keep").Value(w.formConfirm),
		),
	).WithShowHelp(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w workoutsModel) updateForm(msg tea.Msg) (workoutsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		switch w.formType {
		case "detail":
			sets, _ := parseOptionalInt(*w.formSets)
			reps, _ := parseOptionalInt(*w.formReps)
			kg, _ := parseOptionalFloat(*w.formWeight)
			id := w.pendingEntry.ID
			w.rows = append(w.rows, editRow{
				exerciseID: &id,
				name:       w.pendingEntry.Name,
				bodyPart:   w.pendingEntry.BodyPart,
				sets:       sets,
				reps:       reps,
				weightKg:   kg,
			})
			w.rowCursor = len(w.rows) - 1
		case "delete":
			if *w.formConfirm {
				return w, w.deleteSelected()
			}
		}
		return w, nil
	}

	return w, cmd
}

func (w workoutsModel) input() store.WorkoutInput {
	in := store.WorkoutInput{
		Date:  parseDate(*w.formDate),
		Notes: *w.formNotes,
	}
	if d, _ := parseOptionalInt(*w.formDuration); d != nil {
		in.DurationMinutes = *d
	}
	for _, r := range w.rows {
		in.Details = append(in.Details, store.DetailInput{
			ExerciseID: r.exerciseID,
			Sets:       r.sets,
			Reps:       r.reps,
			WeightKg:   r.weightKg,
		})
	}
	return in
}

func (w workoutsModel) save() tea.Cmd {
	in := w.input()
	id := w.editingID
	return func() tea.Msg {
		var (
			rec *stats.WorkoutRecord
			err error
		)
		if id == 0 {
			rec, err = w.store.CreateWorkout(in)
		} else {
			rec, err = w.store.UpdateWorkout(id, in)
		}
		if err != nil {
			return errStatus("Save workout", err)
		}
		return workoutSavedMsg{id: rec.ID}
	}
}

func (w workoutsModel) deleteSelected() tea.Cmd {
	rec, ok := w.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := w.store.DeleteWorkout(rec.ID); err != nil {
			return errStatus("Delete workout", err)
		}
		return workoutDeletedMsg{}
	}
}

func (w workoutsModel) view() string {
	if w.formActive && w.form != nil {
		title := titleStyle.Render("Workout")
		switch w.formType {
		case "detail":
			title = titleStyle.Render("Add Exercise")
		case "delete":
			title = titleStyle.Render("Delete Workout")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", w.form.View())
		return panelStyle.Width(w.width - 4).Render(content)
	}

	switch w.mode {
	case workoutsEditor:
		if w.picking {
			return w.renderPicker()
		}
		return w.renderEditor()
	case workoutsDetail:
		return w.renderDetail()
	}
	return w.renderList()
}

func (w workoutsModel) renderList() string {
	width := w.width - 4
	title := titleStyle.Render("Workouts")

	if len(w.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No workouts yet. Press n to log one."),
		)
		return panelStyle.Width(width).Render(content)
	}

	rows := []string{title, ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-10s %9s %12s  %s", "Date", "", "Duration", "Volume", "Notes")))

	// Keep the cursor on screen.
	start := 0
	if w.cursor >= w.pageSize {
		start = w.cursor - w.pageSize + 1
	}
	end := min(start+w.pageSize, len(w.records))
	now := time.Now()
	for i := start; i < end; i++ {
		rec := w.records[i]
		var vol float64
		for _, d := range rec.Details {
			vol += d.Volume()
		}
		cursor := "  "
		style := normalItemStyle
		if i == w.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-10s %9s %12s  %s",
			cursor,
			stats.DayKey(rec.Date),
			relativeDay(rec.Date, now),
			formatMinutes(rec.DurationMinutes),
			formatKg(vol),
			truncate(rec.Notes, 30),
		)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d workouts  n: new  e: edit  d: delete  enter: details", len(w.records))))

	return panelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (w workoutsModel) renderDetail() string {
	width := w.width - 4
	rec, ok := w.selected()
	if !ok {
		return w.renderList()
	}

	title := titleStyle.Render(fmt.Sprintf("Workout on %s", rec.Date.Format("Monday, 2 Jan 2006")))
	rows := []string{
		title,
		mutedStyle.Render(fmt.Sprintf("%s  %d exercises", formatMinutes(rec.DurationMinutes), len(rec.Details))),
		"",
	}
	if rec.Notes != "" {
		rows = append(rows, quoteStyle.Render(rec.Notes), "")
	}

	if len(rec.Details) == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises recorded"))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-26s %-12s %5s %5s %9s %12s", "Exercise", "Body part", "Sets", "Reps", "Weight", "Volume")))
		var total float64
		for _, d := range rec.Details {
			name, part := "Unknown exercise", ""
			if d.Exercise != nil {
				name, part = d.Exercise.Name, d.Exercise.BodyPart
			}
			total += d.Volume()
			rows = append(rows, fmt.Sprintf("  %-26s %-12s %5d %5d %9s %12s",
				truncate(name, 26), truncate(part, 12), d.Sets, d.Reps, trimFloat(d.WeightKg), formatKg(d.Volume())))
		}
		rows = append(rows, "", fmt.Sprintf("  %s %s", titleStyle.Render("Total volume"), highlightStyle.Render(formatKg(total))))
	}

	rows = append(rows, "", mutedStyle.Render("  e: edit  d: delete  esc: back"))
	return panelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (w workoutsModel) renderEditor() string {
	width := w.width - 4
	heading := "New Workout"
	if w.editingID != 0 {
		heading = "Edit Workout"
	}
	rows := []string{
		titleStyle.Render(heading),
		mutedStyle.Render(fmt.Sprintf("%s  %s min", *w.formDate, orDash(*w.formDuration))),
		"",
	}

	if len(w.rows) == 0 {
		rows = append(rows, mutedStyle.Render("  No exercises yet. Press a to add one."))
	}
	var total float64
	for i, r := range w.rows {
		cursor := "  "
		style := normalItemStyle
		if i == w.rowCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		total += r.volume()
		rows = append(rows, style.Render(fmt.Sprintf("%s%-26s %5s x %-5s %9s kg",
			cursor, truncate(r.name, 26), intOrDash(r.sets), intOrDash(r.reps), floatOrDash(r.weightKg))))
	}
	if len(w.rows) > 0 {
		rows = append(rows, "", fmt.Sprintf("  %s %s", titleStyle.Render("Volume"), highlightStyle.Render(formatKg(total))))
	}

	rows = append(rows, "", mutedStyle.Render("  a: add exercise  d: remove  enter: date/notes  ctrl+s: save  esc: discard"))
	return activePanelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (w workoutsModel) renderPicker() string {
	width := w.width - 4
	rows := []string{titleStyle.Render("Add Exercise"), "", w.search.View(), ""}

	if len(w.exercises) == 0 {
		rows = append(rows, mutedStyle.Render("  The exercise library is empty. Import one with fitlog -import."))
	} else if len(w.matches) == 0 {
		rows = append(rows, mutedStyle.Render("  No matching exercises"))
	}

	visible := max(w.height-12, 5)
	start := 0
	if w.pickCursor >= visible {
		start = w.pickCursor - visible + 1
	}
	end := min(start+visible, len(w.matches))
	for i := start; i < end; i++ {
		e := w.matches[i]
		cursor := "  "
		style := normalItemStyle
		if i == w.pickCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+e.Name)+mutedStyle.Render("  "+e.BodyPart))
	}

	rows = append(rows, "", mutedStyle.Render("  ↑/↓: move  enter: choose  esc: cancel"))
	return activePanelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func intOrDash(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func floatOrDash(p *float64) string {
	if p == nil {
		return "-"
	}
	return trimFloat(*p)
}
