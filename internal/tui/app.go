package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/export"
	"github.com/sadopc/fitlog/internal/quote"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
	"github.com/sirupsen/logrus"
)

// Options configures the views. Zero values fall back to sensible defaults.
type Options struct {
	Session       session.Context
	Quotes        *quote.Picker
	WindowDays    int
	TrendGroups   int
	RecentVolumes int
	PageSize      int
	ExportDir     string // defaults to the home directory
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	exportDir string

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	workouts  workoutsModel
	analytics analyticsModel
	library   libraryModel
	progress  progressModel
	profile   profileModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.Quotes == nil {
		opts.Quotes = quote.New(nil)
	}
	if opts.ExportDir == "" {
		opts.ExportDir, _ = os.UserHomeDir()
	}

	return App{
		store:      s,
		exportDir:  opts.ExportDir,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, opts.Session, opts.Quotes, opts.WindowDays),
		workouts:   newWorkoutsModel(s, opts.PageSize),
		analytics: newAnalyticsModel(s, stats.ReportOptions{
			TrendGroups:   opts.TrendGroups,
			RecentVolumes: opts.RecentVolumes,
		}),
		library:  newLibraryModel(s, opts.PageSize),
		progress: newProgressModel(s),
		profile:  newProfileModel(s, opts.Session),
		help:     h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}
		for i, b := range keys.views() {
			if key.Matches(msg, b) {
				return a.switchTo(viewState(i))
			}
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Always route ticks to the dashboard so the session keeps counting.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case sessionStartedMsg:
		a.setStatus("Session started")
		return a, nil

	case sessionFinishedMsg:
		a.setStatus("Session finished, log your workout")
		a.activeView = viewWorkouts
		var cmd tea.Cmd
		a.workouts, cmd = a.workouts.showNewForm(msg.minutes)
		return a, cmd

	case workoutSavedMsg:
		a.setStatus("Workout saved")
		var cmd tea.Cmd
		a.workouts, cmd = a.workouts.update(msg)
		return a, tea.Batch(cmd, a.dashboard.loadData())

	case workoutDeletedMsg:
		a.setStatus("Workout deleted")
		var cmd tea.Cmd
		a.workouts, cmd = a.workouts.update(msg)
		return a, tea.Batch(cmd, a.dashboard.loadData())

	case dashboardDataMsg:
		// Loaded in the background after saves, whatever view is active.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case profileSavedMsg:
		a.setStatus("Profile saved")
		var cmd tea.Cmd
		a.profile, cmd = a.profile.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.setStatus("Exported to " + msg.path)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.help.Width = width
	body := height - 4
	a.dashboard.setSize(width, body)
	a.workouts.setSize(width, body)
	a.analytics.setSize(width, body)
	a.library.setSize(width, body)
	a.progress.setSize(width, body)
	a.profile.setSize(width, body)
}

func (a *App) setStatus(text string) {
	a.status = text
	a.statusError = false
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewWorkouts:
		a.workouts, cmd = a.workouts.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewLibrary:
		a.library, cmd = a.library.update(msg)
	case viewProgress:
		a.progress, cmd = a.progress.update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkouts:
		return a.workouts.capturing()
	case viewLibrary:
		return a.library.capturing()
	case viewProgress:
		return a.progress.formActive
	case viewProfile:
		return a.profile.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewWorkouts:
		return a.workouts.refresh()
	case viewAnalytics:
		return a.analytics.refresh()
	case viewLibrary:
		return a.library.refresh()
	case viewProgress:
		return a.progress.refresh()
	case viewProfile:
		return a.profile.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewWorkouts:
		content = a.workouts.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewLibrary:
		content = a.library.view()
	case viewProgress:
		content = a.progress.view()
	case viewProfile:
		content = a.profile.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fitlog")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	sessionInfo := ""
	if a.dashboard.isRunning() {
		elapsed := a.dashboard.elapsed()
		sessionInfo = successStyle.Render(" ● " + formatDuration(elapsed))
		if a.dashboard.isPaused() {
			sessionInfo = warningStyle.Render(" ⏸ " + formatDuration(elapsed))
		}
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []export.Format{export.FormatCSV, export.FormatJSON}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.String()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	dir := a.exportDir
	return func() tea.Msg {
		workouts, err := a.store.ListWorkouts(store.WorkoutFilter{})
		if err != nil {
			return errStatus("Export", err)
		}

		path := export.Path(dir, format, time.Now())
		if format == export.FormatJSON {
			var logs []stats.ProgressLogEntry
			if logs, err = a.store.ListProgressLogs(); err != nil {
				return errStatus("Export", err)
			}
			err = export.ToJSON(workouts, logs, path)
		} else {
			err = export.ToCSV(workouts, path)
		}
		if err != nil {
			return errStatus(format.String()+" export", err)
		}

		logrus.WithFields(logrus.Fields{"path": path, "format": format.String(), "workouts": len(workouts)}).Info("exported workouts")
		return exportDoneMsg{path: path}
	}
}
