package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/quote"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
)

const recentWorkouts = 5

type dashboardModel struct {
	store   *store.Store
	session session.Context
	timer   sessionTimer
	width   int
	height  int

	windowDays int
	quote      quote.Quote

	records []stats.WorkoutRecord
	totals  stats.Totals
	window  []stats.DayBucket
	chart   barchart.Model
	now     func() time.Time
}

func newDashboardModel(s *store.Store, sess session.Context, picker *quote.Picker, windowDays int) dashboardModel {
	if windowDays <= 0 {
		windowDays = 7
	}
	d := dashboardModel{
		store:      s,
		session:    sess,
		timer:      newSessionTimer(),
		windowDays: windowDays,
		chart:      barchart.New(60, 10),
		now:        time.Now,
	}
	if picker != nil {
		d.quote = picker.Next()
	}
	return d
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

func (d dashboardModel) isRunning() bool { return d.timer.running() }
func (d dashboardModel) isPaused() bool  { return d.timer.paused() }
func (d dashboardModel) elapsed() time.Duration {
	return d.timer.currentElapsed()
}

type dashboardDataMsg struct {
	records []stats.WorkoutRecord
	err     error
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		records, err := d.store.ListWorkouts(store.WorkoutFilter{})
		return dashboardDataMsg{records: records, err: err}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.err != nil {
			return d, func() tea.Msg { return errStatus("Load workouts", msg.err) }
		}
		d.records = msg.records
		d.totals = stats.ComputeTotals(msg.records)
		d.window = stats.TrailingWindow(msg.records, d.now(), d.windowDays)
		d.buildChart()
		return d, nil

	case tickMsg:
		d.timer.tick()
		return d, nil

	case tea.KeyMsg:
		d.timer.recordActivity()

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer.running() {
				return d, nil
			}
			d.timer.start()
			return d, func() tea.Msg { return sessionStartedMsg{} }

		case key.Matches(msg, keys.Stop):
			if !d.timer.running() {
				return d, nil
			}
			minutes := d.timer.stop()
			return d, func() tea.Msg { return sessionFinishedMsg{minutes: minutes} }

		case key.Matches(msg, keys.Pause):
			d.timer.toggle()
			return d, nil
		}
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := max(d.width-8, 20)
	chartHeight := 8
	if d.height > 36 {
		chartHeight = 12
	}
	d.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(d.window))
	style := lipgloss.NewStyle().Foreground(colorSecondary)
	for _, b := range d.window {
		bars = append(bars, barchart.BarData{
			Label:  b.Label,
			Values: []barchart.BarValue{{Name: "minutes", Value: float64(b.DurationMinutes), Style: style}},
		})
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderGreeting(contentWidth),
		d.renderTimerPanel(contentWidth),
		d.renderCards(contentWidth),
		d.renderWeekPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderGreeting(w int) string {
	hello := titleStyle.Render(fmt.Sprintf("Welcome back, %s", d.session.DisplayName()))
	if d.quote.Text == "" {
		return headerStyle.Width(w).Render(hello)
	}
	return headerStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		hello,
		quoteStyle.Render(d.quote.String()),
	))
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.timer.running() {
		timeStr := formatDuration(d.timer.currentElapsed())

		var timeDisplay, indicator string
		if d.timer.paused() {
			timeDisplay = clockStyle(colorWarning, w-6).Render(timeStr)
			if d.timer.isIdle {
				indicator = warningStyle.Render("⏸  IDLE")
			} else {
				indicator = warningStyle.Render("⏸  PAUSED")
			}
		} else {
			timeDisplay = clockStyle(colorSuccess, w-6).Render(timeStr)
			indicator = successStyle.Render("●  TRAINING")
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			mutedStyle.Render("x: finish and log  space: pause"),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		clockStyle(colorPrimary, w-6).Render("00:00:00"),
		mutedStyle.Render("Press s to start a session"),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderCards(w int) string {
	favorite := stats.FavoriteExercise(stats.FlattenDetails(stats.Chronological(d.records)))
	cardWidth := max(w/4-2, 14)
	cards := []string{
		card("Workouts", fmt.Sprintf("%d", d.totals.Count), cardWidth),
		card("Time", formatMinutes(d.totals.DurationMinutes), cardWidth),
		card("Volume", formatKg(d.totals.VolumeKg), cardWidth),
		card("Favorite", favorite, cardWidth),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string, w int) string {
	return cardStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center,
		mutedStyle.Render(label),
		cardValueStyle.Render(value),
	))
}

func (d dashboardModel) renderWeekPanel(w int) string {
	var total int
	for _, b := range d.window {
		total += b.DurationMinutes
	}
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render(fmt.Sprintf("Last %d days", d.windowDays)),
		highlightStyle.Render(formatMinutes(total)),
	)
	if total == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No training this week"),
		))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", d.chart.View()))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Workouts")
	if len(d.records) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workouts yet. Press 2 to log one."),
		))
	}

	rows := []string{title}
	now := d.now()
	for _, r := range d.records[:min(recentWorkouts, len(d.records))] {
		var vol float64
		for _, det := range r.Details {
			vol += det.Volume()
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8s  %2d exercises  %s",
			relativeDay(r.Date, now),
			formatMinutes(r.DurationMinutes),
			len(r.Details),
			mutedStyle.Render(formatKg(vol)),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
