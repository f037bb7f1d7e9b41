package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
)

type analyticsChart int

const (
	chartTrend analyticsChart = iota
	chartVolume
)

const topExercises = 5

type analyticsModel struct {
	store  *store.Store
	width  int
	height int

	opts   stats.ReportOptions
	chart  analyticsChart
	report stats.Report
	loaded bool

	bars barchart.Model
}

func newAnalyticsModel(s *store.Store, opts stats.ReportOptions) analyticsModel {
	return analyticsModel{
		store: s,
		opts:  opts,
		bars:  barchart.New(60, 12),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
	a.buildChart()
}

type analyticsDataMsg struct {
	records []stats.WorkoutRecord
	err     error
}

func (a analyticsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, err := a.store.ListWorkouts(store.WorkoutFilter{})
		return analyticsDataMsg{records: records, err: err}
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		if msg.err != nil {
			return a, func() tea.Msg { return errStatus("Load analytics", msg.err) }
		}
		a.report = stats.Analyze(msg.records, a.opts)
		a.loaded = true
		a.buildChart()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Toggle) {
			if a.chart == chartTrend {
				a.chart = chartVolume
			} else {
				a.chart = chartTrend
			}
			a.buildChart()
		}
	}
	return a, nil
}

func (a *analyticsModel) buildChart() {
	chartWidth := max(a.width-8, 20)
	chartHeight := 10
	if a.height > 36 {
		chartHeight = 14
	}
	a.bars = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	switch a.chart {
	case chartVolume:
		style := lipgloss.NewStyle().Foreground(colorAccent)
		for _, v := range a.report.Volumes {
			bars = append(bars, barchart.BarData{
				Label:  v.Label,
				Values: []barchart.BarValue{{Name: "tonnes", Value: v.Tonnes, Style: style}},
			})
		}
	default:
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		for _, b := range a.report.Trend {
			bars = append(bars, barchart.BarData{
				Label:  b.Label,
				Values: []barchart.BarValue{{Name: "minutes", Value: float64(b.DurationMinutes), Style: style}},
			})
		}
	}
	if len(bars) == 0 {
		return
	}
	a.bars.PushAll(bars)
	a.bars.Draw()
}

func (a analyticsModel) view() string {
	w := a.width - 4
	if !a.loaded {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}

	cardWidth := max(w/4-2, 14)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Workouts", fmt.Sprintf("%d", a.report.Totals.Count), cardWidth),
		card("Total time", formatMinutes(a.report.Totals.DurationMinutes), cardWidth),
		card("Tonnage", formatTonnes(a.report.Totals.VolumeTonnes()), cardWidth),
		card("Favorite", a.report.Favorite, cardWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		a.renderChartPanel(w),
		lipgloss.JoinHorizontal(lipgloss.Top,
			a.renderDistribution(w/2),
			a.renderRanking(w-w/2),
		),
	)
}

func (a analyticsModel) renderChartPanel(w int) string {
	trendTab := inactiveTabStyle.Render("Duration")
	volumeTab := inactiveTabStyle.Render("Volume")
	var subtitle string
	var empty bool
	if a.chart == chartTrend {
		trendTab = activeTabStyle.Render("Duration")
		subtitle = fmt.Sprintf("minutes on the last %d training days", len(a.report.Trend))
		empty = len(a.report.Trend) == 0
	} else {
		volumeTab = activeTabStyle.Render("Volume")
		subtitle = fmt.Sprintf("tonnes lifted in the last %d workouts", len(a.report.Volumes))
		empty = len(a.report.Volumes) == 0
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Trend"), "  ", trendTab, volumeTab, "  ", subtitleStyle.Render(subtitle),
	)

	body := a.bars.View()
	if empty {
		body = mutedStyle.Render("  Log a workout to see your trend")
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", body, "", mutedStyle.Render("  v: switch chart"),
	))
}

func (a analyticsModel) renderDistribution(w int) string {
	title := titleStyle.Render("Body Parts")
	dist := a.report.Distribution
	if len(dist) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(stats.NoData)))
	}

	var total int
	for _, s := range dist {
		total += s.Count
	}
	barWidth := max(w-34, 4)
	rows := []string{title}
	for i, s := range dist {
		share := float64(s.Count) / float64(total)
		filled := int(share*float64(barWidth) + 0.5)
		bar := lipgloss.NewStyle().Foreground(seriesColor(i)).Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows, fmt.Sprintf("  %-12s %s %4.0f%% %s",
			truncate(s.Label, 12), bar, share*100, mutedStyle.Render(fmt.Sprintf("(%d)", s.Count))))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a analyticsModel) renderRanking(w int) string {
	title := titleStyle.Render("Top Exercises")
	if len(a.report.Ranking) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(stats.NoData)))
	}
	rows := []string{title}
	for i, r := range a.report.Ranking[:min(topExercises, len(a.report.Ranking))] {
		name := truncate(r.Name, max(w-18, 8))
		if i == 0 {
			name = accentStyle.Render(name)
		}
		rows = append(rows, fmt.Sprintf("  %d. %s %s", i+1, name, mutedStyle.Render(fmt.Sprintf("x%d", r.Count))))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
