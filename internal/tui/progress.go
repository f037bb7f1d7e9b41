package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
)

// progressChartPoints caps how many weigh-ins the chart shows.
const progressChartPoints = 12

type progressModel struct {
	store  *store.Store
	width  int
	height int

	summary stats.ProgressSummary
	hasData bool
	cursor  int // index into summary.Logs, newest first on screen

	chart barchart.Model

	formActive bool
	form       *huh.Form
	formType   string // "log", "delete"

	formDate    *string
	formWeight  *string
	formConfirm *bool
}

func newProgressModel(s *store.Store) progressModel {
	date, weight := "", ""
	confirm := false
	return progressModel{
		store:       s,
		chart:       barchart.New(60, 10),
		formDate:    &date,
		formWeight:  &weight,
		formConfirm: &confirm,
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.buildChart()
}

type progressDataMsg struct {
	logs []stats.ProgressLogEntry
	err  error
}

type progressChangedMsg struct{}

func (p progressModel) refresh() tea.Cmd {
	return func() tea.Msg {
		logs, err := p.store.ListProgressLogs()
		return progressDataMsg{logs: logs, err: err}
	}
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case progressDataMsg:
		if msg.err != nil {
			return p, func() tea.Msg { return errStatus("Load progress", msg.err) }
		}
		p.summary, p.hasData = stats.SummarizeProgress(msg.logs)
		if p.cursor >= len(p.summary.Logs) {
			p.cursor = max(0, len(p.summary.Logs)-1)
		}
		p.buildChart()
		return p, nil

	case progressChangedMsg:
		return p, p.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.summary.Logs)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Add):
			return p.showLogForm()
		case key.Matches(msg, keys.Delete):
			if _, ok := p.selected(); ok {
				return p.showDeleteForm()
			}
		}
	}
	return p, nil
}

// selected returns the log under the cursor. The list is drawn newest first.
func (p progressModel) selected() (stats.ProgressLogEntry, bool) {
	n := len(p.summary.Logs)
	if p.cursor < 0 || p.cursor >= n {
		return stats.ProgressLogEntry{}, false
	}
	return p.summary.Logs[n-1-p.cursor], true
}

func (p progressModel) showLogForm() (progressModel, tea.Cmd) {
	*p.formDate = time.Now().Format(time.DateOnly)
	*p.formWeight = ""
	if p.hasData {
		*p.formWeight = trimFloat(p.summary.CurrentKg)
	}
	p.formType = "log"
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(p.formDate).Validate(validateDate),
			huh.NewInput().Title("Weight (kg)").Value(p.formWeight).Validate(validateWeight),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func validateWeight(s string) error {
	kg, err := parseOptionalFloat(s)
	if err != nil {
		return err
	}
	if kg == nil || *kg <= 0 {
		return fmt.Errorf("enter a weight above zero")
	}
	return nil
}

func (p progressModel) showDeleteForm() (progressModel, tea.Cmd) {
	*p.formConfirm = false
	p.formType = "delete"
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Delete this weigh-in?").Affirmative("Delete").Negative("Keep").Value(p.formConfirm),
		),
	).WithShowHelp(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p progressModel) updateForm(msg tea.Msg) (progressModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		switch p.formType {
		case "log":
			return p, p.addLog(parseDate(*p.formDate), *p.formWeight)
		case "delete":
			if *p.formConfirm {
				return p, p.deleteSelected()
			}
		}
		return p, nil
	}

	return p, cmd
}

func (p progressModel) addLog(date time.Time, weight string) tea.Cmd {
	return func() tea.Msg {
		kg, err := parseOptionalFloat(weight)
		if err != nil || kg == nil {
			return statusMsg{text: "Weight is required", isError: true}
		}
		if _, err := p.store.AddProgressLog(date, *kg); err != nil {
			return errStatus("Log weight", err)
		}
		return progressChangedMsg{}
	}
}

func (p progressModel) deleteSelected() tea.Cmd {
	log, ok := p.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := p.store.DeleteProgressLog(log.ID); err != nil {
			return errStatus("Delete weigh-in", err)
		}
		return progressChangedMsg{}
	}
}

func (p *progressModel) buildChart() {
	chartWidth := max(p.width-8, 20)
	p.chart = barchart.New(chartWidth, 10)

	logs := p.summary.Logs
	if len(logs) > progressChartPoints {
		logs = logs[len(logs)-progressChartPoints:]
	}
	if len(logs) == 0 {
		return
	}
	style := lipgloss.NewStyle().Foreground(colorSecondary)
	bars := make([]barchart.BarData, 0, len(logs))
	for _, l := range logs {
		bars = append(bars, barchart.BarData{
			Label:  stats.ShortDateLabel(l.Date),
			Values: []barchart.BarValue{{Name: "kg", Value: l.WeightKg, Style: style}},
		})
	}
	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p progressModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("Log Weight")
		if p.formType == "delete" {
			title = titleStyle.Render("Delete Weigh-in")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()))
	}

	title := titleStyle.Render("Body Weight")
	if !p.hasData {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No weigh-ins yet. Press n to log your weight."),
		))
	}

	cardWidth := max(w/3-2, 14)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Start", formatKg(p.summary.StartKg), cardWidth),
		card("Current", formatKg(p.summary.CurrentKg), cardWidth),
		card("Change", formatChange(p.summary.ChangeKg), cardWidth),
	)

	chartPanel := panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", p.chart.View()))

	return lipgloss.JoinVertical(lipgloss.Left, cards, chartPanel, p.renderLogList(w))
}

func formatChange(kg float64) string {
	switch {
	case kg > 0:
		return "+" + formatKg(kg)
	case kg < 0:
		return "-" + formatKg(-kg)
	default:
		return formatKg(0)
	}
}

func (p progressModel) renderLogList(w int) string {
	rows := []string{titleStyle.Render("Weigh-ins")}
	logs := p.summary.Logs
	visible := max(p.height-28, 5)
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(logs))
	now := time.Now()
	for i := start; i < end; i++ {
		l := logs[len(logs)-1-i]
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-10s %10s", cursor, stats.DayKey(l.Date), relativeDay(l.Date, now), formatKg(l.WeightKg))))
	}
	rows = append(rows, "", mutedStyle.Render("  n: log weight  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
