package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/stats"
	"github.com/sadopc/fitlog/internal/store"
)

var genders = []string{"", "female", "male", "other"}

type profileModel struct {
	store   *store.Store
	session session.Context
	width   int
	height  int

	profile    store.Profile
	weightKg   float64 // latest weigh-in, falling back to the profile
	fromLog    bool
	metrics    stats.BodyMetrics
	hasMetrics bool

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formHeight *string
	formWeight *string
	formAge    *string
	formGender *string
}

func newProfileModel(s *store.Store, sess session.Context) profileModel {
	h, w, a, g := "", "", "", ""
	return profileModel{
		store:      s,
		session:    sess,
		formHeight: &h,
		formWeight: &w,
		formAge:    &a,
		formGender: &g,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type profileDataMsg struct {
	profile store.Profile
	logs    []stats.ProgressLogEntry
	err     error
}

type profileSavedMsg struct{}

func (p profileModel) refresh() tea.Cmd {
	return func() tea.Msg {
		profile, err := p.store.GetProfile(p.session.ProfileKey())
		if err != nil {
			return profileDataMsg{err: err}
		}
		logs, err := p.store.ListProgressLogs()
		return profileDataMsg{profile: profile, logs: logs, err: err}
	}
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		if msg.err != nil {
			return p, func() tea.Msg { return errStatus("Load profile", msg.err) }
		}
		p.profile = msg.profile
		p.weightKg, p.fromLog = stats.LatestWeight(msg.logs)
		if !p.fromLog {
			p.weightKg = msg.profile.WeightKg
		}
		p.metrics, p.hasMetrics = stats.ComputeBMI(p.profile.HeightCm, p.weightKg)
		return p, nil

	case profileSavedMsg:
		return p, p.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return p.showForm()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	*p.formHeight = positiveOrBlank(p.profile.HeightCm)
	*p.formWeight = positiveOrBlank(p.weightKg)
	*p.formAge = ""
	if p.profile.Age > 0 {
		*p.formAge = strconv.Itoa(p.profile.Age)
	}
	*p.formGender = p.profile.Gender

	options := make([]huh.Option[string], len(genders))
	for i, g := range genders {
		label := g
		if g == "" {
			label = "prefer not to say"
		}
		options[i] = huh.NewOption(label, g)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Height (cm)").Value(p.formHeight).Validate(validateOptionalFloat),
			huh.NewInput().Title("Weight (kg)").Description("Saving a weight also logs a weigh-in for today").
				Value(p.formWeight).Validate(validateOptionalFloat),
			huh.NewInput().Title("Age").Value(p.formAge).Validate(validateOptionalInt),
			huh.NewSelect[string]().Title("Gender").Options(options...).Value(p.formGender),
		).Title("Body"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func positiveOrBlank(f float64) string {
	if f <= 0 {
		return ""
	}
	return trimFloat(f)
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
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
		return p, p.save(p.formProfile())
	}

	return p, cmd
}

func (p profileModel) formProfile() store.Profile {
	out := store.Profile{Gender: *p.formGender}
	if h, _ := parseOptionalFloat(*p.formHeight); h != nil {
		out.HeightCm = *h
	}
	if w, _ := parseOptionalFloat(*p.formWeight); w != nil {
		out.WeightKg = *w
	}
	if a, _ := parseOptionalInt(*p.formAge); a != nil {
		out.Age = *a
	}
	return out
}

func (p profileModel) save(profile store.Profile) tea.Cmd {
	profileKey := p.session.ProfileKey()
	// Re-saving an unchanged weight would log a duplicate weigh-in.
	if p.fromLog && profile.WeightKg == p.weightKg {
		profile.WeightKg = p.profile.WeightKg
	}
	return func() tea.Msg {
		if _, err := p.store.SaveProfile(profileKey, profile, time.Now()); err != nil {
			return errStatus("Save profile", err)
		}
		return profileSavedMsg{}
	}
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Edit Profile"), "", p.form.View()),
		)
	}

	rows := []string{
		titleStyle.Render(p.session.DisplayName()),
	}
	if !p.session.Anonymous() {
		rows = append(rows, mutedStyle.Render(p.session.Email))
	}
	rows = append(rows, "")

	weight := "-"
	if p.weightKg > 0 {
		weight = formatKg(p.weightKg)
		if p.fromLog {
			weight += mutedStyle.Render("  (latest weigh-in)")
		}
	}
	age := "-"
	if p.profile.Age > 0 {
		age = strconv.Itoa(p.profile.Age)
	}
	height := "-"
	if p.profile.HeightCm > 0 {
		height = trimFloat(p.profile.HeightCm) + " cm"
	}

	rows = append(rows,
		profileRow("Height", height),
		profileRow("Weight", weight),
		profileRow("Age", age),
		profileRow("Gender", orDash(p.profile.Gender)),
	)

	if p.hasMetrics {
		rows = append(rows, "",
			profileRow("BMI", fmt.Sprintf("%s  %s",
				cardValueStyle.Render(strconv.FormatFloat(p.metrics.BMI, 'f', 1, 64)),
				bandStyle(p.metrics.Band).Render(string(p.metrics.Band)),
			)),
		)
	} else {
		rows = append(rows, "", mutedStyle.Render("  Add your height and weight to see your BMI"))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: edit profile"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func profileRow(label, value string) string {
	return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(10).Render(label), highlightStyle.Render(value))
}
