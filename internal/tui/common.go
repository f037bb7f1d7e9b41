package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewWorkouts
	viewAnalytics
	viewLibrary
	viewProgress
	viewProfile
)

var viewNames = []string{"Dashboard", "Workouts", "Analytics", "Library", "Progress", "Profile"}

// --- Messages ---

type sessionStartedMsg struct{}

// sessionFinishedMsg carries the length of a stopped training session so a
// workout can be logged from it.
type sessionFinishedMsg struct {
	minutes int
}

type workoutSavedMsg struct {
	id int64
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// errStatus logs err and turns it into a status line.
func errStatus(action string, err error) statusMsg {
	logrus.WithError(err).Error(action)
	return statusMsg{text: fmt.Sprintf("%s: %v", action, err), isError: true}
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatMinutes renders a workout length like "1h 05m" or "45m".
func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatTonnes(t float64) string {
	return fmt.Sprintf("%.1f t", t)
}

// formatKg groups thousands, e.g. "2,300 kg".
func formatKg(kg float64) string {
	return humanize.CommafWithDigits(kg, 1) + " kg"
}

func relativeDay(t, now time.Time) string {
	switch days := int(math.Round(dayStart(now).Sub(dayStart(t)).Hours() / 24)); {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days > 1 && days < 7:
		return t.Format("Monday")
	default:
		return humanize.RelTime(dayStart(t), dayStart(now), "ago", "from now")
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseOptionalInt reads a form field. Blank means "not given".
func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	return &n, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &f, nil
}

func validateOptionalInt(s string) error {
	_, err := parseOptionalInt(s)
	return err
}

func validateOptionalFloat(s string) error {
	_, err := parseOptionalFloat(s)
	return err
}

func validateDate(s string) error {
	if _, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func parseDate(s string) time.Time {
	t, _ := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	return t
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
