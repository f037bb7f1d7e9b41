package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/catalog"
	"github.com/sadopc/fitlog/internal/store"
)

// filterField is the facet [ and ] cycle through.
type filterField int

const (
	filterCategory filterField = iota
	filterBodyPart
)

type libraryModel struct {
	store  *store.Store
	width  int
	height int

	browser    *catalog.Browser
	categories []string
	bodyParts  []string
	field      filterField
	search     textinput.Model
	cursor     int
	viewing    bool
}

func newLibraryModel(s *store.Store, pageSize int) libraryModel {
	search := textinput.New()
	search.Placeholder = "type to filter by name"
	search.Prompt = "/ "
	search.CharLimit = 64
	return libraryModel{
		store:   s,
		browser: catalog.NewBrowser(nil, pageSize),
		search:  search,
	}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l libraryModel) capturing() bool {
	return l.search.Focused()
}

type libraryDataMsg struct {
	entries []catalog.Entry
	err     error
}

func (l libraryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := l.store.ListExercises()
		return libraryDataMsg{entries: entries, err: err}
	}
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryDataMsg:
		if msg.err != nil {
			return l, func() tea.Msg { return errStatus("Load library", msg.err) }
		}
		l.browser.SetEntries(msg.entries)
		l.categories = catalog.Categories(msg.entries)
		l.bodyParts = catalog.BodyParts(msg.entries)
		l.clampCursor()
		return l, nil

	case tea.KeyMsg:
		if l.search.Focused() {
			return l.updateSearch(msg)
		}
		if l.viewing {
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
				l.viewing = false
			}
			return l, nil
		}
		return l.updateBrowse(msg)
	}

	if l.search.Focused() {
		var cmd tea.Cmd
		l.search, cmd = l.search.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l libraryModel) updateSearch(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		l.search.Blur()
		return l, nil
	}
	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	if before := l.browser.Query().Text; before != l.search.Value() {
		l.browser.SetQuery(l.search.Value())
		l.cursor = 0
	}
	return l, cmd
}

func (l libraryModel) updateBrowse(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Search):
		cmd := l.search.Focus()
		return l, cmd
	case key.Matches(msg, keys.Back):
		if l.search.Value() != "" {
			l.search.SetValue("")
			l.browser.SetQuery("")
			l.cursor = 0
		}
	case key.Matches(msg, keys.Toggle):
		if l.field == filterCategory {
			l.field = filterBodyPart
		} else {
			l.field = filterCategory
		}
	case key.Matches(msg, keys.NextFilter):
		l.cycleFilter(1)
	case key.Matches(msg, keys.PrevFilter):
		l.cycleFilter(-1)
	case key.Matches(msg, keys.Right):
		l.browser.Next()
		l.cursor = 0
	case key.Matches(msg, keys.Left):
		l.browser.Prev()
		l.cursor = 0
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.browser.Page().Items)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(l.browser.Page().Items) > 0 {
			l.viewing = true
		}
	}
	return l, nil
}

// cycleFilter steps through "all" and every known value of the active facet.
func (l *libraryModel) cycleFilter(step int) {
	values, current := l.categories, l.browser.Query().Category
	if l.field == filterBodyPart {
		values, current = l.bodyParts, l.browser.Query().BodyPart
	}
	options := append([]string{""}, values...)
	pos := 0
	for i, v := range options {
		if v == current {
			pos = i
			break
		}
	}
	next := options[(pos+step+len(options))%len(options)]
	if l.field == filterBodyPart {
		l.browser.SetBodyPart(next)
	} else {
		l.browser.SetCategory(next)
	}
	l.cursor = 0
}

func (l *libraryModel) clampCursor() {
	if n := len(l.browser.Page().Items); l.cursor >= n {
		l.cursor = max(0, n-1)
	}
}

func (l libraryModel) selected() (catalog.Entry, bool) {
	items := l.browser.Page().Items
	if l.cursor < 0 || l.cursor >= len(items) {
		return catalog.Entry{}, false
	}
	return items[l.cursor], true
}

func (l libraryModel) view() string {
	w := l.width - 4
	if l.viewing {
		if e, ok := l.selected(); ok {
			return l.renderEntry(w, e)
		}
	}

	page := l.browser.Page()
	q := l.browser.Query()

	title := titleStyle.Render("Exercise Library")
	filters := fmt.Sprintf("%s %s   %s %s",
		l.facetLabel("Category", filterCategory), valueOrAll(q.Category),
		l.facetLabel("Body part", filterBodyPart), valueOrAll(q.BodyPart),
	)

	rows := []string{title, "", l.search.View(), filters, ""}

	if page.Total == 0 {
		if len(l.categories) == 0 {
			rows = append(rows, mutedStyle.Render("  The library is empty. Import a catalog with fitlog -import <file>."))
		} else {
			rows = append(rows, mutedStyle.Render("  No exercises match"))
		}
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-32s %-14s %-16s %s", "Name", "Body part", "Category", "Equipment")))
		for i, e := range page.Items {
			cursor := "  "
			style := normalItemStyle
			if i == l.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%-32s %-14s %-16s %s",
				cursor, truncate(e.Name, 32), truncate(e.BodyPart, 14), truncate(e.Category, 16), e.Equipment)))
		}
	}

	rows = append(rows, "", l.renderPager(page))
	rows = append(rows, mutedStyle.Render("  /: search  [/]: filter  v: category/body part  ←/→: page  enter: details"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l libraryModel) facetLabel(name string, f filterField) string {
	if l.field == f {
		return highlightStyle.Render(name + ":")
	}
	return mutedStyle.Render(name + ":")
}

func valueOrAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

func (l libraryModel) renderPager(p catalog.Page) string {
	if p.Total == 0 {
		return ""
	}
	prev, next := mutedStyle.Render("‹"), mutedStyle.Render("›")
	if p.HasPrev() {
		prev = highlightStyle.Render("‹")
	}
	if p.HasNext() {
		next = highlightStyle.Render("›")
	}
	return fmt.Sprintf("  %s page %d of %d %s  %s", prev, p.Index+1, p.TotalPages, next,
		mutedStyle.Render(fmt.Sprintf("%d exercises", p.Total)))
}

func (l libraryModel) renderEntry(w int, e catalog.Entry) string {
	rows := []string{
		titleStyle.Render(e.Name),
		"",
		fmt.Sprintf("%s %s", mutedStyle.Render("Body part:"), e.BodyPart),
		fmt.Sprintf("%s %s", mutedStyle.Render("Category: "), e.Category),
	}
	if e.Equipment != "" {
		rows = append(rows, fmt.Sprintf("%s %s", mutedStyle.Render("Equipment:"), e.Equipment))
	}
	if e.Description != "" {
		rows = append(rows, "", lipgloss.NewStyle().Width(max(w-6, 20)).Render(e.Description))
	}
	rows = append(rows, "", mutedStyle.Render("  esc: back"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
