// Package catalog searches and pages through the exercise library.
package catalog

import (
	"slices"
	"strings"
)

const (
	DefaultPageSize = 24
	QuickPickLimit  = 50
)

// Entry is one exercise of the library.
type Entry struct {
	ID          int64
	Name        string
	BodyPart    string
	Category    string
	Equipment   string
	Description string
}

// Query narrows the library. Blank fields match everything.
type Query struct {
	Text     string
	Category string
	BodyPart string
}

func (q Query) matches(e Entry) bool {
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.BodyPart != "" && e.BodyPart != q.BodyPart {
		return false
	}
	return nameContains(e.Name, q.Text)
}

func nameContains(name, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(text))
}

// Filter returns the entries matching q in their original order.
func Filter(entries []Entry, q Query) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Page is one slice of a filtered library.
type Page struct {
	Items      []Entry
	Index      int // zero-based
	TotalPages int
	Total      int
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Index < p.TotalPages-1 }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Index > 0 }

// PageCount returns how many pages of size hold total entries.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps index inside [0, pages-1]. With no pages it returns 0.
func ClampPage(index, pages int) int {
	if pages <= 0 || index < 0 {
		return 0
	}
	if index > pages-1 {
		return pages - 1
	}
	return index
}

// Paginate slices entries into the page at index. Out of range indexes are
// clamped rather than rejected.
func Paginate(entries []Entry, index, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := PageCount(len(entries), size)
	index = ClampPage(index, pages)

	start := min(index*size, len(entries))
	end := min(start+size, len(entries))
	return Page{
		Items:      slices.Clone(entries[start:end]),
		Index:      index,
		TotalPages: pages,
		Total:      len(entries),
	}
}

// QuickPick returns at most QuickPickLimit entries whose name contains text.
// Matches past the cap are dropped silently, so this is only for pickers
// where a user is expected to keep typing.
func QuickPick(entries []Entry, text string) []Entry {
	out := make([]Entry, 0, min(len(entries), QuickPickLimit))
	for _, e := range entries {
		if len(out) == QuickPickLimit {
			break
		}
		if nameContains(e.Name, text) {
			out = append(out, e)
		}
	}
	return out
}

// Categories lists the distinct non-blank categories in first-seen order.
func Categories(entries []Entry) []string {
	return distinct(entries, func(e Entry) string { return e.Category })
}

// BodyParts lists the distinct non-blank body parts in first-seen order.
func BodyParts(entries []Entry) []string {
	return distinct(entries, func(e Entry) string { return e.BodyPart })
}

func distinct(entries []Entry, field func(Entry) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range entries {
		v := field(e)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
