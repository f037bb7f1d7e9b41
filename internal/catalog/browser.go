package catalog

// Browser is the paginated library view state. The zero value is not
// usable; create one with NewBrowser.
type Browser struct {
	entries  []Entry
	filtered []Entry
	query    Query
	page     int
	size     int
}

func NewBrowser(entries []Entry, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	b := &Browser{entries: entries, size: pageSize}
	b.refilter()
	return b
}

// SetEntries replaces the library, keeping the current query. The page is
// clamped to the new result set.
func (b *Browser) SetEntries(entries []Entry) {
	b.entries = entries
	b.refilter()
	b.page = ClampPage(b.page, b.totalPages())
}

func (b *Browser) Query() Query { return b.query }

// SetQuery changes the search text. Any change resets to the first page.
func (b *Browser) SetQuery(text string) {
	if text == b.query.Text {
		return
	}
	b.query.Text = text
	b.refilter()
	b.page = 0
}

// SetCategory changes the category filter. Any change resets to the first
// page. An empty category shows all.
func (b *Browser) SetCategory(category string) {
	if category == b.query.Category {
		return
	}
	b.query.Category = category
	b.refilter()
	b.page = 0
}

// SetBodyPart changes the body part filter, resetting to the first page.
func (b *Browser) SetBodyPart(bodyPart string) {
	if bodyPart == b.query.BodyPart {
		return
	}
	b.query.BodyPart = bodyPart
	b.refilter()
	b.page = 0
}

func (b *Browser) Next() { b.SetPage(b.page + 1) }
func (b *Browser) Prev() { b.SetPage(b.page - 1) }

func (b *Browser) SetPage(index int) {
	b.page = ClampPage(index, b.totalPages())
}

// Page returns the current page of filtered entries.
func (b *Browser) Page() Page {
	return Paginate(b.filtered, b.page, b.size)
}

// Matches returns the number of entries passing the current filters.
func (b *Browser) Matches() int { return len(b.filtered) }

func (b *Browser) refilter() {
	b.filtered = Filter(b.entries, b.query)
}

func (b *Browser) totalPages() int {
	return PageCount(len(b.filtered), b.size)
}
