package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// library builds n entries alternating between two categories.
func library(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		cat, part := "Strength", "Legs"
		if i%2 == 1 {
			cat, part = "Cardio", "Chest"
		}
		out[i] = Entry{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("Exercise %04d", i+1),
			Category: cat,
			BodyPart: part,
		}
	}
	return out
}

// ============================================================
// Filter
// ============================================================

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	lib := library(30)
	assert.Equal(t, lib, Filter(lib, Query{}))
	assert.Equal(t, lib, Filter(lib, Query{Text: "   "}))
}

func TestFilterCaseInsensitive(t *testing.T) {
	lib := []Entry{
		{ID: 1, Name: "Barbell Squat", Category: "Strength"},
		{ID: 2, Name: "Push-up", Category: "Calisthenics"},
		{ID: 3, Name: "Goblet squat", Category: "Strength"},
		{ID: 4, Name: "Jump Squat", Category: "Plyometrics"},
	}

	got := Filter(lib, Query{Text: "SQUAT"})
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 3, 4}, ids(got))

	got = Filter(lib, Query{Text: "squat", Category: "Strength"})
	assert.Equal(t, []int64{1, 3}, ids(got))

	// category is an exact match
	assert.Empty(t, Filter(lib, Query{Category: "strength"}))
}

func TestFilterBodyPart(t *testing.T) {
	lib := library(10)
	got := Filter(lib, Query{BodyPart: "Chest"})
	require.Len(t, got, 5)
	for _, e := range got {
		assert.Equal(t, "Chest", e.BodyPart)
	}
}

func TestFilterNil(t *testing.T) {
	got := Filter(nil, Query{Text: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ============================================================
// Paginate
// ============================================================

func TestPaginate(t *testing.T) {
	lib := library(50)

	tests := []struct {
		name      string
		index     int
		wantIndex int
		wantLen   int
		firstID   int64
	}{
		{"first page", 0, 0, 24, 1},
		{"second page", 1, 1, 24, 25},
		{"last page is short", 2, 2, 2, 49},
		{"past the end clamps", 9, 2, 2, 49},
		{"negative clamps", -3, 0, 24, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(lib, tt.index, DefaultPageSize)
			assert.Equal(t, tt.wantIndex, p.Index)
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, 50, p.Total)
			require.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.firstID, p.Items[0].ID)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, 10)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(library(100), 0, 0)
	assert.Len(t, p.Items, DefaultPageSize)
	assert.Equal(t, 5, p.TotalPages)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 24))
	assert.Equal(t, 1, PageCount(1, 24))
	assert.Equal(t, 1, PageCount(24, 24))
	assert.Equal(t, 2, PageCount(25, 24))
	assert.Equal(t, 42, PageCount(1000, 24))
}

// ============================================================
// QuickPick
// ============================================================

func TestQuickPickCapsAtLimit(t *testing.T) {
	lib := library(1200)

	got := QuickPick(lib, "exercise")
	require.Len(t, got, QuickPickLimit)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(QuickPickLimit), got[QuickPickLimit-1].ID)

	got = QuickPick(lib, "0999")
	require.Len(t, got, 1)
	assert.Equal(t, "Exercise 0999", got[0].Name)
}

func TestQuickPickEmptyText(t *testing.T) {
	assert.Len(t, QuickPick(library(10), ""), 10)
	assert.Empty(t, QuickPick(nil, ""))
}

// ============================================================
// Browser
// ============================================================

func TestBrowserEmptyQueryShowsFullCatalog(t *testing.T) {
	b := NewBrowser(library(1000), 0)
	p := b.Page()
	assert.Equal(t, 1000, p.Total)
	assert.Equal(t, 42, p.TotalPages)
	assert.Len(t, p.Items, DefaultPageSize)
}

func TestBrowserQueryChangeResetsPage(t *testing.T) {
	b := NewBrowser(library(1000), 24)
	b.SetPage(10)
	require.Equal(t, 10, b.Page().Index)

	b.SetQuery("exercise")
	assert.Equal(t, 0, b.Page().Index)

	b.SetPage(5)
	b.SetQuery("exercise")
	assert.Equal(t, 5, b.Page().Index, "same query keeps the page")

	b.SetCategory("Cardio")
	assert.Equal(t, 0, b.Page().Index)
	assert.Equal(t, 500, b.Matches())

	b.SetPage(3)
	b.SetBodyPart("Chest")
	assert.Equal(t, 0, b.Page().Index)

	b.SetPage(3)
	b.SetCategory("")
	assert.Equal(t, 0, b.Page().Index)
}

func TestBrowserNextPrevClamp(t *testing.T) {
	b := NewBrowser(library(50), 24)

	b.Prev()
	assert.Equal(t, 0, b.Page().Index)

	b.Next()
	b.Next()
	b.Next()
	p := b.Page()
	assert.Equal(t, 2, p.Index)
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())

	b.SetPage(100)
	assert.Equal(t, 2, b.Page().Index)
}

func TestBrowserSetEntriesClamps(t *testing.T) {
	b := NewBrowser(library(100), 10)
	b.SetPage(9)
	b.SetEntries(library(25))
	assert.Equal(t, 2, b.Page().Index)
}

func TestCategories(t *testing.T) {
	lib := []Entry{
		{Category: "Strength", BodyPart: "Legs"},
		{Category: "", BodyPart: "Back"},
		{Category: "Cardio", BodyPart: "Legs"},
		{Category: "Strength"},
	}
	assert.Equal(t, []string{"Strength", "Cardio"}, Categories(lib))
	assert.Equal(t, []string{"Legs", "Back"}, BodyParts(lib))
}

func ids(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
