package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"funnel/internal/crm"
)

func TestSetSortToggleAndSwitch(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	if m.view.Sort != SortScore || !m.view.Desc {
		t.Fatalf("default sort = %v desc=%v", m.view.Sort, m.view.Desc)
	}

	m.setSort(SortScore)
	if m.view.Desc {
		t.Fatal("repeating the active key should toggle to ascending")
	}

	m.view.Page = 3
	m.setSort(SortName)
	if m.view.Sort != SortName || !m.view.Desc {
		t.Fatalf("new key should start descending: %v desc=%v", m.view.Sort, m.view.Desc)
	}
	if m.view.Page != 1 {
		t.Fatalf("sort change should reset page, got %d", m.view.Page)
	}
}

func TestSetStatusResetsPage(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.view.Page = 2
	m.cursor = 3

	m.setStatus("Contacted")
	if m.view.Status != "Contacted" || m.view.Page != 1 || m.cursor != 0 {
		t.Fatalf("status=%q page=%d cursor=%d", m.view.Status, m.view.Page, m.cursor)
	}
}

func TestNextStatusFilter(t *testing.T) {
	tests := []struct{ in, want string }{
		{StatusAll, "New"},
		{"New", "Contacted"},
		{"Contacted", "Qualified"},
		{"Qualified", StatusAll},
		{"garbage", StatusAll},
	}
	for _, tt := range tests {
		if got := nextStatusFilter(tt.in); got != tt.want {
			t.Fatalf("nextStatusFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextPageSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{5, 10},
		{10, 20},
		{20, 50},
		{50, 5},
		{7, 10},
	}
	for _, tt := range tests {
		if got := nextPageSize(tt.in); got != tt.want {
			t.Fatalf("nextPageSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetPageBounds(t *testing.T) {
	m := newTestModel(t, sampleLeads())

	m.setPage(0, 3)
	if m.view.Page != 1 {
		t.Fatalf("page below range applied: %d", m.view.Page)
	}
	m.setPage(4, 3)
	if m.view.Page != 1 {
		t.Fatalf("page above range applied: %d", m.view.Page)
	}
	m.cursor = 2
	m.setPage(2, 3)
	if m.view.Page != 2 || m.cursor != 0 {
		t.Fatalf("page=%d cursor=%d", m.view.Page, m.cursor)
	}
}

func TestSearchTypingResetsToFirstPage(t *testing.T) {
	m := newTestModel(t, manyLeads(30))
	m.view.Page = 3
	m.searching = true
	m.searchInput.Focus()

	next, _ := m.handleSearchKey(keyRune('a'))
	got := next.(Model)
	if got.view.Query != "a" {
		t.Fatalf("query = %q", got.view.Query)
	}
	if got.view.Page != 1 || got.cursor != 0 {
		t.Fatalf("page=%d cursor=%d after typing", got.view.Page, got.cursor)
	}
}

func TestSearchEnterBlurs(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.searching = true
	m.searchInput.Focus()

	next, _ := m.handleSearchKey(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(Model)
	if got.searching {
		t.Fatal("enter should leave search mode")
	}
}

func TestCursorMovesWithinPage(t *testing.T) {
	m := newTestModel(t, sampleLeads())

	next, _ := m.handleLeadsKey(keyRune('j'))
	got := next.(Model)
	if got.cursor != 1 {
		t.Fatalf("cursor = %d after j", got.cursor)
	}

	next, _ = got.handleLeadsKey(keyRune('k'))
	got = next.(Model)
	if got.cursor != 0 {
		t.Fatalf("cursor = %d after k", got.cursor)
	}

	next, _ = got.handleLeadsKey(keyRune('k'))
	got = next.(Model)
	if got.cursor != 0 {
		t.Fatalf("cursor moved above the first row: %d", got.cursor)
	}
}

func TestOpenStartsOnceAtATime(t *testing.T) {
	m := newTestModel(t, sampleLeads())

	next, cmd := m.handleLeadsKey(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(Model)
	if cmd == nil || !got.opening {
		t.Fatal("enter should start an open")
	}

	_, cmd = got.handleLeadsKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("a second enter during an open should be ignored")
	}
}

func TestOpenIgnoredOnEmptyPage(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.view.Query = "zzz"

	_, cmd := m.handleLeadsKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("enter with no rows should be a no-op")
	}
}

func TestRenderLeadsEmptyCollection(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.renderLeads()
	if !strings.Contains(out, "No leads yet.") {
		t.Fatalf("missing empty message:\n%s", out)
	}
	if strings.Contains(out, "sort:") {
		t.Fatal("controls should be hidden for an empty collection")
	}
}

func TestRenderLeadsNoMatches(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.view.Query = "zzz"
	out := m.renderLeads()
	if !strings.Contains(out, "No leads match your search.") {
		t.Fatalf("missing no-match message:\n%s", out)
	}
	if !strings.Contains(out, "sort:") {
		t.Fatal("controls should stay visible when a filter matches nothing")
	}
}

func TestRenderLeadsHidesPaginationForSinglePage(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	out := m.renderLeads()
	if strings.Contains(out, "page 1 of") {
		t.Fatal("pagination should be hidden with a single page")
	}

	m = newTestModel(t, manyLeads(12))
	out = m.renderLeads()
	if !strings.Contains(out, "page 1 of 2") {
		t.Fatalf("missing pagination:\n%s", out)
	}
}

func TestRenderLeadsShowsRows(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	out := m.renderLeads()
	for _, lead := range sampleLeads() {
		if !strings.Contains(out, lead.Name) {
			t.Fatalf("row for %q missing", lead.Name)
		}
	}
	if !strings.Contains(out, string(crm.StatusQualified)) {
		t.Fatal("status column missing")
	}
}
