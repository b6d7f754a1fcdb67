package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"funnel/internal/crm"
	"funnel/internal/prefs"
)

// Leads table column widths.
const (
	colName    = 24
	colCompany = 20
	colEmail   = 28
	colSource  = 12
	colScore   = 5
	colStatus  = 11
)

// handleLeadsKey processes keyboard input for the leads tab.
func (m Model) handleLeadsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	proj := Project(m.snapshot.Leads, m.view)

	switch {
	case keyMatches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case keyMatches(msg, m.keys.CycleStatus):
		m.setStatus(nextStatusFilter(m.view.Status))
		return m, nil

	case keyMatches(msg, m.keys.SortScore):
		m.setSort(SortScore)
		return m, nil

	case keyMatches(msg, m.keys.SortName):
		m.setSort(SortName)
		return m, nil

	case keyMatches(msg, m.keys.SortCompany):
		m.setSort(SortCompany)
		return m, nil

	case keyMatches(msg, m.keys.CyclePageSz):
		m.setPageSize(nextPageSize(m.view.PageSize))
		return m, nil

	case keyMatches(msg, m.keys.Down):
		if m.cursor < len(proj.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case keyMatches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case keyMatches(msg, m.keys.PrevPage):
		m.setPage(proj.Page-1, proj.TotalPages)
		return m, nil

	case keyMatches(msg, m.keys.NextPage):
		m.setPage(proj.Page+1, proj.TotalPages)
		return m, nil

	case keyMatches(msg, m.keys.FirstPage):
		m.setPage(1, proj.TotalPages)
		return m, nil

	case keyMatches(msg, m.keys.LastPage):
		m.setPage(proj.TotalPages, proj.TotalPages)
		return m, nil

	case keyMatches(msg, m.keys.Open):
		if m.opening || m.cursor >= len(proj.Rows) {
			return m, nil
		}
		m.opening = true
		return m, m.openLeadCmd(proj.Rows[m.cursor])
	}

	return m, nil
}

// handleSearchKey routes keys to the search box while it has focus. The query
// applies live on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != m.view.Query {
		m.view.Query = value
		m.view.Page = 1
		m.cursor = 0
		m.persistView()
	}
	return m, cmd
}

// View state mutators. Every filter or sort change resets to the first page
// and is written through to the preference store.

func (m *Model) setStatus(status string) {
	m.view.Status = status
	m.view.Page = 1
	m.cursor = 0
	m.persistView()
}

// setSort toggles direction when the key is already active; a new key starts
// descending.
func (m *Model) setSort(key SortKey) {
	if m.view.Sort == key {
		m.view.Desc = !m.view.Desc
	} else {
		m.view.Sort = key
		m.view.Desc = true
	}
	m.view.Page = 1
	m.cursor = 0
	m.persistView()
}

func (m *Model) setPageSize(size int) {
	m.view.PageSize = size
	m.view.Page = 1
	m.cursor = 0
	m.persistView()
}

func (m *Model) setPage(page, total int) {
	if page < 1 || page > total || page == m.view.Page {
		return
	}
	m.view.Page = page
	m.cursor = 0
	m.persistView()
}

func nextStatusFilter(current string) string {
	order := []string{StatusAll, string(crm.StatusNew), string(crm.StatusContacted), string(crm.StatusQualified)}
	for i, s := range order {
		if s == current {
			return order[(i+1)%len(order)]
		}
	}
	return StatusAll
}

func nextPageSize(current int) int {
	for i, s := range prefs.PageSizes {
		if s == current {
			return prefs.PageSizes[(i+1)%len(prefs.PageSizes)]
		}
	}
	return prefs.PageSizes[1]
}

// renderLeads renders the leads tab: controls, table, pagination.
func (m Model) renderLeads() string {
	styles := m.theme.Styles()

	// Empty collection: message only, no controls.
	if len(m.snapshot.Leads) == 0 {
		return "\n" + styles.MutedText.Render("  No leads yet.")
	}

	proj := Project(m.snapshot.Leads, m.view)

	var b strings.Builder
	b.WriteString(m.renderControls(proj))
	b.WriteString("\n\n")

	if proj.Filtered == 0 {
		b.WriteString(styles.MutedText.Render("  No leads match your search."))
		return b.String()
	}

	b.WriteString(m.renderTable(proj))

	if proj.TotalPages > 1 {
		b.WriteString("\n")
		b.WriteString(m.renderPagination(proj))
	}

	return b.String()
}

// renderControls renders the search box, status filter, sort indicator and
// page size selector.
func (m Model) renderControls(proj Projection) string {
	styles := m.theme.Styles()

	search := m.searchInput.View()
	if !m.searching && m.view.Query == "" {
		search = styles.FaintText.Render("/ search")
	}

	filter := styles.MutedText.Render("status:") + " " + styles.Text.Render(m.view.Status)
	if m.view.Status != StatusAll {
		filter = styles.MutedText.Render("status:") + " " + styles.StatusText(m.view.Status).Render(m.view.Status)
	}

	arrow := "↑"
	if m.view.Desc {
		arrow = "↓"
	}
	sortLabel := styles.MutedText.Render("sort:") + " " +
		styles.AccentText.Render(string(m.view.Sort)+" "+arrow)

	size := styles.MutedText.Render("per page:") + " " + styles.Text.Render(strconv.Itoa(m.view.PageSize))

	count := fmt.Sprintf("%d", proj.Filtered)
	if proj.Filtered != proj.Total {
		count = fmt.Sprintf("%d/%d", proj.Filtered, proj.Total)
	}
	counter := styles.FaintText.Render(count + " leads")

	sep := styles.FaintText.Render("  ·  ")
	return "  " + strings.Join([]string{search, filter, sortLabel, size, counter}, sep)
}

// renderTable renders the header row and one line per lead on the page.
func (m Model) renderTable(proj Projection) string {
	styles := m.theme.Styles()

	header := "  " +
		padRight("Name", colName) +
		padRight("Company", colCompany) +
		padRight("Email", colEmail) +
		padRight("Source", colSource) +
		padRight("Score", colScore+2) +
		"Status"

	var b strings.Builder
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	for i, lead := range proj.Rows {
		b.WriteString(m.renderLeadRow(lead, i == m.cursor))
		if i < len(proj.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderLeadRow(lead crm.Lead, selected bool) string {
	styles := m.theme.Styles()

	if selected {
		line := "> " +
			padRight(truncate(lead.Name, colName-2), colName) +
			padRight(truncate(lead.Company, colCompany-2), colCompany) +
			padRight(truncate(lead.Email, colEmail-2), colEmail) +
			padRight(truncate(lead.Source, colSource-2), colSource) +
			padRight(strconv.Itoa(lead.Score), colScore+2) +
			string(lead.Status)
		return styles.Selected.Render(line)
	}

	return "  " +
		styles.Text.Render(padRight(truncate(lead.Name, colName-2), colName)) +
		styles.MutedText.Render(padRight(truncate(lead.Company, colCompany-2), colCompany)) +
		styles.MutedText.Render(padRight(truncate(lead.Email, colEmail-2), colEmail)) +
		styles.FaintText.Render(padRight(truncate(lead.Source, colSource-2), colSource)) +
		styles.ScoreStyle(lead.Score).Render(padRight(strconv.Itoa(lead.Score), colScore+2)) +
		styles.StatusText(string(lead.Status)).Render(string(lead.Status))
}

// renderPagination renders first/prev/numbered/next/last controls. Only
// called when more than one page exists.
func (m Model) renderPagination(proj Projection) string {
	styles := m.theme.Styles()

	canBack := proj.Page > 1
	canFwd := proj.Page < proj.TotalPages

	ctl := func(label string, enabled bool) string {
		if enabled {
			return styles.AccentText.Render(label)
		}
		return styles.FaintText.Render(label)
	}

	parts := []string{
		ctl("«", canBack),
		ctl("‹", canBack),
	}
	for p := 1; p <= proj.TotalPages; p++ {
		label := strconv.Itoa(p)
		if p == proj.Page {
			parts = append(parts, styles.Selected.Render(" "+label+" "))
			continue
		}
		parts = append(parts, styles.MutedText.Render(label))
	}
	parts = append(parts, ctl("›", canFwd), ctl("»", canFwd))

	summary := styles.FaintText.Render(fmt.Sprintf("  page %d of %d", proj.Page, proj.TotalPages))
	return "  " + strings.Join(parts, " ") + summary
}
