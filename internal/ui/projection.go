package ui

import (
	"sort"
	"strings"

	"funnel/internal/crm"
	"funnel/internal/prefs"
)

// SortKey selects the active leads sort column.
type SortKey string

const (
	SortScore   SortKey = "score"
	SortName    SortKey = "name"
	SortCompany SortKey = "company"
)

// StatusAll is the status filter value that matches every lead.
const StatusAll = "All"

// ViewState is the transient leads view state: search text, status filter,
// sort key/direction, page index and size. It is local to the leads view and
// feeds the pure Project function; the source collection is never mutated.
type ViewState struct {
	Query    string
	Status   string // StatusAll or a lead status
	Sort     SortKey
	Desc     bool
	Page     int // 1-based
	PageSize int
}

// Projection is the derived, paginated slice the leads table displays.
type Projection struct {
	Rows       []crm.Lead // the current page
	Page       int        // clamped 1-based page index
	TotalPages int
	Filtered   int // count after filtering
	Total      int // count before filtering
}

func viewFromPrefs(v prefs.View) ViewState {
	return ViewState{
		Query:    v.Query,
		Status:   v.Status,
		Sort:     SortKey(v.SortKey),
		Desc:     v.SortDir == "desc",
		Page:     1,
		PageSize: v.PageSize,
	}
}

func (vs ViewState) toPrefs() prefs.View {
	dir := "asc"
	if vs.Desc {
		dir = "desc"
	}
	return prefs.View{
		Query:    vs.Query,
		Status:   vs.Status,
		SortKey:  string(vs.Sort),
		SortDir:  dir,
		PageSize: vs.PageSize,
	}
}

// FilterLeads keeps leads whose name or company contains the query as a
// case-insensitive substring (empty query matches everything) and whose
// status equals the filter (StatusAll matches everything). The result is a
// fresh slice in source order; filtering twice with the same arguments is
// idempotent.
func FilterLeads(leads []crm.Lead, query, status string) []crm.Lead {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]crm.Lead, 0, len(leads))
	for _, lead := range leads {
		if needle != "" &&
			!strings.Contains(strings.ToLower(lead.Name), needle) &&
			!strings.Contains(strings.ToLower(lead.Company), needle) {
			continue
		}
		if status != StatusAll && string(lead.Status) != status {
			continue
		}
		out = append(out, lead)
	}
	return out
}

// SortLeads orders leads in place by the given key. String keys compare
// case-insensitively. The sort is stable, so ties keep their filtered order.
func SortLeads(leads []crm.Lead, key SortKey, desc bool) {
	less := func(a, b crm.Lead) bool { return a.Score < b.Score }
	switch key {
	case SortName:
		less = func(a, b crm.Lead) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortCompany:
		less = func(a, b crm.Lead) bool {
			return strings.ToLower(a.Company) < strings.ToLower(b.Company)
		}
	}
	sort.SliceStable(leads, func(i, j int) bool {
		if desc {
			return less(leads[j], leads[i])
		}
		return less(leads[i], leads[j])
	})
}

// Project computes the ordered, paginated projection for the leads table.
// The page index is clamped to the valid range for the filtered count.
func Project(leads []crm.Lead, vs ViewState) Projection {
	filtered := FilterLeads(leads, vs.Query, vs.Status)
	SortLeads(filtered, vs.Sort, vs.Desc)

	pages := totalPages(len(filtered), vs.PageSize)
	page := vs.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * vs.PageSize
	end := start + vs.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Projection{
		Rows:       filtered[start:end],
		Page:       page,
		TotalPages: pages,
		Filtered:   len(filtered),
		Total:      len(leads),
	}
}

// totalPages is ceil(count/size), never less than 1 so page math stays sane
// even for an empty result.
func totalPages(count, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}
