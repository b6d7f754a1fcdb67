// Package ui implements the Bubble Tea terminal interface.
//
// # Overview
//
// One root Model drives three surfaces sharing a header and footer:
//
//   - Leads tab: searchable, filterable, sortable, paginated table
//   - Opportunities tab: plain table with an amount total
//   - Detail modal: view/edit panel over the selected lead
//
// plus full-screen Loading and Error states for the initial fetch.
//
// # Data Flow
//
// The model never mutates shared data. It reads state.Snapshot copies,
// translates key presses into state.Store calls inside tea.Cmd functions,
// and refreshes its snapshot when the resulting message lands. Leads flow
// one way: store -> snapshot -> projection -> rows; edits flow back as whole
// replacement records through Store.Update.
//
// # View State
//
// The leads view owns its transient state (ViewState: query, status filter,
// sort, page) locally and derives the visible page with the pure Project
// function in projection.go. Every change is written through to the
// preference store and read back once at startup.
//
// # Latency Simulation
//
// The initial fetch, detail open, and save paths sleep a fixed duration
// inside their commands before acting. These delays carry no cancellation
// semantics; a started operation always completes.
package ui
