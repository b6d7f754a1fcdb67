// Package app provides the orchestration layer for the funnel application.
//
// # Overview
//
// This package is the composition root: it loads configuration, opens the
// preference store, builds the HTTP lead client and the state store, and
// starts the TUI.
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read ~/.config/funnel/config.toml
//	       ├─────> prefs.Open()      Open the preference database
//	       ├─────> crm.NewClient()   Create the lead data client
//	       ├─────> state.NewStore()  Canonical collections, Loading phase
//	       └─────> ui.Run()          Start TUI (blocks)
//
// The initial lead fetch is driven by the UI itself so the Loading screen is
// visible for its duration; there is no background poller, the collection is
// fetched once and only refetched on a user-triggered retry after a failure.
package app
