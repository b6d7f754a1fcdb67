// Package ui provides the Bubble Tea terminal interface for funnel.
package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"funnel/internal/crm"
	"funnel/internal/prefs"
	"funnel/internal/state"
)

// Tab represents the current active tab.
type Tab int

const (
	TabLeads Tab = iota
	TabOpportunities
)

// Artificial latencies simulating a persistence round trip; none of these are
// cancellable once started.
const (
	fetchDelay = 800 * time.Millisecond
	openDelay  = 250 * time.Millisecond
	saveDelay  = 600 * time.Millisecond
)

const flashDuration = 2500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context context.Context
	Source  crm.LeadSource
	Store   *state.Store
	Prefs   *prefs.Store
	Initial prefs.Prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx    context.Context
	source crm.LeadSource
	store  *state.Store
	prefs  *prefs.Store

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	tab      Tab
	showHelp bool
	flash    string
	flashID  int

	// Data state
	snapshot state.Snapshot

	// Loading screen
	spinner spinner.Model

	// Leads view state
	view        ViewState
	searchInput textinput.Model
	searching   bool
	cursor      int
	opening     bool

	// Detail panel state
	detail detailState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := GetTheme(opts.Initial.Theme)

	search := textinput.New()
	search.Placeholder = "name or company"
	search.CharLimit = 64
	search.Width = 24
	search.Prompt = "/ "
	search.SetValue(opts.Initial.View.Query)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:         ctx,
		source:      opts.Source,
		store:       opts.Store,
		prefs:       opts.Prefs,
		keys:        DefaultKeyMap(),
		theme:       theme,
		spinner:     sp,
		view:        viewFromPrefs(opts.Initial.View),
		searchInput: search,
		detail:      newDetailState(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		m.loadLeadsCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Phase != state.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case leadsLoadedMsg:
		m.snapshot = state.Snapshot(msg)
		m.cursor = 0
		return m, nil

	case leadOpenedMsg:
		m.opening = false
		m.snapshot = m.store.Snapshot()
		m.detail.open(msg.lead)
		return m, nil

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case convertedMsg:
		m.snapshot = m.store.Snapshot()
		m.detail.reset()
		return m, m.setFlash("Converted to opportunity " + formatAmount(msg.opp.Amount) + " · " + msg.opp.Name)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case clearFlashMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even mid-edit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The detail modal owns its keys while open.
	if m.snapshot.Selected != nil {
		return m.handleDetailKey(msg)
	}

	// The search box owns its keys while focused.
	if m.searching && m.tab == TabLeads {
		return m.handleSearchKey(msg)
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit

	case keyMatches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case keyMatches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		return m, nil

	case keyMatches(msg, m.keys.Tab):
		if m.snapshot.Phase == state.PhaseReady {
			if m.tab == TabLeads {
				m.tab = TabOpportunities
			} else {
				m.tab = TabLeads
			}
		}
		return m, nil

	case keyMatches(msg, m.keys.Retry):
		if m.snapshot.Phase == state.PhaseError {
			return m.retryLoad()
		}
	}

	if m.snapshot.Phase != state.PhaseReady {
		return m, nil
	}

	switch m.tab {
	case TabLeads:
		return m.handleLeadsKey(msg)
	case TabOpportunities:
		// Pure renderer; nothing to do.
		return m, nil
	}

	return m, nil
}

func (m Model) retryLoad() (tea.Model, tea.Cmd) {
	m.store.BeginLoad()
	m.snapshot = m.store.Snapshot()
	return m, tea.Batch(m.spinner.Tick, m.loadLeadsCmd())
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if err := m.prefs.SaveTheme(name); err != nil {
		log.Printf("save theme pref failed: %v", err)
	}
}

// persistView writes the current leads view preferences.
func (m *Model) persistView() {
	if err := m.prefs.SaveView(m.view.toPrefs()); err != nil {
		log.Printf("save view prefs failed: %v", err)
	}
}

func (m *Model) setFlash(text string) tea.Cmd {
	m.flash = text
	m.flashID++
	id := m.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	switch m.snapshot.Phase {
	case state.PhaseLoading:
		return m.renderLoading()
	case state.PhaseError:
		return m.renderError()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.snapshot.Selected != nil {
		b.WriteString(m.renderDetailOverlay())
	} else {
		switch m.tab {
		case TabLeads:
			b.WriteString(m.renderLeads())
		case TabOpportunities:
			b.WriteString(m.renderOpportunities())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderLoading shows the full-screen initial load state.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	content := m.spinner.View() + " " + styles.Text.Render("Loading leads...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderError shows the full-screen load failure state with the retry hint.
func (m Model) renderError() string {
	styles := m.theme.Styles()
	lines := []string{
		styles.DangerText.Render("Failed to load leads"),
		"",
		styles.MutedText.Render(truncate(m.snapshot.LoadError, 70)),
		"",
		styles.Text.Render("Press ") + styles.AccentText.Render("r") + styles.Text.Render(" to retry."),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderFooter renders key hints plus any transient status message.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hints := "tab switch · / search · f filter · s/n/c sort · enter open · ? help · e quit"
	if m.snapshot.Selected != nil {
		if m.detail.mode == detailEditing {
			hints = "tab field · enter save · esc cancel"
		} else {
			hints = "e edit · v convert · esc close"
		}
	} else if m.tab == TabOpportunities {
		hints = "tab switch · T theme · ? help · e quit"
	}

	left := styles.FaintText.Render(hints)
	if m.flash != "" {
		left = styles.SuccessText.Render(m.flash) + styles.FaintText.Render("  ·  "+hints)
	}
	if m.opening {
		left = styles.MutedText.Render("Opening lead...") + styles.FaintText.Render("  ·  "+hints)
	}
	return styles.Footer.Width(m.width).Render(left)
}

// Messages

type snapshotMsg state.Snapshot

type leadsLoadedMsg state.Snapshot

type leadOpenedMsg struct {
	lead crm.Lead
}

type saveResultMsg struct {
	lead crm.Lead
	err  error
}

type convertedMsg struct {
	opp crm.Opportunity
}

type clearFlashMsg struct {
	id int
}

// Commands

// loadLeadsCmd fetches the lead collection after the fixed artificial delay.
// The delay and fetch always run to completion; there is no way to abort an
// in-flight load.
func (m Model) loadLeadsCmd() tea.Cmd {
	ctx, source, store := m.ctx, m.source, m.store
	return func() tea.Msg {
		time.Sleep(fetchDelay)
		leads, err := source.FetchLeads(ctx)
		if err != nil {
			log.Printf("lead fetch failed: %v", err)
		}
		store.FinishLoad(leads, err)
		return leadsLoadedMsg(store.Snapshot())
	}
}

// openLeadCmd selects a lead for the detail panel after the open delay.
func (m Model) openLeadCmd(lead crm.Lead) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		time.Sleep(openDelay)
		store.Select(lead)
		return leadOpenedMsg{lead: lead}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
