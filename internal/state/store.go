package state

import (
	"math/rand"
	"sync"
	"time"

	"funnel/internal/crm"
)

// Phase is the top-level application state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

// Amount bounds for newly converted opportunities, half-open [min, min+span).
const (
	amountMin  = 10000
	amountSpan = 100000
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Phase         Phase
	Leads         []crm.Lead
	Opportunities []crm.Opportunity
	Selected      *crm.Lead
	LoadError     string
	LastUpdated   time.Time
}

// Store owns the lead and opportunity collections and the active selection.
// Views hold only snapshot copies; every mutation goes through a Store method
// under one mutex, so multi-step transitions such as Convert are atomic with
// respect to all other callers.
type Store struct {
	mu            sync.Mutex
	phase         Phase
	leads         []crm.Lead
	opportunities []crm.Opportunity
	selected      *crm.Lead
	loadError     string
	lastUpdated   time.Time
	rng           *rand.Rand
}

// NewStore returns a Store in the Loading phase.
func NewStore() *Store {
	return &Store{
		phase: PhaseLoading,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BeginLoad enters the Loading phase and clears any previous error. Used for
// both the initial load and user-triggered retries.
func (s *Store) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseLoading
	s.loadError = ""
}

// FinishLoad completes a load. On success the entire lead collection is
// replaced and the store becomes Ready. On failure the error message is
// recorded, the collection stays empty, and the store enters the Error phase.
func (s *Store) FinishLoad(leads []crm.Lead, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdated = time.Now()
	if err != nil {
		s.phase = PhaseError
		s.loadError = err.Error()
		s.leads = nil
		return
	}
	s.phase = PhaseReady
	s.loadError = ""
	s.leads = cloneLeads(leads)
}

// Select sets the active detail selection. Any lead may be selected; no
// validation against the collection is performed.
func (s *Store) Select(lead crm.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := lead
	s.selected = &copied
}

// Update replaces the lead with a matching id wholesale, preserving
// collection order. An unknown id is a silent no-op, not an error; this
// permissive contract is deliberate. The active selection is refreshed when
// it is the lead being replaced.
func (s *Store) Update(lead crm.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateLocked(lead)
}

func (s *Store) updateLocked(lead crm.Lead) {
	for i := range s.leads {
		if s.leads[i].ID == lead.ID {
			s.leads[i] = lead
			break
		}
	}
	if s.selected != nil && s.selected.ID == lead.ID {
		copied := lead
		s.selected = &copied
	}
}

// Convert creates an opportunity from the given lead, marks the lead
// Qualified, and clears the selection in one step. The opportunity id
// is the current count plus one; safe only because nothing is ever deleted.
func (s *Store) Convert(lead crm.Lead) crm.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp := crm.Opportunity{
		ID:          len(s.opportunities) + 1,
		Name:        lead.Name,
		Stage:       crm.StageProspecting,
		Amount:      amountMin + s.rng.Intn(amountSpan),
		AccountName: lead.Company,
		LeadID:      lead.ID,
	}
	s.opportunities = append(s.opportunities, opp)

	qualified := lead
	qualified.Status = crm.StatusQualified
	s.updateLocked(qualified)

	s.selected = nil
	return opp
}

// ClearSelection closes the detail view without touching anything else.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Snapshot returns a copy of the current state, independent of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:         s.phase,
		Leads:         cloneLeads(s.leads),
		Opportunities: cloneOpportunities(s.opportunities),
		LoadError:     s.loadError,
		LastUpdated:   s.lastUpdated,
	}
	if s.selected != nil {
		copied := *s.selected
		snap.Selected = &copied
	}
	return snap
}

func cloneLeads(leads []crm.Lead) []crm.Lead {
	if len(leads) == 0 {
		return nil
	}
	dup := make([]crm.Lead, len(leads))
	copy(dup, leads)
	return dup
}

func cloneOpportunities(opps []crm.Opportunity) []crm.Opportunity {
	if len(opps) == 0 {
		return nil
	}
	dup := make([]crm.Opportunity, len(opps))
	copy(dup, opps)
	return dup
}
