package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"funnel/internal/crm"
	"funnel/internal/prefs"
	"funnel/internal/state"
)

func newTestModel(t *testing.T, leads []crm.Lead) Model {
	t.Helper()
	store := state.NewStore()
	store.FinishLoad(leads, nil)

	m := New(Options{Store: store, Initial: prefs.Default()})
	m.snapshot = store.Snapshot()
	m.width = 120
	m.height = 40
	m.ready = true
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var errTest = errors.New("simulated save failure")

func TestEmailPattern(t *testing.T) {
	valid := []string{"ada@acme.com", "a@b.co", "first.last@sub.domain.org"}
	invalid := []string{"", "not-an-email", "no@tld", "two@@acme.com", "spa ce@acme.com", "@acme.com", "ada@"}

	for _, email := range valid {
		if !emailPattern.MatchString(email) {
			t.Fatalf("%q should be valid", email)
		}
	}
	for _, email := range invalid {
		if emailPattern.MatchString(email) {
			t.Fatalf("%q should be invalid", email)
		}
	}
}

func TestAttemptSaveInvalidEmail(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.detail.open(sampleLeads()[0])
	m.detail.beginEdit()
	m.detail.emailInput.SetValue("not-an-email")

	next, cmd := m.attemptSave()
	got := next.(Model)
	if cmd != nil {
		t.Fatal("invalid email should not start a save")
	}
	if got.detail.fieldError != errInvalidEmail {
		t.Fatalf("field error = %q, want %q", got.detail.fieldError, errInvalidEmail)
	}
	if got.detail.mode != detailEditing || got.detail.saving {
		t.Fatalf("panel should stay editing: mode=%v saving=%v", got.detail.mode, got.detail.saving)
	}
}

func TestAttemptSaveValidEmail(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.detail.open(sampleLeads()[0])
	m.detail.beginEdit()
	m.detail.emailInput.SetValue("  ada@example.com  ")
	m.detail.editStatus = crm.StatusContacted

	next, cmd := m.attemptSave()
	got := next.(Model)
	if cmd == nil {
		t.Fatal("valid email should start a save")
	}
	if !got.detail.saving || got.detail.fieldError != "" {
		t.Fatalf("saving=%v fieldError=%q", got.detail.saving, got.detail.fieldError)
	}
}

func TestHandleSaveResultFailure(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.detail.open(sampleLeads()[0])
	m.detail.beginEdit()
	m.detail.saving = true

	next, _ := m.handleSaveResult(saveResultMsg{lead: sampleLeads()[0], err: errTest})
	got := next.(Model)
	if got.detail.mode != detailEditing {
		t.Fatal("failed save should keep the panel in editing")
	}
	if got.detail.saveError != errSaveFailed {
		t.Fatalf("save error = %q, want %q", got.detail.saveError, errSaveFailed)
	}
	if got.detail.saving {
		t.Fatal("saving flag should clear")
	}
}

func TestHandleSaveResultSuccess(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	lead := sampleLeads()[0]
	m.store.Select(lead)
	m.detail.open(lead)
	m.detail.beginEdit()
	m.detail.saving = true

	edited := lead
	edited.Email = "ada@example.com"
	m.store.Update(edited)

	next, cmd := m.handleSaveResult(saveResultMsg{lead: edited})
	got := next.(Model)
	if got.detail.mode != detailViewing {
		t.Fatal("successful save should return to viewing")
	}
	if got.detail.lead.Email != "ada@example.com" {
		t.Fatalf("panel lead not refreshed: %+v", got.detail.lead)
	}
	if got.flash != "Saved" {
		t.Fatalf("flash = %q", got.flash)
	}
	if cmd == nil {
		t.Fatal("flash clear should be scheduled")
	}
}

func TestDetailKeysIgnoredWhileSaving(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.detail.open(sampleLeads()[0])
	m.detail.beginEdit()
	m.detail.saving = true

	next, cmd := m.handleDetailKey(tea.KeyMsg{Type: tea.KeyEsc})
	got := next.(Model)
	if cmd != nil || got.detail.mode != detailEditing {
		t.Fatal("keys must be inert while a save is in flight")
	}
}

func TestViewingKeyEdit(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	lead := sampleLeads()[0]
	m.store.Select(lead)
	m.snapshot = m.store.Snapshot()
	m.detail.open(lead)

	next, _ := m.handleDetailKey(keyRune('e'))
	got := next.(Model)
	if got.detail.mode != detailEditing {
		t.Fatal("e should enter editing")
	}
	if got.detail.emailInput.Value() != lead.Email {
		t.Fatalf("edit buffer = %q, want %q", got.detail.emailInput.Value(), lead.Email)
	}
}

func TestViewingKeyEscCloses(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	lead := sampleLeads()[0]
	m.store.Select(lead)
	m.snapshot = m.store.Snapshot()
	m.detail.open(lead)

	next, _ := m.handleDetailKey(tea.KeyMsg{Type: tea.KeyEsc})
	got := next.(Model)
	if got.snapshot.Selected != nil {
		t.Fatal("esc should clear the selection")
	}
}

func TestCancelEditRestoresRecord(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	lead := sampleLeads()[0]
	m.detail.open(lead)
	m.detail.beginEdit()
	m.detail.emailInput.SetValue("scratch@example.com")

	next, _ := m.handleEditKey(tea.KeyMsg{Type: tea.KeyEsc})
	got := next.(Model)
	if got.detail.mode != detailViewing {
		t.Fatal("esc should cancel editing")
	}
	if got.detail.lead.Email != lead.Email {
		t.Fatalf("record changed on cancel: %q", got.detail.lead.Email)
	}
}

func TestConvertKeyProducesOpportunity(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	lead := sampleLeads()[0]
	m.store.Select(lead)
	m.snapshot = m.store.Snapshot()
	m.detail.open(lead)

	next, cmd := m.handleDetailKey(keyRune('v'))
	if cmd == nil {
		t.Fatal("v should produce a convert command")
	}
	raw := cmd()
	msg, ok := raw.(convertedMsg)
	if !ok {
		t.Fatalf("command produced %T, want convertedMsg", raw)
	}
	if msg.opp.Name != lead.Name || msg.opp.AccountName != lead.Company {
		t.Fatalf("opportunity = %+v", msg.opp)
	}

	after, _ := next.(Model).Update(msg)
	got := after.(Model)
	if got.snapshot.Selected != nil {
		t.Fatal("panel should close after conversion")
	}
	if len(got.snapshot.Opportunities) != 1 {
		t.Fatalf("opportunities = %d, want 1", len(got.snapshot.Opportunities))
	}
	if !strings.Contains(got.flash, lead.Name) {
		t.Fatalf("flash = %q", got.flash)
	}
}

func TestCycleStatusWraps(t *testing.T) {
	d := newDetailState()
	d.editStatus = crm.StatusNew
	d.cycleStatus(1)
	if d.editStatus != crm.StatusContacted {
		t.Fatalf("status = %q", d.editStatus)
	}
	d.editStatus = crm.StatusQualified
	d.cycleStatus(1)
	if d.editStatus != crm.StatusNew {
		t.Fatalf("forward wrap: %q", d.editStatus)
	}
	d.editStatus = crm.StatusNew
	d.cycleStatus(-1)
	if d.editStatus != crm.StatusQualified {
		t.Fatalf("backward wrap: %q", d.editStatus)
	}
}

func TestOpenResetsPanel(t *testing.T) {
	m := newTestModel(t, sampleLeads())
	m.detail.open(sampleLeads()[0])
	m.detail.beginEdit()
	m.detail.fieldError = errInvalidEmail
	m.detail.saveError = errSaveFailed

	m.detail.open(sampleLeads()[1])
	if m.detail.mode != detailViewing {
		t.Fatal("open should reset to viewing")
	}
	if m.detail.fieldError != "" || m.detail.saveError != "" {
		t.Fatal("open should clear errors")
	}
	if m.detail.lead.ID != sampleLeads()[1].ID {
		t.Fatalf("panel lead = %d", m.detail.lead.ID)
	}
}
