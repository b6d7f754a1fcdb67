package ui

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"funnel/internal/crm"
)

// detailMode distinguishes the read-only and editing states of the panel.
type detailMode int

const (
	detailViewing detailMode = iota
	detailEditing
)

// Editable fields, in tab order.
const (
	fieldEmail = iota
	fieldStatus
)

// saveFailureChance simulates a flaky persistence round trip.
const saveFailureChance = 0.10

// emailPattern accepts local@domain.tld with no whitespace or extra @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	errInvalidEmail = "Please enter a valid email address"
	errSaveFailed   = "Something went wrong while saving. Please try again."
)

// detailState holds the detail panel's transient state: the viewed lead, the
// edit buffer, and field-level errors. Opening a different lead resets all
// of it.
type detailState struct {
	mode       detailMode
	lead       crm.Lead
	emailInput textinput.Model
	editStatus crm.Status
	focusIdx   int
	fieldError string
	saveError  string
	saving     bool
}

func newDetailState() detailState {
	email := textinput.New()
	email.CharLimit = 64
	email.Width = 32
	email.Prompt = ""
	return detailState{emailInput: email}
}

// open resets the panel for a freshly selected lead: Viewing mode, a fresh
// edit buffer, no errors.
func (d *detailState) open(lead crm.Lead) {
	d.lead = lead
	d.reset()
}

func (d *detailState) reset() {
	d.mode = detailViewing
	d.emailInput.SetValue("")
	d.emailInput.Blur()
	d.editStatus = ""
	d.focusIdx = fieldEmail
	d.fieldError = ""
	d.saveError = ""
	d.saving = false
}

func (d *detailState) beginEdit() {
	d.mode = detailEditing
	d.emailInput.SetValue(d.lead.Email)
	d.emailInput.CursorEnd()
	d.emailInput.Focus()
	d.editStatus = d.lead.Status
	d.focusIdx = fieldEmail
	d.fieldError = ""
	d.saveError = ""
}

// cancelEdit discards the edit buffer and reverts to the original record.
func (d *detailState) cancelEdit() {
	d.mode = detailViewing
	d.emailInput.Blur()
	d.fieldError = ""
	d.saveError = ""
}

func (d *detailState) cycleStatus(step int) {
	for i, s := range crm.Statuses {
		if s == d.editStatus {
			n := (i + step + len(crm.Statuses)) % len(crm.Statuses)
			d.editStatus = crm.Statuses[n]
			return
		}
	}
	d.editStatus = crm.Statuses[0]
}

// handleDetailKey processes keyboard input while the detail panel is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A save in flight always runs to completion; ignore input until then.
	if m.detail.saving {
		return m, nil
	}

	if m.detail.mode == detailEditing {
		return m.handleEditKey(msg)
	}

	switch {
	case keyMatches(msg, m.keys.Edit):
		m.detail.beginEdit()
		return m, nil

	case keyMatches(msg, m.keys.Convert):
		return m, m.convertCmd(m.detail.lead)

	case keyMatches(msg, m.keys.Escape), msg.String() == "q":
		return m.closeDetail()
	}

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Escape):
		m.detail.cancelEdit()
		return m, nil

	case keyMatches(msg, m.keys.Field):
		if m.detail.focusIdx == fieldEmail {
			m.detail.focusIdx = fieldStatus
			m.detail.emailInput.Blur()
		} else {
			m.detail.focusIdx = fieldEmail
			m.detail.emailInput.Focus()
		}
		return m, nil

	case keyMatches(msg, m.keys.Save):
		return m.attemptSave()
	}

	if m.detail.focusIdx == fieldStatus {
		switch msg.String() {
		case "j", "down", "l", "right", " ":
			m.detail.cycleStatus(1)
		case "k", "up", "h", "left":
			m.detail.cycleStatus(-1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.emailInput, cmd = m.detail.emailInput.Update(msg)
	return m, cmd
}

// attemptSave validates the edit buffer and, when valid, kicks off the
// simulated persistence round trip. Validation failure keeps the panel in
// Editing with a field-level error.
func (m Model) attemptSave() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.detail.emailInput.Value())
	if !emailPattern.MatchString(email) {
		m.detail.fieldError = errInvalidEmail
		return m, nil
	}

	edited := m.detail.lead
	edited.Email = email
	edited.Status = m.detail.editStatus

	m.detail.fieldError = ""
	m.detail.saveError = ""
	m.detail.saving = true
	return m, m.saveLeadCmd(edited)
}

// saveLeadCmd simulates the save round trip: a fixed delay and a small fixed
// chance of transport failure. On success the replacement record is applied
// to the store before the result message is delivered.
func (m Model) saveLeadCmd(lead crm.Lead) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		time.Sleep(saveDelay)
		if rand.Float64() < saveFailureChance {
			return saveResultMsg{lead: lead, err: fmt.Errorf("simulated save failure")}
		}
		store.Update(lead)
		return saveResultMsg{lead: lead}
	}
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	m.detail.saving = false
	if msg.err != nil {
		// Stay in Editing so the user can retry; the buffer is untouched.
		m.detail.saveError = errSaveFailed
		return m, nil
	}
	m.snapshot = m.store.Snapshot()
	m.detail.lead = msg.lead
	m.detail.cancelEdit()
	return m, m.setFlash("Saved")
}

// convertCmd runs the convert transition. The store clears the selection as
// part of the same call, so the panel closes when the message lands.
func (m Model) convertCmd(lead crm.Lead) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		opp := store.Convert(lead)
		return convertedMsg{opp: opp}
	}
}

func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	m.store.ClearSelection()
	m.snapshot = m.store.Snapshot()
	m.detail.reset()
	return m, nil
}

// renderDetailOverlay renders the centered modal over the content area.
func (m Model) renderDetailOverlay() string {
	height := m.height - 2
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.renderDetail())
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	d := m.detail

	labelStyle := styles.MutedText.Width(9)
	row := func(label, value string) string {
		return labelStyle.Render(label) + " " + value
	}

	var lines []string
	title := fmt.Sprintf("Lead #%d", d.lead.ID)
	if d.mode == detailEditing {
		title += " · editing"
	}
	lines = append(lines,
		styles.Text.Bold(true).Render(title),
		"",
		row("Name", styles.Text.Render(d.lead.Name)),
		row("Company", styles.Text.Render(d.lead.Company)),
	)

	if d.mode == detailEditing {
		marker := func(field int) string {
			if d.focusIdx == field {
				return styles.AccentText.Render("> ")
			}
			return "  "
		}
		lines = append(lines,
			marker(fieldEmail)+labelStyle.Render("Email")+" "+d.emailInput.View(),
		)
		if d.fieldError != "" {
			lines = append(lines, "  "+labelStyle.Render("")+" "+styles.DangerText.Render(d.fieldError))
		}
		lines = append(lines,
			row("Source", styles.FaintText.Render(d.lead.Source)),
			row("Score", styles.ScoreStyle(d.lead.Score).Render(strconv.Itoa(d.lead.Score))),
			marker(fieldStatus)+labelStyle.Render("Status")+" "+styles.StatusStyle(string(d.editStatus)).Render(string(d.editStatus)),
		)
	} else {
		lines = append(lines,
			row("Email", styles.Text.Render(d.lead.Email)),
			row("Source", styles.FaintText.Render(d.lead.Source)),
			row("Score", styles.ScoreStyle(d.lead.Score).Render(strconv.Itoa(d.lead.Score))),
			row("Status", styles.StatusStyle(string(d.lead.Status)).Render(string(d.lead.Status))),
		)
	}

	lines = append(lines, "")
	switch {
	case d.saving:
		lines = append(lines, styles.MutedText.Render("Saving..."))
	case d.saveError != "":
		lines = append(lines, styles.DangerText.Render(d.saveError))
	case d.mode == detailEditing:
		lines = append(lines, styles.FaintText.Render("tab field · enter save · esc cancel"))
	default:
		lines = append(lines, styles.FaintText.Render("e edit · v convert · esc close"))
	}

	return styles.Modal.Render(strings.Join(lines, "\n"))
}
