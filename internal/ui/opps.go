package ui

import (
	"strconv"
	"strings"

	"funnel/internal/crm"
)

// Opportunities table column widths.
const (
	oppColID      = 5
	oppColName    = 26
	oppColStage   = 14
	oppColAccount = 22
)

// renderOpportunities renders the opportunities tab: every opportunity in
// insertion order plus the amount total. No sorting, filtering or pagination.
func (m Model) renderOpportunities() string {
	styles := m.theme.Styles()

	if len(m.snapshot.Opportunities) == 0 {
		return "\n" + styles.MutedText.Render("  No opportunities yet. Convert a lead to create one.")
	}

	header := "  " +
		padRight("#", oppColID) +
		padRight("Name", oppColName) +
		padRight("Stage", oppColStage) +
		padRight("Account", oppColAccount) +
		"Amount"

	var b strings.Builder
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	for _, opp := range m.snapshot.Opportunities {
		b.WriteString("  " +
			styles.FaintText.Render(padRight(strconv.Itoa(opp.ID), oppColID)) +
			styles.Text.Render(padRight(truncate(opp.Name, oppColName-2), oppColName)) +
			styles.StatusText(string(opp.Stage)).Render(padRight(string(opp.Stage), oppColStage)) +
			styles.MutedText.Render(padRight(truncate(opp.AccountName, oppColAccount-2), oppColAccount)) +
			styles.Text.Render(formatAmount(opp.Amount)))
		b.WriteString("\n")
	}

	total := formatAmount(crm.SumAmounts(m.snapshot.Opportunities))
	b.WriteString("\n")
	b.WriteString("  " + styles.MutedText.Render("Total: ") + styles.SuccessText.Render(total))
	return b.String()
}
