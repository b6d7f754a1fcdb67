package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: logo, tab switcher with count badges,
// and the load timestamp.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("funnel"),
		m.renderTab("Leads", len(m.snapshot.Leads), m.tab == TabLeads),
		m.renderTab("Opportunities", len(m.snapshot.Opportunities), m.tab == TabOpportunities),
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Render("loaded "+m.snapshot.LastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderTab(label string, count int, active bool) string {
	styles := m.theme.Styles()
	text := fmt.Sprintf("%s (%d)", label, count)
	if active {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Background)).
			Background(lipgloss.Color(m.theme.Accent)).
			Padding(0, 1).
			Bold(true).
			Render(text)
	}
	return styles.MutedText.Padding(0, 1).Render(text)
}
