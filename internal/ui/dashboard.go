package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the status overview and recent alerts.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderCounts())
	b.WriteString("\n\n")
	b.WriteString(m.styles.AccentText.Render("Recent alerts"))
	b.WriteString("\n")
	b.WriteString(m.renderAlertList(5))

	if m.snapshot.LastError != nil && m.snapshot.IsOffline() {
		b.WriteString("\n\n")
		b.WriteString(m.styles.DangerText.Render("Server unreachable: " + m.snapshot.LastError.Error()))
	}

	return b.String()
}

// renderCounts renders one card per job status plus the total.
func (m Model) renderCounts() string {
	if !m.snapshot.HasCounts {
		return m.styles.MutedText.Render("Waiting for the first refresh...")
	}

	counts := m.snapshot.Counts
	cards := []string{
		m.renderCountCard("applied", counts.Applied),
		m.renderCountCard("interviewing", counts.Interviewing),
		m.renderCountCard("offer", counts.Offer),
		m.renderCountCard("rejected", counts.Rejected),
	}
	cards = append(cards, m.styles.Card.Render(
		m.styles.MutedText.Render("total")+"\n"+
			m.styles.AccentText.Render(fmt.Sprintf("%d", counts.Total)),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderCountCard(status string, n int) string {
	return m.styles.Card.Render(
		m.styles.StatusStyle(status).Render(statusLabel(status)) + "\n" +
			m.styles.Text.Render(fmt.Sprintf("%d", n)),
	)
}

// renderAlerts renders the full alerts view.
func (m Model) renderAlerts() string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("Alerts"))
	b.WriteString("\n")
	b.WriteString(m.renderAlertList(len(m.snapshot.Alerts)))
	return b.String()
}

// renderAlertList renders up to limit alerts from the snapshot.
func (m Model) renderAlertList(limit int) string {
	alerts := m.snapshot.Alerts
	if len(alerts) == 0 {
		return m.styles.MutedText.Render("No alerts scheduled.")
	}
	if limit > len(alerts) {
		limit = len(alerts)
	}

	var b strings.Builder
	for i := range limit {
		a := alerts[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.MutedText.Render(formatAlertTime(a.ScheduledAlert)))
		b.WriteString("  ")
		b.WriteString(m.styles.WarningText.Render("[" + a.SMSOrEmail + "]"))
		b.WriteString("  ")
		b.WriteString(m.styles.Text.Render(truncate(a.Message, 70)))
	}
	return b.String()
}
