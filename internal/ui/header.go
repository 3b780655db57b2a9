package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	parts := []string{
		m.styles.AccentText.Render("careerlog"),
	}

	if m.currentView == ViewLogin {
		parts = append(parts, m.styles.MutedText.Render("not signed in"))
	} else {
		if m.user != nil {
			name := strings.TrimSpace(m.user.FirstName + " " + m.user.LastName)
			if name == "" {
				name = m.user.Email
			}
			parts = append(parts, m.styles.Text.Render(name))
		}

		if m.snapshot.IsOffline() {
			parts = append(parts, m.styles.DangerText.Render("● OFFLINE"))
		} else if m.snapshot.HasCounts {
			parts = append(parts, m.styles.SuccessText.Render("● ON"))
			parts = append(parts, m.styles.MutedText.Render("Tracked:")+" "+
				m.styles.Text.Render(fmt.Sprintf("%d", m.snapshot.Counts.Total)))
		} else {
			parts = append(parts, m.styles.WarningText.Render("Connecting..."))
		}

		if !m.lastUpdated.IsZero() {
			parts = append(parts, m.styles.MutedText.Render(m.lastUpdated.Format("15:04:05")))
		}
	}

	content := strings.Join(parts, "  ")
	return m.styles.Header.Width(max(m.width, lipgloss.Width(content))).Render(content)
}

// renderCommandBar renders the key hint line under the header.
func (m Model) renderCommandBar() string {
	if m.currentView == ViewLogin {
		return ""
	}

	hints := []struct {
		key  string
		desc string
	}{
		{"1", "overview"},
		{"2", "jobs"},
		{"3", "alerts"},
		{"T", "theme"},
		{"L", "logout"},
		{"h", "help"},
		{"q", "quit"},
	}

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(m.styles.AccentText.Render(h.key))
		b.WriteString(" ")
		b.WriteString(m.styles.MutedText.Render(h.desc))
	}
	return b.String()
}

// renderFooter renders the notice line at the bottom.
func (m Model) renderFooter() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return m.styles.Footer.Render(m.styles.DangerText.Render(m.notice))
	}
	return m.styles.Footer.Render(m.notice)
}
