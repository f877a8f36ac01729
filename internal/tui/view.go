package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitrajit-55/password-manager/internal/client"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	noticeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const maskedPassword = "••••••••"

// View renders the full screen: title, record list or form, confirm
// overlay, notice and a help line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Password Manager"))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.viewForm())
	} else {
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")

	if m.pendingDeleteID != "" {
		b.WriteString(confirmStyle.Render("Do you really want to delete this password? (y/n)"))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewList() string {
	records := m.cache.Records()
	if len(records) == 0 {
		return helpStyle.Render("No passwords to show") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-28s %-20s %s", "SITE", "USERNAME", "PASSWORD")))
	b.WriteString("\n")

	for i, rec := range records {
		password := maskedPassword
		if !m.form.Masked() {
			password = rec.Password
		}
		row := fmt.Sprintf("  %-28s %-20s %s", truncate(rec.Site, 28), truncate(rec.Username, 20), password)
		if i == m.cursor {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	heading := "New password"
	if m.form.Mode() == client.ModeEdit {
		heading = "Edit password"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Site", "Username", "Password"}
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.pendingDeleteID != "" {
		return "y confirm · n cancel"
	}
	if m.editing {
		return "tab next field · enter save · ctrl+t show/hide · esc cancel"
	}
	return "↑/↓ move · n new · e edit · d delete · c copy · m show/hide · r refresh · q quit"
}

// truncate shortens s to at most max characters, ending with an ellipsis.
// It counts runes so a multi-byte character is never cut mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
