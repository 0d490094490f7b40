package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.authenticated() {
		return m.loginView()
	}

	var lines []string
	lines = append(lines, m.headerLine())
	lines = append(lines, m.viewport.View())
	if typing := typingLine(m.snap); typing != "" {
		lines = append(lines, typingStyle.Render(typing))
	} else {
		lines = append(lines, "")
	}
	if m.snap.ShowJumpAffordance {
		lines = append(lines, affordanceStyle.Render("↓ newer messages · end to jump"))
	} else {
		lines = append(lines, "")
	}
	if m.searching {
		lines = append(lines, m.searchInput.View())
	} else {
		lines = append(lines, m.input.View())
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(statusColor).Render(m.statusLine()))

	main := lipgloss.JoinVertical(lipgloss.Left, lines...)
	output := lipgloss.JoinHorizontal(lipgloss.Top, m.renderRosterPanel(), main)
	return m.zones.Scan(output)
}

func (m *Model) loginView() string {
	title := headerStyle.Render("banter")
	prompt := "who are you?"
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, m.login.View())
	if m.status != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", affordanceStyle.Render(m.status))
	}
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m *Model) headerLine() string {
	name := ""
	if p := m.participant(m.snap.LocalID); p != nil {
		name = p.Name
	}
	left := headerStyle.Render("banter") + timeStyle.Render(" · "+name)
	right := ""
	if len(m.snap.Matches) > 0 {
		right = searchStatus(len(m.snap.Matches))
	}
	return alignLine(left, right, m.mainWidth())
}

func (m *Model) statusLine() string {
	right := ""
	if m.input.Value() == "" && !m.searching {
		right = "/ search · ctrl+r react · ctrl+s status · ctrl+d logout"
	}
	return alignLine(m.status, right, m.mainWidth())
}

func alignLine(left, right string, width int) string {
	if width <= 0 || right == "" {
		return left
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	if leftWidth+rightWidth+1 > width {
		return left
	}
	return left + strings.Repeat(" ", width-leftWidth-rightWidth) + right
}

// renderRosterPanel renders the participant sidebar with presence and typing.
func (m *Model) renderRosterPanel() string {
	rows := []string{panelTitleStyle.Render("people")}
	for _, p := range m.snap.Participants {
		row := statusIcon(p.Status) + " " + p.AvatarRef + " " + nameStyle(m.colorFor(p.ID)).Render(p.Name)
		if p.ID == m.snap.LocalID {
			row += timeStyle.Render(" (you)")
		}
		if p.IsTyping {
			row += typingStyle.Render(" ✎")
		} else {
			row += timeStyle.Render(" " + statusLabel(p.Status))
		}
		rows = append(rows, row)
	}
	panel := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.height > 0 {
		return panelStyle.Height(m.height - 1).Render(panel)
	}
	return panelStyle.Render(panel)
}
