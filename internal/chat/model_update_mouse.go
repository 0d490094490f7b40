package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, nil
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.observeUserScroll()
		return m, cmd
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		// Clicking a message selects it for reactions.
		for _, message := range m.snap.Messages {
			if m.zones.Get("msg-" + message.ID).InBounds(msg) {
				m.selectedID = message.ID
				m.reactionMode = true
				m.status = "react: 1-6 toggles, arrows move, esc leaves"
				m.refreshViewport()
				return m, nil
			}
		}
	}
	return m, nil
}
