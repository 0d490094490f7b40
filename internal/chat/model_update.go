package chat

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case stateChangedMsg:
		return m.handleStateChanged()
	default:
		return m, m.updateFocusedInput(msg)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	m.refreshViewport()
	return m, nil
}

// handleStateChanged pulls a fresh snapshot after an engine change signal.
func (m *Model) handleStateChanged() (tea.Model, tea.Cmd) {
	prevLen := m.lastLogLen
	m.snap = m.sess.Snapshot()
	m.lastLogLen = len(m.snap.Messages)
	m.refreshColors()
	m.dropStaleSelection()

	// A peer message that lands while scrolled away from the bottom gets a
	// desktop notification.
	if m.authenticated() && m.lastLogLen > prevLen && !m.snap.AtBottom {
		last := m.snap.Messages[m.lastLogLen-1]
		if last.SenderID != m.snap.LocalID {
			name := last.SenderID
			if p := m.participant(last.SenderID); p != nil {
				name = p.Name
			}
			notifyReply(name, last.Text)
		}
	}

	m.refreshViewport()
	return m, m.waitForChange()
}

func (m *Model) dropStaleSelection() {
	if m.selectedID == "" {
		return
	}
	for _, msg := range m.snap.Messages {
		if msg.ID == m.selectedID {
			return
		}
	}
	m.selectedID = ""
}

// updateFocusedInput routes non-key messages (blink ticks and the like) to
// whichever input has focus.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case !m.authenticated():
		m.login, cmd = m.login.Update(msg)
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return cmd
}
