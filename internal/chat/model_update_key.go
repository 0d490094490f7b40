package chat

import (
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/banterhq/banter/internal/session"
	"github.com/banterhq/banter/internal/types"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m.handleLoginKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if _, err := m.sess.Login(m.login.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.input.Focus()
		return m, nil
	default:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.sess.Logout()
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.sess.Search("")
		m.input.Focus()
		return m, nil
	case "enter":
		results := m.sess.Search(m.searchInput.Value())
		m.status = searchStatus(len(results))
		return m, nil
	case "ctrl+n", "down":
		m.sess.Navigate(session.Next)
		return m, nil
	case "ctrl+p", "up":
		m.sess.Navigate(session.Prev)
		return m, nil
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.reactionMode {
		if handled, cmd := m.handleReactionKey(msg); handled {
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.sess.Logout()
		return m, tea.Quit
	case "ctrl+d":
		m.sess.Logout()
		m.login.Reset()
		m.login.Focus()
		m.status = ""
		return m, nil
	case "enter":
		if _, err := m.sess.Send(m.input.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.input.Reset()
		m.lastInputValue = ""
		return m, nil
	case "ctrl+j":
		m.input.InsertString("\n")
		return m, nil
	case "/", "ctrl+f":
		if msg.String() == "/" && m.input.Value() != "" {
			break
		}
		m.searching = true
		m.input.Blur()
		m.searchInput.Focus()
		return m, nil
	case "ctrl+n":
		m.sess.Navigate(session.Next)
		return m, nil
	case "ctrl+p":
		m.sess.Navigate(session.Prev)
		return m, nil
	case "ctrl+s":
		m.cycleOwnStatus()
		return m, nil
	case "ctrl+r":
		m.reactionMode = true
		m.selectForReaction()
		m.status = "react: 1-6 toggles, arrows move, esc leaves"
		m.refreshViewport()
		return m, nil
	case "ctrl+y":
		m.copySelected()
		return m, nil
	case "end":
		m.sess.JumpToBottom()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.observeUserScroll()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.lastInputValue {
		m.lastInputValue = value
		if value != "" {
			m.sess.TypingPulse(m.snap.LocalID)
		}
	}
	return m, cmd
}

// handleReactionKey consumes keys owned by reaction mode. Returns false for
// keys that should fall through to normal handling.
func (m *Model) handleReactionKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.reactionMode = false
		m.selectedID = ""
		m.status = ""
		m.refreshViewport()
		return true, nil
	case "up":
		m.moveSelection(-1)
		m.refreshViewport()
		return true, nil
	case "down":
		m.moveSelection(1)
		m.refreshViewport()
		return true, nil
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 1 && idx <= len(session.EmojiSet) {
		if m.selectedID != "" {
			m.sess.ToggleReaction(m.selectedID, m.snap.LocalID, session.EmojiSet[idx-1])
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) cycleOwnStatus() {
	p := m.participant(m.snap.LocalID)
	if p == nil {
		return
	}
	next := map[types.Status]types.Status{
		types.StatusOnline:  types.StatusBusy,
		types.StatusBusy:    types.StatusBRB,
		types.StatusBRB:     types.StatusOffline,
		types.StatusOffline: types.StatusOnline,
	}[p.Status]
	// Rapid re-presses inside the throttle window are dropped by the engine;
	// that is fine, the key repeats.
	m.sess.SetStatus(p.ID, next)
}

func (m *Model) copySelected() {
	id := m.selectedID
	if id == "" && len(m.snap.Messages) > 0 {
		id = m.snap.Messages[len(m.snap.Messages)-1].ID
	}
	for _, msg := range m.snap.Messages {
		if msg.ID == id {
			if err := clipboard.WriteAll(msg.Text); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied"
			}
			return
		}
	}
}

func searchStatus(count int) string {
	switch count {
	case 0:
		return "no matches"
	case 1:
		return "1 match"
	default:
		return strconv.Itoa(count) + " matches"
	}
}
