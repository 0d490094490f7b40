package chat

import "github.com/charmbracelet/lipgloss"

// refreshViewport re-renders the log and applies any scroll requests the
// engine queued on the adapter.
func (m *Model) refreshViewport() {
	content := m.renderMessages()
	// Ensure content is always taller than the viewport to keep scroll
	// behavior active; an exact height match cuts off the first line.
	contentHeight := lipgloss.Height(content)
	if contentHeight > 0 && contentHeight <= m.viewport.Height {
		content = "\n" + content
		contentHeight++
	}
	m.viewport.SetContent(content)

	offset, end, reveal := m.adapter.takeRequests()
	switch {
	case end:
		m.viewport.GotoBottom()
	case reveal != "":
		m.revealMessage(reveal, contentHeight)
	case offset != nil:
		m.viewport.SetYOffset(clampOffset(*offset, contentHeight, m.viewport.Height))
	default:
		if m.viewport.YOffset > contentHeight-m.viewport.Height {
			m.viewport.SetYOffset(clampOffset(m.viewport.YOffset, contentHeight, m.viewport.Height))
		}
	}
	m.publishMetrics(contentHeight)
}

// revealMessage scrolls the given message roughly to the middle of the view.
func (m *Model) revealMessage(id string, contentHeight int) {
	line, ok := m.msgLines[id]
	if !ok {
		return
	}
	target := line - m.viewport.Height/2
	m.viewport.SetYOffset(clampOffset(target, contentHeight, m.viewport.Height))
}

func clampOffset(offset, contentHeight, viewportHeight int) int {
	max := contentHeight - viewportHeight
	if max < 0 {
		max = 0
	}
	if offset > max {
		return max
	}
	if offset < 0 {
		return 0
	}
	return offset
}

// publishMetrics reports the surface's measurements back to the engine so
// the at-bottom derivation stays current.
func (m *Model) publishMetrics(contentHeight int) {
	m.adapter.publishMetrics(m.viewport.YOffset, contentHeight, m.viewport.Height)
	m.sess.ObserveScroll()
}

// observeUserScroll is called after any user-initiated viewport movement.
func (m *Model) observeUserScroll() {
	m.publishMetrics(m.viewport.TotalLineCount())
}
