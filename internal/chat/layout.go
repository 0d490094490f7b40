package chat

const (
	rosterPanelWidth = 22
	inputMaxHeight   = 6
	inputPadding     = 1
)

func (m *Model) mainWidth() int {
	if m.width == 0 {
		return 0
	}
	width := m.width - rosterPanelWidth
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	width := m.mainWidth()
	inputWidth := width - inputPadding
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.input.SetWidth(inputWidth)
	lineCount := m.input.LineCount()
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > inputMaxHeight {
		lineCount = inputMaxHeight
	}
	m.input.SetHeight(lineCount)
	m.searchInput.Width = inputWidth

	// header + typing + affordance + status rows surround the log.
	headerHeight := 1
	typingHeight := 1
	affordanceHeight := 1
	statusHeight := 1
	m.viewport.Width = width
	m.viewport.Height = m.height - headerHeight - typingHeight - affordanceHeight - statusHeight - m.input.Height()
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}
