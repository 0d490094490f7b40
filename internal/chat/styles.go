package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/banterhq/banter/internal/types"
)

var participantPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

var (
	statusColor      = lipgloss.Color("241")
	timeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	bodyStyle        = lipgloss.NewStyle().PaddingLeft(2)
	reactionStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("179"))
	emptyLogStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	selectedStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	matchMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	readMarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	sentMarkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	typingStyle      = lipgloss.NewStyle().Faint(true).Italic(true)
	affordanceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	panelStyle       = lipgloss.NewStyle().PaddingRight(1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("238"))
	panelTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	headerStyle      = lipgloss.NewStyle().Bold(true)
)

func nameStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// refreshColors assigns palette colors to participants in roster order.
func (m *Model) refreshColors() {
	for i, p := range m.snap.Participants {
		if _, ok := m.colorMap[p.ID]; !ok {
			m.colorMap[p.ID] = participantPalette[i%len(participantPalette)]
		}
	}
}

func (m *Model) colorFor(id string) lipgloss.Color {
	if color, ok := m.colorMap[id]; ok {
		return color
	}
	return lipgloss.Color("250")
}

// statusIcon maps presence to a colored glyph.
func statusIcon(status types.Status) string {
	switch status {
	case types.StatusOnline:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Render("●")
	case types.StatusBusy:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Render("⊘")
	case types.StatusBRB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("◐")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Render("○")
	}
}

func statusLabel(status types.Status) string {
	switch status {
	case types.StatusBRB:
		return "BRB"
	default:
		return string(status)
	}
}
