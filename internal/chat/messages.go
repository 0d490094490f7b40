package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/banterhq/banter/internal/session"
	"github.com/banterhq/banter/internal/types"
)

// renderMessages renders the full log and records each message's first line
// for click mapping and reveal requests.
func (m *Model) renderMessages() string {
	m.msgLines = make(map[string]int, len(m.snap.Messages))
	if len(m.snap.Messages) == 0 {
		return emptyLogStyle.Render("no messages yet — say hi")
	}
	currentMatch := ""
	if m.snap.Cursor >= 0 && m.snap.Cursor < len(m.snap.Matches) {
		currentMatch = m.snap.Matches[m.snap.Cursor]
	}
	var blocks []string
	line := 0
	for _, msg := range m.snap.Messages {
		block := m.renderMessage(msg, currentMatch)
		m.msgLines[msg.ID] = line
		line += lipgloss.Height(block)
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderMessage(msg types.Message, currentMatch string) string {
	p := m.participant(msg.SenderID)
	name := msg.SenderID
	avatar := "?"
	if p != nil {
		name = p.Name
		avatar = p.AvatarRef
	}

	header := fmt.Sprintf("%s %s", avatar, nameStyle(m.colorFor(msg.SenderID)).Render(name))
	header += timeStyle.Render("  " + humanize.Time(time.UnixMilli(msg.SentAt)))
	if msg.SenderID == m.snap.LocalID {
		header += " " + deliveryMarker(msg.Delivery)
	}
	if msg.ID == currentMatch {
		header += " " + matchMarkerStyle.Render("⌕ match")
	}

	body := highlightCodeBlocks(msg.Text)
	lines := []string{header, bodyStyle.Render(body)}
	if reactions := renderReactions(msg); reactions != "" {
		lines = append(lines, reactionStyle.Render(reactions))
	}

	block := strings.Join(lines, "\n")
	if msg.ID == m.selectedID {
		block = selectedStyle.Render(block)
	}
	return m.zones.Mark("msg-"+msg.ID, block)
}

// renderReactions groups a message's reactions per emoji: "👍 2 · 🎉 1".
func renderReactions(msg types.Message) string {
	if len(msg.Reactions) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, emoji := range msg.Reactions {
		counts[emoji]++
	}
	emojis := make([]string, 0, len(counts))
	for emoji := range counts {
		emojis = append(emojis, emoji)
	}
	sort.Strings(emojis)
	parts := make([]string, 0, len(emojis))
	for _, emoji := range emojis {
		parts = append(parts, fmt.Sprintf("%s %d", emoji, counts[emoji]))
	}
	return strings.Join(parts, " · ")
}

func deliveryMarker(state types.DeliveryState) string {
	switch state {
	case types.DeliveryRead:
		return readMarkStyle.Render("✓✓")
	case types.DeliveryDelivered:
		return sentMarkStyle.Render("✓✓")
	default:
		return sentMarkStyle.Render("✓")
	}
}

func (m *Model) participant(id string) *types.Participant {
	for i := range m.snap.Participants {
		if m.snap.Participants[i].ID == id {
			return &m.snap.Participants[i]
		}
	}
	return nil
}

// typingLine describes who is typing, excluding the local user.
func typingLine(snap session.Snapshot) string {
	var names []string
	for _, p := range snap.Participants {
		if p.IsTyping && p.ID != snap.LocalID {
			names = append(names, p.Name)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + " is typing…"
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1] + " are typing…"
	}
}

// selectForReaction picks the message reaction keys target: the already
// selected one, else the most recent.
func (m *Model) selectForReaction() {
	if m.selectedID != "" {
		return
	}
	if n := len(m.snap.Messages); n > 0 {
		m.selectedID = m.snap.Messages[n-1].ID
	}
}

// moveSelection shifts the selected message up or down the log.
func (m *Model) moveSelection(delta int) {
	n := len(m.snap.Messages)
	if n == 0 {
		return
	}
	idx := n - 1
	for i, msg := range m.snap.Messages {
		if msg.ID == m.selectedID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	m.selectedID = m.snap.Messages[idx].ID
}
