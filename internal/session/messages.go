package session

import (
	"fmt"
	"strings"

	"github.com/banterhq/banter/internal/types"
)

// Send appends a message from the local participant. Side effects: the
// sender's typing flag clears, the viewport pins to the bottom, and the
// response simulator observes the send.
func (s *Session) Send(text string) (types.Message, error) {
	if strings.TrimSpace(text) == "" {
		return types.Message{}, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	s.mu.Lock()
	if s.localID == "" {
		s.mu.Unlock()
		return types.Message{}, &ValidationError{Field: "session", Reason: "no local participant"}
	}
	msg := s.appendLocked(s.localID, text, types.DeliverySent)
	if p := s.findParticipant(s.localID); p != nil && p.IsTyping {
		p.IsTyping = false
		if task, ok := s.typingClear[s.localID]; ok {
			task.Cancel()
		}
	}
	s.scroll.pinToBottom()
	out := msg.Clone()
	s.sim.observeSendLocked()
	s.mu.Unlock()
	s.publish()
	return out, nil
}

// appendLocked creates the next message in the log. Ids are sequence
// numbered, so they stay unique and monotonically non-decreasing.
func (s *Session) appendLocked(senderID, text string, delivery types.DeliveryState) *types.Message {
	s.msgSeq++
	msg := &types.Message{
		ID:        fmt.Sprintf("msg-%06d", s.msgSeq),
		SenderID:  senderID,
		Text:      text,
		SentAt:    s.clock.Now().UnixMilli(),
		Reactions: make(map[string]string),
		Delivery:  delivery,
	}
	s.messages = append(s.messages, msg)
	return msg
}

// ToggleReaction toggles a participant's reaction on a message. Reacting with
// the emoji already present removes it; any other emoji replaces it, so each
// participant holds at most one reaction per message. Unknown message or
// participant is a silent no-op (stale intent, not an error). The viewport
// offset is preserved across the mutation.
func (s *Session) ToggleReaction(messageID, participantID, emoji string) {
	s.mu.Lock()
	msg := s.findMessage(messageID)
	if msg == nil || s.findParticipant(participantID) == nil || emoji == "" {
		s.mu.Unlock()
		return
	}
	s.scroll.preserve(func() {
		if msg.Reactions[participantID] == emoji {
			delete(msg.Reactions, participantID)
		} else {
			msg.Reactions[participantID] = emoji
		}
	})
	s.mu.Unlock()
	s.publish()
}
