package session

import (
	"strings"
	"time"

	"github.com/banterhq/banter/internal/sched"
	"github.com/banterhq/banter/internal/types"
)

const (
	// statusThrottle drops status changes arriving inside the cooldown after
	// the previous accepted change, for any participant. Anti-flicker policy:
	// dropped requests are not queued or retried.
	statusThrottle = 300 * time.Millisecond

	// frameDelay stands in for the next paint boundary. The terminal surface
	// has no vsync callback, so an accepted status change commits one short
	// scheduling tick after acceptance.
	frameDelay = 16 * time.Millisecond

	// typingClearDelay is the quiet period after which a typing pulse clears.
	typingClearDelay = 1500 * time.Millisecond
)

// Login creates the local participant. The id derives deterministically from
// the normalized name plus creation time; the default status is Online.
// Logging in while already authenticated replaces the local identity.
func (s *Session) Login(name string) (types.Participant, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return types.Participant{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	s.mu.Lock()
	if s.localID != "" {
		s.logoutLocked()
	}
	now := s.clock.Now().UnixMilli()
	p := &types.Participant{
		ID:        participantID(trimmed, now),
		Name:      trimmed,
		AvatarRef: avatarFor(trimmed),
		Status:    types.StatusOnline,
	}
	s.participants = append(s.participants, p)
	s.localID = p.ID
	out := *p
	s.mu.Unlock()
	s.publish()
	return out, nil
}

// Logout clears the local participant and cancels every pending timer that
// targets it. The participant record stays in the roster so sent messages
// remain attributed.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.localID == "" {
		s.mu.Unlock()
		return
	}
	s.logoutLocked()
	s.mu.Unlock()
	s.publish()
}

func (s *Session) logoutLocked() {
	if task, ok := s.typingClear[s.localID]; ok {
		task.Cancel()
	}
	if p := s.findParticipant(s.localID); p != nil {
		p.IsTyping = false
		p.Status = types.StatusOffline
		seen := s.clock.Now().UnixMilli()
		p.LastSeenAt = &seen
	}
	s.localID = ""
	s.sim.cancelLocked()
}

// SetStatus requests a presence change. Silent no-op when the participant is
// unknown, the status is invalid, or it equals the current value. Requests
// inside the throttle window are dropped; accepted requests commit one frame
// tick later, and a newer accepted request cancels a pending one.
func (s *Session) SetStatus(id string, status types.Status) {
	s.mu.Lock()
	p := s.findParticipant(id)
	if p == nil || !status.Valid() || p.Status == status {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now().UnixMilli()
	if s.lastStatusAt != 0 && now-s.lastStatusAt < statusThrottle.Milliseconds() {
		s.mu.Unlock()
		return
	}
	s.lastStatusAt = now
	s.pendingStatus = &statusChange{id: id, status: status}
	s.mu.Unlock()
	s.statusCommit.Schedule(frameDelay, s.commitStatus)
}

func (s *Session) commitStatus() {
	s.mu.Lock()
	change := s.pendingStatus
	s.pendingStatus = nil
	if change == nil {
		s.mu.Unlock()
		return
	}
	p := s.findParticipant(change.id)
	if p == nil || p.Status == change.status {
		s.mu.Unlock()
		return
	}
	p.Status = change.status
	if change.status == types.StatusOffline {
		seen := s.clock.Now().UnixMilli()
		p.LastSeenAt = &seen
	}
	s.mu.Unlock()
	s.publish()
}

// SetTyping sets the typing flag immediately. Idempotent.
func (s *Session) SetTyping(id string, typing bool) {
	s.mu.Lock()
	p := s.findParticipant(id)
	if p == nil || p.IsTyping == typing {
		s.mu.Unlock()
		return
	}
	p.IsTyping = typing
	if !typing {
		if task, ok := s.typingClear[id]; ok {
			task.Cancel()
		}
	}
	s.mu.Unlock()
	s.publish()
}

// TypingPulse marks the participant as typing and (re)schedules the quiet
// period that clears the flag. New activity resets the timer, never stacks a
// second one.
func (s *Session) TypingPulse(id string) {
	s.mu.Lock()
	p := s.findParticipant(id)
	if p == nil {
		s.mu.Unlock()
		return
	}
	changed := !p.IsTyping
	p.IsTyping = true
	task, ok := s.typingClear[id]
	if !ok {
		task = sched.NewTask(s.clock)
		s.typingClear[id] = task
	}
	s.mu.Unlock()
	task.Schedule(typingClearDelay, func() { s.clearTyping(id) })
	if changed {
		s.publish()
	}
}

func (s *Session) clearTyping(id string) {
	s.mu.Lock()
	p := s.findParticipant(id)
	if p == nil || !p.IsTyping {
		s.mu.Unlock()
		return
	}
	p.IsTyping = false
	s.mu.Unlock()
	s.publish()
}

func avatarFor(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
