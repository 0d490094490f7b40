package session

import "testing"

func TestPreserveRestoresOffsetPlusDelta(t *testing.T) {
	s, clock, view := newTestSession(t, silentTime)
	s.SetBottomThreshold(3)
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	msg, err := s.Send("long scrolled-up log")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Scrolled up in a tall log.
	view.offset = 10
	view.content = 100
	view.visible = 20
	s.ObserveScroll()
	if s.AtBottom() {
		t.Fatal("should not count as at bottom")
	}

	// The reaction grows content by 6 units, measured only after the
	// mutation returns (the surface re-renders asynchronously).
	s.ToggleReaction(msg.ID, "usr-ada", "👍")
	view.setContent(106)
	// Offset restored on the retry pass once the new extent is visible.
	clock.Advance(restoreRetryDelay)
	if got, _, _ := view.Metrics(); got != 16 {
		t.Fatalf("offset = %d, want 16 (initial 10 + delta 6)", got)
	}
}

func TestPreserveRetryHandlesLateSettle(t *testing.T) {
	s, clock, view := newTestSession(t, silentTime)
	s.SetBottomThreshold(3)
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	msg, err := s.Send("hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	view.offset = 30
	view.content = 200
	view.visible = 20
	s.ObserveScroll()

	s.ToggleReaction(msg.ID, "usr-ada", "🎉")
	// Content settles only after the first retry already ran.
	clock.Advance(restoreRetryDelay)
	view.setContent(204)
	clock.Advance(restoreFinalDelay)
	if got, _, _ := view.Metrics(); got != 34 {
		t.Fatalf("offset = %d, want 34 (late settle picked up by final retry)", got)
	}
}

func TestJumpToBottom(t *testing.T) {
	s, _, view := newTestSession(t, silentTime)
	s.SetBottomThreshold(3)
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Send("hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	view.offset = 0
	view.content = 100
	view.visible = 20
	s.ObserveScroll()
	if !s.Snapshot().ShowJumpAffordance {
		t.Fatal("affordance must show while scrolled up with a non-empty log")
	}

	before := view.endCalls
	s.JumpToBottom()
	if !s.AtBottom() {
		t.Fatal("jump must set at-bottom")
	}
	if s.Snapshot().ShowJumpAffordance {
		t.Fatal("jump must clear the affordance")
	}
	if view.endCalls != before+1 {
		t.Fatal("jump must request scroll-to-end")
	}
}

func TestAffordanceHiddenOnEmptyLog(t *testing.T) {
	s, _, view := newTestSession(t, silentTime)
	s.SetBottomThreshold(3)
	view.offset = 0
	view.content = 100
	view.visible = 20
	s.ObserveScroll()
	if s.Snapshot().ShowJumpAffordance {
		t.Fatal("affordance needs a non-empty log")
	}
}

func TestSendPinsToBottom(t *testing.T) {
	s, _, view := newTestSession(t, silentTime)
	s.SetBottomThreshold(3)
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Send("first"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	view.offset = 0
	view.content = 100
	view.visible = 20
	s.ObserveScroll()
	if s.AtBottom() {
		t.Fatal("setup: should be scrolled up")
	}

	if _, err := s.Send("second"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !s.AtBottom() {
		t.Fatal("send must force at-bottom")
	}
}
