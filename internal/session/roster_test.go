package session

import (
	"testing"
	"time"

	"github.com/banterhq/banter/internal/types"
)

func statusOf(s *Session, id string) types.Status {
	for _, p := range s.Snapshot().Participants {
		if p.ID == id {
			return p.Status
		}
	}
	return ""
}

func typingOf(s *Session, id string) bool {
	for _, p := range s.Snapshot().Participants {
		if p.ID == id {
			return p.IsTyping
		}
	}
	return false
}

func TestSetStatusCommitsOnNextTick(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	s.SetStatus("usr-ada", types.StatusBusy)

	if got := statusOf(s, "usr-ada"); got != types.StatusOnline {
		t.Fatalf("status before tick = %q, want online", got)
	}
	clock.Advance(frameDelay)
	if got := statusOf(s, "usr-ada"); got != types.StatusBusy {
		t.Fatalf("status after tick = %q, want busy", got)
	}
}

func TestSetStatusThrottleWindow(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)

	// First change accepted and committed.
	s.SetStatus("usr-ada", types.StatusBusy)
	clock.Advance(frameDelay)

	// Second change lands inside the 300ms window: dropped, never retried.
	s.SetStatus("usr-ada", types.StatusBRB)
	clock.Advance(100 * time.Millisecond)
	if got := statusOf(s, "usr-ada"); got != types.StatusBusy {
		t.Fatalf("throttled change applied: status = %q", got)
	}

	// Third change after the window reopens commits.
	clock.Advance(300 * time.Millisecond)
	s.SetStatus("usr-ada", types.StatusBRB)
	clock.Advance(frameDelay)
	if got := statusOf(s, "usr-ada"); got != types.StatusBRB {
		t.Fatalf("status = %q, want brb", got)
	}
}

func TestSetStatusThrottleIsGlobal(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	s.SetStatus("usr-ada", types.StatusBusy)
	// A different participant inside the window is dropped too.
	s.SetStatus("usr-grace", types.StatusBRB)
	clock.Advance(time.Second)

	if got := statusOf(s, "usr-ada"); got != types.StatusBusy {
		t.Fatalf("ada = %q, want busy", got)
	}
	if got := statusOf(s, "usr-grace"); got != types.StatusOnline {
		t.Fatalf("grace = %q, want online (dropped)", got)
	}
}

func TestSetStatusSameValueDoesNotConsumeThrottle(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	s.SetStatus("usr-ada", types.StatusOnline) // no-op, already online
	s.SetStatus("usr-ada", types.StatusBusy)   // must still be accepted
	clock.Advance(frameDelay)
	if got := statusOf(s, "usr-ada"); got != types.StatusBusy {
		t.Fatalf("status = %q, want busy", got)
	}
}

func TestSetStatusUnknownParticipantNoOp(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	s.SetStatus("usr-nobody", types.StatusBusy)
	clock.Advance(time.Second)
	// The bogus request must not have consumed the throttle window.
	s.SetStatus("usr-ada", types.StatusBusy)
	clock.Advance(frameDelay)
	if got := statusOf(s, "usr-ada"); got != types.StatusBusy {
		t.Fatalf("status = %q, want busy", got)
	}
}

func TestOfflineStampsLastSeen(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	s.SetStatus("usr-ada", types.StatusOffline)
	clock.Advance(frameDelay)
	for _, p := range s.Snapshot().Participants {
		if p.ID == "usr-ada" {
			if p.LastSeenAt == nil {
				t.Fatal("going offline must stamp LastSeenAt")
			}
			return
		}
	}
	t.Fatal("ada not in roster")
}

func TestSetTypingImmediateAndIdempotent(t *testing.T) {
	s, _, _ := newTestSession(t, silentTime)
	s.SetTyping("usr-ada", true)
	if !typingOf(s, "usr-ada") {
		t.Fatal("typing flag not set")
	}
	s.SetTyping("usr-ada", true) // idempotent
	if !typingOf(s, "usr-ada") {
		t.Fatal("typing flag lost on repeat set")
	}
	s.SetTyping("usr-ada", false)
	if typingOf(s, "usr-ada") {
		t.Fatal("typing flag not cleared")
	}
}

func TestTypingPulseClearsAfterQuietPeriod(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	p, err := s.Login("Dana")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.TypingPulse(p.ID)
	if !typingOf(s, p.ID) {
		t.Fatal("pulse must set typing")
	}
	clock.Advance(typingClearDelay)
	if typingOf(s, p.ID) {
		t.Fatal("typing must clear after the quiet period")
	}
}

func TestTypingPulseResetsTimer(t *testing.T) {
	s, clock, _ := newTestSession(t, silentTime)
	p, err := s.Login("Dana")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.TypingPulse(p.ID)
	clock.Advance(typingClearDelay - 100*time.Millisecond)
	s.TypingPulse(p.ID) // activity resets, never stacks
	clock.Advance(typingClearDelay - 100*time.Millisecond)
	if !typingOf(s, p.ID) {
		t.Fatal("reset timer fired early")
	}
	clock.Advance(100 * time.Millisecond)
	if typingOf(s, p.ID) {
		t.Fatal("typing must clear once the reset timer elapses")
	}
}
