package session

import (
	"sync"
	"testing"
	"time"

	"github.com/banterhq/banter/internal/sched"
	"github.com/banterhq/banter/internal/types"
)

// fakeViewport records engine requests and serves canned measurements.
type fakeViewport struct {
	mu       sync.Mutex
	offset   int
	content  int
	visible  int
	endCalls int
	revealed []string
}

func (v *fakeViewport) Metrics() (int, int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset, v.content, v.visible
}

func (v *fakeViewport) SetScrollOffset(offset int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = offset
}

func (v *fakeViewport) ScrollToEnd(bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.endCalls++
}

func (v *fakeViewport) Reveal(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.revealed = append(v.revealed, id)
}

func (v *fakeViewport) setContent(h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.content = h
}

func newTestSession(t *testing.T, start time.Time) (*Session, *sched.Manual, *fakeViewport) {
	t.Helper()
	clock := sched.NewManual(start)
	view := &fakeViewport{}
	s := New(Options{
		Clock:     clock,
		Viewport:  view,
		Seeds:     DefaultSeeds(),
		Responses: true,
	})
	return s, clock, view
}

// respondingTime has second%3 == 0, so the simulator decides to reply, and
// minute-of-day 600, which indexes candidate 0 of two online peers.
var respondingTime = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

// silentTime has second%3 != 0, so sends provoke no reply.
var silentTime = time.Date(2024, 5, 6, 10, 0, 1, 0, time.UTC)

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Dana", false},
		{"padded name", "  Dana  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, silentTime)
			p, err := s.Login(tt.input)
			if tt.wantErr {
				if !IsValidation(err) {
					t.Fatalf("err = %v, want ValidationError", err)
				}
				if s.LocalID() != "" {
					t.Fatal("failed login must not set a local participant")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if p.Name != "Dana" {
				t.Fatalf("name = %q, want Dana", p.Name)
			}
			if p.Status != types.StatusOnline {
				t.Fatalf("status = %q, want online", p.Status)
			}
			if s.LocalID() != p.ID {
				t.Fatalf("local id = %q, want %q", s.LocalID(), p.ID)
			}
		})
	}
}

func TestLoginIDDeterministic(t *testing.T) {
	s1, _, _ := newTestSession(t, respondingTime)
	s2, _, _ := newTestSession(t, respondingTime)
	p1, err := s1.Login("Dana Scully")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p2, err := s2.Login("dana   SCULLY")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p1.ID != p2.ID {
		t.Fatalf("ids differ for same normalized name and time: %q vs %q", p1.ID, p2.ID)
	}
}

func TestLogoutKeepsRosterHistory(t *testing.T) {
	s, _, _ := newTestSession(t, silentTime)
	p, err := s.Login("Dana")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Send("hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	s.Logout()

	if s.LocalID() != "" {
		t.Fatal("logout must clear the local participant")
	}
	snap := s.Snapshot()
	found := false
	for _, rp := range snap.Participants {
		if rp.ID == p.ID {
			found = true
			if rp.Status != types.StatusOffline {
				t.Fatalf("status after logout = %q, want offline", rp.Status)
			}
			if rp.LastSeenAt == nil {
				t.Fatal("logout must stamp LastSeenAt")
			}
		}
	}
	if !found {
		t.Fatal("participant record must survive logout")
	}
	if len(snap.Messages) != 1 || snap.Messages[0].SenderID != p.ID {
		t.Fatal("sent messages must stay attributed after logout")
	}
}

func TestSendAfterLogoutRejected(t *testing.T) {
	s, _, _ := newTestSession(t, silentTime)
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.Logout()
	if _, err := s.Send("hello"); !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	s, _, _ := newTestSession(t, silentTime)
	ch := s.Subscribe()
	if _, err := s.Login("Dana"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	select {
	case <-ch:
	default:
		t.Fatal("login must signal subscribers")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dana", "dana"},
		{"Dana Scully", "dana-scully"},
		{"  spaced   out  ", "spaced-out"},
		{"Émile!", "émile"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.input); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
