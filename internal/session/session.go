// Package session implements the chat session state engine: an in-memory
// roster and message log mutated only through the operations defined here,
// plus the timers that gate those mutations. The rendering surface subscribes
// to change signals, reads state through Snapshot, and dispatches operations;
// it owns no durable state of its own.
package session

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/banterhq/banter/internal/sched"
	"github.com/banterhq/banter/internal/types"
)

// Options configure a session.
type Options struct {
	Clock     sched.Clock         // nil means wall clock
	Viewport  Viewport            // nil until a surface attaches
	Seeds     []types.Participant // simulated participants present at start
	Responses bool                // enable the response simulator
}

// Session holds the full engine state. All fields are guarded by mu; timer
// callbacks re-acquire it and re-check preconditions before writing.
type Session struct {
	mu    sync.Mutex
	clock sched.Clock

	localID      string
	participants []*types.Participant
	messages     []*types.Message
	msgSeq       int

	// search
	query   string
	matches []string // message ids, log order
	cursor  int      // index into matches, -1 when none

	// status throttle (global across participants, anti-flicker)
	lastStatusAt  int64 // unix ms of last accepted change, 0 = none
	pendingStatus *statusChange
	statusCommit  *sched.Task

	// per-participant typing auto-clear
	typingClear map[string]*sched.Task

	scroll *ScrollAnchor
	sim    *simulator

	subs []chan struct{}
}

type statusChange struct {
	id     string
	status types.Status
}

// New creates a session with the given options. The session starts
// unauthenticated; Login sets the local participant.
func New(opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = sched.Wall{}
	}
	view := opts.Viewport
	if view == nil {
		view = nullViewport{}
	}
	s := &Session{
		clock:        clock,
		cursor:       -1,
		statusCommit: sched.NewTask(clock),
		typingClear:  make(map[string]*sched.Task),
		scroll:       newScrollAnchor(clock, view, defaultBottomThreshold),
	}
	s.sim = newSimulator(s, clock, opts.Responses)
	for _, seed := range opts.Seeds {
		seed := seed
		if seed.Status == "" {
			seed.Status = types.StatusOnline
		}
		s.participants = append(s.participants, &seed)
	}
	return s
}

// AttachViewport connects the rendering surface's viewport once it exists.
func (s *Session) AttachViewport(view Viewport) {
	s.mu.Lock()
	s.scroll.view = view
	s.mu.Unlock()
}

// Subscribe returns a coalescing change channel. The surface should re-read
// Snapshot and re-render on every receive.
func (s *Session) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Session) publish() {
	s.mu.Lock()
	subs := make([]chan struct{}, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot is a copied, race-free view of session state for rendering.
type Snapshot struct {
	LocalID            string
	Participants       []types.Participant
	Messages           []types.Message
	Query              string
	Matches            []string
	Cursor             int
	AtBottom           bool
	ShowJumpAffordance bool
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		LocalID:  s.localID,
		Query:    s.query,
		Cursor:   s.cursor,
		AtBottom: s.scroll.atBottom,
	}
	snap.ShowJumpAffordance = !s.scroll.atBottom && len(s.messages) > 0
	snap.Participants = make([]types.Participant, len(s.participants))
	for i, p := range s.participants {
		snap.Participants[i] = *p
	}
	snap.Messages = make([]types.Message, len(s.messages))
	for i, m := range s.messages {
		snap.Messages[i] = m.Clone()
	}
	snap.Matches = make([]string, len(s.matches))
	copy(snap.Matches, s.matches)
	return snap
}

// LocalID returns the local participant id, empty when unauthenticated.
func (s *Session) LocalID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localID
}

func (s *Session) findParticipant(id string) *types.Participant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) findMessage(id string) *types.Message {
	for _, m := range s.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// participantID derives a deterministic id from the normalized name and
// creation time.
func participantID(name string, unixMS int64) string {
	return "usr-" + normalizeName(name) + "-" + strconv.FormatInt(unixMS, 36)
}

func normalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	joined := strings.Join(fields, "-")
	var b strings.Builder
	for _, r := range joined {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
