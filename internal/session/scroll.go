package session

import (
	"time"

	"github.com/banterhq/banter/internal/sched"
)

// Viewport is the engine's contract with the rendering surface's scroll
// state. Reads return the surface's latest measurements; writes are requests
// the surface applies on its next cycle. Implementations must be safe to call
// from timer callbacks.
type Viewport interface {
	// Metrics returns the current scroll offset, total content extent, and
	// visible extent, all in the surface's units.
	Metrics() (offset, contentHeight, viewportHeight int)
	// SetScrollOffset requests an absolute scroll position.
	SetScrollOffset(offset int)
	// ScrollToEnd requests a jump to the end of the content, smoothly when
	// the surface supports it.
	ScrollToEnd(smooth bool)
	// Reveal requests that the given message be scrolled into view.
	Reveal(messageID string)
}

type nullViewport struct{}

func (nullViewport) Metrics() (int, int, int) { return 0, 0, 0 }
func (nullViewport) SetScrollOffset(int)      {}
func (nullViewport) ScrollToEnd(bool)         {}
func (nullViewport) Reveal(string)            {}

// defaultBottomThreshold is the distance-from-bottom under which the session
// counts as scrolled to the bottom. Surfaces with small units (terminal
// lines) attach their own threshold.
const defaultBottomThreshold = 150

// Restore retry spacing. Content extent can settle asynchronously after a
// mutation (the surface re-measures on its next cycle), so the anchor
// re-applies the restored offset a couple of times before giving up.
const (
	restoreRetryDelay = 40 * time.Millisecond
	restoreFinalDelay = 80 * time.Millisecond
)

// ScrollAnchor keeps the visible region stable across content mutations the
// user did not initiate, and pins to the bottom on sends and explicit jumps.
type ScrollAnchor struct {
	view      Viewport
	threshold int
	restore   *sched.Task
	atBottom  bool
}

func newScrollAnchor(clock sched.Clock, view Viewport, threshold int) *ScrollAnchor {
	return &ScrollAnchor{
		view:      view,
		threshold: threshold,
		restore:   sched.NewTask(clock),
		atBottom:  true,
	}
}

// SetBottomThreshold adjusts the at-bottom slack to the surface's units.
func (s *Session) SetBottomThreshold(threshold int) {
	s.mu.Lock()
	if threshold > 0 {
		s.scroll.threshold = threshold
	}
	s.mu.Unlock()
}

// preserve applies mutate and keeps the viewport's visible region where it
// was: the offset is restored shifted by however much the content extent
// grew. The restore re-runs after short delays; starting a new preserve (or a
// pin) cancels the previous cascade.
func (a *ScrollAnchor) preserve(mutate func()) {
	offset, height, _ := a.view.Metrics()
	mutate()
	view := a.view
	apply := func() {
		_, newHeight, _ := view.Metrics()
		if delta := newHeight - height; delta != 0 {
			view.SetScrollOffset(offset + delta)
		}
	}
	apply()
	a.restore.Schedule(restoreRetryDelay, func() {
		apply()
		a.restore.Schedule(restoreFinalDelay, apply)
	})
}

// pinToBottom is the send-classified path: instead of preserving the offset,
// force the bottom and request a smooth scroll to the end.
func (a *ScrollAnchor) pinToBottom() {
	a.restore.Cancel()
	a.atBottom = true
	a.view.ScrollToEnd(true)
}

// JumpToBottom scrolls to the end on explicit user request and clears the
// jump affordance.
func (s *Session) JumpToBottom() {
	s.mu.Lock()
	s.scroll.pinToBottom()
	s.mu.Unlock()
	s.publish()
}

// ObserveScroll tells the engine the user moved the viewport (or the surface
// resized). The at-bottom flag re-derives from the new measurements.
func (s *Session) ObserveScroll() {
	s.mu.Lock()
	offset, content, visible := s.scroll.view.Metrics()
	distance := content - visible - offset
	if distance < 0 {
		distance = 0
	}
	atBottom := distance < s.scroll.threshold
	changed := atBottom != s.scroll.atBottom
	s.scroll.atBottom = atBottom
	s.mu.Unlock()
	if changed {
		s.publish()
	}
}

// AtBottom reports whether the viewport counts as scrolled to the bottom.
func (s *Session) AtBottom() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll.atBottom
}
