package chat

import "sync"

// viewportAdapter is the engine's session.Viewport backed by the bubbletea
// viewport. Engine reads serve the latest published measurements; engine
// writes land as pending requests the UI applies on its next refresh. Timer
// callbacks hit this from other goroutines, so everything is mutex-guarded.
type viewportAdapter struct {
	mu      sync.Mutex
	offset  int
	content int
	visible int

	pendingOffset *int
	pendingEnd    bool
	pendingReveal string
}

func newViewportAdapter() *viewportAdapter {
	return &viewportAdapter{}
}

func (a *viewportAdapter) Metrics() (int, int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset, a.content, a.visible
}

func (a *viewportAdapter) SetScrollOffset(offset int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingOffset = &offset
	a.pendingEnd = false
}

func (a *viewportAdapter) ScrollToEnd(bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingEnd = true
	a.pendingOffset = nil
}

func (a *viewportAdapter) Reveal(messageID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingReveal = messageID
}

// publishMetrics records the surface's current measurements for engine reads.
func (a *viewportAdapter) publishMetrics(offset, content, visible int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offset = offset
	a.content = content
	a.visible = visible
}

// takeRequests drains pending engine requests.
func (a *viewportAdapter) takeRequests() (offset *int, end bool, reveal string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	offset, end, reveal = a.pendingOffset, a.pendingEnd, a.pendingReveal
	a.pendingOffset = nil
	a.pendingEnd = false
	a.pendingReveal = ""
	return offset, end, reveal
}
