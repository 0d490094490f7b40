package session

import (
	"strings"

	"github.com/banterhq/banter/internal/types"
)

// Direction selects which way Navigate moves through search matches.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// Search runs a case-insensitive substring match over the message log and
// replaces any prior result set. An empty or whitespace query clears the
// results and leaves the cursor at none. A non-empty result set starts the
// cursor at the first match and asks the surface to reveal it.
func (s *Session) Search(query string) []types.Message {
	s.mu.Lock()
	s.query = query
	s.matches = nil
	s.cursor = -1
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		s.mu.Unlock()
		s.publish()
		return nil
	}
	var results []types.Message
	for _, msg := range s.messages {
		if strings.Contains(strings.ToLower(msg.Text), needle) {
			s.matches = append(s.matches, msg.ID)
			results = append(results, msg.Clone())
		}
	}
	if len(s.matches) > 0 {
		s.cursor = 0
		s.scroll.view.Reveal(s.matches[0])
	}
	s.mu.Unlock()
	s.publish()
	return results
}

// Navigate moves the match cursor, wrapping circularly. No-op on an empty
// result set. Returns the new cursor (-1 when there are no matches).
func (s *Session) Navigate(dir Direction) int {
	s.mu.Lock()
	if len(s.matches) == 0 {
		s.mu.Unlock()
		return -1
	}
	switch dir {
	case Next:
		s.cursor = (s.cursor + 1) % len(s.matches)
	case Prev:
		s.cursor = (s.cursor - 1 + len(s.matches)) % len(s.matches)
	default:
		cursor := s.cursor
		s.mu.Unlock()
		return cursor
	}
	cursor := s.cursor
	s.scroll.view.Reveal(s.matches[cursor])
	s.mu.Unlock()
	s.publish()
	return cursor
}
