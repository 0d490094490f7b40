package chat

import (
	"testing"

	"github.com/banterhq/banter/internal/session"
	"github.com/banterhq/banter/internal/types"
)

func TestRenderReactionsGroupsAndSorts(t *testing.T) {
	msg := types.Message{
		ID: "msg-000001",
		Reactions: map[string]string{
			"usr-ada":   "👍",
			"usr-grace": "👍",
			"usr-linus": "🎉",
		},
	}
	got := renderReactions(msg)
	if got != "🎉 1 · 👍 2" {
		t.Fatalf("reactions: got %q", got)
	}
}

func TestRenderReactionsEmpty(t *testing.T) {
	if got := renderReactions(types.Message{}); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}

func TestTypingLine(t *testing.T) {
	snap := session.Snapshot{
		LocalID: "usr-me",
		Participants: []types.Participant{
			{ID: "usr-me", Name: "Me", IsTyping: true},
			{ID: "usr-ada", Name: "Ada"},
			{ID: "usr-grace", Name: "Grace"},
		},
	}
	if got := typingLine(snap); got != "" {
		t.Fatalf("local typing must not render, got %q", got)
	}

	snap.Participants[1].IsTyping = true
	if got := typingLine(snap); got != "Ada is typing…" {
		t.Fatalf("single typist: got %q", got)
	}

	snap.Participants[2].IsTyping = true
	if got := typingLine(snap); got != "Ada and Grace are typing…" {
		t.Fatalf("two typists: got %q", got)
	}
}

func TestSearchStatus(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "no matches"},
		{1, "1 match"},
		{4, "4 matches"},
	}
	for _, tc := range cases {
		if got := searchStatus(tc.count); got != tc.want {
			t.Errorf("searchStatus(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestClampOffset(t *testing.T) {
	cases := []struct {
		offset, content, view, want int
	}{
		{0, 100, 20, 0},
		{95, 100, 20, 80},
		{-5, 100, 20, 0},
		{10, 15, 20, 0},
	}
	for _, tc := range cases {
		if got := clampOffset(tc.offset, tc.content, tc.view); got != tc.want {
			t.Errorf("clampOffset(%d, %d, %d) = %d, want %d", tc.offset, tc.content, tc.view, got, tc.want)
		}
	}
}

func TestTruncateNotification(t *testing.T) {
	if got := truncateNotification("  hello   world  ", 100); got != "hello world" {
		t.Fatalf("whitespace collapse: got %q", got)
	}
	got := truncateNotification("abcdefghij", 5)
	if got != "abcd…" {
		t.Fatalf("truncate: got %q", got)
	}
}
