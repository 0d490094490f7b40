package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/banterhq/banter/internal/session"
)

// Options configure the chat UI.
type Options struct {
	Name      string // pre-fills the login prompt; empty shows it blank
	Responses bool   // enable the simulated responder
	Peers     int    // number of seeded peers, 0 means all defaults
}

// Run starts the chat UI and blocks until it exits.
func Run(opts Options) error {
	seeds := session.DefaultSeeds()
	if opts.Peers > 0 && opts.Peers < len(seeds) {
		seeds = seeds[:opts.Peers]
	}
	adapter := newViewportAdapter()
	sess := session.New(session.Options{
		Viewport:  adapter,
		Seeds:     seeds,
		Responses: opts.Responses,
	})
	// Terminal lines are coarse units; three lines of slack matches how the
	// engine's 150-unit default scales down.
	sess.SetBottomThreshold(bottomSlackLines)

	model := NewModel(sess, adapter, opts)

	// Set window title (ANSI OSC sequence)
	fmt.Printf("\033]0;banter\007")

	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

const bottomSlackLines = 3

// Model implements the chat UI. It owns no session state: everything durable
// lives in the engine and arrives here through Snapshot.
type Model struct {
	sess    *session.Session
	adapter *viewportAdapter
	changes <-chan struct{}

	snap session.Snapshot

	viewport    viewport.Model
	input       textarea.Model
	login       textinput.Model
	searchInput textinput.Model

	width  int
	height int
	status string

	searching    bool
	reactionMode bool
	selectedID   string // message id targeted by reaction/copy keys

	colorMap map[string]lipgloss.Color
	msgLines map[string]int // message id -> first line in rendered content
	zones    *zone.Manager

	lastInputValue string
	lastLogLen     int
	quitting       bool
}

// NewModel creates the chat model.
func NewModel(sess *session.Session, adapter *viewportAdapter, opts Options) *Model {
	login := textinput.New()
	login.Placeholder = "your name"
	login.CharLimit = 40
	login.SetValue(opts.Name)
	login.Focus()

	m := &Model{
		sess:        sess,
		adapter:     adapter,
		changes:     sess.Subscribe(),
		snap:        sess.Snapshot(),
		viewport:    viewport.New(0, 0),
		input:       newInputModel(),
		login:       login,
		searchInput: newSearchInput(),
		colorMap:    make(map[string]lipgloss.Color),
		msgLines:    make(map[string]int),
		zones:       zone.New(),
	}
	m.refreshColors()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), textarea.Blink)
}

// stateChangedMsg wakes the UI when the engine publishes a change.
type stateChangedMsg struct{}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

func (m *Model) authenticated() bool {
	return m.snap.LocalID != ""
}
