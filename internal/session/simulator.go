package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/banterhq/banter/internal/sched"
	"github.com/banterhq/banter/internal/types"
)

// The response simulator stands in for a remote peer. Its decisions are
// clock arithmetic, not randomness, so a given invocation time reproduces the
// same behavior.
const (
	typingLeadDelay = 1000 * time.Millisecond // send -> candidate starts typing
	replyDelay      = 3000 * time.Millisecond // send -> reply lands
	reactionDelay   = 1500 * time.Millisecond // reply -> reaction lands
)

// simState tracks one simulated reply cycle.
type simState string

const (
	simIdle          simState = "idle"
	simTypingPending simState = "typing-pending"
	simTyping        simState = "typing"
	simReplied       simState = "replied"
)

// replyPhrases is the fixed reply rotation, indexed by message count.
var replyPhrases = []string{
	"oh nice, tell me more",
	"ha, that tracks",
	"wait, really?",
	"I was just thinking about that",
	"same here honestly",
	"ok but have you tried turning it off and on",
	"brb coffee, but keep going",
	"that deserves a celebration",
}

// EmojiSet is the fixed reaction palette, indexed by message text length.
var EmojiSet = []string{"👍", "❤️", "😂", "🎉", "😮", "😢"}

type simulator struct {
	session *Session
	clock   sched.Clock
	enabled bool

	typingTask *sched.Task
	replyTask  *sched.Task
	reactTask  *sched.Task

	state     simState
	cycle     string // uuid token; stale callbacks no-op
	candidate string
}

func newSimulator(s *Session, clock sched.Clock, enabled bool) *simulator {
	return &simulator{
		session:    s,
		clock:      clock,
		enabled:    enabled,
		typingTask: sched.NewTask(clock),
		replyTask:  sched.NewTask(clock),
		reactTask:  sched.NewTask(clock),
		state:      simIdle,
	}
}

// observeSendLocked runs the respond decision for a local send. Caller holds
// the session lock. A send during an active cycle cancels and restarts it;
// timers for one concern never stack.
func (sim *simulator) observeSendLocked() {
	if !sim.enabled {
		return
	}
	sim.cancelLocked()
	now := sim.clock.Now()
	if now.Second()%3 != 0 {
		return
	}
	candidates := sim.session.onlinePeersLocked()
	if len(candidates) == 0 {
		return
	}
	minuteOfDay := now.Hour()*60 + now.Minute()
	candidate := candidates[minuteOfDay%len(candidates)]
	cycle := uuid.NewString()
	sim.cycle = cycle
	sim.candidate = candidate.ID
	sim.state = simTypingPending
	sim.typingTask.Schedule(typingLeadDelay, func() { sim.beginTyping(cycle) })
	sim.replyTask.Schedule(replyDelay, func() { sim.deliverReply(cycle) })
}

// cancelLocked aborts the active cycle. An interrupted cycle never completes
// its remaining transitions. Caller holds the session lock.
func (sim *simulator) cancelLocked() {
	sim.typingTask.Cancel()
	sim.replyTask.Cancel()
	sim.reactTask.Cancel()
	if sim.candidate != "" {
		if p := sim.session.findParticipant(sim.candidate); p != nil {
			p.IsTyping = false
		}
	}
	sim.cycle = ""
	sim.candidate = ""
	sim.state = simIdle
}

// staleLocked re-checks the cycle's preconditions: the token must still be
// current, a local participant must still be present, and the candidate must
// still exist. Caller holds the session lock.
func (sim *simulator) staleLocked(cycle string) bool {
	if cycle != sim.cycle || sim.session.localID == "" {
		return true
	}
	return sim.session.findParticipant(sim.candidate) == nil
}

func (sim *simulator) beginTyping(cycle string) {
	s := sim.session
	s.mu.Lock()
	if sim.staleLocked(cycle) {
		s.mu.Unlock()
		return
	}
	s.findParticipant(sim.candidate).IsTyping = true
	sim.state = simTyping
	s.mu.Unlock()
	s.publish()
}

func (sim *simulator) deliverReply(cycle string) {
	s := sim.session
	s.mu.Lock()
	if sim.staleLocked(cycle) {
		s.mu.Unlock()
		return
	}
	s.findParticipant(sim.candidate).IsTyping = false

	// One count snapshot drives both the phrase pick and the react decision.
	count := len(s.messages)
	text := replyPhrases[count%len(replyPhrases)]
	s.scroll.preserve(func() {
		s.appendLocked(sim.candidate, text, types.DeliveryDelivered)
		for _, msg := range s.messages {
			if msg.SenderID == s.localID {
				msg.Delivery = types.DeliveryRead
			}
		}
	})

	if count%3 == 0 {
		sim.state = simReplied
		sim.reactTask.Schedule(reactionDelay, func() { sim.attachReaction(cycle) })
	} else {
		sim.cycle = ""
		sim.candidate = ""
		sim.state = simIdle
	}
	s.mu.Unlock()
	s.publish()
}

func (sim *simulator) attachReaction(cycle string) {
	s := sim.session
	s.mu.Lock()
	if sim.staleLocked(cycle) {
		s.mu.Unlock()
		return
	}
	var target *types.Message
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].SenderID == s.localID {
			target = s.messages[i]
			break
		}
	}
	candidate := sim.candidate
	sim.cycle = ""
	sim.candidate = ""
	sim.state = simIdle
	if target == nil {
		s.mu.Unlock()
		return
	}
	emoji := EmojiSet[len(target.Text)%len(EmojiSet)]
	s.scroll.preserve(func() {
		target.Reactions[candidate] = emoji
	})
	s.mu.Unlock()
	s.publish()
}

// onlinePeersLocked returns Online participants excluding the local one, in
// stable roster order. Caller holds the session lock.
func (s *Session) onlinePeersLocked() []*types.Participant {
	var peers []*types.Participant
	for _, p := range s.participants {
		if p.ID != s.localID && p.Status == types.StatusOnline {
			peers = append(peers, p)
		}
	}
	return peers
}
