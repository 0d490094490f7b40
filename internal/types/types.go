package types

// Status represents participant presence.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusBRB     Status = "brb"
	StatusBusy    Status = "busy"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusOffline, StatusBRB, StatusBusy:
		return true
	}
	return false
}

// DeliveryState is a coarse message lifecycle marker. It is not wired to a
// real transport; the response simulator advances it deterministically.
type DeliveryState string

const (
	DeliverySent      DeliveryState = "sent"
	DeliveryDelivered DeliveryState = "delivered"
	DeliveryRead      DeliveryState = "read"
)

// Participant represents a chat session member, local or simulated.
type Participant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvatarRef  string `json:"avatar_ref"`
	Status     Status `json:"status"`
	LastSeenAt *int64 `json:"last_seen_at,omitempty"`
	IsTyping   bool   `json:"is_typing"`
}

// Message represents one entry in the append-only session log.
// Only Reactions and Delivery mutate after creation.
type Message struct {
	ID        string            `json:"id"`
	SenderID  string            `json:"sender_id"`
	Text      string            `json:"text"`
	SentAt    int64             `json:"sent_at"`
	Reactions map[string]string `json:"reactions"` // participant id -> emoji, at most one each
	Delivery  DeliveryState     `json:"delivery"`
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	out := m
	out.Reactions = make(map[string]string, len(m.Reactions))
	for id, emoji := range m.Reactions {
		out.Reactions[id] = emoji
	}
	return out
}
