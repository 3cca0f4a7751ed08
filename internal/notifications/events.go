package notifications

import (
	"encoding/json"
	"time"
)

// Event types delivered to users and administrators.
const (
	EventItemSubmitted = "item_submitted"
	EventItemApproved  = "item_approved"
	EventItemRejected  = "item_rejected"
	EventPostFlagged   = "post_flagged"
	EventPostResolved  = "post_resolved"
	EventSwapRequested = "swap_requested"
	EventSwapAccepted  = "swap_accepted"
	EventSwapRejected  = "swap_rejected"
	EventInterest      = "interest"
)

// Event is the JSON envelope published on notification channels.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{Type: eventType, Payload: payload, At: time.Now().UTC()}
}

// Encode marshals the event.
func (e Event) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
