package models

import "time"

// SwapStatus defines lifecycle states for swap requests.
type SwapStatus string

const (
	// SwapStatusPending indicates the request is awaiting the item owner.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the owner accepted the swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the owner declined the swap.
	SwapStatusRejected SwapStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a request in status s may move to next.
// Only pending requests move, and only to a terminal status.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	return s == SwapStatusPending && (next == SwapStatusAccepted || next == SwapStatusRejected)
}

// SwapRequest is a viewer's request to swap for an item.
type SwapRequest struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	RequesterID string     `gorm:"size:64;not null;index" json:"requester_id"`
	Requester   *User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	ItemID      string     `gorm:"size:64;not null;index" json:"item_id"`
	Item        *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Status      SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
