package models

import "time"

// ItemStatus defines the availability of a listed item.
type ItemStatus string

const (
	// ItemStatusAvailable marks an item that can be requested.
	ItemStatusAvailable ItemStatus = "available"
	// ItemStatusSwapped marks an item whose swap request was accepted.
	ItemStatusSwapped ItemStatus = "swapped"
	// ItemStatusInProcess marks an item that is being exchanged.
	ItemStatusInProcess ItemStatus = "in_process"
)

// ReviewStatus defines the moderation lifecycle of a listed item.
type ReviewStatus string

const (
	// ReviewStatusPending indicates the item is awaiting an administrator.
	ReviewStatusPending ReviewStatus = "pending_review"
	// ReviewStatusApproved indicates the item is published.
	ReviewStatusApproved ReviewStatus = "approved"
	// ReviewStatusRejected indicates the item was hidden by an administrator.
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Item is a piece of clothing listed for swapping.
type Item struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	Title        string       `gorm:"size:200;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Tags         []string     `gorm:"type:text;serializer:json" json:"tags"`
	Size         string       `gorm:"size:20;not null;index" json:"size"`
	Category     string       `gorm:"size:40;not null;index" json:"category"`
	Condition    string       `gorm:"size:40;not null" json:"condition"`
	Images       []string     `gorm:"type:text;serializer:json" json:"images"`
	OwnerID      string       `gorm:"size:64;not null;index" json:"owner_id"`
	Owner        *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Status       ItemStatus   `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	ReviewStatus ReviewStatus `gorm:"type:varchar(20);not null;default:'pending_review';index" json:"review_status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PrimaryImage returns the first image reference or an empty string.
func (i Item) PrimaryImage() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

// Browsable reports whether the item is visible in the public catalog.
func (i Item) Browsable() bool {
	return i.ReviewStatus == ReviewStatusApproved && i.Status == ItemStatusAvailable
}

// OwnerName returns the owner's display name when the owner is loaded.
func (i Item) OwnerName() string {
	if i.Owner == nil {
		return ""
	}
	return i.Owner.Name
}
