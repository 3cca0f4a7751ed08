package models

import "time"

// FlagStatus defines the moderation state of a runway post.
type FlagStatus string

const (
	// FlagStatusNone means nobody reported the post.
	FlagStatusNone FlagStatus = "none"
	// FlagStatusFlagged means the post awaits an administrator.
	FlagStatusFlagged FlagStatus = "flagged"
	// FlagStatusResolved means an administrator resolved the report and the post is hidden.
	FlagStatusResolved FlagStatus = "resolved"
)

// FeedPost is a runway post showing off a swapped outfit.
type FeedPost struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	UserID     string     `gorm:"size:64;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ItemID     *string    `gorm:"size:64;index" json:"item_id,omitempty"`
	Item       *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Image      string     `gorm:"not null" json:"image"`
	Caption    string     `gorm:"type:text" json:"caption"`
	FlagStatus FlagStatus `gorm:"type:varchar(20);not null;default:'none';index" json:"flag_status"`
	FlagReason string     `gorm:"type:text" json:"flag_reason,omitempty"`
	FlaggedBy  *string    `gorm:"size:64" json:"flagged_by,omitempty"`
	Reporter   *User      `gorm:"foreignKey:FlaggedBy" json:"reporter,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Visible reports whether the post is shown on the runway.
func (p FeedPost) Visible() bool {
	return p.FlagStatus != FlagStatusResolved
}

// ReporterName returns the name of the user that flagged the post, falling
// back to the author when the reporter is unknown.
func (p FeedPost) ReporterName() string {
	if p.Reporter != nil {
		return p.Reporter.Name
	}
	if p.User != nil {
		return p.User.Name
	}
	return ""
}
