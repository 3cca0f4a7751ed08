// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a participant in the ReWear application.
type User struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Name       string    `gorm:"size:120;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Bio        string    `gorm:"type:text" json:"bio,omitempty"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	Points     int       `gorm:"not null;default:0" json:"points"`
	IsAdmin    bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// ItemsListed is not persisted; computed for dashboards and leaderboards
	ItemsListed int `gorm:"-" json:"items_listed,omitempty"`
	// SwapsCompleted is not persisted; computed for dashboards and leaderboards
	SwapsCompleted int `gorm:"-" json:"swaps_completed,omitempty"`
}

// UserCompact is the public projection of a user embedded in other payloads.
type UserCompact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Points     int    `json:"points"`
}

// ToCompact returns the compact projection of the user.
func (u User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Name:       u.Name,
		ProfilePic: u.ProfilePic,
		Points:     u.Points,
	}
}
