// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a reader account. The ID doubles as the identity used
// by posts (authors) and engagement records.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Email       string `gorm:"size:254;unique;not null" json:"email"`
	Username    string `gorm:"size:30;unique;not null" json:"username"`
	DisplayName string `gorm:"size:120" json:"display_name"`
	Avatar      string `json:"avatar"`
	Bio         string `gorm:"type:text" json:"bio"`
	Password    string `gorm:"not null" json:"-"`

	// Bookmarks is not persisted on the user row; filled from the
	// bookmarks table when a full profile is assembled.
	Bookmarks []uint `gorm:"-" json:"bookmarks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
