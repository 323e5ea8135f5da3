// Package models contains data structures for the application's domain models.
package models

import "time"

// CommentEditWindow is how long after creation a comment stays editable
// and deletable by its author. Outside the window a comment is locked
// permanently.
const CommentEditWindow = 5 * time.Minute

// Comment represents a reader comment attached to a post.
// Comments are ordered newest-first and are hard-deleted, never archived.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`

	// EditedAt is nil until the first successful edit.
	EditedAt  *time.Time `json:"edited_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CanModify reports whether the given reader may edit or delete this
// comment at the given instant: author only, and no later than
// CommentEditWindow after creation (boundary inclusive).
func (c *Comment) CanModify(readerID uint, now time.Time) bool {
	return c.AuthorID == readerID && now.Sub(c.CreatedAt) <= CommentEditWindow
}
