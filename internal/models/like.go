package models

import "time"

// Like records that a reader liked a post. The (UserID, PostID) pair is
// unique and the row's presence is the source of truth for the liked
// state; Post.Likes is a counter kept in step with these rows.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
