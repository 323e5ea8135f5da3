// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/lib/pq"
)

// PostStatus defines the editorial state of a post.
type PostStatus string

const (
	// PostStatusDraft indicates a post is not yet visible to readers.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished indicates a post is live on the site.
	PostStatusPublished PostStatus = "published"
)

// Post represents a cultural article on Sanaa Thru' My Lens.
//
// Posts are authored through the editorial pipeline; this service mutates
// only the engagement counters (views, likes). The likes counter is a
// derived cache of the likes table and is always adjusted in the same
// transaction as the like row itself.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"size:300" json:"title"`
	Slug          string `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Excerpt       string `gorm:"type:text" json:"excerpt"`
	Content       string `gorm:"type:text" json:"content"`
	FeaturedImage string `json:"featured_image"`

	AuthorID uint  `gorm:"index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"-"`
	// AuthorName is stored with the post so listings survive profile renames.
	AuthorName string `gorm:"size:120" json:"author_name"`
	// AuthorAvatar and AuthorBio are not persisted; filled from Author at read time.
	AuthorAvatar string `gorm:"-" json:"author_avatar"`
	AuthorBio    string `gorm:"-" json:"author_bio"`

	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`

	Views int64 `gorm:"not null;default:0" json:"views"`
	Likes int64 `gorm:"not null;default:0" json:"likes"`
	// Liked indicates whether the requesting reader liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`
	// Bookmarked indicates whether the requesting reader bookmarked this post (computed)
	Bookmarked bool `gorm:"-" json:"bookmarked"`

	Featured  bool       `gorm:"index" json:"featured"`
	Sponsored bool       `json:"sponsored"`
	Status    PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	SEOTitle       string         `json:"seo_title"`
	SEODescription string         `gorm:"type:text" json:"seo_description"`
	SEOKeywords    pq.StringArray `gorm:"type:text[]" json:"seo_keywords"`

	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
