// Package repository provides data access for the application's models.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sanaalens/internal/models"
)

// PostRepository handles post reads and the engagement counter writes.
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Post, error)
	ListTrending(ctx context.Context, limit int) ([]models.Post, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]models.Post, int64, error)
	ListRelated(ctx context.Context, post *models.Post, limit int) ([]models.Post, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Post, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	EnsureStub(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository backed by GORM.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// published scopes a query to posts visible to readers.
func published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", models.PostStatusPublished)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthor(&post)
	return &post, nil
}

// GetBySlug resolves a published post by its URL slug. Drafts are
// invisible here even when the slug matches.
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", slug)
		}
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthor(&post)
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	base := published(r.db.WithContext(ctx).Model(&models.Post{}))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, total, nil
}

func (r *postRepository) ListFeatured(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Where("featured = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, nil
}

// ListTrending orders published posts by view count, using recency as the
// tie-breaker so stable counters don't produce an arbitrary order.
func (r *postRepository) ListTrending(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Order("views DESC, published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, nil
}

func (r *postRepository) ListByCategory(ctx context.Context, category string, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	base := published(r.db.WithContext(ctx).Model(&models.Post{})).
		Where("? = ANY(categories)", category)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Where("? = ANY(categories)", category).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, total, nil
}

// ListRelated finds published posts sharing at least one category with the
// given post, excluding the post itself.
func (r *postRepository) ListRelated(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	if len(post.Categories) == 0 {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Where("id <> ?", post.ID).
		Where("categories && ?", post.Categories).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, nil
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err := published(r.db.WithContext(ctx)).
		Preload("Author").
		Where("id IN ?", ids).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	pattern := "%" + query + "%"
	match := func(db *gorm.DB) *gorm.DB {
		return db.Where("title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?", pattern, pattern, pattern)
	}

	base := match(published(r.db.WithContext(ctx).Model(&models.Post{})))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	err := match(published(r.db.WithContext(ctx))).
		Preload("Author").
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	denormalizeAuthors(posts)
	return posts, total, nil
}

// ListCategories returns every category used by at least one published
// post, alphabetically.
func (r *postRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT unnest(categories) AS category
		     FROM posts WHERE status = ? ORDER BY category`, models.PostStatusPublished).
		Scan(&categories).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// EnsureStub guarantees a post row exists before engagement lands on it.
// Engagement can arrive for posts that predate this service's catalogue;
// the stub stays a draft so it never leaks into listings.
func (r *postRepository) EnsureStub(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO posts (id, slug, status, views, likes, created_at, updated_at)
		 VALUES (?, ?, ?, 0, 0, NOW(), NOW())
		 ON CONFLICT (id) DO NOTHING`,
		id, fmt.Sprintf("post-%d", id), models.PostStatusDraft,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IncrementViews bumps the view counter atomically in the database; the
// read-modify-write never happens in application code.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// denormalizeAuthor copies author profile fields onto the post so API
// consumers never need a second lookup.
func denormalizeAuthor(post *models.Post) {
	if post.Author == nil {
		return
	}
	if post.Author.DisplayName != "" {
		post.AuthorName = post.Author.DisplayName
	}
	post.AuthorAvatar = post.Author.Avatar
	post.AuthorBio = post.Author.Bio
}

func denormalizeAuthors(posts []models.Post) {
	for i := range posts {
		denormalizeAuthor(&posts[i])
	}
}
