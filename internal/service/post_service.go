package service

import (
	"context"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/cache"
	"sanaalens/internal/models"
	"sanaalens/internal/repository"
)

const (
	featuredLimit = 3
	trendingLimit = 5
	relatedLimit  = 3
)

// PostList is a paginated page of posts.
type PostList struct {
	Posts  []models.Post `json:"posts"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// PostService implements the read side of the post catalogue.
type PostService struct {
	posts      repository.PostRepository
	engagement repository.EngagementRepository
	rdb        *redis.Client
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, engagement repository.EngagementRepository, rdb *redis.Client) *PostService {
	return &PostService{posts: posts, engagement: engagement, rdb: rdb}
}

// GetBySlug fetches one published post for the article page, enriched
// with the requesting reader's like and bookmark state when signed in
// (readerID 0 means anonymous).
func (s *PostService) GetBySlug(ctx context.Context, slug string, readerID uint) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.enrichForReader(ctx, readerID, post)
	return post, nil
}

// GetByID fetches one post by ID with reader enrichment.
func (s *PostService) GetByID(ctx context.Context, id uint, readerID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.enrichForReader(ctx, readerID, post)
	return post, nil
}

// ListPublished returns a page of published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context, limit, offset int) (*PostList, error) {
	posts, total, err := s.posts.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostList{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// ListFeatured returns the homepage's featured posts.
func (s *PostService) ListFeatured(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListFeatured(ctx, featuredLimit)
}

// ListTrending returns the most-viewed published posts, cached briefly
// since the ordering shifts with every view.
func (s *PostService) ListTrending(ctx context.Context) ([]models.Post, error) {
	return cache.Aside(ctx, s.rdb, cache.TrendingKey, cache.TrendingTTL, func() ([]models.Post, error) {
		return s.posts.ListTrending(ctx, trendingLimit)
	})
}

// ListByCategory returns a page of published posts in one category.
func (s *PostService) ListByCategory(ctx context.Context, category string, limit, offset int) (*PostList, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	posts, total, err := s.posts.ListByCategory(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostList{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// ListRelated returns posts sharing a category with the given slug's post.
func (s *PostService) ListRelated(ctx context.Context, slug string) ([]models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.posts.ListRelated(ctx, post, relatedLimit)
}

// Search runs a substring search over title, excerpt and content.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) (*PostList, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	posts, total, err := s.posts.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostList{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

// ListCategories returns the distinct categories in use, sorted and
// deduplicated regardless of what the storage layer returned.
func (s *PostService) ListCategories(ctx context.Context) ([]string, error) {
	return cache.Aside(ctx, s.rdb, cache.CategoriesKey, cache.CategoriesTTL, func() ([]string, error) {
		raw, err := s.posts.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]struct{}, len(raw))
		categories := make([]string, 0, len(raw))
		for _, c := range raw {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
		sort.Strings(categories)
		return categories, nil
	})
}

// enrichForReader fills the computed Liked and Bookmarked fields for a
// signed-in reader. Failures degrade to unenriched output rather than
// failing the read.
func (s *PostService) enrichForReader(ctx context.Context, readerID uint, post *models.Post) {
	if readerID == 0 {
		return
	}
	if liked, err := s.engagement.IsLiked(ctx, readerID, post.ID); err == nil {
		post.Liked = liked
	}
	if bookmarked, err := s.engagement.IsBookmarked(ctx, readerID, post.ID); err == nil {
		post.Bookmarked = bookmarked
	}
}
