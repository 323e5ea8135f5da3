package service

import (
	"context"

	"sanaalens/internal/models"
)

// Function-field stubs for each repository. Tests set only the fields
// they care about; unset fields return zero values.

type postRepoStub struct {
	getByIDFn        func(ctx context.Context, id uint) (*models.Post, error)
	getBySlugFn      func(ctx context.Context, slug string) (*models.Post, error)
	listPublishedFn  func(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	listFeaturedFn   func(ctx context.Context, limit int) ([]models.Post, error)
	listTrendingFn   func(ctx context.Context, limit int) ([]models.Post, error)
	listByCategoryFn func(ctx context.Context, category string, limit, offset int) ([]models.Post, int64, error)
	listRelatedFn    func(ctx context.Context, post *models.Post, limit int) ([]models.Post, error)
	listByIDsFn      func(ctx context.Context, ids []uint) ([]models.Post, error)
	searchFn         func(ctx context.Context, query string, limit, offset int) ([]models.Post, int64, error)
	listCategoriesFn func(ctx context.Context) ([]string, error)
	ensureStubFn     func(ctx context.Context, id uint) error
	incrementViewsFn func(ctx context.Context, id uint) error
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("post", id)
}

func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if s.getBySlugFn != nil {
		return s.getBySlugFn(ctx, slug)
	}
	return nil, models.NewNotFoundError("post", slug)
}

func (s *postRepoStub) ListPublished(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	if s.listPublishedFn != nil {
		return s.listPublishedFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (s *postRepoStub) ListFeatured(ctx context.Context, limit int) ([]models.Post, error) {
	if s.listFeaturedFn != nil {
		return s.listFeaturedFn(ctx, limit)
	}
	return nil, nil
}

func (s *postRepoStub) ListTrending(ctx context.Context, limit int) ([]models.Post, error) {
	if s.listTrendingFn != nil {
		return s.listTrendingFn(ctx, limit)
	}
	return nil, nil
}

func (s *postRepoStub) ListByCategory(ctx context.Context, category string, limit, offset int) ([]models.Post, int64, error) {
	if s.listByCategoryFn != nil {
		return s.listByCategoryFn(ctx, category, limit, offset)
	}
	return nil, 0, nil
}

func (s *postRepoStub) ListRelated(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	if s.listRelatedFn != nil {
		return s.listRelatedFn(ctx, post, limit)
	}
	return nil, nil
}

func (s *postRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if s.listByIDsFn != nil {
		return s.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.Post, int64, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit, offset)
	}
	return nil, 0, nil
}

func (s *postRepoStub) ListCategories(ctx context.Context) ([]string, error) {
	if s.listCategoriesFn != nil {
		return s.listCategoriesFn(ctx)
	}
	return nil, nil
}

func (s *postRepoStub) EnsureStub(ctx context.Context, id uint) error {
	if s.ensureStubFn != nil {
		return s.ensureStubFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	if s.incrementViewsFn != nil {
		return s.incrementViewsFn(ctx, id)
	}
	return nil
}

type engagementRepoStub struct {
	likeFn         func(ctx context.Context, userID, postID uint) (bool, error)
	unlikeFn       func(ctx context.Context, userID, postID uint) (bool, error)
	isLikedFn      func(ctx context.Context, userID, postID uint) (bool, error)
	likeCountFn    func(ctx context.Context, postID uint) (int64, error)
	bookmarkFn     func(ctx context.Context, userID, postID uint) (bool, error)
	unbookmarkFn   func(ctx context.Context, userID, postID uint) (bool, error)
	isBookmarkedFn func(ctx context.Context, userID, postID uint) (bool, error)
	listBmIDsFn    func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *engagementRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *engagementRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *engagementRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *engagementRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	if s.likeCountFn != nil {
		return s.likeCountFn(ctx, postID)
	}
	return 0, nil
}

func (s *engagementRepoStub) Bookmark(ctx context.Context, userID, postID uint) (bool, error) {
	if s.bookmarkFn != nil {
		return s.bookmarkFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *engagementRepoStub) Unbookmark(ctx context.Context, userID, postID uint) (bool, error) {
	if s.unbookmarkFn != nil {
		return s.unbookmarkFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *engagementRepoStub) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isBookmarkedFn != nil {
		return s.isBookmarkedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *engagementRepoStub) ListBookmarkedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.listBmIDsFn != nil {
		return s.listBmIDsFn(ctx, userID)
	}
	return nil, nil
}

type commentRepoStub struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	getByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn func(ctx context.Context, postID uint) ([]models.Comment, error)
	updateFn     func(ctx context.Context, comment *models.Comment) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("comment", id)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, comment)
	}
	return nil
}

func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type userRepoStub struct {
	createFn         func(ctx context.Context, user *models.User) error
	getByIDFn        func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn  func(ctx context.Context, username string) (*models.User, error)
	passwordHashFn   func(ctx context.Context, id uint) (string, error)
	updateProfileFn  func(ctx context.Context, id uint, displayName, avatar, bio string) error
	updatePasswordFn func(ctx context.Context, id uint, hash string) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("user", id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *userRepoStub) PasswordHash(ctx context.Context, id uint) (string, error) {
	if s.passwordHashFn != nil {
		return s.passwordHashFn(ctx, id)
	}
	return "", models.NewNotFoundError("user", id)
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, displayName, avatar, bio string) error {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, id, displayName, avatar, bio)
	}
	return nil
}

func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if s.updatePasswordFn != nil {
		return s.updatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

// threadPublisherStub records published snapshots.
type threadPublisherStub struct {
	published []uint
}

func (s *threadPublisherStub) PublishThread(ctx context.Context, postID uint, count int64, comments []models.Comment) {
	s.published = append(s.published, postID)
}
