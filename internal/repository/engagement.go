package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sanaalens/internal/models"
)

// EngagementRepository handles likes and bookmarks.
type EngagementRepository interface {
	// Like inserts a like row and bumps the post counter in one
	// transaction. Returns false when the reader had already liked the
	// post, in which case nothing changes.
	Like(ctx context.Context, userID, postID uint) (bool, error)
	// Unlike removes the like row and decrements the counter in one
	// transaction. Returns false when there was no like to remove.
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	LikeCount(ctx context.Context, postID uint) (int64, error)

	Bookmark(ctx context.Context, userID, postID uint) (bool, error)
	Unbookmark(ctx context.Context, userID, postID uint) (bool, error)
	IsBookmarked(ctx context.Context, userID, postID uint) (bool, error)
	ListBookmarkedPostIDs(ctx context.Context, userID uint) ([]uint, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository backed by GORM.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return inserted, nil
}

func (r *engagementRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		// Clamp at zero so a drifted counter can never go negative.
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return deleted, nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&models.Like{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *engagementRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Pluck("likes", &likes).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *engagementRepository) Bookmark(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Bookmark{UserID: userID, PostID: postID})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) Unbookmark(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *engagementRepository) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&models.Bookmark{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *engagementRepository) ListBookmarkedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
