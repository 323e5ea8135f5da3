package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sanaalens/internal/cache"
	"sanaalens/internal/models"
)

// UserRepository handles user persistence. Profile reads go through the
// cache and never carry the password hash; credential reads and all
// writes go straight to the database.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID returns the profile view of a user. The Password field is
	// always empty, cache hit or miss.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// PasswordHash reads the stored bcrypt hash fresh from the database.
	PasswordHash(ctx context.Context, id uint) (string, error)
	// UpdateProfile overwrites only the editable display columns.
	UpdateProfile(ctx context.Context, id uint, displayName, avatar, bio string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewUserRepository creates a new user repository backed by GORM and Redis.
func NewUserRepository(db *gorm.DB, rdb *redis.Client) UserRepository {
	return &userRepository{db: db, rdb: rdb}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return cache.Aside(ctx, r.rdb, cache.UserKey(id), cache.UserTTL, func() (*models.User, error) {
		var user models.User
		err := r.db.WithContext(ctx).First(&user, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("user", id)
			}
			return nil, models.NewInternalError(err)
		}
		// Credentials never enter the cache; json:"-" would silently
		// drop the hash on the round trip anyway, so keep both paths
		// consistent and hand out profile data only.
		user.Password = ""
		return &user, nil
	})
}

// GetByEmail returns (nil, nil) when no account exists: login treats a
// missing account and a wrong password identically.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) PasswordHash(ctx context.Context, id uint) (string, error) {
	var hash string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("password", &hash).Error
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if hash == "" {
		return "", models.NewNotFoundError("user", id)
	}
	return hash, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, displayName, avatar, bio string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"display_name": displayName,
			"avatar":       avatar,
			"bio":          bio,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	cache.InvalidateUser(ctx, r.rdb, id)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	cache.InvalidateUser(ctx, r.rdb, id)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	cache.InvalidateUser(ctx, r.rdb, id)
	return nil
}
