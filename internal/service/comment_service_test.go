package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanaalens/internal/models"
)

func newCommentServiceAt(t *testing.T, comments *commentRepoStub, posts *postRepoStub, now time.Time) (*CommentService, *threadPublisherStub) {
	t.Helper()
	publisher := &threadPublisherStub{}
	svc := NewCommentService(comments, posts, publisher)
	svc.now = func() time.Time { return now }
	return svc, publisher
}

func TestCommentCreate(t *testing.T) {
	t.Parallel()

	t.Run("whitespace content never reaches the repository", func(t *testing.T) {
		t.Parallel()

		created := false
		comments := &commentRepoStub{
			createFn: func(ctx context.Context, c *models.Comment) error {
				created = true
				return nil
			},
		}
		svc, publisher := newCommentServiceAt(t, comments, &postRepoStub{}, time.Now())

		for _, content := range []string{"", "   ", "\n\t  \n"} {
			_, err := svc.Create(context.Background(), 1, 10, content)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		}
		assert.False(t, created)
		assert.Empty(t, publisher.published)
	})

	t.Run("trims content and broadcasts the thread", func(t *testing.T) {
		t.Parallel()

		var stored *models.Comment
		comments := &commentRepoStub{
			createFn: func(ctx context.Context, c *models.Comment) error {
				c.ID = 7
				stored = c
				return nil
			},
			listByPostFn: func(ctx context.Context, postID uint) ([]models.Comment, error) {
				return []models.Comment{{ID: 7}}, nil
			},
		}
		ensured := false
		posts := &postRepoStub{
			ensureStubFn: func(ctx context.Context, id uint) error {
				ensured = true
				return nil
			},
		}
		svc, publisher := newCommentServiceAt(t, comments, posts, time.Now())

		comment, err := svc.Create(context.Background(), 1, 10, "  Asante sana for this piece!  ")
		require.NoError(t, err)
		assert.Equal(t, "Asante sana for this piece!", comment.Content)
		assert.Equal(t, "Asante sana for this piece!", stored.Content)
		assert.Nil(t, comment.EditedAt)
		assert.True(t, ensured)
		assert.Equal(t, []uint{10}, publisher.published)
	})
}

func TestCommentUpdateEditWindow(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		readerID uint
		now      time.Time
		wantCode string
	}{
		{"well inside the window", 1, createdAt.Add(2 * time.Minute), ""},
		{"exactly at the boundary", 1, createdAt.Add(models.CommentEditWindow), ""},
		{"one second past the boundary", 1, createdAt.Add(models.CommentEditWindow + time.Second), models.CodeUnauthorized},
		{"someone else inside the window", 2, createdAt.Add(time.Minute), models.CodeUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			comments := &commentRepoStub{
				getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
					return &models.Comment{ID: id, PostID: 10, AuthorID: 1, Content: "original", CreatedAt: createdAt}, nil
				},
			}
			svc, _ := newCommentServiceAt(t, comments, &postRepoStub{}, tt.now)

			updated, err := svc.Update(context.Background(), tt.readerID, 7, "revised")
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "revised", updated.Content)
				require.NotNil(t, updated.EditedAt)
				assert.Equal(t, tt.now, *updated.EditedAt)
			} else {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestCommentDelete(t *testing.T) {
	t.Parallel()

	createdAt := time.Now().Add(-time.Minute)

	t.Run("author inside the window", func(t *testing.T) {
		t.Parallel()

		deleted := false
		comments := &commentRepoStub{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, PostID: 10, AuthorID: 1, CreatedAt: createdAt}, nil
			},
			deleteFn: func(ctx context.Context, id uint) error {
				deleted = true
				return nil
			},
		}
		svc, publisher := newCommentServiceAt(t, comments, &postRepoStub{}, time.Now())

		require.NoError(t, svc.Delete(context.Background(), 1, 7))
		assert.True(t, deleted)
		assert.Equal(t, []uint{10}, publisher.published)
	})

	t.Run("locked after the window", func(t *testing.T) {
		t.Parallel()

		comments := &commentRepoStub{
			getByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return &models.Comment{ID: id, PostID: 10, AuthorID: 1, CreatedAt: createdAt}, nil
			},
		}
		svc, publisher := newCommentServiceAt(t, comments, &postRepoStub{}, createdAt.Add(models.CommentEditWindow+time.Minute))

		err := svc.Delete(context.Background(), 1, 7)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
		assert.Empty(t, publisher.published)
	})

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()

		svc, _ := newCommentServiceAt(t, &commentRepoStub{}, &postRepoStub{}, time.Now())

		err := svc.Delete(context.Background(), 1, 404)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestCommentListByPost(t *testing.T) {
	t.Parallel()

	comments := &commentRepoStub{
		listByPostFn: func(ctx context.Context, postID uint) ([]models.Comment, error) {
			return []models.Comment{{ID: 3}, {ID: 2}, {ID: 1}}, nil
		},
	}
	svc, _ := newCommentServiceAt(t, comments, &postRepoStub{}, time.Now())

	list, count, err := svc.ListByPost(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, list, 3)
}

func TestCommentCreateRepoFailure(t *testing.T) {
	t.Parallel()

	comments := &commentRepoStub{
		createFn: func(ctx context.Context, c *models.Comment) error {
			return models.NewInternalError(errors.New("connection reset"))
		},
	}
	svc, publisher := newCommentServiceAt(t, comments, &postRepoStub{}, time.Now())

	_, err := svc.Create(context.Background(), 1, 10, "hello")
	require.Error(t, err)
	assert.Empty(t, publisher.published)
}
