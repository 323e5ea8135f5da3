package service

import (
	"context"
	"strings"
	"time"

	"sanaalens/internal/middleware"
	"sanaalens/internal/models"
	"sanaalens/internal/repository"
)

const maxCommentLength = 4000

// ThreadPublisher receives the full thread snapshot after every comment
// mutation. Satisfied by realtime.Notifier.
type ThreadPublisher interface {
	PublishThread(ctx context.Context, postID uint, count int64, comments []models.Comment)
}

// CommentService implements comment reads and author-gated mutations.
type CommentService struct {
	comments  repository.CommentRepository
	posts     repository.PostRepository
	publisher ThreadPublisher

	// now is injectable so edit window tests control the clock.
	now func() time.Time
}

// NewCommentService creates a new comment service. publisher may be nil
// when realtime delivery is disabled.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, publisher ThreadPublisher) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListByPost returns a post's comments, newest first, with the count.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.Comment, int64, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	return comments, int64(len(comments)), nil
}

// Create validates and stores a new comment, then pushes the updated
// thread to watchers. Content that is empty after trimming never reaches
// the repository.
func (s *CommentService) Create(ctx context.Context, authorID, postID uint, content string) (*models.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, models.NewValidationError("Comment content cannot be empty")
	}
	if len(trimmed) > maxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	if err := s.posts.EnsureStub(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  trimmed,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publishThread(ctx, postID)
	return comment, nil
}

// Update edits a comment's content. Only the author may edit, and only
// within the edit window measured from creation; afterwards the comment
// is locked for good. A successful edit stamps EditedAt.
func (s *CommentService) Update(ctx context.Context, readerID, commentID uint, content string) (*models.Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, models.NewValidationError("Comment content cannot be empty")
	}
	if len(trimmed) > maxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeModify(comment, readerID); err != nil {
		return nil, err
	}

	editedAt := s.now()
	comment.Content = trimmed
	comment.EditedAt = &editedAt
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.publishThread(ctx, comment.PostID)
	return comment, nil
}

// Delete removes a comment under the same author-and-window rule as Update.
func (s *CommentService) Delete(ctx context.Context, readerID, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := s.authorizeModify(comment, readerID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.publishThread(ctx, comment.PostID)
	return nil
}

// authorizeModify distinguishes "not yours" from "too late" so clients
// can explain the refusal.
func (s *CommentService) authorizeModify(comment *models.Comment, readerID uint) error {
	if comment.AuthorID != readerID {
		return models.NewUnauthorizedError("You can only modify your own comments")
	}
	if !comment.CanModify(readerID, s.now()) {
		return models.NewUnauthorizedError("Comments can no longer be modified after 5 minutes")
	}
	return nil
}

func (s *CommentService) publishThread(ctx context.Context, postID uint) {
	if s.publisher == nil {
		return
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "thread snapshot reload failed, skipping broadcast", "post_id", postID, "error", err)
		return
	}
	s.publisher.PublishThread(ctx, postID, int64(len(comments)), comments)
}
