package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/constants"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotCommentAuthor        = errors.New("only the comment author can perform this action")
	ErrReplyTaskMismatch error = &ValidationError{Field: "parentComment", Message: "Parent comment belongs to a different task"}
)

// CommentService manages task comments and their one-level replies
type CommentService struct {
	comments repository.CommentRepository
	resolver *access.Resolver
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repository.CommentRepository, resolver *access.Resolver) *CommentService {
	return &CommentService{
		comments: comments,
		resolver: resolver,
	}
}

// CreateCommentInput represents input for creating a comment
type CreateCommentInput struct {
	Content         string
	TaskID          uint64
	AuthorID        uint64
	ParentCommentID *uint64
}

// ListTopLevelComments returns a task's top-level comments, newest first,
// each with its direct replies.
func (s *CommentService) ListTopLevelComments(ctx context.Context, taskID uint64) ([]models.Comment, error) {
	comments, err := s.comments.ListTopLevel(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment to a task the author can access
func (s *CommentService) CreateComment(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	if _, err := s.resolver.Authorize(ctx, input.AuthorID, access.KindTask, input.TaskID); err != nil {
		return nil, err
	}

	content, err := requiredText("content", "Comment", input.Content, constants.MaxCommentLength)
	if err != nil {
		return nil, err
	}

	if input.ParentCommentID != nil {
		parent, err := s.findComment(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.TaskID != input.TaskID {
			return nil, ErrReplyTaskMismatch
		}
	}

	comment := &models.Comment{
		Content:         content,
		TaskID:          input.TaskID,
		AuthorID:        input.AuthorID,
		ParentCommentID: input.ParentCommentID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.comments.FindByID(ctx, comment.ID, "Author")
}

// UpdateComment replaces a comment's content. Only its author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uint64, content string) (*models.Comment, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	if content, err = requiredText("content", "Comment", content, constants.MaxCommentLength); err != nil {
		return nil, err
	}

	if err := s.comments.UpdateContent(ctx, comment.ID, content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.comments.FindByID(ctx, comment.ID, "Author")
}

// DeleteComment deletes a comment. Only its author may do so. Replies keep
// pointing at the deleted parent.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint64) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		return ErrNotCommentAuthor
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *CommentService) findComment(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}
