package repository

import (
	"context"

	"github.com/yukikurage/taskhive/internal/models"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(ctx context.Context, board *models.Board) error

	// FindByID finds a board by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Board, error)

	// ListForUser lists boards owned by or shared with a user, most recently updated first
	ListForUser(ctx context.Context, userID uint64) ([]models.Board, error)

	// Update saves the board's scalar fields
	Update(ctx context.Context, board *models.Board) error

	// ReplaceMembers swaps the board's membership list for members
	ReplaceMembers(ctx context.Context, boardID uint64, members []models.BoardMember) error

	// Delete deletes a board. Tasks are not touched.
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// ListByBoard lists a board's tasks by position, then creation time
	ListByBoard(ctx context.Context, boardID uint64) ([]models.Task, error)

	// Update saves the task's scalar fields
	Update(ctx context.Context, task *models.Task) error

	// Move sets only the column and position of a task
	Move(ctx context.Context, id uint64, column string, position float64) error

	// Delete deletes a single task
	Delete(ctx context.Context, id uint64) error

	// DeleteByBoard deletes every task on a board
	DeleteByBoard(ctx context.Context, boardID uint64) error

	// ReplaceAssignees swaps a task's assignees for userIDs
	ReplaceAssignees(ctx context.Context, taskID uint64, userIDs []uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Comment, error)

	// ListTopLevel lists a task's top-level comments with their direct replies
	ListTopLevel(ctx context.Context, taskID uint64) ([]models.Comment, error)

	// UpdateContent replaces a comment's content
	UpdateContent(ctx context.Context, id uint64, content string) error

	// Delete deletes a single comment. Replies are not touched.
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)
}
