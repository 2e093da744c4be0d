package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAccessDenied    = errors.New("access denied")
)

// ResourceKind names the kind of record a board is resolved from.
type ResourceKind string

const (
	KindBoard   ResourceKind = "board"
	KindTask    ResourceKind = "task"
	KindComment ResourceKind = "comment"
)

// Resolver walks Comment -> Task -> Board references.
type Resolver struct {
	boards   repository.BoardRepository
	tasks    repository.TaskRepository
	comments repository.CommentRepository
}

// NewResolver creates a new Resolver
func NewResolver(boards repository.BoardRepository, tasks repository.TaskRepository, comments repository.CommentRepository) *Resolver {
	return &Resolver{
		boards:   boards,
		tasks:    tasks,
		comments: comments,
	}
}

// ResolveOwningBoard returns the board that owns the record (kind, id), with
// its members loaded so the result can be fed straight to CanAccess.
func (r *Resolver) ResolveOwningBoard(ctx context.Context, kind ResourceKind, id uint64) (*models.Board, error) {
	switch kind {
	case KindBoard:
		return r.board(ctx, id)
	case KindTask:
		task, err := r.Task(ctx, id)
		if err != nil {
			return nil, err
		}
		return r.board(ctx, task.BoardID)
	case KindComment:
		comment, err := r.comments.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, ErrCommentNotFound, "comment")
		}
		return r.ResolveOwningBoard(ctx, KindTask, comment.TaskID)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// Task loads a task or returns ErrTaskNotFound.
func (r *Resolver) Task(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := r.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "task")
	}
	return task, nil
}

// Authorize resolves the owning board and checks CanAccess for userID.
func (r *Resolver) Authorize(ctx context.Context, userID uint64, kind ResourceKind, id uint64) (*models.Board, error) {
	board, err := r.ResolveOwningBoard(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(userID, board) {
		return nil, ErrAccessDenied
	}
	return board, nil
}

func (r *Resolver) board(ctx context.Context, id uint64) (*models.Board, error) {
	board, err := r.boards.FindByID(ctx, id, "Members")
	if err != nil {
		return nil, notFound(err, ErrBoardNotFound, "board")
	}
	return board, nil
}

func notFound(err, sentinel error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
