package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskhive/internal/access"
	"github.com/yukikurage/taskhive/internal/constants"
	"github.com/yukikurage/taskhive/internal/models"
	"github.com/yukikurage/taskhive/internal/repository"
	"gorm.io/gorm"
)

// ErrUnknownMember is returned when a membership list names a missing user.
var ErrUnknownMember error = &ValidationError{Field: "members", Message: "One or more board members do not exist"}

var boardDetailPreloads = []string{"Owner", "Members", "Members.User"}

// BoardService owns the board lifecycle: creation with the default columns,
// membership, metadata updates and cascading deletion of tasks.
type BoardService struct {
	boards   repository.BoardRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
	resolver *access.Resolver
}

// NewBoardService creates a new BoardService
func NewBoardService(boards repository.BoardRepository, tasks repository.TaskRepository, users repository.UserRepository, resolver *access.Resolver) *BoardService {
	return &BoardService{
		boards:   boards,
		tasks:    tasks,
		users:    users,
		resolver: resolver,
	}
}

// CreateBoardInput represents input for creating a board
type CreateBoardInput struct {
	OwnerID         uint64
	Title           string
	Description     string
	BackgroundColor string
}

// MemberInput is one entry of a board's membership list
type MemberInput struct {
	UserID uint64
	Role   models.BoardRole
}

// UpdateBoardInput represents a partial board update. Nil fields are left alone.
type UpdateBoardInput struct {
	Title           *string
	Description     *string
	BackgroundColor *string
	IsPrivate       *bool
	Members         *[]MemberInput
}

// ListBoards returns the boards a user owns or belongs to, most recently updated first
func (s *BoardService) ListBoards(ctx context.Context, userID uint64) ([]models.Board, error) {
	boards, err := s.boards.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard returns a board with owner and member identities loaded
func (s *BoardService) GetBoard(ctx context.Context, userID, boardID uint64) (*models.Board, error) {
	if _, err := s.resolver.Authorize(ctx, userID, access.KindBoard, boardID); err != nil {
		return nil, err
	}

	return s.findBoard(ctx, boardID, boardDetailPreloads...)
}

// CreateBoard creates a board owned by the caller with the four default columns
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (*models.Board, error) {
	title, err := requiredText("title", "Board title", input.Title, constants.MaxBoardTitleLength)
	if err != nil {
		return nil, err
	}
	description, err := optionalText("description", "Description", input.Description, constants.MaxBoardDescriptionLength)
	if err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.BackgroundColor)
	if color == "" {
		color = models.DefaultBackgroundColor
	}

	board := &models.Board{
		Title:           title,
		Description:     description,
		OwnerID:         input.OwnerID,
		Columns:         models.DefaultColumns(),
		BackgroundColor: color,
	}

	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return s.findBoard(ctx, board.ID, "Owner")
}

// UpdateBoard applies a partial update. Only the owner may edit board metadata.
func (s *BoardService) UpdateBoard(ctx context.Context, userID, boardID uint64, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.resolver.ResolveOwningBoard(ctx, access.KindBoard, boardID)
	if err != nil {
		return nil, err
	}

	if !access.IsOwner(userID, board) {
		return nil, access.ErrAccessDenied
	}

	if input.Title != nil {
		if board.Title, err = requiredText("title", "Board title", *input.Title, constants.MaxBoardTitleLength); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if board.Description, err = optionalText("description", "Description", *input.Description, constants.MaxBoardDescriptionLength); err != nil {
			return nil, err
		}
	}
	if input.BackgroundColor != nil {
		board.BackgroundColor = strings.TrimSpace(*input.BackgroundColor)
		if board.BackgroundColor == "" {
			board.BackgroundColor = models.DefaultBackgroundColor
		}
	}
	if input.IsPrivate != nil {
		board.IsPrivate = *input.IsPrivate
	}

	var members []models.BoardMember
	if input.Members != nil {
		if members, err = s.buildMembers(ctx, *input.Members); err != nil {
			return nil, err
		}
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	if input.Members != nil {
		if err := s.boards.ReplaceMembers(ctx, board.ID, members); err != nil {
			return nil, fmt.Errorf("failed to update board members: %w", err)
		}
	}

	return s.findBoard(ctx, board.ID, boardDetailPreloads...)
}

// DeleteBoard deletes a board and every task on it. Only the owner may delete.
// Tasks go first; the two steps are not wrapped in a transaction, so a failed
// board delete leaves an empty board behind rather than orphaned tasks.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID uint64) error {
	board, err := s.resolver.ResolveOwningBoard(ctx, access.KindBoard, boardID)
	if err != nil {
		return err
	}

	if !access.IsOwner(userID, board) {
		return access.ErrAccessDenied
	}

	if err := s.tasks.DeleteByBoard(ctx, board.ID); err != nil {
		return fmt.Errorf("failed to delete board tasks: %w", err)
	}

	if err := s.boards.Delete(ctx, board.ID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

func (s *BoardService) findBoard(ctx context.Context, boardID uint64, preload ...string) (*models.Board, error) {
	board, err := s.boards.FindByID(ctx, boardID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	return board, nil
}

// buildMembers validates roles and user references. A user listed twice keeps
// the first entry.
func (s *BoardService) buildMembers(ctx context.Context, inputs []MemberInput) ([]models.BoardMember, error) {
	members := make([]models.BoardMember, 0, len(inputs))
	seen := make(map[uint64]struct{}, len(inputs))
	ids := make([]uint64, 0, len(inputs))

	for _, in := range inputs {
		if in.UserID == 0 {
			return nil, invalid("members", "Member user is required")
		}
		role := in.Role
		if role == "" {
			role = models.RoleMember
		}
		if !role.Valid() {
			return nil, invalid("members", "`%s` is not a valid member role", role)
		}
		if _, dup := seen[in.UserID]; dup {
			continue
		}
		seen[in.UserID] = struct{}{}
		ids = append(ids, in.UserID)
		members = append(members, models.BoardMember{UserID: in.UserID, Role: role})
	}

	if len(ids) > 0 {
		count, err := s.users.CountByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to verify members: %w", err)
		}
		if int(count) != len(ids) {
			return nil, ErrUnknownMember
		}
	}

	return members, nil
}
