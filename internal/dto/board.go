package dto

import (
	"time"

	"github.com/yukikurage/taskhive/internal/models"
)

// ColumnDTO represents a board column
type ColumnDTO struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

// MemberDTO represents a board member with their role
type MemberDTO struct {
	User UserDTO          `json:"user"`
	Role models.BoardRole `json:"role"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID              uint64      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Owner           UserDTO     `json:"owner"`
	Members         []MemberDTO `json:"members"`
	Columns         []ColumnDTO `json:"columns"`
	BackgroundColor string      `json:"backgroundColor"`
	IsPrivate       bool        `json:"isPrivate"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	dto := BoardDTO{
		ID:              board.ID,
		Title:           board.Title,
		Description:     board.Description,
		Owner:           referenceUser(board.OwnerID, board.Owner),
		Members:         make([]MemberDTO, len(board.Members)),
		Columns:         make([]ColumnDTO, len(board.Columns)),
		BackgroundColor: board.BackgroundColor,
		IsPrivate:       board.IsPrivate,
		CreatedAt:       board.CreatedAt,
		UpdatedAt:       board.UpdatedAt,
	}

	for i, member := range board.Members {
		dto.Members[i] = MemberDTO{
			User: referenceUser(member.UserID, member.User),
			Role: member.Role,
		}
	}

	for i, column := range board.Columns {
		taskIDs := column.TaskIDs
		if taskIDs == nil {
			taskIDs = []string{}
		}
		dto.Columns[i] = ColumnDTO{
			ID:      column.ID,
			Title:   column.Title,
			TaskIDs: taskIDs,
		}
	}

	return dto
}

// ToBoardDTOs converts a slice of boards, never returning nil
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	items := make([]BoardDTO, len(boards))
	for i, board := range boards {
		items[i] = ToBoardDTO(board)
	}
	return items
}
