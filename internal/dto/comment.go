package dto

import (
	"time"

	"github.com/yukikurage/taskhive/internal/models"
)

// CommentDTO represents a comment and, for top-level comments, its replies
type CommentDTO struct {
	ID            uint64       `json:"id"`
	Content       string       `json:"content"`
	Task          uint64       `json:"task"`
	Author        UserDTO      `json:"author"`
	ParentComment *uint64      `json:"parentComment"`
	Replies       []CommentDTO `json:"replies"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:            comment.ID,
		Content:       comment.Content,
		Task:          comment.TaskID,
		Author:        referenceUser(comment.AuthorID, comment.Author),
		ParentComment: comment.ParentCommentID,
		Replies:       make([]CommentDTO, len(comment.Replies)),
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}

	for i, reply := range comment.Replies {
		dto.Replies[i] = ToCommentDTO(reply)
	}

	return dto
}

// ToCommentDTOs converts a slice of comments, never returning nil
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}
