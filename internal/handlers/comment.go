package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/dto"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"github.com/yukikurage/taskhive/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns a task's top-level comments with their replies
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := listPathID(c, "taskId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListTopLevelComments(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// CreateComment adds a comment or a reply to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		Content       string  `json:"content"`
		Task          uint64  `json:"task"`
		ParentComment *uint64 `json:"parentComment"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), services.CreateCommentInput{
		Content:         req.Content,
		TaskID:          req.Task,
		AuthorID:        userID,
		ParentCommentID: req.ParentComment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment edits a comment. Only its author may do so.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "Comment not found")
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Content string `json:"content"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes a comment. Only its author may do so.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "Comment not found")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
